package service

import (
	"context"

	"anoa.com/jelajahpath/internal/model"
	catalogDto "anoa.com/jelajahpath/internal/modules/catalog/dto"
	"anoa.com/jelajahpath/internal/modules/catalog/repository"
	"anoa.com/jelajahpath/pkg/apperror"
	"github.com/google/uuid"
)

type CatalogService interface {
	GetPublishedPaths(ctx context.Context) ([]catalogDto.PathResponse, error)
	GetPathDetail(ctx context.Context, id uuid.UUID) (*catalogDto.PathDetailResponse, error)
}

type catalogService struct {
	pathRepo repository.PathRepository
}

func NewCatalogService(pathRepo repository.PathRepository) CatalogService {
	return &catalogService{pathRepo: pathRepo}
}

func (s *catalogService) GetPublishedPaths(ctx context.Context) ([]catalogDto.PathResponse, error) {
	paths, err := s.pathRepo.FindPublished(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]catalogDto.PathResponse, 0, len(paths))
	for i := range paths {
		count, err := s.pathRepo.CountPoints(ctx, paths[i].ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, toPathResponse(&paths[i], int(count)))
	}

	return responses, nil
}

func (s *catalogService) GetPathDetail(ctx context.Context, id uuid.UUID) (*catalogDto.PathDetailResponse, error) {
	path, err := s.pathRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Unpublished paths are invisible outside the admin surface.
	if !path.IsPublished {
		return nil, apperror.ErrNotFound
	}

	points := make([]catalogDto.PointResponse, 0, len(path.Points))
	for i := range path.Points {
		p := &path.Points[i]
		points = append(points, catalogDto.PointResponse{
			ID:            p.ID,
			Latitude:      p.Latitude,
			Longitude:     p.Longitude,
			RadiusMeters:  p.RadiusMeters,
			Order:         p.Order,
			HasReward:     p.HasReward(),
			LocationLabel: p.LocationLabel,
		})
	}

	return &catalogDto.PathDetailResponse{
		PathResponse: toPathResponse(path, len(path.Points)),
		Points:       points,
	}, nil
}

func toPathResponse(path *model.Path, pointCount int) catalogDto.PathResponse {
	return catalogDto.PathResponse{
		ID:               path.ID,
		Name:             path.Name,
		Description:      path.Description,
		DistanceMeters:   path.DistanceMeters,
		TotalTimeMinutes: path.TotalTimeMinutes,
		PointCount:       pointCount,
	}
}
