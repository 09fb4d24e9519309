package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"anoa.com/jelajahpath/internal/model"
	catalogRepo "anoa.com/jelajahpath/internal/modules/catalog/repository"
	"anoa.com/jelajahpath/internal/modules/geofence"
	progressDto "anoa.com/jelajahpath/internal/modules/progress/dto"
	progressRepo "anoa.com/jelajahpath/internal/modules/progress/repository"
	"anoa.com/jelajahpath/pkg/apperror"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type ProgressService interface {
	// RecordFix evaluates one GPS fix against the path's geofences and records
	// a visit for every matched point.
	RecordFix(ctx context.Context, userID uuid.UUID, req progressDto.RecordVisitRequest) (*progressDto.VisitResponse, error)
	GetPathProgress(ctx context.Context, userID, pathID uuid.UUID) (*progressDto.ProgressResponse, error)
}

type progressService struct {
	progressRepo progressRepo.ProgressRepository
	pathRepo     catalogRepo.PathRepository
	redisClient  *redis.Client
	rateLimit    time.Duration
}

func NewProgressService(repo progressRepo.ProgressRepository, pathRepo catalogRepo.PathRepository, redisClient *redis.Client, rateLimit time.Duration) ProgressService {
	return &progressService{
		progressRepo: repo,
		pathRepo:     pathRepo,
		redisClient:  redisClient,
		rateLimit:    rateLimit,
	}
}

func (s *progressService) RecordFix(ctx context.Context, userID uuid.UUID, req progressDto.RecordVisitRequest) (*progressDto.VisitResponse, error) {
	pathID, err := uuid.Parse(req.PathID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid path id", apperror.ErrValidation)
	}

	allowed, err := CheckAndSetRateLimit(ctx, s.redisClient, userID, "record_fix", s.rateLimit)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperror.ErrRateLimitExceeded
	}

	path, err := s.pathRepo.FindByID(ctx, pathID)
	if err != nil {
		return nil, err
	}
	if !path.IsPublished {
		return nil, apperror.ErrNotFound
	}
	if len(path.Points) == 0 {
		return nil, fmt.Errorf("%w: path has no points", apperror.ErrNotFound)
	}

	matches, err := geofence.Evaluate(req.Latitude, req.Longitude, path.Points)
	if err != nil {
		return nil, err
	}

	totalPoints := int64(len(path.Points))
	visited := make([]progressDto.VisitedPoint, 0, len(matches))
	var latest *model.UserPathProgress

	for _, m := range matches {
		outcome, err := s.progressRepo.RecordVisit(ctx, userID, m.Point, totalPoints)
		if err != nil {
			return nil, err
		}

		vp := progressDto.VisitedPoint{
			PointID:        m.Point.ID,
			DistanceMeters: m.DistanceMeters,
			NewVisit:       outcome.NewVisit,
			RewardGranted:  outcome.RewardGranted,
		}
		if outcome.Item != nil {
			vp.RewardLabel = &outcome.Item.RewardLabel
		}
		visited = append(visited, vp)
		latest = outcome.Progress
	}

	resp := &progressDto.VisitResponse{VisitedPoints: visited}
	if latest != nil {
		resp.Progress = toProgressResponse(latest, int(totalPoints))
	} else {
		// No geofence matched; report current standing unchanged.
		current, err := s.GetPathProgress(ctx, userID, pathID)
		if err != nil {
			return nil, err
		}
		resp.Progress = *current
	}

	return resp, nil
}

func (s *progressService) GetPathProgress(ctx context.Context, userID, pathID uuid.UUID) (*progressDto.ProgressResponse, error) {
	total, err := s.pathRepo.CountPoints(ctx, pathID)
	if err != nil {
		return nil, err
	}

	progress, err := s.progressRepo.FindByUserAndPath(ctx, userID, pathID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No row yet: the path is NOT_STARTED for this user.
			return &progressDto.ProgressResponse{
				PathID:     pathID,
				Status:     string(model.StatusNotStarted),
				TotalStops: int(total),
			}, nil
		}
		return nil, err
	}

	resp := toProgressResponse(progress, int(total))
	return &resp, nil
}

func toProgressResponse(p *model.UserPathProgress, totalStops int) progressDto.ProgressResponse {
	return progressDto.ProgressResponse{
		PathID:            p.PathID,
		Status:            string(p.Status),
		VisitedStopsCount: p.VisitedStopsCount,
		TotalStops:        totalStops,
		StartedAt:         p.StartedAt,
		CompletedAt:       p.CompletedAt,
	}
}
