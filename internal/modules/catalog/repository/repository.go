package repository

import (
	"context"
	"errors"

	"anoa.com/jelajahpath/internal/model"
	"anoa.com/jelajahpath/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PathRepository is the read-only view of the path/point catalog. The admin
// collaborator owns writes; nothing here mutates rows.
type PathRepository interface {
	FindPublished(ctx context.Context) ([]model.Path, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Path, error)
	FindPointsByPath(ctx context.Context, pathID uuid.UUID) ([]model.Point, error)
	FindPointByID(ctx context.Context, id uuid.UUID) (*model.Point, error)
	CountPoints(ctx context.Context, pathID uuid.UUID) (int64, error)
	CountPublished(ctx context.Context) (int64, error)
	FindRewardPoints(ctx context.Context) ([]model.Point, error)
}

type pathRepository struct {
	db *gorm.DB
}

func NewPathRepository(db *gorm.DB) PathRepository {
	return &pathRepository{db: db}
}

func (r *pathRepository) FindPublished(ctx context.Context) ([]model.Path, error) {
	var paths []model.Path
	if err := r.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("created_at ASC").
		Find(&paths).Error; err != nil {
		return nil, err
	}

	return paths, nil
}

func (r *pathRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Path, error) {
	var path model.Path
	if err := r.db.WithContext(ctx).
		Preload("Points", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("id = ?", id).
		First(&path).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	return &path, nil
}

func (r *pathRepository) FindPointsByPath(ctx context.Context, pathID uuid.UUID) ([]model.Point, error) {
	var points []model.Point
	if err := r.db.WithContext(ctx).
		Where("path_id = ?", pathID).
		Order("sort_order ASC").
		Find(&points).Error; err != nil {
		return nil, err
	}

	return points, nil
}

func (r *pathRepository) FindPointByID(ctx context.Context, id uuid.UUID) (*model.Point, error) {
	var point model.Point
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&point).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	return &point, nil
}

func (r *pathRepository) CountPoints(ctx context.Context, pathID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Point{}).
		Where("path_id = ?", pathID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *pathRepository) CountPublished(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Path{}).
		Where("is_published = ?", true).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *pathRepository) FindRewardPoints(ctx context.Context) ([]model.Point, error) {
	var points []model.Point
	if err := r.db.WithContext(ctx).
		Joins("JOIN paths ON paths.id = points.path_id").
		Where("paths.is_published = ?", true).
		Where("points.reward_label IS NOT NULL AND points.reward_label <> ''").
		Order("points.created_at ASC").
		Find(&points).Error; err != nil {
		return nil, err
	}

	return points, nil
}
