package repository

import (
	"context"

	"anoa.com/jelajahpath/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaderboardRow is one ranked user with the summed visited-stop total across
// all of their paths.
type LeaderboardRow struct {
	UserID     uuid.UUID `json:"user_id"`
	Name       string    `json:"name"`
	TotalStops int       `json:"total_stops"`
}

// StatsRepository holds the read-side folds over progress and catalog rows.
// Nothing here mutates.
type StatsRepository interface {
	GetTopWalkers(ctx context.Context, limit int) ([]LeaderboardRow, error)
	CountCompletedByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	SumCompletedDistance(ctx context.Context, userID uuid.UUID) (float64, error)
}

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) GetTopWalkers(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	var rows []LeaderboardRow
	// Ties break on user id ascending so repeated calls rank identically.
	if err := r.db.WithContext(ctx).
		Model(&model.UserPathProgress{}).
		Select("users.id AS user_id, users.name AS name, SUM(user_path_progress.visited_stops_count) AS total_stops").
		Joins("JOIN users ON users.id = user_path_progress.user_id").
		Where("users.is_anonymous = ?", false).
		Group("users.id, users.name").
		Order("total_stops DESC, users.id ASC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *statsRepository) CountCompletedByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.UserPathProgress{}).
		Where("user_id = ? AND status = ?", userID, model.StatusCompleted).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *statsRepository) SumCompletedDistance(ctx context.Context, userID uuid.UUID) (float64, error) {
	var total float64
	if err := r.db.WithContext(ctx).
		Model(&model.UserPathProgress{}).
		Select("COALESCE(SUM(paths.distance_meters), 0)").
		Joins("JOIN paths ON paths.id = user_path_progress.path_id").
		Where("user_path_progress.user_id = ? AND user_path_progress.status = ?", userID, model.StatusCompleted).
		Scan(&total).Error; err != nil {
		return 0, err
	}

	return total, nil
}
