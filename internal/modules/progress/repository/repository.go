package repository

import (
	"context"
	"time"

	"anoa.com/jelajahpath/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VisitResult is the outcome of recording one visit event.
type VisitResult struct {
	Progress      *model.UserPathProgress
	NewVisit      bool
	RewardGranted bool
	Item          *model.UserItem
}

type ProgressRepository interface {
	// RecordVisit applies one visit event atomically: the visited-set row, the
	// progress counters, the completion transition and the reward grant all
	// commit together or not at all. Safe to retry; every step is an
	// insert-if-absent or a guarded update.
	RecordVisit(ctx context.Context, userID uuid.UUID, point *model.Point, totalPoints int64) (*VisitResult, error)
	FindByUserAndPath(ctx context.Context, userID, pathID uuid.UUID) (*model.UserPathProgress, error)
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]model.UserPathProgress, error)
	FindVisitedPointIDs(ctx context.Context, userID, pathID uuid.UUID) ([]uuid.UUID, error)
}

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) RecordVisit(ctx context.Context, userID uuid.UUID, point *model.Point, totalPoints int64) (*VisitResult, error) {
	result := &VisitResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		visit := &model.PathVisit{
			UserID:  userID,
			PointID: point.ID,
			PathID:  point.PathID,
		}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "point_id"}},
			DoNothing: true,
		}).Create(visit)
		if res.Error != nil {
			return res.Error
		}
		result.NewVisit = res.RowsAffected == 1

		if result.NewVisit {
			now := time.Now()
			// The upsert increments in SQL, so concurrent visits to different
			// points of the same path serialize on the row and never lose a
			// count. Revisits never reach this branch.
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}, {Name: "path_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"visited_stops_count": gorm.Expr("user_path_progress.visited_stops_count + 1"),
				}),
			}).Create(&model.UserPathProgress{
				UserID:            userID,
				PathID:            point.PathID,
				Status:            model.StatusInProgress,
				VisitedStopsCount: 1,
				StartedAt:         &now,
			}).Error; err != nil {
				return err
			}
		}

		var progress model.UserPathProgress
		if err := tx.
			Where("user_id = ? AND path_id = ?", userID, point.PathID).
			First(&progress).Error; err != nil {
			return err
		}

		if progress.Status != model.StatusCompleted && totalPoints > 0 &&
			int64(progress.VisitedStopsCount) >= totalPoints {
			now := time.Now()
			if err := tx.Model(&model.UserPathProgress{}).
				Where("user_id = ? AND path_id = ? AND status <> ?",
					userID, point.PathID, model.StatusCompleted).
				Updates(map[string]interface{}{
					"status":       model.StatusCompleted,
					"completed_at": now,
				}).Error; err != nil {
				return err
			}
			progress.Status = model.StatusCompleted
			progress.CompletedAt = &now
		}
		result.Progress = &progress

		// Reward flows even on revisits of a completed path; the unique
		// (user_id, point_id) index keeps the grant at-most-once.
		if point.HasReward() {
			item := &model.UserItem{
				UserID:        userID,
				PointID:       point.ID,
				RewardLabel:   *point.RewardLabel,
				RewardIconURL: point.RewardIconURL,
			}
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "point_id"}},
				DoNothing: true,
			}).Create(item)
			if res.Error != nil {
				return res.Error
			}
			result.RewardGranted = res.RowsAffected == 1
			if !result.RewardGranted {
				if err := tx.
					Where("user_id = ? AND point_id = ?", userID, point.ID).
					First(item).Error; err != nil {
					return err
				}
			}
			result.Item = item
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *progressRepository) FindByUserAndPath(ctx context.Context, userID, pathID uuid.UUID) (*model.UserPathProgress, error) {
	var progress model.UserPathProgress
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND path_id = ?", userID, pathID).
		First(&progress).Error; err != nil {
		return nil, err
	}

	return &progress, nil
}

func (r *progressRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]model.UserPathProgress, error) {
	var rows []model.UserPathProgress
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *progressRepository) FindVisitedPointIDs(ctx context.Context, userID, pathID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&model.PathVisit{}).
		Where("user_id = ? AND path_id = ?", userID, pathID).
		Pluck("point_id", &ids).Error; err != nil {
		return nil, err
	}

	return ids, nil
}
