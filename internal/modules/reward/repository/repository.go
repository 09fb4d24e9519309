package repository

import (
	"context"
	"errors"

	"anoa.com/jelajahpath/internal/model"
	"anoa.com/jelajahpath/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ItemRepository interface {
	// InsertIfAbsent creates the item unless a row for (user, point) already
	// exists. Returns whether this call created the row. The conflict path is
	// absorbed here; callers never see a constraint error.
	InsertIfAbsent(ctx context.Context, item *model.UserItem) (bool, error)
	FindByUserAndPoint(ctx context.Context, userID, pointID uuid.UUID) (*model.UserItem, error)
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]model.UserItem, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) InsertIfAbsent(ctx context.Context, item *model.UserItem) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "point_id"}},
		DoNothing: true,
	}).Create(item)
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected == 1, nil
}

func (r *itemRepository) FindByUserAndPoint(ctx context.Context, userID, pointID uuid.UUID) (*model.UserItem, error) {
	var item model.UserItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND point_id = ?", userID, pointID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	return &item, nil
}

func (r *itemRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]model.UserItem, error) {
	var items []model.UserItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("collected_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

func (r *itemRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.UserItem{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
