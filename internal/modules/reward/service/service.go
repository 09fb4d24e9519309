package service

import (
	"context"

	"anoa.com/jelajahpath/internal/model"
	catalogRepo "anoa.com/jelajahpath/internal/modules/catalog/repository"
	rewardRepo "anoa.com/jelajahpath/internal/modules/reward/repository"
	"github.com/google/uuid"
)

// CollectResult reports one collect attempt. Granted is true only for the call
// that actually created the item; repeat visits get the existing item back.
type CollectResult struct {
	Granted bool
	Item    *model.UserItem
}

type RewardService interface {
	Collect(ctx context.Context, userID, pointID uuid.UUID) (*CollectResult, error)
}

type rewardService struct {
	itemRepo rewardRepo.ItemRepository
	pathRepo catalogRepo.PathRepository
}

func NewRewardService(itemRepo rewardRepo.ItemRepository, pathRepo catalogRepo.PathRepository) RewardService {
	return &rewardService{
		itemRepo: itemRepo,
		pathRepo: pathRepo,
	}
}

func (s *rewardService) Collect(ctx context.Context, userID, pointID uuid.UUID) (*CollectResult, error) {
	point, err := s.pathRepo.FindPointByID(ctx, pointID)
	if err != nil {
		return nil, err
	}

	// Points without a reward are a silent no-op, not an error.
	if !point.HasReward() {
		return &CollectResult{Granted: false}, nil
	}

	item := &model.UserItem{
		UserID:        userID,
		PointID:       point.ID,
		RewardLabel:   *point.RewardLabel,
		RewardIconURL: point.RewardIconURL,
	}

	granted, err := s.itemRepo.InsertIfAbsent(ctx, item)
	if err != nil {
		return nil, err
	}
	if !granted {
		existing, err := s.itemRepo.FindByUserAndPoint(ctx, userID, pointID)
		if err != nil {
			return nil, err
		}
		item = existing
	}

	return &CollectResult{Granted: granted, Item: item}, nil
}
