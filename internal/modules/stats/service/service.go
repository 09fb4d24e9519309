package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	catalogRepo "anoa.com/jelajahpath/internal/modules/catalog/repository"
	rewardRepo "anoa.com/jelajahpath/internal/modules/reward/repository"
	statsDto "anoa.com/jelajahpath/internal/modules/stats/dto"
	statsRepo "anoa.com/jelajahpath/internal/modules/stats/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	LeaderboardLimit    = 10
	leaderboardCacheKey = "leaderboard:top"

	// Shown for reward points whose location has no label yet.
	defaultRewardDescription = "A hidden reward along the route"
)

type StatsService interface {
	GetUserStats(ctx context.Context, userID uuid.UUID) (*statsDto.StatsResponse, error)
	// GetLeaderboard accepts a nil currentUserID for anonymous callers; the
	// ranking itself always excludes anonymous accounts.
	GetLeaderboard(ctx context.Context, currentUserID *uuid.UUID) (*statsDto.LeaderboardResponse, error)
	GetRewards(ctx context.Context, userID uuid.UUID) (*statsDto.RewardsResponse, error)
}

type statsService struct {
	statsRepo   statsRepo.StatsRepository
	pathRepo    catalogRepo.PathRepository
	itemRepo    rewardRepo.ItemRepository
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewStatsService(repo statsRepo.StatsRepository, pathRepo catalogRepo.PathRepository, itemRepo rewardRepo.ItemRepository, redisClient *redis.Client, cacheTTL time.Duration) StatsService {
	return &statsService{
		statsRepo:   repo,
		pathRepo:    pathRepo,
		itemRepo:    itemRepo,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

func (s *statsService) GetUserStats(ctx context.Context, userID uuid.UUID) (*statsDto.StatsResponse, error) {
	totalPublished, err := s.pathRepo.CountPublished(ctx)
	if err != nil {
		return nil, err
	}

	completed, err := s.statsRepo.CountCompletedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	distanceMeters, err := s.statsRepo.SumCompletedDistance(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.itemRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	collectedItems := make([]statsDto.CollectedItemResponse, 0, len(items))
	for _, item := range items {
		collectedItems = append(collectedItems, statsDto.CollectedItemResponse{
			ID:            item.ID,
			PointID:       item.PointID,
			RewardLabel:   item.RewardLabel,
			RewardIconURL: item.RewardIconURL,
			CollectedAt:   item.CollectedAt,
		})
	}

	allRewards, err := s.buildRewardList(ctx, userID)
	if err != nil {
		return nil, err
	}

	distanceKm := distanceMeters / 1000

	return &statsDto.StatsResponse{
		CompletionPercentage: CompletionPercentage(int(completed), int(totalPublished)),
		CompletedPathsCount:  int(completed),
		TotalPublishedPaths:  int(totalPublished),
		TotalDistanceMeters:  distanceMeters,
		TotalDistanceKm:      distanceKm,
		CollectedItemsCount:  len(items),
		CollectedItems:       collectedItems,
		AllRewards:           allRewards,
		Score:                Score(int(completed), len(items), distanceKm),
	}, nil
}

func (s *statsService) GetLeaderboard(ctx context.Context, currentUserID *uuid.UUID) (*statsDto.LeaderboardResponse, error) {
	rows, err := s.topWalkers(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]statsDto.LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, statsDto.LeaderboardEntry{
			Rank:          i + 1,
			UserID:        row.UserID,
			Name:          row.Name,
			Points:        row.TotalStops,
			IsCurrentUser: currentUserID != nil && *currentUserID == row.UserID,
		})
	}

	return &statsDto.LeaderboardResponse{Leaderboard: entries}, nil
}

// topWalkers serves the ranking from Redis when possible. The cached rows
// carry no caller-specific data, so one entry serves every user.
func (s *statsService) topWalkers(ctx context.Context) ([]statsRepo.LeaderboardRow, error) {
	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, leaderboardCacheKey).Result()
		if err == nil {
			var rows []statsRepo.LeaderboardRow
			if err := json.Unmarshal([]byte(cached), &rows); err == nil {
				return rows, nil
			}
		} else if err != redis.Nil {
			log.Printf("leaderboard cache read failed: %v", err)
		}
	}

	rows, err := s.statsRepo.GetTopWalkers(ctx, LeaderboardLimit)
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil && s.cacheTTL > 0 {
		if payload, err := json.Marshal(rows); err == nil {
			if err := s.redisClient.SetEx(ctx, leaderboardCacheKey, payload, s.cacheTTL).Err(); err != nil {
				log.Printf("leaderboard cache write failed: %v", err)
			}
		}
	}

	return rows, nil
}

func (s *statsService) GetRewards(ctx context.Context, userID uuid.UUID) (*statsDto.RewardsResponse, error) {
	rewards, err := s.buildRewardList(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &statsDto.RewardsResponse{Rewards: rewards}, nil
}

func (s *statsService) buildRewardList(ctx context.Context, userID uuid.UUID) ([]statsDto.RewardResponse, error) {
	points, err := s.pathRepo.FindRewardPoints(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.itemRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	collected := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		collected[item.PointID] = true
	}

	rewards := make([]statsDto.RewardResponse, 0, len(points))
	for i := range points {
		p := &points[i]
		description := defaultRewardDescription
		if p.LocationLabel != nil && *p.LocationLabel != "" {
			description = "Found at " + *p.LocationLabel
		}

		rewards = append(rewards, statsDto.RewardResponse{
			ID:            p.ID,
			PointID:       p.ID,
			Title:         derefString(p.RewardLabel),
			Description:   description,
			RewardIconURL: p.RewardIconURL,
			Collected:     collected[p.ID],
		})
	}

	return rewards, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
