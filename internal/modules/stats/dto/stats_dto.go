package dto

import (
	"time"

	"github.com/google/uuid"
)

type CollectedItemResponse struct {
	ID            uuid.UUID `json:"id"`
	PointID       uuid.UUID `json:"point_id"`
	RewardLabel   string    `json:"reward_label"`
	RewardIconURL *string   `json:"reward_icon_url,omitempty"`
	CollectedAt   time.Time `json:"collected_at"`
}

type RewardResponse struct {
	ID            uuid.UUID `json:"id"`
	PointID       uuid.UUID `json:"point_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	RewardIconURL *string   `json:"reward_icon_url,omitempty"`
	Collected     bool      `json:"collected"`
}

type StatsResponse struct {
	CompletionPercentage int                     `json:"completion_percentage"`
	CompletedPathsCount  int                     `json:"completed_paths_count"`
	TotalPublishedPaths  int                     `json:"total_published_paths"`
	TotalDistanceMeters  float64                 `json:"total_distance_meters"`
	TotalDistanceKm      float64                 `json:"total_distance_km"`
	CollectedItemsCount  int                     `json:"collected_items_count"`
	CollectedItems       []CollectedItemResponse `json:"collected_items"`
	AllRewards           []RewardResponse        `json:"all_rewards"`
	Score                int                     `json:"score"`
}

type LeaderboardEntry struct {
	Rank          int       `json:"rank"`
	UserID        uuid.UUID `json:"user_id"`
	Name          string    `json:"name"`
	Points        int       `json:"points"`
	IsCurrentUser bool      `json:"is_current_user"`
}

type LeaderboardResponse struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

type RewardsResponse struct {
	Rewards []RewardResponse `json:"rewards"`
}
