package dto

import (
	"time"

	"github.com/google/uuid"
)

type RecordVisitRequest struct {
	PathID    string  `json:"path_id" binding:"required,uuid"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type VisitedPoint struct {
	PointID        uuid.UUID `json:"point_id"`
	DistanceMeters float64   `json:"distance_meters"`
	NewVisit       bool      `json:"new_visit"`
	RewardGranted  bool      `json:"reward_granted"`
	RewardLabel    *string   `json:"reward_label,omitempty"`
}

type ProgressResponse struct {
	PathID            uuid.UUID  `json:"path_id"`
	Status            string     `json:"status"`
	VisitedStopsCount int        `json:"visited_stops_count"`
	TotalStops        int        `json:"total_stops"`
	StartedAt         *time.Time `json:"started_at,omitempty"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

type VisitResponse struct {
	VisitedPoints []VisitedPoint   `json:"visited_points"`
	Progress      ProgressResponse `json:"progress"`
}

type GetProgressRequest struct {
	PathID string `uri:"path_id" binding:"required,uuid"`
}
