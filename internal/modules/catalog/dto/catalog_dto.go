package dto

import "github.com/google/uuid"

type PathResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Description      *string   `json:"description"`
	DistanceMeters   float64   `json:"distance_meters"`
	TotalTimeMinutes int       `json:"total_time_minutes"`
	PointCount       int       `json:"point_count"`
}

type PointResponse struct {
	ID            uuid.UUID `json:"id"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	RadiusMeters  float64   `json:"radius_meters"`
	Order         int       `json:"order"`
	HasReward     bool      `json:"has_reward"`
	LocationLabel *string   `json:"location_label,omitempty"`
}

type PathDetailResponse struct {
	PathResponse
	Points []PointResponse `json:"points"`
}

type GetPathRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}
