package model

import (
	"time"

	"github.com/google/uuid"
)

type ProgressStatus string

const (
	StatusNotStarted ProgressStatus = "NOT_STARTED"
	StatusInProgress ProgressStatus = "IN_PROGRESS"
	StatusCompleted  ProgressStatus = "COMPLETED"
)

// UserPathProgress tracks one user's walk of one path. The row is created on
// the first visit; NOT_STARTED is implicit (no row). Status only moves forward
// and COMPLETED is terminal.
type UserPathProgress struct {
	UserID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"user_id"`
	PathID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"path_id"`
	Path              Path           `gorm:"foreignKey:PathID" json:"-"`
	Status            ProgressStatus `gorm:"size:20;not null;default:IN_PROGRESS" json:"status"`
	VisitedStopsCount int            `gorm:"not null;default:0" json:"visited_stops_count"`
	StartedAt         *time.Time     `json:"started_at,omitempty"`
	CompletedAt       *time.Time     `json:"completed_at,omitempty"`
}

func (UserPathProgress) TableName() string {
	return "user_path_progress"
}

// PathVisit is the visited-set backing row, one per (user, point). The unique
// index makes the set-add idempotent at the database level: a revisit inserts
// nothing and the stop count stays untouched.
type PathVisit struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_user_point,unique,priority:1" json:"user_id"`
	PointID   uuid.UUID `gorm:"type:uuid;not null;index:idx_user_point,unique,priority:2" json:"point_id"`
	PathID    uuid.UUID `gorm:"type:uuid;not null;index" json:"path_id"`
	VisitedAt time.Time `gorm:"autoCreateTime" json:"visited_at"`
}
