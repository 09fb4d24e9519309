package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Path struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string    `gorm:"size:150;not null" json:"name"`
	Description      *string   `gorm:"type:text" json:"description,omitempty"`
	DistanceMeters   float64   `gorm:"not null;default:0" json:"distance_meters"`
	TotalTimeMinutes int       `gorm:"not null;default:0" json:"total_time_minutes"`
	IsPublished      bool      `gorm:"default:false;index" json:"is_published"`
	Points           []Point   `gorm:"constraint:OnDelete:CASCADE" json:"points,omitempty"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (p *Path) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Point is a single geofenced stop on a path. The catalog owns these rows;
// the progress/reward side only ever reads them.
type Point struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PathID        uuid.UUID `gorm:"type:uuid;not null;index" json:"path_id"`
	Latitude      float64   `gorm:"not null" json:"latitude"`
	Longitude     float64   `gorm:"not null" json:"longitude"`
	RadiusMeters  float64   `gorm:"not null;default:50" json:"radius_meters"`
	Order         int       `gorm:"column:sort_order;not null;default:0" json:"order"`
	RewardLabel   *string   `gorm:"size:100" json:"reward_label,omitempty"`
	RewardIconURL *string   `gorm:"type:text" json:"reward_icon_url,omitempty"`
	LocationLabel *string   `gorm:"size:150" json:"location_label,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (p *Point) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// HasReward reports whether visiting this point can grant an item.
func (p *Point) HasReward() bool {
	return p.RewardLabel != nil && *p.RewardLabel != ""
}
