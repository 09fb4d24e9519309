package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserItem is one reward grant. The unique (user_id, point_id) index is what
// enforces at-most-once: concurrent duplicate collects race on the insert and
// exactly one row survives.
type UserItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index:idx_user_item,unique,priority:1" json:"user_id"`
	PointID       uuid.UUID `gorm:"type:uuid;not null;index:idx_user_item,unique,priority:2" json:"point_id"`
	RewardLabel   string    `gorm:"size:100;not null" json:"reward_label"`
	RewardIconURL *string   `gorm:"type:text" json:"reward_icon_url,omitempty"`
	CollectedAt   time.Time `gorm:"autoCreateTime" json:"collected_at"`
}

func (i *UserItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
