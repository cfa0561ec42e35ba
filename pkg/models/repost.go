package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RepostStatus string

const (
	RepostPending  RepostStatus = "pending"
	RepostApproved RepostStatus = "approved"
)

// Repost is a provenance pointer to a post; it never copies post content.
type Repost struct {
	ID         string         `gorm:"type:uuid;primary_key" json:"id"`
	ReposterID string         `gorm:"type:uuid;not null;index:idx_reposts_reposter_created,priority:1" json:"reposter_id"`
	PostID     string         `gorm:"type:uuid;not null;index" json:"post_id"`
	Status     RepostStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt  time.Time      `gorm:"index:idx_reposts_reposter_created,priority:2" json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (r *Repost) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
