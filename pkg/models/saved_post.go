package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SavedPost struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_saved_user_post,priority:1" json:"user_id"`
	PostID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_saved_user_post,priority:2" json:"post_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (s *SavedPost) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// ContentPreference holds the opt-in exclusions a viewer applies to discovery.
type ContentPreference struct {
	UserID           string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	HideAIGenerated  bool      `json:"hide_ai_generated"`
	HideAIAssisted   bool      `json:"hide_ai_assisted"`
	HideSponsored    bool      `json:"hide_sponsored"`
	HideSensitive    bool      `json:"hide_sensitive"`
	ApplyToDiscovery bool      `json:"apply_to_discovery"`
	UpdatedAt        time.Time `json:"updated_at"`
}
