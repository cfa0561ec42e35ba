package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostStatus string

const (
	StatusScheduled PostStatus = "scheduled"
	StatusPublished PostStatus = "published"
)

type PostVisibility string

const (
	VisibilityPublic    PostVisibility = "public"
	VisibilityFollowers PostVisibility = "followers-only"
	VisibilityAudience  PostVisibility = "private-with-audience"
)

type Post struct {
	ID          string         `gorm:"type:uuid;primary_key" json:"id"`
	AuthorID    string         `gorm:"type:uuid;not null;index:idx_posts_author_created,priority:1" json:"author_id"`
	Kind        string         `gorm:"type:varchar(20);not null" json:"kind"`
	Caption     string         `gorm:"type:text" json:"caption"`
	MediaKey    string         `gorm:"type:varchar(500)" json:"media_key"`
	Visibility  PostVisibility `gorm:"type:varchar(30);not null;default:'public';index" json:"visibility"`
	Status      PostStatus     `gorm:"type:varchar(20);not null;default:'published';index" json:"status"`
	ScheduledAt *time.Time     `gorm:"index" json:"scheduled_at,omitempty"`
	PublishedAt *time.Time     `json:"published_at,omitempty"`
	Provenance  string         `gorm:"type:varchar(20);not null;default:'original'" json:"provenance"`
	Sponsored   bool           `gorm:"default:false" json:"sponsored"`
	Sensitive   bool           `gorm:"default:false" json:"sensitive"`
	Likes       int64          `gorm:"default:0" json:"likes"`
	Saves       int64          `gorm:"default:0" json:"saves"`
	Shares      int64          `gorm:"default:0" json:"shares"`
	Reposts     int64          `gorm:"default:0" json:"reposts"`
	Views       int64          `gorm:"default:0" json:"views"`
	CreatedAt   time.Time      `gorm:"index:idx_posts_author_created,priority:2" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// PostAudienceUser and PostAudienceGroup form the allow-list of a
// private-with-audience post. Edits replace the whole set.
type PostAudienceUser struct {
	PostID string `gorm:"type:uuid;primaryKey" json:"post_id"`
	UserID string `gorm:"type:uuid;primaryKey" json:"user_id"`
}

type PostAudienceGroup struct {
	PostID  string `gorm:"type:uuid;primaryKey" json:"post_id"`
	GroupID string `gorm:"type:uuid;primaryKey" json:"group_id"`
}

type GroupMember struct {
	GroupID   string    `gorm:"type:uuid;primaryKey" json:"group_id"`
	UserID    string    `gorm:"type:uuid;primaryKey;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
