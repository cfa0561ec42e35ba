package entity

import "time"

type RepostStatus string

const (
	RepostPending  RepostStatus = "pending"
	RepostApproved RepostStatus = "approved"
)

type Repost struct {
	ID         string
	ReposterID string
	Reposter   *Author
	PostID     string
	Status     RepostStatus
	CreatedAt  time.Time
}

// SavedRef is one row of a viewer's saved collection.
type SavedRef struct {
	PostID  string
	SavedAt time.Time
}
