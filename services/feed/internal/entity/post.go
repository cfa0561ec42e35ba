package entity

import "time"

type ContentKind string

const (
	KindText      ContentKind = "text"
	KindImage     ContentKind = "image"
	KindVideo     ContentKind = "video"
	KindAudio     ContentKind = "audio"
	KindPanoramic ContentKind = "panoramic"
)

func (k ContentKind) Valid() bool {
	switch k {
	case KindText, KindImage, KindVideo, KindAudio, KindPanoramic:
		return true
	}
	return false
}

type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityFollowers Visibility = "followers-only"
	VisibilityAudience  Visibility = "private-with-audience"
)

type PostStatus string

const (
	StatusScheduled PostStatus = "scheduled"
	StatusPublished PostStatus = "published"
)

type Provenance string

const (
	ProvenanceOriginal    Provenance = "original"
	ProvenanceAIAssisted  Provenance = "ai-assisted"
	ProvenanceAIGenerated Provenance = "ai-generated"
	ProvenanceComposite   Provenance = "composite"
)

type Engagement struct {
	Likes   int64 `json:"likes"`
	Saves   int64 `json:"saves"`
	Shares  int64 `json:"shares"`
	Reposts int64 `json:"reposts"`
	Views   int64 `json:"views"`
}

type Post struct {
	ID          string      `json:"id"`
	AuthorID    string      `json:"authorId"`
	Author      *Author     `json:"author,omitempty"`
	Kind        ContentKind `json:"kind"`
	Caption     string      `json:"caption"`
	MediaKey    string      `json:"-"`
	MediaURL    string      `json:"mediaUrl,omitempty"`
	Visibility  Visibility  `json:"visibility"`
	Status      PostStatus  `json:"status"`
	ScheduledAt *time.Time  `json:"scheduledAt,omitempty"`
	PublishedAt *time.Time  `json:"publishedAt,omitempty"`
	Provenance  Provenance  `json:"provenance"`
	Sponsored   bool        `json:"sponsored"`
	Sensitive   bool        `json:"sensitive"`
	Engagement  Engagement  `json:"engagement"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Author carries the public identity of an account plus the account-level
// switches the engine consults.
type Author struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	DisplayName  string `json:"displayName,omitempty"`
	AvatarURL    string `json:"avatarUrl,omitempty"`
	IsPrivate    bool   `json:"-"`
	AllowReposts bool   `json:"-"`
}

// Audience is the allow-list attached to a private-with-audience post.
type Audience struct {
	PostID   string
	UserIDs  map[string]struct{}
	GroupIDs map[string]struct{}
}

func NewAudience(postID string, userIDs, groupIDs []string) *Audience {
	a := &Audience{
		PostID:   postID,
		UserIDs:  make(map[string]struct{}, len(userIDs)),
		GroupIDs: make(map[string]struct{}, len(groupIDs)),
	}
	for _, id := range userIDs {
		a.UserIDs[id] = struct{}{}
	}
	for _, id := range groupIDs {
		a.GroupIDs[id] = struct{}{}
	}
	return a
}
