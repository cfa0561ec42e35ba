package entity

import "time"

type Mode string

const (
	ModeDiscovery Mode = "discovery"
	ModeFollowing Mode = "following"
	ModeSaved     Mode = "saved"
	ModeProfile   Mode = "profile"
)

type ItemKind string

const (
	ItemPost   ItemKind = "post"
	ItemRepost ItemKind = "repost"
)

const (
	EmptyReasonNoFollows = "no-follows"
	EmptyReasonNoSaved   = "no-saved"
)

// FeedItem is one unit of a feed page. Repost items keep the original post
// content untouched and carry the reposter's provenance next to it.
type FeedItem struct {
	Kind           ItemKind   `json:"kind"`
	Post           *Post      `json:"post"`
	RepostID       string     `json:"repostId,omitempty"`
	OriginalPostID string     `json:"originalPostId,omitempty"`
	Reposter       *Author    `json:"reposter,omitempty"`
	RepostedAt     *time.Time `json:"repostedAt,omitempty"`
	ViewerRepostID string     `json:"viewerRepostId,omitempty"`
	CanRepost      bool       `json:"canRepost"`
	Score          float64    `json:"-"`
}

// PostID is the underlying post the item resolves to.
func (i FeedItem) PostID() string {
	if i.Post == nil {
		return i.OriginalPostID
	}
	return i.Post.ID
}

type FeedPage struct {
	Items       []FeedItem `json:"items"`
	NextCursor  string     `json:"nextCursor,omitempty"`
	EmptyReason string     `json:"emptyReason,omitempty"`
}
