// Package compose turns filtered post and repost rows into ordered,
// deduplicated, paginated feed items.
package compose

import (
	"time"

	"scroll-feed/services/feed/internal/entity"
)

type Origin byte

const (
	OriginPost   Origin = 'p'
	OriginRepost Origin = 'r'
)

// Key is the chronological sort key shared by every stream. Feeds are ordered
// newest first; ID breaks ties on identical timestamps.
type Key struct {
	At time.Time
	ID string
}

func NewKey(at time.Time, id string) Key {
	return Key{At: at.UTC().Truncate(time.Microsecond), ID: id}
}

func (k Key) Equal(o Key) bool {
	return k.At.Equal(o.At) && k.ID == o.ID
}

// Newer reports whether k sorts ahead of o.
func (k Key) Newer(o Key) bool {
	if !k.At.Equal(o.At) {
		return k.At.After(o.At)
	}
	return k.ID > o.ID
}

// Candidate is a post or a repost waiting to become a feed item. Both origins
// carry the same Key and Score so they can be ordered by one comparison.
type Candidate struct {
	Origin Origin
	Post   *entity.Post
	Repost *entity.Repost
	Key    Key
	Score  float64
}

func PostCandidate(post *entity.Post) Candidate {
	return Candidate{Origin: OriginPost, Post: post, Key: NewKey(post.CreatedAt, post.ID)}
}

// SavedCandidate orders a saved post by when it was saved.
func SavedCandidate(post *entity.Post, savedAt time.Time) Candidate {
	return Candidate{Origin: OriginPost, Post: post, Key: NewKey(savedAt, post.ID)}
}

func RepostCandidate(repost *entity.Repost, post *entity.Post) Candidate {
	return Candidate{Origin: OriginRepost, Post: post, Repost: repost, Key: NewKey(repost.CreatedAt, repost.ID)}
}

func (c Candidate) PostID() string {
	if c.Post != nil {
		return c.Post.ID
	}
	if c.Repost != nil {
		return c.Repost.PostID
	}
	return ""
}

// SelfRepost is a repost made by the post's own author.
func (c Candidate) SelfRepost() bool {
	return c.Origin == OriginRepost && c.Repost != nil && c.Post != nil && c.Repost.ReposterID == c.Post.AuthorID
}

func (c Candidate) Cursor() Cursor {
	return Cursor{Origin: c.Origin, Key: c.Key}
}

// Item renders the candidate. ok is false for reposts that cannot be
// projected.
func (c Candidate) Item() (entity.FeedItem, bool) {
	if c.Origin == OriginRepost {
		item, ok := Project(c.Repost, c.Post)
		item.Score = c.Score
		return item, ok
	}
	if c.Post == nil {
		return entity.FeedItem{}, false
	}
	return entity.FeedItem{Kind: entity.ItemPost, Post: c.Post, Score: c.Score}, true
}

// Project turns an approved repost of a published post into a feed item. The
// post content is passed through untouched; the reposter and time ride along
// as separate fields.
func Project(repost *entity.Repost, post *entity.Post) (entity.FeedItem, bool) {
	if repost == nil || post == nil || repost.PostID != post.ID {
		return entity.FeedItem{}, false
	}
	if repost.Status != entity.RepostApproved || post.Status != entity.StatusPublished {
		return entity.FeedItem{}, false
	}

	repostedAt := repost.CreatedAt
	return entity.FeedItem{
		Kind:           entity.ItemRepost,
		Post:           post,
		RepostID:       repost.ID,
		OriginalPostID: post.ID,
		Reposter:       repost.Reposter,
		RepostedAt:     &repostedAt,
	}, true
}
