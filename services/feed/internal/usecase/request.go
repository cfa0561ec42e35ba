package usecase

import (
	"fmt"

	"scroll-feed/pkg/config"
	"scroll-feed/services/feed/internal/compose"
	"scroll-feed/services/feed/internal/entity"
)

// FeedRequest is one feed read. ViewerID is empty for anonymous callers.
type FeedRequest struct {
	ViewerID       string
	Mode           entity.Mode
	TargetAuthorID string
	Cursor         string
	Limit          int
	ContentKind    string
}

// feedQuery is a validated FeedRequest.
type feedQuery struct {
	viewerID string
	mode     entity.Mode
	target   string
	cursor   *compose.Cursor
	limit    int
	kind     entity.ContentKind
}

// validate rejects malformed input before any storage is touched. A target
// author always selects profile mode, whatever mode says.
func (r FeedRequest) validate(cfg config.FeedConfig) (feedQuery, error) {
	q := feedQuery{viewerID: r.ViewerID, target: r.TargetAuthorID, limit: r.Limit}

	if q.limit == 0 {
		q.limit = cfg.DefaultLimit
	}
	if q.limit < 1 || q.limit > cfg.MaxLimit {
		return feedQuery{}, fmt.Errorf("%w: must be between 1 and %d", ErrInvalidLimit, cfg.MaxLimit)
	}

	if r.ContentKind != "" {
		q.kind = entity.ContentKind(r.ContentKind)
		if !q.kind.Valid() {
			return feedQuery{}, fmt.Errorf("%w: %q", ErrInvalidContentKind, r.ContentKind)
		}
	}

	if r.Cursor != "" {
		c, err := compose.DecodeCursor(r.Cursor)
		if err != nil {
			return feedQuery{}, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
		}
		q.cursor = &c
	}

	switch {
	case r.TargetAuthorID != "":
		q.mode = entity.ModeProfile
	case r.Mode == "" || r.Mode == entity.ModeDiscovery:
		q.mode = entity.ModeDiscovery
	case r.Mode == entity.ModeFollowing || r.Mode == entity.ModeSaved:
		q.mode = r.Mode
	default:
		return feedQuery{}, fmt.Errorf("%w: %q", ErrInvalidMode, r.Mode)
	}

	if (q.mode == entity.ModeFollowing || q.mode == entity.ModeSaved) && q.viewerID == "" {
		return feedQuery{}, fmt.Errorf("%s feed: %w", q.mode, ErrUnauthenticated)
	}
	return q, nil
}
