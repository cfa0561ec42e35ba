package ranking

import "scroll-feed/services/feed/internal/entity"

// RepostPolicy decides whether a viewer may repost a post right now.
type RepostPolicy struct {
	AllowChainReposts bool
}

// CanRepost requires a signed-in viewer who is not the author, a public post
// and an author who is not private and still allows reposts. viaRepost marks
// a post reached through someone else's repost; those also need chained
// reposts enabled.
func (p RepostPolicy) CanRepost(viewer *entity.Viewer, post *entity.Post, viaRepost bool) bool {
	if viewer == nil || post == nil || post.Author == nil {
		return false
	}
	if viaRepost && !p.AllowChainReposts {
		return false
	}
	if post.Status != entity.StatusPublished || post.Visibility != entity.VisibilityPublic {
		return false
	}
	if post.Author.IsPrivate || !post.Author.AllowReposts {
		return false
	}
	return viewer.ID != post.AuthorID
}
