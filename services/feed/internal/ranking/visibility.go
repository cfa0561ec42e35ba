// Package ranking holds the per-candidate rules of feed composition:
// admission, content preferences, scoring and repost eligibility.
package ranking

import (
	"time"

	"scroll-feed/services/feed/internal/entity"
)

// Relations is the viewer's side of the social graph, loaded once per request.
type Relations struct {
	Following map[string]struct{}
	Groups    map[string]struct{}
}

func NewRelations(following, groups []string) Relations {
	r := Relations{
		Following: make(map[string]struct{}, len(following)),
		Groups:    make(map[string]struct{}, len(groups)),
	}
	for _, id := range following {
		r.Following[id] = struct{}{}
	}
	for _, id := range groups {
		r.Groups[id] = struct{}{}
	}
	return r
}

func (r Relations) Follows(accountID string) bool {
	_, ok := r.Following[accountID]
	return ok
}

func (r Relations) InAnyGroup(groups map[string]struct{}) bool {
	small, large := groups, r.Groups
	if len(small) > len(large) {
		small, large = large, small
	}
	for id := range small {
		if _, ok := large[id]; ok {
			return true
		}
	}
	return false
}

// Admit decides whether viewer may see post. A nil viewer is anonymous and
// only ever sees public posts. audience is only consulted for
// private-with-audience posts; a missing audience admits nobody but the author.
func Admit(viewer *entity.Viewer, rel Relations, post *entity.Post, audience *entity.Audience) bool {
	if post == nil {
		return false
	}
	if viewer != nil && (viewer.IsAdmin() || viewer.ID == post.AuthorID) {
		return true
	}

	switch post.Visibility {
	case entity.VisibilityPublic:
		return true
	case entity.VisibilityFollowers:
		return viewer != nil && rel.Follows(post.AuthorID)
	case entity.VisibilityAudience:
		if viewer == nil || audience == nil {
			return false
		}
		if _, ok := audience.UserIDs[viewer.ID]; ok {
			return true
		}
		return rel.InAnyGroup(audience.GroupIDs)
	}
	return false
}

// AdmitRepost applies the repost rules on top of Admit: the repost must be
// approved, the post published and visible to the viewer, and a private
// reposter is only seen by their followers. A followers-only post is judged
// through the reposter: following the reposter is enough. Audience posts
// still need the viewer in the audience. Whether the author still allows
// reposts does not matter here; revocation only blocks new reposts.
func AdmitRepost(viewer *entity.Viewer, rel Relations, repost *entity.Repost, post *entity.Post, audience *entity.Audience) bool {
	if repost == nil || post == nil {
		return false
	}
	if repost.Status != entity.RepostApproved || post.Status != entity.StatusPublished {
		return false
	}
	if repost.Reposter != nil && repost.Reposter.IsPrivate {
		sameOrAdmin := viewer != nil && (viewer.IsAdmin() || viewer.ID == repost.ReposterID)
		if !sameOrAdmin && !(viewer != nil && rel.Follows(repost.ReposterID)) {
			return false
		}
	}
	if post.Visibility == entity.VisibilityFollowers && viewer != nil &&
		(viewer.ID == repost.ReposterID || rel.Follows(repost.ReposterID)) {
		return true
	}
	return Admit(viewer, rel, post, audience)
}

// AgeGate withholds sensitive posts from viewers known to be under MinimumAge.
// Viewers without a birth year are unrestricted.
type AgeGate struct {
	MinimumAge int
}

func (g AgeGate) Withhold(viewer *entity.Viewer, post *entity.Post, now time.Time) bool {
	if post == nil || !post.Sensitive || viewer == nil || viewer.ID == post.AuthorID {
		return false
	}
	age, known := viewer.AgeAt(now)
	return known && age < g.MinimumAge
}
