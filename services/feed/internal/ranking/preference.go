package ranking

import "scroll-feed/services/feed/internal/entity"

// Exclude reports whether the viewer's content preferences hide post. It is
// advisory: callers apply it in discovery mode only, after visibility.
func Exclude(post *entity.Post, prefs entity.ContentPreferences) bool {
	if post == nil || !prefs.ApplyToDiscovery {
		return false
	}
	if prefs.ExcludedProvenance()[post.Provenance] {
		return true
	}
	if post.Sponsored && prefs.HideSponsored {
		return true
	}
	return post.Sensitive && prefs.HideSensitive
}
