package persistent

import (
	"scroll-feed/pkg/models"
	"scroll-feed/services/feed/internal/entity"
)

// postRow is a post joined with the account-level fields of its author.
type postRow struct {
	models.Post
	AuthorUsername     string
	AuthorDisplayName  string
	AuthorAvatarURL    string
	AuthorIsPrivate    bool
	AuthorAllowReposts bool
}

// repostRow is a repost joined with its reposter's public identity.
type repostRow struct {
	models.Repost
	ReposterUsername    string
	ReposterDisplayName string
	ReposterAvatarURL   string
	ReposterIsPrivate   bool
}

const postColumns = "posts.*, " +
	"users.username AS author_username, users.display_name AS author_display_name, " +
	"users.avatar_url AS author_avatar_url, users.is_private AS author_is_private, " +
	"users.allow_reposts AS author_allow_reposts"

const repostColumns = "reposts.*, " +
	"users.username AS reposter_username, users.display_name AS reposter_display_name, " +
	"users.avatar_url AS reposter_avatar_url, users.is_private AS reposter_is_private"

func ToPostEntity(r *postRow) *entity.Post {
	if r == nil {
		return nil
	}

	return &entity.Post{
		ID:       r.ID,
		AuthorID: r.AuthorID,
		Author: &entity.Author{
			ID:           r.AuthorID,
			Username:     r.AuthorUsername,
			DisplayName:  r.AuthorDisplayName,
			AvatarURL:    r.AuthorAvatarURL,
			IsPrivate:    r.AuthorIsPrivate,
			AllowReposts: r.AuthorAllowReposts,
		},
		Kind:        entity.ContentKind(r.Kind),
		Caption:     r.Caption,
		MediaKey:    r.MediaKey,
		Visibility:  entity.Visibility(r.Visibility),
		Status:      entity.PostStatus(r.Status),
		ScheduledAt: r.ScheduledAt,
		PublishedAt: r.PublishedAt,
		Provenance:  entity.Provenance(r.Provenance),
		Sponsored:   r.Sponsored,
		Sensitive:   r.Sensitive,
		Engagement: entity.Engagement{
			Likes:   r.Likes,
			Saves:   r.Saves,
			Shares:  r.Shares,
			Reposts: r.Reposts,
			Views:   r.Views,
		},
		CreatedAt: r.CreatedAt,
	}
}

func ToPostEntities(rows []postRow) []*entity.Post {
	posts := make([]*entity.Post, len(rows))
	for i := range rows {
		posts[i] = ToPostEntity(&rows[i])
	}
	return posts
}

func ToRepostEntity(r *repostRow) *entity.Repost {
	if r == nil {
		return nil
	}

	return &entity.Repost{
		ID:         r.ID,
		ReposterID: r.ReposterID,
		Reposter: &entity.Author{
			ID:          r.ReposterID,
			Username:    r.ReposterUsername,
			DisplayName: r.ReposterDisplayName,
			AvatarURL:   r.ReposterAvatarURL,
			IsPrivate:   r.ReposterIsPrivate,
		},
		PostID:    r.PostID,
		Status:    entity.RepostStatus(r.Status),
		CreatedAt: r.CreatedAt,
	}
}

func ToRepostEntities(rows []repostRow) []*entity.Repost {
	reposts := make([]*entity.Repost, len(rows))
	for i := range rows {
		reposts[i] = ToRepostEntity(&rows[i])
	}
	return reposts
}

func ToViewerEntity(u *models.User) *entity.Viewer {
	if u == nil {
		return nil
	}
	return &entity.Viewer{ID: u.ID, Role: entity.Role(u.Role), BirthYear: u.BirthYear}
}

func ToPreferencesEntity(p *models.ContentPreference) entity.ContentPreferences {
	if p == nil {
		return entity.DefaultPreferences()
	}
	return entity.ContentPreferences{
		HideAIGenerated:  p.HideAIGenerated,
		HideAIAssisted:   p.HideAIAssisted,
		HideSponsored:    p.HideSponsored,
		HideSensitive:    p.HideSensitive,
		ApplyToDiscovery: p.ApplyToDiscovery,
	}
}
