package usecase

import (
	"context"

	"scroll-feed/services/feed/internal/compose"
	"scroll-feed/services/feed/internal/entity"
)

// render turns surviving candidates into feed items, marking each with the
// viewer's repost eligibility and a signed media URL.
func (uc *feedUseCase) render(vc *viewerContext, cands []compose.Candidate) []entity.FeedItem {
	items := make([]entity.FeedItem, 0, len(cands))
	for _, c := range cands {
		item, ok := c.Item()
		if !ok {
			continue
		}
		item.CanRepost = uc.policy.CanRepost(vc.viewer, item.Post, item.Kind == entity.ItemRepost)
		item.Post = uc.withMediaURL(item.Post)
		items = append(items, item)
	}
	return items
}

// withMediaURL returns a copy of post carrying a presigned media URL. Signing
// failures leave the URL empty rather than failing the page.
func (uc *feedUseCase) withMediaURL(post *entity.Post) *entity.Post {
	if uc.signer == nil || post == nil || post.MediaKey == "" {
		return post
	}

	url, err := uc.signer.PresignMedia(post.MediaKey, uc.mediaTTL)
	if err != nil {
		uc.logger.Warn("Failed to presign media for post %s: %v", post.ID, err)
		return post
	}

	signed := *post
	signed.MediaURL = url
	return &signed
}

func (uc *feedUseCase) attachViewerReposts(ctx context.Context, vc *viewerContext, items []entity.FeedItem) error {
	if vc.viewer == nil || len(items) == 0 {
		return nil
	}

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.PostID()
	}

	mine, err := uc.repos.Reposts.ListViewerReposts(ctx, vc.viewer.ID, ids)
	if err != nil {
		return err
	}
	for i := range items {
		items[i].ViewerRepostID = mine[items[i].PostID()]
	}
	return nil
}
