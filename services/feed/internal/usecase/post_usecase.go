package usecase

import (
	"context"
	"errors"
	"fmt"

	"scroll-feed/pkg/logger"
	"scroll-feed/services/feed/internal/entity"
	"scroll-feed/services/feed/internal/ranking"
)

// GetPost looks up a single post for the viewer. Posts the viewer may not see
// are reported as ErrNotFound, never as forbidden.
func (uc *feedUseCase) GetPost(ctx context.Context, viewerID, postID string) (*entity.FeedItem, error) {
	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()

	item, err := uc.getPost(ctx, viewerID, postID)
	if err != nil {
		return nil, uc.failed("Post lookup", postID, err)
	}
	return item, nil
}

func (uc *feedUseCase) getPost(ctx context.Context, viewerID, postID string) (*entity.FeedItem, error) {
	vc, err := uc.loadViewerContext(ctx, viewerID, false)
	if err != nil {
		return nil, err
	}

	post, err := uc.visiblePost(ctx, vc, postID)
	if err != nil {
		return nil, err
	}

	items := []entity.FeedItem{{
		Kind:      entity.ItemPost,
		Post:      uc.withMediaURL(post),
		CanRepost: uc.policy.CanRepost(vc.viewer, post, false),
	}}
	if err := uc.attachViewerReposts(ctx, vc, items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

// CanRepost applies the repost rules for the viewer. viaRepost is set when the
// viewer reached the post through someone else's repost.
func (uc *feedUseCase) CanRepost(ctx context.Context, viewerID, postID string, viaRepost bool) (bool, error) {
	if viewerID == "" {
		return false, ErrUnauthenticated
	}

	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()

	vc, err := uc.loadViewerContext(ctx, viewerID, false)
	if err != nil {
		return false, uc.failed("Repost eligibility", postID, err)
	}
	if vc.viewer == nil {
		return false, ErrUnauthenticated
	}

	post, err := uc.visiblePost(ctx, vc, postID)
	if err != nil {
		return false, uc.failed("Repost eligibility", postID, err)
	}
	return uc.policy.CanRepost(vc.viewer, post, viaRepost), nil
}

// failed maps deadline errors to ErrTimeout and logs anything unexpected.
func (uc *feedUseCase) failed(op, postID string, err error) error {
	err = timeoutError(err)
	if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrUnauthenticated) {
		uc.logger.With(logger.Fields{"post": postID}).Error("%s failed: %v", op, err)
	}
	return err
}

func (uc *feedUseCase) visiblePost(ctx context.Context, vc *viewerContext, postID string) (*entity.Post, error) {
	post, err := uc.repos.Posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	privileged := vc.viewer != nil && (vc.viewer.IsAdmin() || vc.viewer.ID == post.AuthorID)
	if post.Status != entity.StatusPublished && !privileged {
		return nil, ErrNotFound
	}

	if err := uc.loadAudiences(ctx, vc, []*entity.Post{post}); err != nil {
		return nil, err
	}
	if !ranking.Admit(vc.viewer, vc.rel, post, vc.audiences[post.ID]) || uc.gate.Withhold(vc.viewer, post, vc.now) {
		return nil, ErrNotFound
	}
	return post, nil
}

func (uc *feedUseCase) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if uc.cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, uc.cfg.Timeout)
}

func timeoutError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}
