package persistent

import (
	"context"

	"gorm.io/gorm"

	"scroll-feed/pkg/models"
	"scroll-feed/services/feed/internal/entity"
)

type RepostRepository interface {
	// ListApprovedByReposters returns approved reposts by reposterIDs whose
	// underlying post is still published, newest first.
	ListApprovedByReposters(ctx context.Context, reposterIDs []string, q PageQuery) ([]*entity.Repost, error)
	// ListApprovedForPosts returns every approved repost of postIDs made by
	// reposterIDs, regardless of age.
	ListApprovedForPosts(ctx context.Context, postIDs, reposterIDs []string) ([]*entity.Repost, error)
	// ListViewerReposts maps post id to the viewer's own repost id.
	ListViewerReposts(ctx context.Context, viewerID string, postIDs []string) (map[string]string, error)
}

type repostRepository struct {
	db *gorm.DB
}

func NewRepostRepository(db *gorm.DB) RepostRepository {
	return &repostRepository{db: db}
}

func (r *repostRepository) approved(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Repost{}).
		Select(repostColumns).
		Joins("JOIN users ON users.id = reposts.reposter_id AND users.deleted_at IS NULL").
		Joins("JOIN posts ON posts.id = reposts.post_id AND posts.deleted_at IS NULL AND posts.status = ?", models.StatusPublished).
		Where("reposts.status = ?", models.RepostApproved)
}

func (r *repostRepository) ListApprovedByReposters(ctx context.Context, reposterIDs []string, q PageQuery) ([]*entity.Repost, error) {
	if len(reposterIDs) == 0 {
		return []*entity.Repost{}, nil
	}

	query := r.approved(ctx).Where("reposts.reposter_id IN ?", reposterIDs)
	query = q.keyset(q.kind(query), "reposts.created_at", "reposts.id")

	var rows []repostRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return ToRepostEntities(rows), nil
}

func (r *repostRepository) ListApprovedForPosts(ctx context.Context, postIDs, reposterIDs []string) ([]*entity.Repost, error) {
	if len(postIDs) == 0 || len(reposterIDs) == 0 {
		return []*entity.Repost{}, nil
	}

	var rows []repostRow
	err := r.approved(ctx).
		Where("reposts.post_id IN ? AND reposts.reposter_id IN ?", postIDs, reposterIDs).
		Order("reposts.created_at DESC").Order("reposts.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return ToRepostEntities(rows), nil
}

func (r *repostRepository) ListViewerReposts(ctx context.Context, viewerID string, postIDs []string) (map[string]string, error) {
	result := make(map[string]string)
	if viewerID == "" || len(postIDs) == 0 {
		return result, nil
	}

	var rows []models.Repost
	err := r.db.WithContext(ctx).
		Select("id", "post_id").
		Where("reposter_id = ? AND post_id IN ?", viewerID, postIDs).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.PostID] = row.ID
	}
	return result, nil
}
