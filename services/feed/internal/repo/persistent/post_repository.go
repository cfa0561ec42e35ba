package persistent

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"scroll-feed/pkg/models"
	"scroll-feed/services/feed/internal/entity"
)

type PostRepository interface {
	// ListPublic returns published public posts, skipping excludeAuthorID.
	ListPublic(ctx context.Context, excludeAuthorID string, q PageQuery) ([]*entity.Post, error)
	// ListByAuthors returns published posts of any visibility by authorIDs.
	ListByAuthors(ctx context.Context, authorIDs []string, q PageQuery) ([]*entity.Post, error)
	// ListByIDs returns the published posts among ids, in no particular order.
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Post, error)
	// GetByID returns nil without error when the post does not exist.
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	// PublishOverdue promotes scheduled posts due at now and returns their ids.
	PublishOverdue(ctx context.Context, now time.Time) ([]string, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) base(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Select(postColumns).
		Joins("JOIN users ON users.id = posts.author_id AND users.deleted_at IS NULL").
		Where("posts.status = ?", models.StatusPublished)
}

func (r *postRepository) ListPublic(ctx context.Context, excludeAuthorID string, q PageQuery) ([]*entity.Post, error) {
	query := r.base(ctx).Where("posts.visibility = ?", models.VisibilityPublic)
	if excludeAuthorID != "" {
		query = query.Where("posts.author_id <> ?", excludeAuthorID)
	}
	query = q.keyset(q.kind(query), "posts.created_at", "posts.id")

	var rows []postRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return ToPostEntities(rows), nil
}

func (r *postRepository) ListByAuthors(ctx context.Context, authorIDs []string, q PageQuery) ([]*entity.Post, error) {
	if len(authorIDs) == 0 {
		return []*entity.Post{}, nil
	}

	query := r.base(ctx).Where("posts.author_id IN ?", authorIDs)
	query = q.keyset(q.kind(query), "posts.created_at", "posts.id")

	var rows []postRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return ToPostEntities(rows), nil
}

func (r *postRepository) ListByIDs(ctx context.Context, ids []string) ([]*entity.Post, error) {
	if len(ids) == 0 {
		return []*entity.Post{}, nil
	}

	var rows []postRow
	if err := r.base(ctx).Where("posts.id IN ?", ids).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return ToPostEntities(rows), nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	var row postRow
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Select(postColumns).
		Joins("JOIN users ON users.id = posts.author_id AND users.deleted_at IS NULL").
		Where("posts.id = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ToPostEntity(&row), nil
}

// PublishOverdue is a single conditional UPDATE, so concurrent callers
// converge on the same rows and a repeated call with the same now is a no-op.
func (r *postRepository) PublishOverdue(ctx context.Context, now time.Time) ([]string, error) {
	var published []models.Post
	err := r.db.WithContext(ctx).
		Model(&published).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}}}).
		Where("status = ? AND scheduled_at IS NOT NULL AND scheduled_at <= ?", models.StatusScheduled, now).
		Updates(map[string]interface{}{
			"status":       models.StatusPublished,
			"published_at": now,
		}).Error
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(published))
	for i := range published {
		ids[i] = published[i].ID
	}
	return ids, nil
}
