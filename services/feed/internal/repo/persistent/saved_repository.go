package persistent

import (
	"context"

	"gorm.io/gorm"

	"scroll-feed/pkg/models"
	"scroll-feed/services/feed/internal/entity"
)

type SavedRepository interface {
	// ListSaved pages userID's saved posts by saved time, newest first. The
	// keyset runs over (saved_posts.created_at, saved_posts.post_id).
	ListSaved(ctx context.Context, userID string, q PageQuery) ([]entity.SavedRef, error)
}

type savedRepository struct {
	db *gorm.DB
}

func NewSavedRepository(db *gorm.DB) SavedRepository {
	return &savedRepository{db: db}
}

func (r *savedRepository) ListSaved(ctx context.Context, userID string, q PageQuery) ([]entity.SavedRef, error) {
	query := r.db.WithContext(ctx).
		Model(&models.SavedPost{}).
		Select("saved_posts.post_id, saved_posts.created_at").
		Where("saved_posts.user_id = ?", userID)
	if q.Kind != "" {
		query = q.kind(query.Joins("JOIN posts ON posts.id = saved_posts.post_id"))
	}
	query = q.keyset(query, "saved_posts.created_at", "saved_posts.post_id")

	var rows []models.SavedPost
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	refs := make([]entity.SavedRef, len(rows))
	for i, row := range rows {
		refs[i] = entity.SavedRef{PostID: row.PostID, SavedAt: row.CreatedAt}
	}
	return refs, nil
}
