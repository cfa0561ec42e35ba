package persistent

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"scroll-feed/pkg/models"
	"scroll-feed/services/feed/internal/entity"
)

type ViewerRepository interface {
	// GetViewer returns nil without error for unknown or inactive accounts.
	GetViewer(ctx context.Context, userID string) (*entity.Viewer, error)
	// GetPreferences falls back to entity.DefaultPreferences when the viewer
	// never stored any.
	GetPreferences(ctx context.Context, userID string) (entity.ContentPreferences, error)
}

type viewerRepository struct {
	db *gorm.DB
}

func NewViewerRepository(db *gorm.DB) ViewerRepository {
	return &viewerRepository{db: db}
}

func (r *viewerRepository) GetViewer(ctx context.Context, userID string) (*entity.Viewer, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Select("id", "role", "birth_year").
		Where("id = ? AND is_active = ?", userID, true).
		Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ToViewerEntity(&user), nil
}

func (r *viewerRepository) GetPreferences(ctx context.Context, userID string) (entity.ContentPreferences, error) {
	var pref models.ContentPreference
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.DefaultPreferences(), nil
	}
	if err != nil {
		return entity.ContentPreferences{}, err
	}
	return ToPreferencesEntity(&pref), nil
}
