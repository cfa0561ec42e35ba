package persistent

import (
	"context"

	"gorm.io/gorm"

	"scroll-feed/pkg/models"
	"scroll-feed/services/feed/internal/entity"
)

type FollowRepository interface {
	// ListFollowing returns the ids of accounts followerID follows.
	ListFollowing(ctx context.Context, followerID string) ([]string, error)
}

type AudienceRepository interface {
	// ListByPostIDs loads the audience of each id that has one.
	ListByPostIDs(ctx context.Context, postIDs []string) (map[string]*entity.Audience, error)
	// ListGroupsOf returns the groups userID is a member of.
	ListGroupsOf(ctx context.Context, userID string) ([]string, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) ListFollowing(ctx context.Context, followerID string) ([]string, error) {
	ids := []string{}
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("followed_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

type audienceRepository struct {
	db *gorm.DB
}

func NewAudienceRepository(db *gorm.DB) AudienceRepository {
	return &audienceRepository{db: db}
}

func (r *audienceRepository) ListByPostIDs(ctx context.Context, postIDs []string) (map[string]*entity.Audience, error) {
	result := make(map[string]*entity.Audience)
	if len(postIDs) == 0 {
		return result, nil
	}

	var users []models.PostAudienceUser
	if err := r.db.WithContext(ctx).Where("post_id IN ?", postIDs).Find(&users).Error; err != nil {
		return nil, err
	}

	var groups []models.PostAudienceGroup
	if err := r.db.WithContext(ctx).Where("post_id IN ?", postIDs).Find(&groups).Error; err != nil {
		return nil, err
	}

	get := func(postID string) *entity.Audience {
		a, ok := result[postID]
		if !ok {
			a = entity.NewAudience(postID, nil, nil)
			result[postID] = a
		}
		return a
	}
	for _, u := range users {
		get(u.PostID).UserIDs[u.UserID] = struct{}{}
	}
	for _, g := range groups {
		get(g.PostID).GroupIDs[g.GroupID] = struct{}{}
	}
	return result, nil
}

func (r *audienceRepository) ListGroupsOf(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	err := r.db.WithContext(ctx).
		Model(&models.GroupMember{}).
		Where("user_id = ?", userID).
		Pluck("group_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
