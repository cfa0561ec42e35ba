package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_BeforeCreate(t *testing.T) {
	user := &User{
		Email:    "test@example.com",
		Username: "testuser",
		Password: "password",
		Role:     RoleViewer,
		IsActive: true,
	}

	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
}

func TestUser_BeforeCreate_WithID(t *testing.T) {
	existingID := "existing-id-123"
	user := &User{ID: existingID, Email: "test@example.com", Username: "testuser"}

	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.Equal(t, existingID, user.ID)
}

func TestPost_BeforeCreate(t *testing.T) {
	post := &Post{
		AuthorID:   "author-123",
		Kind:       "image",
		Visibility: VisibilityPublic,
		Status:     StatusScheduled,
	}

	err := post.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, post.ID)
}

func TestRepostFollowSaved_BeforeCreate(t *testing.T) {
	repost := &Repost{ReposterID: "user-1", PostID: "post-1", Status: RepostApproved}
	follow := &Follow{FollowerID: "user-1", FollowedID: "user-2"}
	saved := &SavedPost{UserID: "user-1", PostID: "post-1"}

	assert.NoError(t, repost.BeforeCreate(nil))
	assert.NoError(t, follow.BeforeCreate(nil))
	assert.NoError(t, saved.BeforeCreate(nil))

	assert.NotEmpty(t, repost.ID)
	assert.NotEmpty(t, follow.ID)
	assert.NotEmpty(t, saved.ID)
	assert.NotEqual(t, repost.ID, follow.ID)
}

func TestEnumConstants(t *testing.T) {
	assert.Equal(t, PostStatus("scheduled"), StatusScheduled)
	assert.Equal(t, PostStatus("published"), StatusPublished)
	assert.Equal(t, PostVisibility("followers-only"), VisibilityFollowers)
	assert.Equal(t, PostVisibility("private-with-audience"), VisibilityAudience)
	assert.Equal(t, RepostStatus("approved"), RepostApproved)
	assert.Equal(t, UserRole("admin"), RoleAdmin)
}
