package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleViewer    UserRole = "viewer"
	RoleCreator   UserRole = "creator"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

type User struct {
	ID           string         `gorm:"type:uuid;primary_key" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	Username     string         `gorm:"uniqueIndex;not null" json:"username"`
	DisplayName  string         `gorm:"type:varchar(100)" json:"display_name"`
	AvatarURL    string         `gorm:"type:varchar(500)" json:"avatar_url"`
	Password     string         `gorm:"not null" json:"-"`
	Role         UserRole       `gorm:"type:varchar(20);default:'viewer'" json:"role"`
	BirthYear    *int           `json:"-"`
	IsPrivate    bool           `gorm:"default:false" json:"is_private"`
	AllowReposts bool           `json:"allow_reposts"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
