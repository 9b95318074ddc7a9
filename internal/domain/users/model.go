package users

import (
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

type User struct {
	ID           uint    `gorm:"primaryKey"`
	Name         string  `gorm:"not null"`
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`
	Role         string  `gorm:"not null;default:'editor'"`

	LastLoginAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
