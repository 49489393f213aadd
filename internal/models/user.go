// Package models contains data structures for the blog's domain models.
package models

import "time"

// User is a blog account. Seeded posts are attributed to a single default author.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email       string    `gorm:"size:254;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	IsStaff     bool      `gorm:"not null;default:false" json:"is_staff"`
	IsSuperuser bool      `gorm:"not null;default:false" json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
