package models

import "time"

// Comment is a reader comment on a post.
type Comment struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	PostID  uint      `gorm:"not null;index" json:"post_id"`
	Name    string    `gorm:"size:80;not null" json:"name"`
	Email   string    `gorm:"size:254;not null" json:"email"`
	Body    string    `gorm:"type:text;not null" json:"body"`
	Created time.Time `gorm:"not null;index" json:"created"`
	Updated time.Time `gorm:"autoUpdateTime" json:"updated"`
	Active  bool      `gorm:"not null;default:true" json:"active"`
}
