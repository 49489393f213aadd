package models

import "time"

// PostStatus is the publication state of a post.
type PostStatus string

const (
	// PostStatusDraft marks an unpublished post.
	PostStatusDraft PostStatus = "DF"
	// PostStatusPublished marks a published post.
	PostStatusPublished PostStatus = "PB"
)

// TitleMaxLength is the maximum length of a post title in characters.
const TitleMaxLength = 200

// Post is a blog entry.
type Post struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"size:200;not null" json:"title"`
	Slug      string     `gorm:"size:250;uniqueIndex;not null" json:"slug"`
	AuthorID  uint       `gorm:"not null;index" json:"author_id"`
	Author    User       `gorm:"foreignKey:AuthorID" json:"author"`
	Body      string     `gorm:"type:text;not null" json:"body"`
	Status    PostStatus `gorm:"size:2;not null;default:DF" json:"status"`
	Publish   time.Time  `gorm:"not null;index" json:"publish"`
	Tags      []Tag      `gorm:"many2many:post_tags;" json:"tags,omitempty"`
	Comments  []Comment  `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
