package models

// Tag labels posts. Names are unique; tags are shared across posts.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Slug string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
}

// PostTag is the join table between posts and tags.
type PostTag struct {
	PostID uint `gorm:"primaryKey"`
	TagID  uint `gorm:"primaryKey"`
}
