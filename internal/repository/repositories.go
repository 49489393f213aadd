package repository

import "gorm.io/gorm"

// Repositories bundles the stores the seeder writes to.
type Repositories struct {
	Users    UserRepository
	Tags     TagRepository
	Posts    PostRepository
	Comments CommentRepository
}

// NewRepositories builds gorm-backed repositories sharing one connection.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(db),
		Tags:     NewTagRepository(db),
		Posts:    NewPostRepository(db),
		Comments: NewCommentRepository(db),
	}
}
