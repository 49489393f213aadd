package repository

import (
	"context"

	"blogseed/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	AttachTags(ctx context.Context, post *models.Post, tags []models.Tag) error
	Count(ctx context.Context) (int64, error)
	// DeleteAll removes every post together with its tag links.
	DeleteAll(ctx context.Context) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
}

func (r *postRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *postRepository) AttachTags(ctx context.Context, post *models.Post, tags []models.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	links := make([]models.PostTag, 0, len(tags))
	for _, tag := range tags {
		links = append(links, models.PostTag{PostID: post.ID, TagID: tag.ID})
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&links).Error; err != nil {
		return err
	}
	post.Tags = append(post.Tags, tags...)
	return nil
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&count).Error
	return count, err
}

func (r *postRepository) DeleteAll(ctx context.Context) error {
	db := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	if err := db.Delete(&models.PostTag{}).Error; err != nil {
		return err
	}
	return db.Delete(&models.Post{}).Error
}
