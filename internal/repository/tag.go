package repository

import (
	"context"

	"blogseed/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	// EnsureExist inserts the tags whose names are not stored yet and leaves the rest untouched.
	EnsureExist(ctx context.Context, tags []models.Tag) error
	ListByNames(ctx context.Context, names []string) ([]models.Tag, error)
	Count(ctx context.Context) (int64, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) EnsureExist(ctx context.Context, tags []models.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&tags).Error
}

func (r *tagRepository) ListByNames(ctx context.Context, names []string) ([]models.Tag, error) {
	var tags []models.Tag
	if len(names) == 0 {
		return tags, nil
	}
	err := r.db.WithContext(ctx).Where("name IN ?", names).Order("id").Find(&tags).Error
	return tags, err
}

func (r *tagRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Tag{}).Count(&count).Error
	return count, err
}
