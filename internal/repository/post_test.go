package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"blogseed/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_SlugExists(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		expected bool
	}{
		{"taken", 1, true},
		{"free", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewPostRepository(db)

			mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts" WHERE slug = $1`)).
				WithArgs("hello-world-1700000000").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))

			exists, err := repo.SlugExists(context.Background(), "hello-world-1700000000")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, exists)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectCommit()

	post := &models.Post{
		Title:    "Hello world.",
		Slug:     "hello-world-1700000000",
		AuthorID: 1,
		Body:     "# Hello",
		Status:   models.PostStatusPublished,
		Publish:  time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), post))
	assert.Equal(t, uint(9), post.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_AttachTagsAndDeleteAll(t *testing.T) {
	db := setupSQLiteDB(t)
	ctx := context.Background()
	repos := NewRepositories(db)

	author := &models.User{Username: "admin", Email: "admin@example.com", Password: "x"}
	require.NoError(t, repos.Users.Create(ctx, author))

	require.NoError(t, repos.Tags.EnsureExist(ctx, []models.Tag{
		{Name: "Go", Slug: "go"},
		{Name: "Testing", Slug: "testing"},
	}))
	tags, err := repos.Tags.ListByNames(ctx, []string{"Go", "Testing"})
	require.NoError(t, err)
	require.Len(t, tags, 2)

	post := &models.Post{
		Title:    "Tagged",
		Slug:     "tagged-1",
		AuthorID: author.ID,
		Body:     "body",
		Status:   models.PostStatusPublished,
		Publish:  time.Now(),
	}
	require.NoError(t, repos.Posts.Create(ctx, post))
	require.NoError(t, repos.Posts.AttachTags(ctx, post, tags))
	assert.Len(t, post.Tags, 2)

	var loaded models.Post
	require.NoError(t, db.Preload("Tags").First(&loaded, post.ID).Error)
	assert.Len(t, loaded.Tags, 2)

	require.NoError(t, repos.Comments.Create(ctx, &models.Comment{
		PostID: post.ID, Name: "n", Email: "e@example.com", Body: "b", Created: time.Now(), Active: true,
	}))

	require.NoError(t, repos.Comments.DeleteAll(ctx))
	require.NoError(t, repos.Posts.DeleteAll(ctx))

	posts, err := repos.Posts.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, posts)
	comments, err := repos.Comments.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, comments)

	var links int64
	require.NoError(t, db.Model(&models.PostTag{}).Count(&links).Error)
	assert.Zero(t, links)

	tagCount, err := repos.Tags.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), tagCount)
}
