// Package seed populates the blog store with synthetic posts, tags and comments
// for development and demos.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"blogseed/internal/config"
	"blogseed/internal/models"
	"blogseed/internal/observability"
	"blogseed/internal/repository"
	"blogseed/internal/textutil"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const day = 24 * time.Hour

// Seeder generates posts with tags and comments against the repositories it is given.
type Seeder struct {
	repos          *repository.Repositories
	content        ContentSource
	now            func() time.Time
	out            io.Writer
	logger         *slog.Logger
	metrics        *observability.SeedMetrics
	authorPassword string
	passwordCost   int

	// slugs handed out during the current run
	issued map[string]struct{}
}

// Option customises a Seeder.
type Option func(*Seeder)

// WithContent sets the source of random text and numbers.
func WithContent(src ContentSource) Option {
	return func(s *Seeder) { s.content = src }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Seeder) { s.now = now }
}

// WithOutput sets where progress lines are written.
func WithOutput(w io.Writer) Option {
	return func(s *Seeder) { s.out = w }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Seeder) { s.logger = l }
}

// WithMetrics sets the metrics the run records into.
func WithMetrics(m *observability.SeedMetrics) Option {
	return func(s *Seeder) { s.metrics = m }
}

// WithAuthorPassword sets the password of a newly created default author.
func WithAuthorPassword(password string) Option {
	return func(s *Seeder) { s.authorPassword = password }
}

// WithPasswordCost sets the bcrypt cost used for the default author.
func WithPasswordCost(cost int) Option {
	return func(s *Seeder) { s.passwordCost = cost }
}

// NewSeeder creates a Seeder. Without options it uses a randomly seeded gofakeit
// source, the wall clock and stdout.
func NewSeeder(repos *repository.Repositories, opts ...Option) *Seeder {
	s := &Seeder{
		repos:          repos,
		now:            time.Now,
		out:            os.Stdout,
		logger:         observability.Logger,
		authorPassword: config.DefaultAuthorPassword,
		passwordCost:   bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.content == nil {
		s.content = NewFakerSource(0)
	}
	if s.metrics == nil {
		s.metrics = observability.NewSeedMetrics()
	}
	return s
}

// Metrics returns the metrics recorded by this seeder.
func (s *Seeder) Metrics() *observability.SeedMetrics {
	return s.metrics
}

// EnsureTagVocabulary creates every tag of CommonTags that does not exist yet and
// returns the vocabulary names.
func (s *Seeder) EnsureTagVocabulary(ctx context.Context) ([]string, error) {
	tags := make([]models.Tag, 0, len(CommonTags))
	for _, name := range CommonTags {
		tags = append(tags, models.Tag{Name: name, Slug: textutil.Slugify(name)})
	}

	done := s.metrics.TrackStore("ensure_tags")
	err := s.repos.Tags.EnsureExist(ctx, tags)
	done()
	if err != nil {
		return nil, fmt.Errorf("ensure tag vocabulary: %w", err)
	}

	names := make([]string, len(CommonTags))
	copy(names, CommonTags)
	return names, nil
}

// EnsureDefaultAuthor looks up the default author by username and creates it when
// missing. The boolean result reports whether it was created.
func (s *Seeder) EnsureDefaultAuthor(ctx context.Context) (*models.User, bool, error) {
	author, err := s.repos.Users.GetByUsername(ctx, DefaultAuthorUsername)
	switch {
	case err == nil:
		return author, false, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, false, fmt.Errorf("look up default author: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(s.authorPassword), s.passwordCost)
	if err != nil {
		return nil, false, fmt.Errorf("hash default author password: %w", err)
	}

	author = &models.User{
		Username:    DefaultAuthorUsername,
		Email:       DefaultAuthorEmail,
		Password:    string(hashedPassword),
		IsStaff:     true,
		IsSuperuser: true,
	}
	done := s.metrics.TrackStore("create_user")
	err = s.repos.Users.Create(ctx, author)
	done()
	if err != nil {
		return nil, false, fmt.Errorf("create default author: %w", err)
	}

	fmt.Fprintf(s.out, "Created default author (%s)\n", DefaultAuthorUsername)
	return author, true, nil
}

// GenerateComments writes between min and max comments for post, each dated a whole
// number of days after the post's publish time and no later than now. It returns the
// number of comments written, which is less than requested only alongside an error.
func (s *Seeder) GenerateComments(ctx context.Context, post *models.Post, min, max int) (int, error) {
	count := s.content.IntRange(min, max)

	elapsed := int(s.now().Sub(post.Publish) / day)
	if elapsed < 0 {
		elapsed = 0
	}

	for i := 0; i < count; i++ {
		offset := s.content.IntRange(0, elapsed)
		comment := &models.Comment{
			PostID:  post.ID,
			Name:    s.content.Name(),
			Email:   s.content.Email(),
			Body:    generateCommentBody(s.content),
			Created: post.Publish.Add(time.Duration(offset) * day),
			Active:  true,
		}

		done := s.metrics.TrackStore("create_comment")
		err := s.repos.Comments.Create(ctx, comment)
		done()
		if err != nil {
			return i, fmt.Errorf("create comment: %w", err)
		}
		s.metrics.CommentsCreated.Inc()
	}

	return count, nil
}

// Run executes a full seeding pass. Option errors and failures outside the per-post
// loop abort the run; a failing post is reported and skipped.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	ctx = observability.WithRunID(ctx, runID)
	span, ctx := observability.NewSpan(ctx, "seed.Run",
		attribute.Int("seed.number", opts.Number),
		attribute.Bool("seed.delete", opts.Delete),
		attribute.Int("seed.min_comments", opts.MinComments),
		attribute.Int("seed.max_comments", opts.MaxComments),
	)
	defer span.End()

	s.logger.InfoContext(ctx, "seeding started",
		slog.Int("number", opts.Number),
		slog.Bool("delete", opts.Delete),
		slog.Int("min_comments", opts.MinComments),
		slog.Int("max_comments", opts.MaxComments),
	)

	if opts.Delete {
		fmt.Fprintln(s.out, "Deleting existing posts...")
		if err := s.purge(ctx); err != nil {
			span.SetError(err)
			return nil, err
		}
	}

	vocabulary, err := s.EnsureTagVocabulary(ctx)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	tagIndex, err := s.loadTags(ctx, vocabulary)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	author, _, err := s.EnsureDefaultAuthor(ctx)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	start := s.now()
	report := &Report{RunID: runID, StartedAt: start}
	s.issued = make(map[string]struct{}, opts.Number)

	for i := 0; i < opts.Number; i++ {
		if err := ctx.Err(); err != nil {
			report.FinishedAt = s.now()
			span.SetError(err)
			return report, err
		}

		outcome := s.createPost(ctx, i, author, vocabulary, tagIndex, start, opts)
		report.Outcomes = append(report.Outcomes, outcome)

		if outcome.Err != nil {
			s.metrics.PostFailures.Inc()
			fmt.Fprintf(s.out, "Error creating post: %v\n", outcome.Err)
			s.logger.ErrorContext(ctx, "post generation failed",
				slog.Int("index", i),
				slog.String("error", outcome.Err.Error()),
			)
			continue
		}

		report.PostsCreated++
		report.CommentsCreated += outcome.Comments

		if report.PostsCreated%progressEvery == 0 {
			fmt.Fprintf(s.out, "Created %d posts with %d comments...\n", report.PostsCreated, report.CommentsCreated)
		}
	}

	report.FinishedAt = s.now()
	s.metrics.ObserveRun(report.StartedAt, report.FinishedAt)
	span.AddAttributes(
		attribute.Int("seed.posts_created", report.PostsCreated),
		attribute.Int("seed.comments_created", report.CommentsCreated),
	)

	fmt.Fprintf(s.out, "Successfully created %d posts with %d comments\n", report.PostsCreated, report.CommentsCreated)
	s.logger.InfoContext(ctx, "seeding finished",
		slog.Int("posts", report.PostsCreated),
		slog.Int("comments", report.CommentsCreated),
		slog.Int("failures", len(report.Failures())),
	)

	return report, nil
}

func (s *Seeder) createPost(
	ctx context.Context,
	index int,
	author *models.User,
	vocabulary []string,
	tagIndex map[string]models.Tag,
	start time.Time,
	opts Options,
) Outcome {
	span, ctx := observability.NewSpan(ctx, "seed.createPost", attribute.Int("seed.index", index))
	defer span.End()

	outcome := Outcome{Index: index}
	fail := func(err error) Outcome {
		span.SetError(err)
		outcome.Err = err
		return outcome
	}

	title := GenerateTitle(s.content)
	slug, err := s.uniqueSlug(ctx, textutil.Slugify(title), s.now().Unix())
	if err != nil {
		return fail(err)
	}
	outcome.Slug = slug

	daysAgo := s.content.IntRange(0, maxPublishAge)
	post := &models.Post{
		Title:    title,
		Slug:     slug,
		AuthorID: author.ID,
		Body:     GenerateBody(s.content),
		Status:   models.PostStatusPublished,
		Publish:  start.Add(-time.Duration(daysAgo) * day),
	}

	done := s.metrics.TrackStore("create_post")
	err = s.repos.Posts.Create(ctx, post)
	done()
	if err != nil {
		return fail(fmt.Errorf("create post %q: %w", slug, err))
	}
	outcome.PostID = post.ID
	s.metrics.PostsCreated.Inc()

	names := s.content.Sample(vocabulary, s.content.IntRange(minTagsPerPost, maxTagsPerPost))
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		tag, ok := tagIndex[name]
		if !ok {
			return fail(models.NewNotFoundError("tag", name))
		}
		tags = append(tags, tag)
	}
	done = s.metrics.TrackStore("attach_tags")
	err = s.repos.Posts.AttachTags(ctx, post, tags)
	done()
	if err != nil {
		return fail(fmt.Errorf("attach tags: %w", err))
	}
	outcome.Tags = names

	written, err := s.GenerateComments(ctx, post, opts.MinComments, opts.MaxComments)
	outcome.Comments = written
	if err != nil {
		return fail(err)
	}

	done = s.metrics.TrackStore("count_comments")
	count, err := s.repos.Comments.CountByPost(ctx, post.ID)
	done()
	if err != nil {
		return fail(fmt.Errorf("count comments: %w", err))
	}
	outcome.Comments = int(count)

	span.AddAttributes(
		attribute.String("seed.slug", slug),
		attribute.Int("seed.comments", outcome.Comments),
	)
	return outcome
}

// uniqueSlug returns base-timestamp, adding a numeric suffix when that slug was
// already issued in this run or is stored.
func (s *Seeder) uniqueSlug(ctx context.Context, base string, timestamp int64) (string, error) {
	if base == "" {
		base = "post"
	}
	if s.issued == nil {
		s.issued = make(map[string]struct{})
	}

	candidate := fmt.Sprintf("%s-%d", base, timestamp)
	if !textutil.IsValidSlug(candidate) {
		return "", models.NewValidationError(fmt.Sprintf("invalid slug %q", candidate))
	}
	for n := 2; ; n++ {
		if _, taken := s.issued[candidate]; !taken {
			exists, err := s.repos.Posts.SlugExists(ctx, candidate)
			if err != nil {
				return "", fmt.Errorf("check slug %q: %w", candidate, err)
			}
			if !exists {
				s.issued[candidate] = struct{}{}
				return candidate, nil
			}
		}
		candidate = fmt.Sprintf("%s-%d-%d", base, timestamp, n)
	}
}

func (s *Seeder) loadTags(ctx context.Context, names []string) (map[string]models.Tag, error) {
	tags, err := s.repos.Tags.ListByNames(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}
	index := make(map[string]models.Tag, len(tags))
	for _, tag := range tags {
		index[tag.Name] = tag
	}
	return index, nil
}

func (s *Seeder) purge(ctx context.Context) error {
	done := s.metrics.TrackStore("delete_all")
	defer done()

	if err := s.repos.Comments.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete comments: %w", err)
	}
	if err := s.repos.Posts.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete posts: %w", err)
	}
	s.logger.InfoContext(ctx, "existing posts and comments deleted")
	return nil
}
