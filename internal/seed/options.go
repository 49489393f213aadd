package seed

import (
	"fmt"

	"blogseed/internal/config"
	"blogseed/internal/models"
)

// Options configure a seeding run.
type Options struct {
	// Number of posts to generate.
	Number int
	// Delete purges existing posts and comments before generating.
	Delete bool
	// MinComments and MaxComments bound the per-post comment count, inclusive.
	MinComments int
	MaxComments int
}

// DefaultOptions returns the defaults the command line flags start from.
func DefaultOptions() Options {
	return Options{
		Number:      config.DefaultSeedNumber,
		MinComments: config.DefaultSeedMinComments,
		MaxComments: config.DefaultSeedMaxComments,
	}
}

// Validate rejects options a run cannot honour.
func (o Options) Validate() error {
	if o.Number < 0 {
		return models.NewValidationError(fmt.Sprintf("number must not be negative (got %d)", o.Number))
	}
	if o.MinComments < 0 {
		return models.NewValidationError(fmt.Sprintf("min_comments must not be negative (got %d)", o.MinComments))
	}
	if o.MinComments > o.MaxComments {
		return models.NewValidationError(fmt.Sprintf(
			"min_comments (%d) must not exceed max_comments (%d)", o.MinComments, o.MaxComments))
	}
	return nil
}
