package seed

import "time"

// Outcome records what happened to a single post of a run.
type Outcome struct {
	Index    int
	PostID   uint
	Slug     string
	Tags     []string
	Comments int
	Err      error
}

// OK reports whether the post was generated without error.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Report summarises a seeding run.
type Report struct {
	RunID           string
	StartedAt       time.Time
	FinishedAt      time.Time
	PostsCreated    int
	CommentsCreated int
	Outcomes        []Outcome
}

// Failures returns the outcomes of posts that could not be generated.
func (r *Report) Failures() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if !o.OK() {
			failed = append(failed, o)
		}
	}
	return failed
}
