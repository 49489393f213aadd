package seed

import (
	"fmt"
	"strings"

	"blogseed/internal/models"
	"blogseed/internal/textutil"

	"github.com/brianvoe/gofakeit/v6"
)

// ContentSource supplies the random text and numbers used to build posts and comments.
type ContentSource interface {
	Sentence(words int) string
	Paragraph(sentences int) string
	Name() string
	Email() string
	// IntRange returns a uniformly drawn integer in [min, max].
	IntRange(min, max int) int
	// Sample returns n distinct elements of items in random order.
	Sample(items []string, n int) []string
	Pick(items []string) string
}

// FakerSource is the gofakeit-backed ContentSource.
type FakerSource struct {
	faker *gofakeit.Faker
}

// NewFakerSource returns a ContentSource seeded with seed. A zero seed picks a random one.
func NewFakerSource(seed int64) *FakerSource {
	return &FakerSource{faker: gofakeit.New(seed)}
}

func (s *FakerSource) Sentence(words int) string {
	return s.faker.Sentence(words)
}

// Paragraph builds one paragraph of the given number of sentences with 6-12 words each.
func (s *FakerSource) Paragraph(sentences int) string {
	return s.faker.Paragraph(1, sentences, s.faker.Number(6, 12), " ")
}

func (s *FakerSource) Name() string {
	return s.faker.Name()
}

func (s *FakerSource) Email() string {
	return s.faker.Email()
}

func (s *FakerSource) IntRange(min, max int) int {
	return s.faker.Number(min, max)
}

func (s *FakerSource) Sample(items []string, n int) []string {
	shuffled := make([]string, len(items))
	copy(shuffled, items)
	s.faker.ShuffleStrings(shuffled)
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

func (s *FakerSource) Pick(items []string) string {
	return s.faker.RandomString(items)
}

// GenerateTitle returns a 4-8 word sentence capped at the post title length.
func GenerateTitle(src ContentSource) string {
	title := src.Sentence(src.IntRange(minTitleWords, maxTitleWords))
	return textutil.Truncate(title, models.TitleMaxLength)
}

// GenerateBody assembles a markdown post body: heading, intro, subheading, a python
// code block, a paragraph, a bullet list, another paragraph, a quote and a conclusion.
func GenerateBody(src ContentSource) string {
	sections := make([]string, 0, 9)

	sections = append(sections, "# "+src.Sentence(src.IntRange(4, 8)))
	sections = append(sections, src.Paragraph(3))
	sections = append(sections, "## "+src.Sentence(src.IntRange(4, 8)))
	sections = append(sections, fmt.Sprintf("```python\n%s\n```", src.Pick(CodeSamples)))
	sections = append(sections, src.Paragraph(src.IntRange(3, 6)))

	bullets := make([]string, src.IntRange(minBulletPoints, maxBulletPoints))
	for i := range bullets {
		bullets[i] = "* " + src.Sentence(src.IntRange(5, 10))
	}
	sections = append(sections, strings.Join(bullets, "\n"))

	sections = append(sections, src.Paragraph(src.IntRange(3, 6)))
	sections = append(sections, "> "+src.Sentence(src.IntRange(6, 12)))
	sections = append(sections, src.Paragraph(src.IntRange(3, 6)))

	return strings.Join(sections, "\n\n")
}

// generateCommentBody returns a one to three sentence paragraph.
func generateCommentBody(src ContentSource) string {
	return src.Paragraph(src.IntRange(1, 3))
}
