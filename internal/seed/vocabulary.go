package seed

// CommonTags is the fixed tag vocabulary seeded posts draw from.
var CommonTags = []string{
	"Technology", "Programming", "Python", "Django",
	"Web Development", "Tutorial", "How-to", "Guide",
	"Tips", "Best Practices", "Software", "Development",
	"Code", "Learning", "Backend", "Frontend", "Database",
	"API", "Security", "Performance", "Testing", "Debug",
	"Framework", "Library", "Tools", "Deployment", "Cloud",
	"DevOps", "Architecture", "Design Patterns",
}

// CodeSamples are the snippets embedded in generated post bodies.
var CodeSamples = []string{
	`print("Hello, World!")`,
	"def example_function():\n    return True",
	"class ExampleClass:\n    pass",
	"if __name__ == \"__main__\":\n    main()",
}

// Default author identity. The username is the lookup key.
const (
	DefaultAuthorUsername = "admin"
	DefaultAuthorEmail    = "admin@example.com"
)

const (
	minTitleWords   = 4
	maxTitleWords   = 8
	minTagsPerPost  = 2
	maxTagsPerPost  = 5
	minBulletPoints = 3
	maxBulletPoints = 6
	maxPublishAge   = 365 // days
	progressEvery   = 10
)
