package quizgen

const (
	MinQuestions     = 1
	MaxQuestions     = 20
	DefaultQuestions = 5

	MinTopicLength = 2
	MaxTopicLength = 100
)

// Config controls prompt budgets and topic gatekeeping.
type Config struct {
	// MaxTokens is the token budget for question generation.
	MaxTokens int `yaml:"max_tokens"`

	// Temperature controls randomness of generated questions (0.0-2.0).
	Temperature float64 `yaml:"temperature"`

	// TopicMaxTokens is the token budget for the topic verdict.
	TopicMaxTokens int `yaml:"topic_max_tokens"`

	// StrictTopicCheck makes a failed topic check (transport error,
	// unreadable verdict) abort generation instead of letting it through.
	StrictTopicCheck bool `yaml:"strict_topic_check"`

	// SkipTopicCheck disables the model-based topic check. Shape checks
	// still run.
	SkipTopicCheck bool `yaml:"skip_topic_check"`

	// StructuredTopicCheck asks the provider for schema-constrained output
	// on the topic check. A reply that violates the schema counts as a
	// failed check.
	StructuredTopicCheck bool `yaml:"structured_topic_check"`

	// MaxPriorQuestions caps how many earlier questions on the same topic
	// are listed in the prompt to discourage repeats.
	MaxPriorQuestions int `yaml:"max_prior_questions"`
}

// DefaultConfig returns the recommended settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:         8192,
		Temperature:       0.7,
		TopicMaxTokens:    1024,
		MaxPriorQuestions: 10,
	}
}
