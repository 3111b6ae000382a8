package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/quizgen/internal/llm"
	"github.com/abhisek/quizgen/internal/logger"
)

// SkippedReason is the verdict reason when the topic check could not run.
const SkippedReason = "validation skipped"

// CheckTopic runs the shape checks that need no model call. Lengths are
// counted in characters on the trimmed topic.
func CheckTopic(topic string) error {
	t := strings.TrimSpace(topic)
	switch n := utf8.RuneCountInString(t); {
	case n == 0:
		return &InvalidTopicError{Reason: "topic cannot be empty"}
	case n < MinTopicLength:
		return &InvalidTopicError{Topic: t, Reason: fmt.Sprintf("topic must be at least %d characters long", MinTopicLength)}
	case n > MaxTopicLength:
		return &InvalidTopicError{Topic: t, Reason: fmt.Sprintf("topic is too long (max %d characters)", MaxTopicLength)}
	}
	return nil
}

// CheckCount rejects a question count outside [MinQuestions, MaxQuestions].
func CheckCount(n int) error {
	if n < MinQuestions || n > MaxQuestions {
		return fmt.Errorf("%w (got %d)", ErrInvalidCount, n)
	}
	return nil
}

// Verdict is the model's judgment of a topic.
type Verdict struct {
	Valid      bool
	Reason     string
	Suggestion string

	// Skipped is set when no judgment could be obtained and the topic was
	// let through.
	Skipped bool
}

type verdictOutput struct {
	Valid      bool    `json:"valid"`
	Reason     string  `json:"reason"`
	Suggestion *string `json:"suggestion"`
}

// TopicValidator asks the model whether a topic is worth a quiz.
type TopicValidator struct {
	provider llm.Provider
	config   Config
	log      *logger.Logger
}

// NewTopicValidator creates a TopicValidator. log may be nil.
func NewTopicValidator(provider llm.Provider, cfg Config, log *logger.Logger) *TopicValidator {
	if log == nil {
		log = logger.Nop()
	}
	return &TopicValidator{provider: provider, config: cfg, log: log}
}

// Validate obtains a verdict for topic. When the model call fails or its
// reply is unreadable, the topic is let through with Skipped set, unless
// StrictTopicCheck is on, in which case the failure is returned.
func (v *TopicValidator) Validate(ctx context.Context, topic string) (Verdict, error) {
	verdict, err := v.judge(ctx, topic)
	if err == nil {
		return verdict, nil
	}
	if v.config.StrictTopicCheck {
		return Verdict{}, fmt.Errorf("topic check: %w", err)
	}
	v.log.Warn("topic check failed, allowing topic", "topic", topic, "error", err)
	return Verdict{Valid: true, Reason: SkippedReason, Skipped: true}, nil
}

func (v *TopicValidator) judge(ctx context.Context, topic string) (Verdict, error) {
	ctx = llm.WithPurpose(ctx, "topic-check")

	resp, err := v.provider.Generate(ctx, BuildTopicRequest(topic, v.config))
	if err != nil {
		return Verdict{}, err
	}

	text := ExtractJSON(resp.Text())

	var parsed any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return Verdict{}, &MalformedResponseError{Content: text, Err: err}
	}
	if err := llm.ValidateValue(TopicVerdictSchema, parsed); err != nil {
		return Verdict{}, &MalformedResponseError{Content: text, Err: err}
	}

	var out verdictOutput
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return Verdict{}, &MalformedResponseError{Content: text, Err: err}
	}

	verdict := Verdict{Valid: out.Valid, Reason: strings.TrimSpace(out.Reason)}
	if out.Suggestion != nil {
		verdict.Suggestion = strings.TrimSpace(*out.Suggestion)
	}
	if verdict.Reason == "" {
		verdict.Reason = "no reason given"
	}
	v.log.Debug("topic verdict", "topic", topic, "valid", verdict.Valid, "reason", verdict.Reason)
	return verdict, nil
}
