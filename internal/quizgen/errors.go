package quizgen

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedResponse matches any *MalformedResponseError.
	ErrMalformedResponse = errors.New("malformed model response")

	// ErrNoValidQuestions means the model answered with parseable JSON but
	// every element failed validation. Retrying the same topic may help.
	ErrNoValidQuestions = errors.New("no valid questions in model response")

	// ErrInvalidTopic matches any *InvalidTopicError.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrInvalidCount is returned for a question count outside
	// [MinQuestions, MaxQuestions].
	ErrInvalidCount = fmt.Errorf("number of questions must be between %d and %d", MinQuestions, MaxQuestions)
)

// MalformedResponseError carries the extracted text that failed to parse.
type MalformedResponseError struct {
	Content string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("failed to parse model response as JSON: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}

// InvalidTopicError reports a topic rejected by the shape checks or by the
// model's verdict.
type InvalidTopicError struct {
	Topic      string
	Reason     string
	Suggestion string
}

func (e *InvalidTopicError) Error() string {
	if e.Topic == "" {
		return e.Reason
	}
	return fmt.Sprintf("topic %q is not suitable for a quiz: %s", e.Topic, e.Reason)
}

func (e *InvalidTopicError) Is(target error) bool {
	return target == ErrInvalidTopic
}

// DefaultHint is shown after a failed generation that has no better advice.
const DefaultHint = "Try a different topic or check your connection"

// Hint returns user-facing advice for a generation error.
func Hint(err error) string {
	var ite *InvalidTopicError
	if errors.As(err, &ite) && ite.Suggestion != "" {
		return "Suggestion: " + ite.Suggestion
	}
	if errors.Is(err, ErrInvalidCount) {
		return fmt.Sprintf("Pick between %d and %d questions", MinQuestions, MaxQuestions)
	}
	return DefaultHint
}
