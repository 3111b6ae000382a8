package quizgen

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizgen/internal/quiz"
)

// idLength is the number of hex characters kept from a UUID.
const idLength = 8

// NewID returns a short random identifier for quizzes and results.
func NewID() string {
	return uuid.NewString()[:idLength]
}

// Assemble wraps validated questions into a quiz stamped with now.
func Assemble(topic string, questions []quiz.Question, now time.Time) (*quiz.Quiz, error) {
	if len(questions) == 0 {
		return nil, errors.New("cannot assemble a quiz without questions")
	}

	qs := make([]quiz.Question, len(questions))
	copy(qs, questions)

	return &quiz.Quiz{
		ID:        NewID(),
		Topic:     strings.TrimSpace(topic),
		Questions: qs,
		CreatedAt: now,
	}, nil
}
