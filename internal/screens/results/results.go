// Package results shows the score of a finished attempt and offers a review.
package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizgen/internal/quiz"
	"github.com/abhisek/quizgen/internal/router"
	"github.com/abhisek/quizgen/internal/screen"
	"github.com/abhisek/quizgen/internal/screens/review"
	"github.com/abhisek/quizgen/internal/ui/layout"
	"github.com/abhisek/quizgen/internal/ui/theme"
)

// ResultsScreen displays one result.
type ResultsScreen struct {
	quiz    *quiz.Quiz
	result  quiz.Result
	saveErr error
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a results screen. saveErr is shown as a warning when the
// result could not be stored.
func New(q *quiz.Quiz, result quiz.Result, saveErr error) *ResultsScreen {
	return &ResultsScreen{quiz: q, result: result, saveErr: saveErr}
}

func (s *ResultsScreen) Init() tea.Cmd { return nil }

func (s *ResultsScreen) Title() string { return "Quiz Results" }

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Y/Enter", Description: "Review answers"},
		{Key: "N/Esc", Description: "Close"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "y", "Y", "enter":
		return s, router.Push(review.New(s.quiz, s.result))
	case "n", "N", "esc", "q":
		return s, tea.Quit
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	pct := s.result.Percent()

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(s.quiz.Topic, theme.Title, width))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(
		fmt.Sprintf("Your Score: %d/%d (%.1f%%)", s.result.Score, s.result.TotalQuestions, pct),
		theme.ScoreStyle(pct), width))
	b.WriteString("\n")
	b.WriteString(layout.Centered(quiz.Rating(pct), theme.Body, width))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(
		"Completed: "+s.result.CompletedAt.Local().Format("2006-01-02 15:04:05"),
		theme.Subtitle, width))
	b.WriteString("\n")

	if s.saveErr != nil {
		b.WriteString("\n")
		b.WriteString(layout.Centered("Warning: result not saved: "+s.saveErr.Error(), theme.Warning, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(layout.Centered("Would you like to review the answers with explanations? [Y/n]", theme.Hint, width))
	return b.String()
}
