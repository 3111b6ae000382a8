// Package review shows a completed attempt one question at a time with the
// correct answers and explanations.
package review

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizgen/internal/quiz"
	"github.com/abhisek/quizgen/internal/router"
	"github.com/abhisek/quizgen/internal/screen"
	"github.com/abhisek/quizgen/internal/ui/components"
	"github.com/abhisek/quizgen/internal/ui/layout"
	"github.com/abhisek/quizgen/internal/ui/theme"
)

// ReviewScreen walks through the questions of one result.
type ReviewScreen struct {
	quiz   *quiz.Quiz
	result quiz.Result
	index  int
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)
var _ screen.StatusProvider = (*ReviewScreen)(nil)

// New creates a review of result, which must belong to q.
func New(q *quiz.Quiz, result quiz.Result) *ReviewScreen {
	return &ReviewScreen{quiz: q, result: result}
}

func (r *ReviewScreen) Init() tea.Cmd { return nil }

func (r *ReviewScreen) Title() string { return "Review: " + r.quiz.Topic }

func (r *ReviewScreen) Status() string {
	return fmt.Sprintf("%d/%d correct", r.result.Score, r.result.TotalQuestions)
}

func (r *ReviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Previous/next question"},
		{Key: "Esc", Description: "Done"},
	}
}

// Index returns the question being shown.
func (r *ReviewScreen) Index() int { return r.index }

func (r *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}

	switch kmsg.String() {
	case "up", "k", "left", "h", "p":
		if r.index > 0 {
			r.index--
		}
	case "down", "j", "right", "l", "n", "enter", "space":
		if r.index < len(r.quiz.Questions)-1 {
			r.index++
		}
	case "home", "g":
		r.index = 0
	case "end", "G":
		r.index = len(r.quiz.Questions) - 1
	case "esc", "q":
		return r, router.Pop()
	}
	return r, nil
}

// answer returns the recorded answer for question i, -1 when missing.
func (r *ReviewScreen) answer(i int) int {
	if i < len(r.result.UserAnswers) {
		return r.result.UserAnswers[i]
	}
	return -1
}

func (r *ReviewScreen) View(width, height int) string {
	if len(r.quiz.Questions) == 0 {
		return theme.Hint.Render("\n  This quiz has no questions.")
	}

	q := r.quiz.Questions[r.index]
	chosen := r.answer(r.index)

	var b strings.Builder
	b.WriteString("\n")

	status := theme.Incorrect.Render("✗ INCORRECT")
	if q.IsCorrect(chosen) {
		status = theme.Correct.Render("✓ CORRECT")
	}
	b.WriteString(fmt.Sprintf("  Q%d of %d   %s\n", r.index+1, len(r.quiz.Questions), status))
	b.WriteString(layout.Rule(width))
	b.WriteString("\n\n")

	textWidth := width - 6
	if textWidth < 20 {
		textWidth = 20
	}
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(textWidth).
		PaddingLeft(2).
		Render(q.Text))
	b.WriteString("\n\n")

	b.WriteString(components.RenderReviewedOptions(q, chosen))
	if chosen < 0 {
		b.WriteString(theme.Hint.Render("   (no answer recorded)"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(
		theme.Explanation.Width(textWidth).Render("Explanation: " + q.Explanation)))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("  %s", r.dots())))
	return b.String()
}

// dots renders one marker per question, correct or not, with the current
// question highlighted.
func (r *ReviewScreen) dots() string {
	parts := make([]string, len(r.quiz.Questions))
	for i, q := range r.quiz.Questions {
		mark := theme.Incorrect.Render("●")
		if q.IsCorrect(r.answer(i)) {
			mark = theme.Correct.Render("●")
		}
		if i == r.index {
			mark = "[" + mark + "]"
		}
		parts[i] = mark
	}
	return strings.Join(parts, " ")
}
