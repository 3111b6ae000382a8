// Package take runs a quiz attempt one question at a time.
package take

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizgen/internal/logger"
	"github.com/abhisek/quizgen/internal/quiz"
	"github.com/abhisek/quizgen/internal/quizgen"
	"github.com/abhisek/quizgen/internal/router"
	"github.com/abhisek/quizgen/internal/screen"
	"github.com/abhisek/quizgen/internal/screens/results"
	"github.com/abhisek/quizgen/internal/ui/components"
	"github.com/abhisek/quizgen/internal/ui/layout"
	"github.com/abhisek/quizgen/internal/ui/theme"
)

// ResultSaver persists a finished attempt.
type ResultSaver interface {
	SaveResult(quiz.Result) error
}

// TakeScreen asks the questions of one quiz. Nothing is saved unless every
// question is answered.
type TakeScreen struct {
	quiz    *quiz.Quiz
	saver   ResultSaver
	log     *logger.Logger
	now     func() time.Time
	answers []int
	choice  components.MultiChoice
	confirm bool
}

var _ screen.Screen = (*TakeScreen)(nil)
var _ screen.KeyHintProvider = (*TakeScreen)(nil)
var _ screen.StatusProvider = (*TakeScreen)(nil)

// New creates a TakeScreen for q. log may be nil.
func New(q *quiz.Quiz, saver ResultSaver, log *logger.Logger) *TakeScreen {
	if log == nil {
		log = logger.Nop()
	}
	s := &TakeScreen{
		quiz:    q,
		saver:   saver,
		log:     log,
		now:     time.Now,
		answers: make([]int, 0, len(q.Questions)),
	}
	s.loadQuestion()
	return s
}

func (s *TakeScreen) loadQuestion() {
	if i := len(s.answers); i < len(s.quiz.Questions) {
		q := s.quiz.Questions[i]
		s.choice = components.NewMultiChoice(q.Text, q.Options)
	}
}

func (s *TakeScreen) Init() tea.Cmd { return nil }

func (s *TakeScreen) Title() string { return s.quiz.Topic }

func (s *TakeScreen) Status() string {
	return fmt.Sprintf("Q %d/%d", s.current()+1, len(s.quiz.Questions))
}

func (s *TakeScreen) current() int {
	if n := len(s.answers); n < len(s.quiz.Questions) {
		return n
	}
	return len(s.quiz.Questions) - 1
}

func (s *TakeScreen) KeyHints() []layout.KeyHint {
	if s.confirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Quit quiz"},
			{Key: "N", Description: "Keep going"},
		}
	}
	return []layout.KeyHint{
		{Key: "A-D", Description: "Answer"},
		{Key: "↑↓ Enter", Description: "Select"},
		{Key: "Esc", Description: "Quit"},
	}
}

// Answers returns the answers given so far.
func (s *TakeScreen) Answers() []int { return append([]int(nil), s.answers...) }

func (s *TakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	if len(s.quiz.Questions) == 0 {
		return s, router.Pop()
	}

	if s.confirm {
		switch kmsg.String() {
		case "y", "Y":
			s.log.Info("quiz cancelled", "quiz_id", s.quiz.ID, "answered", len(s.answers))
			return s, router.Pop()
		case "n", "N", "esc":
			s.confirm = false
		}
		return s, nil
	}

	if kmsg.String() == "esc" {
		s.confirm = true
		return s, nil
	}

	s.choice, _ = s.choice.Update(msg)
	if !s.choice.Answered() {
		return s, nil
	}

	s.answers = append(s.answers, s.choice.Chosen)
	if len(s.answers) < len(s.quiz.Questions) {
		s.loadQuestion()
		return s, nil
	}
	return s, s.finish()
}

// finish scores the attempt, saves it and moves to the results screen.
func (s *TakeScreen) finish() tea.Cmd {
	result, err := quiz.NewResult(s.quiz, quizgen.NewID(), s.answers, s.now())
	if err != nil {
		// Answers come from the option count, so this is a bug.
		s.log.Error("build result", "quiz_id", s.quiz.ID, "error", err)
		return router.Pop()
	}

	var saveErr error
	if s.saver != nil {
		saveErr = s.saver.SaveResult(result)
		if saveErr != nil {
			s.log.Warn("save result failed", "result_id", result.ID, "error", saveErr)
		}
	}
	return router.Replace(results.New(s.quiz, result, saveErr))
}

func (s *TakeScreen) View(width, height int) string {
	if s.confirm {
		return renderQuitConfirm(width)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar(
		fmt.Sprintf("  Question %d", s.current()+1), len(s.answers), len(s.quiz.Questions), width-4).View())
	b.WriteString("\n")
	b.WriteString(layout.Rule(width))
	b.WriteString("\n\n")

	for _, line := range strings.Split(s.choice.View(), "\n") {
		if line != "" {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("  Press A, B, C or D, or use the arrows and Enter"))
	return b.String()
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(layout.Centered("Quit this quiz?", theme.Body.Bold(true), width))
	b.WriteString("\n")
	b.WriteString(layout.Centered("Your answers so far will not be saved.", theme.Subtitle, width))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered("[Y] Yes, quit", theme.Incorrect, width))
	b.WriteString("\n")
	b.WriteString(layout.Centered("[N] No, keep going", theme.Selected, width))
	return b.String()
}
