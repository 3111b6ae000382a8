// Package topic asks for a new quiz topic and generates the quiz in the
// background.
package topic

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizgen/internal/logger"
	"github.com/abhisek/quizgen/internal/quiz"
	"github.com/abhisek/quizgen/internal/quizgen"
	"github.com/abhisek/quizgen/internal/router"
	"github.com/abhisek/quizgen/internal/screen"
	"github.com/abhisek/quizgen/internal/ui/components"
	"github.com/abhisek/quizgen/internal/ui/layout"
	"github.com/abhisek/quizgen/internal/ui/theme"
)

// Generator produces a quiz for a topic.
type Generator interface {
	GenerateRequest(ctx context.Context, req quizgen.Request) (*quiz.Quiz, error)
}

// QuizSaver persists a generated quiz and supplies the questions already
// asked on a topic.
type QuizSaver interface {
	SaveQuiz(*quiz.Quiz) error
	QuestionsForTopic(topic string) ([]string, error)
}

type phase int

const (
	phaseInput phase = iota
	phaseLoading
	phaseError
)

// quizReadyMsg carries the outcome of the background generation numbered run.
type quizReadyMsg struct {
	run  int
	Quiz *quiz.Quiz
	Err  error
}

// spinnerTickMsg animates the loading view.
type spinnerTickMsg struct{ run int }

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// TopicScreen collects a topic, generates a quiz, saves it and hands the
// quiz to next.
type TopicScreen struct {
	gen   Generator
	saver QuizSaver
	count int
	next  func(*quiz.Quiz) screen.Screen
	log   *logger.Logger

	input  components.TextInput
	phase  phase
	topic  string
	err    error
	frame  int
	cancel context.CancelFunc

	// run numbers generations so a result from a cancelled one is ignored.
	run int
}

var _ screen.Screen = (*TopicScreen)(nil)
var _ screen.KeyHintProvider = (*TopicScreen)(nil)

// New creates a TopicScreen generating count questions. next builds the
// screen that replaces this one once the quiz is saved. log may be nil.
func New(gen Generator, saver QuizSaver, count int, next func(*quiz.Quiz) screen.Screen, log *logger.Logger) *TopicScreen {
	if log == nil {
		log = logger.Nop()
	}
	return &TopicScreen{
		gen:   gen,
		saver: saver,
		count: count,
		next:  next,
		log:   log,
		input: components.NewTextInput("e.g. Photosynthesis, World War II, Go concurrency", quizgen.MaxTopicLength),
	}
}

func (s *TopicScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *TopicScreen) Title() string { return "New Quiz" }

func (s *TopicScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseLoading:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	case phaseError:
		return []layout.KeyHint{{Key: "any key", Description: "Try again"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Generate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TopicScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		return s.handleReady(msg)
	case spinnerTickMsg:
		if s.phase != phaseLoading || msg.run != s.run {
			return s, nil
		}
		s.frame = (s.frame + 1) % len(spinnerFrames)
		return s, spinnerTick(s.run)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseInput {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *TopicScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.phase {
	case phaseLoading:
		if msg.String() == "esc" {
			if s.cancel != nil {
				s.cancel()
			}
			s.phase = phaseInput
		}
		return s, nil

	case phaseError:
		s.phase = phaseInput
		s.err = nil
		return s, nil
	}

	switch msg.String() {
	case "esc":
		return s, router.Pop()
	case "enter":
		return s, s.submit()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submit runs the shape check locally and starts generation.
func (s *TopicScreen) submit() tea.Cmd {
	topic := s.input.Value()
	if err := quizgen.CheckTopic(topic); err != nil {
		s.phase = phaseError
		s.err = err
		return nil
	}

	var prior []string
	if s.saver != nil {
		var err error
		if prior, err = s.saver.QuestionsForTopic(topic); err != nil {
			s.log.Warn("load earlier questions", "topic", topic, "error", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.topic = topic
	s.phase = phaseLoading
	s.frame = 0
	s.run++

	gen, run := s.gen, s.run
	req := quizgen.Request{Topic: topic, Count: s.count, PriorQuestions: prior}
	return tea.Batch(
		func() tea.Msg {
			q, err := gen.GenerateRequest(ctx, req)
			return quizReadyMsg{run: run, Quiz: q, Err: err}
		},
		spinnerTick(run),
	)
}

func (s *TopicScreen) handleReady(msg quizReadyMsg) (screen.Screen, tea.Cmd) {
	if s.phase != phaseLoading || msg.run != s.run {
		// Cancelled while in flight.
		return s, nil
	}
	s.cancel = nil

	if msg.Err != nil {
		s.log.Warn("quiz generation failed", "topic", s.topic, "error", msg.Err)
		s.phase = phaseError
		s.err = msg.Err
		return s, nil
	}

	if s.saver != nil {
		if err := s.saver.SaveQuiz(msg.Quiz); err != nil {
			s.phase = phaseError
			s.err = err
			return s, nil
		}
	}
	return s, router.Replace(s.next(msg.Quiz))
}

func spinnerTick(run int) tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return spinnerTickMsg{run: run}
	})
}

func (s *TopicScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	switch s.phase {
	case phaseLoading:
		b.WriteString(layout.Centered(spinnerFrames[s.frame]+" Generating questions about "+s.topic+"...", theme.Selected, width))
		b.WriteString("\n\n")
		b.WriteString(layout.Centered("This can take a few seconds.", theme.Hint, width))

	case phaseError:
		b.WriteString(layout.Centered("Error: "+s.err.Error(), theme.ErrorText, width))
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(quizgen.Hint(s.err), theme.Hint, width))

	default:
		b.WriteString(theme.Title.Render("  What would you like to be quizzed on?"))
		b.WriteString("\n\n")
		b.WriteString("  " + s.input.View())
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("  " + questionsLabel(s.count)))
	}
	return b.String()
}

func questionsLabel(n int) string {
	if n == 1 {
		return "1 question will be generated."
	}
	return fmt.Sprintf("%d questions will be generated.", n)
}
