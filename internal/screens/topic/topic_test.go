package topic

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizgen/internal/quiz"
	"github.com/abhisek/quizgen/internal/quizgen"
	"github.com/abhisek/quizgen/internal/router"
	"github.com/abhisek/quizgen/internal/screen"
)

type fakeGen struct {
	quiz  *quiz.Quiz
	err   error
	calls []string
	prior [][]string
}

func (f *fakeGen) GenerateRequest(_ context.Context, req quizgen.Request) (*quiz.Quiz, error) {
	f.calls = append(f.calls, req.Topic)
	f.prior = append(f.prior, req.PriorQuestions)
	return f.quiz, f.err
}

type fakeSaver struct {
	saved    []*quiz.Quiz
	err      error
	asked    map[string][]string
	askedErr error
}

func (f *fakeSaver) QuestionsForTopic(topic string) ([]string, error) {
	return f.asked[topic], f.askedErr
}

func (f *fakeSaver) SaveQuiz(q *quiz.Quiz) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, q)
	return nil
}

type nextScreen struct{ q *quiz.Quiz }

func (n *nextScreen) Init() tea.Cmd                           { return nil }
func (n *nextScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return n, nil }
func (n *nextScreen) View(int, int) string                    { return "" }
func (n *nextScreen) Title() string                           { return "next" }

func newScreen(gen *fakeGen, saver *fakeSaver) *TopicScreen {
	return New(gen, saver, 5, func(q *quiz.Quiz) screen.Screen { return &nextScreen{q: q} }, nil)
}

// runBatch executes cmd and returns the generation outcome, skipping the
// spinner tick.
func runBatch(t *testing.T, cmd tea.Cmd) quizReadyMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected BatchMsg, got %T", cmd())
	}
	msg, ok := batch[0]().(quizReadyMsg)
	if !ok {
		t.Fatalf("expected quizReadyMsg first in batch")
	}
	return msg
}

func TestTopic_GeneratesSavesAndReplaces(t *testing.T) {
	q := &quiz.Quiz{ID: "abcd1234", Topic: "Volcanoes"}
	gen := &fakeGen{quiz: q}
	saver := &fakeSaver{}
	s := newScreen(gen, saver)

	s.input.SetValue("  Volcanoes ")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.phase != phaseLoading {
		t.Fatalf("phase = %v, want loading", s.phase)
	}
	if !strings.Contains(s.View(80, 24), "Generating questions about Volcanoes") {
		t.Error("expected loading view")
	}

	ready := runBatch(t, cmd)
	if len(gen.calls) != 1 || gen.calls[0] != "Volcanoes" {
		t.Errorf("generator calls = %v", gen.calls)
	}

	_, cmd = s.Update(ready)
	if len(saver.saved) != 1 || saver.saved[0] != q {
		t.Fatalf("saved = %v", saver.saved)
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if next, ok := msg.Screen.(*nextScreen); !ok || next.q != q {
		t.Errorf("next screen = %#v", msg.Screen)
	}
}

func TestTopic_ShapeCheckBeforeGenerating(t *testing.T) {
	gen := &fakeGen{}
	s := newScreen(gen, &fakeSaver{})

	s.input.SetValue("x")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no command for a too-short topic")
	}
	if s.phase != phaseError {
		t.Fatalf("phase = %v, want error", s.phase)
	}
	if len(gen.calls) != 0 {
		t.Error("generator must not be called")
	}

	s.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	if s.phase != phaseInput {
		t.Error("any key should return to input")
	}
}

func TestTopic_GenerationErrorShowsHint(t *testing.T) {
	gen := &fakeGen{err: &quizgen.InvalidTopicError{Topic: "asdf", Reason: "gibberish", Suggestion: "Try 'Geology'"}}
	saver := &fakeSaver{}
	s := newScreen(gen, saver)

	s.input.SetValue("asdf")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s.Update(runBatch(t, cmd))

	if s.phase != phaseError {
		t.Fatalf("phase = %v, want error", s.phase)
	}
	view := s.View(100, 24)
	if !strings.Contains(view, "gibberish") || !strings.Contains(view, "Try 'Geology'") {
		t.Errorf("error view missing reason or suggestion:\n%s", view)
	}
	if len(saver.saved) != 0 {
		t.Error("nothing should be saved on failure")
	}
}

func TestTopic_TransportErrorDefaultHint(t *testing.T) {
	s := newScreen(&fakeGen{err: errors.New("connection refused")}, &fakeSaver{})
	s.input.SetValue("Volcanoes")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s.Update(runBatch(t, cmd))

	if !strings.Contains(s.View(100, 24), quizgen.DefaultHint) {
		t.Error("expected the default hint")
	}
}

func TestTopic_SaveError(t *testing.T) {
	s := newScreen(&fakeGen{quiz: &quiz.Quiz{ID: "x"}}, &fakeSaver{err: errors.New("read-only file system")})
	s.input.SetValue("Volcanoes")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	_, cmd = s.Update(runBatch(t, cmd))

	if cmd != nil {
		t.Error("expected no navigation when saving fails")
	}
	if s.phase != phaseError {
		t.Errorf("phase = %v, want error", s.phase)
	}
}

func TestTopic_CancelWhileLoading(t *testing.T) {
	gen := &fakeGen{quiz: &quiz.Quiz{ID: "x"}}
	saver := &fakeSaver{}
	s := newScreen(gen, saver)

	s.input.SetValue("Volcanoes")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if s.phase != phaseInput {
		t.Fatalf("phase = %v, want input after cancel", s.phase)
	}

	_, next := s.Update(runBatch(t, cmd))
	if next != nil || len(saver.saved) != 0 {
		t.Error("a late result after cancel must be ignored")
	}
}

func TestTopic_EscPops(t *testing.T) {
	s := newScreen(&fakeGen{}, &fakeSaver{})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestTopic_PassesEarlierQuestions(t *testing.T) {
	gen := &fakeGen{quiz: &quiz.Quiz{ID: "x"}}
	saver := &fakeSaver{asked: map[string][]string{
		"Volcanoes": {"What is magma?", "Name an active volcano."},
	}}
	s := newScreen(gen, saver)

	s.input.SetValue("Volcanoes")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	runBatch(t, cmd)

	if len(gen.prior) != 1 {
		t.Fatalf("generator calls = %d, want 1", len(gen.prior))
	}
	got := gen.prior[0]
	if len(got) != 2 || got[0] != "What is magma?" || got[1] != "Name an active volcano." {
		t.Errorf("prior questions = %v", got)
	}
}

func TestTopic_EarlierQuestionsErrorStillGenerates(t *testing.T) {
	gen := &fakeGen{quiz: &quiz.Quiz{ID: "x"}}
	s := newScreen(gen, &fakeSaver{askedErr: errors.New("disk gone")})

	s.input.SetValue("Volcanoes")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	runBatch(t, cmd)

	if len(gen.calls) != 1 || len(gen.prior[0]) != 0 {
		t.Errorf("calls = %v prior = %v", gen.calls, gen.prior)
	}
}

func TestTopic_ResultFromCancelledRunIgnored(t *testing.T) {
	first := &quiz.Quiz{ID: "first"}
	gen := &fakeGen{quiz: first}
	saver := &fakeSaver{}
	s := newScreen(gen, saver)

	s.input.SetValue("Volcanoes")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	stale := runBatch(t, cmd)

	s.input.SetValue("Glaciers")
	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.phase != phaseLoading {
		t.Fatalf("phase = %v, want loading", s.phase)
	}

	if _, next := s.Update(stale); next != nil {
		t.Error("result from the cancelled run must not navigate")
	}
	if s.phase != phaseLoading || len(saver.saved) != 0 {
		t.Fatalf("phase = %v saved = %v after stale result", s.phase, saver.saved)
	}

	second := &quiz.Quiz{ID: "second"}
	gen.quiz = second
	_, next := s.Update(runBatch(t, cmd))
	if next == nil {
		t.Fatal("current run should navigate")
	}
	if len(saver.saved) != 1 || saver.saved[0] != second {
		t.Errorf("saved = %v, want the second quiz", saver.saved)
	}
}

func TestTopic_SpinnerTickFromCancelledRunStops(t *testing.T) {
	s := newScreen(&fakeGen{quiz: &quiz.Quiz{ID: "x"}}, &fakeSaver{})

	s.input.SetValue("Volcanoes")
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	s.input.SetValue("Glaciers")
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if _, cmd := s.Update(spinnerTickMsg{run: 1}); cmd != nil {
		t.Error("tick from the cancelled run should not reschedule")
	}
	if _, cmd := s.Update(spinnerTickMsg{run: 2}); cmd == nil {
		t.Error("tick from the current run should reschedule")
	}
	if s.frame != 1 {
		t.Errorf("frame = %d, want 1", s.frame)
	}
}
