package take

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizgen/internal/quiz"
	"github.com/abhisek/quizgen/internal/router"
	"github.com/abhisek/quizgen/internal/screens/results"
)

type memSaver struct {
	saved []quiz.Result
	err   error
}

func (m *memSaver) SaveResult(r quiz.Result) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, r)
	return nil
}

func testQuiz() *quiz.Quiz {
	return &quiz.Quiz{
		ID:    "abcd1234",
		Topic: "Capitals",
		Questions: []quiz.Question{
			{Text: "Capital of France?", Options: []string{"Berlin", "Madrid", "Paris", "Rome"}, CorrectIndex: 2, Explanation: "Paris."},
			{Text: "Capital of Japan?", Options: []string{"Tokyo", "Kyoto", "Osaka", "Nagoya"}, CorrectIndex: 0, Explanation: "Tokyo."},
			{Text: "Capital of Canada?", Options: []string{"Toronto", "Ottawa", "Vancouver", "Montreal"}, CorrectIndex: 1, Explanation: "Ottawa."},
		},
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func press(t *testing.T, s *TakeScreen, msgs ...tea.Msg) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, m := range msgs {
		_, cmd = s.Update(m)
	}
	return cmd
}

func TestTake_LetterKeysAnswerAndAdvance(t *testing.T) {
	saver := &memSaver{}
	s := New(testQuiz(), saver, nil)

	press(t, s, key('c'))
	if got := s.Answers(); len(got) != 1 || got[0] != 2 {
		t.Fatalf("answers after 'c' = %v, want [2]", got)
	}
	if s.Status() != "Q 2/3" {
		t.Errorf("Status = %q, want %q", s.Status(), "Q 2/3")
	}

	press(t, s, key('B'))
	if got := s.Answers(); got[1] != 1 {
		t.Errorf("answer after 'B' = %d, want 1", got[1])
	}
}

func TestTake_ArrowsAndEnter(t *testing.T) {
	s := New(testQuiz(), &memSaver{}, nil)

	press(t, s,
		tea.KeyPressMsg{Code: tea.KeyDown},
		tea.KeyPressMsg{Code: tea.KeyDown},
		tea.KeyPressMsg{Code: tea.KeyUp},
		tea.KeyPressMsg{Code: tea.KeyEnter},
	)
	if got := s.Answers(); len(got) != 1 || got[0] != 1 {
		t.Fatalf("answers = %v, want [1]", got)
	}
}

func TestTake_IgnoresOutOfRangeLetters(t *testing.T) {
	s := New(testQuiz(), &memSaver{}, nil)
	press(t, s, key('e'), key('z'), key('1'))
	if len(s.Answers()) != 0 {
		t.Errorf("expected no answers, got %v", s.Answers())
	}
}

func TestTake_CompletionSavesAndShowsResults(t *testing.T) {
	saver := &memSaver{}
	s := New(testQuiz(), saver, nil)
	fixed := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	cmd := press(t, s, key('c'), key('a'), key('d'))
	if cmd == nil {
		t.Fatal("expected a command after the last answer")
	}

	if len(saver.saved) != 1 {
		t.Fatalf("saved %d results, want 1", len(saver.saved))
	}
	r := saver.saved[0]
	if r.QuizID != "abcd1234" || r.Score != 2 || r.TotalQuestions != 3 {
		t.Errorf("result = %+v", r)
	}
	if len(r.ID) != 8 {
		t.Errorf("result ID %q should be 8 characters", r.ID)
	}
	if !r.CompletedAt.Equal(fixed) {
		t.Errorf("CompletedAt = %v, want %v", r.CompletedAt, fixed)
	}

	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*results.ResultsScreen); !ok {
		t.Errorf("expected results screen, got %T", msg.Screen)
	}
}

func TestTake_SaveFailureStillShowsResults(t *testing.T) {
	s := New(testQuiz(), &memSaver{err: errors.New("disk full")}, nil)

	cmd := press(t, s, key('a'), key('a'), key('a'))
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	view := msg.Screen.View(80, 24)
	if !strings.Contains(view, "disk full") {
		t.Error("expected the save error to be shown on the results screen")
	}
}

func TestTake_EscConfirmCancel(t *testing.T) {
	saver := &memSaver{}
	s := New(testQuiz(), saver, nil)

	press(t, s, key('a'), tea.KeyPressMsg{Code: tea.KeyEscape})
	if !s.confirm {
		t.Fatal("expected quit confirmation after Esc")
	}
	if !strings.Contains(s.View(80, 24), "Quit this quiz?") {
		t.Error("expected confirmation view")
	}

	// Letters do not answer while confirming.
	press(t, s, key('b'))
	if len(s.Answers()) != 1 {
		t.Errorf("answers changed during confirmation: %v", s.Answers())
	}

	press(t, s, key('n'))
	if s.confirm {
		t.Error("expected confirmation dismissed by N")
	}

	press(t, s, tea.KeyPressMsg{Code: tea.KeyEscape})
	cmd := press(t, s, key('y'))
	if cmd == nil {
		t.Fatal("expected pop command on Y")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
	if len(saver.saved) != 0 {
		t.Error("a cancelled quiz must not save a result")
	}
}

func TestTake_View(t *testing.T) {
	s := New(testQuiz(), nil, nil)
	view := s.View(80, 24)
	for _, want := range []string{"Capital of France?", "A)  Berlin", "D)  Rome", "0/3"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestTake_KeyHints(t *testing.T) {
	s := New(testQuiz(), nil, nil)
	if len(s.KeyHints()) != 3 {
		t.Errorf("KeyHints length = %d, want 3", len(s.KeyHints()))
	}
	s.confirm = true
	if len(s.KeyHints()) != 2 {
		t.Errorf("confirm KeyHints length = %d, want 2", len(s.KeyHints()))
	}
}
