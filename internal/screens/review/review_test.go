package review

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizgen/internal/quiz"
	"github.com/abhisek/quizgen/internal/router"
)

func testReview() *ReviewScreen {
	q := &quiz.Quiz{
		ID:    "q1",
		Topic: "Chemistry",
		Questions: []quiz.Question{
			{Text: "Symbol for gold?", Options: []string{"Ag", "Au", "Gd", "Go"}, CorrectIndex: 1, Explanation: "Au comes from aurum."},
			{Text: "Water formula?", Options: []string{"H2O", "CO2", "NaCl", "O2"}, CorrectIndex: 0, Explanation: "Two hydrogens, one oxygen."},
		},
	}
	r := quiz.Result{QuizID: "q1", UserAnswers: []int{1, 3}, Score: 1, TotalQuestions: 2}
	return New(q, r)
}

func TestReview_FirstQuestionCorrect(t *testing.T) {
	view := testReview().View(100, 30)
	for _, want := range []string{"Q1 of 2", "CORRECT", "Symbol for gold?", "✓ Au", "Au comes from aurum."} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "✗") {
		t.Error("a correct answer should not show a wrong marker")
	}
}

func TestReview_WrongAnswerMarked(t *testing.T) {
	s := testReview()
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})

	view := s.View(100, 30)
	for _, want := range []string{"Q2 of 2", "INCORRECT", "✓ H2O", "✗ O2"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestReview_NavigationClamps(t *testing.T) {
	s := testReview()

	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.Index() != 0 {
		t.Errorf("index = %d after up at start, want 0", s.Index())
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.Index() != 1 {
		t.Errorf("index = %d after down past end, want 1", s.Index())
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.Index() != 0 {
		t.Errorf("index = %d after up, want 0", s.Index())
	}
}

func TestReview_EscPops(t *testing.T) {
	_, cmd := testReview().Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestReview_MissingAnswer(t *testing.T) {
	s := testReview()
	s.result.UserAnswers = []int{1}
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})

	view := s.View(100, 30)
	if !strings.Contains(view, "no answer recorded") {
		t.Error("expected a note for the missing answer")
	}
}

func TestReview_Status(t *testing.T) {
	if got := testReview().Status(); got != "1/2 correct" {
		t.Errorf("Status = %q", got)
	}
}
