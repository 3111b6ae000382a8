package picker

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizgen/internal/router"
	"github.com/abhisek/quizgen/internal/ui/components"
)

type pickedMsg string

func items() []components.MenuItem {
	pick := func(s string) func() tea.Cmd {
		return func() tea.Cmd { return func() tea.Msg { return pickedMsg(s) } }
	}
	return []components.MenuItem{
		{Label: "Photosynthesis", Detail: "(5 questions)", Action: pick("a")},
		{Label: "World War II", Detail: "(10 questions)", Action: pick("b")},
		{Label: "Generate new quiz", Action: pick("new")},
	}
}

func TestPicker_EnterSelects(t *testing.T) {
	p := New("Take a Quiz", "Recent quizzes", "none", items())
	p.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if got := cmd(); got != pickedMsg("b") {
		t.Errorf("picked %v, want b", got)
	}
}

func TestPicker_NumberSelects(t *testing.T) {
	p := New("Take a Quiz", "Recent quizzes", "none", items())
	_, cmd := p.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	if cmd == nil {
		t.Fatal("expected a command on '3'")
	}
	if got := cmd(); got != pickedMsg("new") {
		t.Errorf("picked %v, want new", got)
	}

	_, cmd = p.Update(tea.KeyPressMsg{Code: '7', Text: "7"})
	if cmd != nil {
		t.Error("expected no command for a number past the end")
	}
}

func TestPicker_EscPops(t *testing.T) {
	p := New("Take a Quiz", "Recent quizzes", "none", items())
	_, cmd := p.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestPicker_View(t *testing.T) {
	p := New("Take a Quiz", "Recent quizzes", "none", items())
	view := p.View(80, 24)
	for _, want := range []string{"Recent quizzes", "1. Photosynthesis", "(5 questions)", "3. Generate new quiz"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestPicker_Empty(t *testing.T) {
	p := New("Review", "Recent results", "No quiz results found. Take a quiz first!", nil)
	if !strings.Contains(p.View(80, 24), "Take a quiz first!") {
		t.Error("expected empty message")
	}
	if len(p.KeyHints()) != 1 {
		t.Errorf("KeyHints length = %d, want 1", len(p.KeyHints()))
	}
}
