package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizgen/internal/quiz"
	"github.com/abhisek/quizgen/internal/ui/theme"
)

// MultiChoice is a lettered option selector. A letter key answers
// immediately; the arrow keys move the cursor and Enter answers with it.
type MultiChoice struct {
	Question string
	Options  []string
	Selected int

	// Chosen is the answered option, -1 until an answer is given.
	Chosen int
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question: question,
		Options:  options,
		Chosen:   -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Answered reports whether an option has been chosen.
func (m MultiChoice) Answered() bool {
	return m.Chosen >= 0
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Answered() {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Chosen = m.Selected
	default:
		if i, ok := letterIndex(key); ok && i < len(m.Options) {
			m.Selected = i
			m.Chosen = i
		}
	}

	return m, nil
}

// letterIndex maps "a"/"A" to 0, "b"/"B" to 1 and so on.
func letterIndex(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	c := key[0]
	switch {
	case c >= 'a' && c <= 'z':
		return int(c - 'a'), true
	case c >= 'A' && c <= 'Z':
		return int(c - 'A'), true
	}
	return 0, false
}

// View renders the question and its options with the cursor.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		style := theme.Unselected
		if i == m.Selected {
			prefix = "▸ "
			style = theme.Selected
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%s)  %s", prefix, quiz.OptionLabel(i), opt)))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderReviewedOptions renders options after the fact: the correct option
// is marked ✓ and a wrong chosen option ✗.
func RenderReviewedOptions(q quiz.Question, chosen int) string {
	var b strings.Builder
	for i, opt := range q.Options {
		marker := "  "
		style := theme.Muted
		switch {
		case i == q.CorrectIndex:
			marker = "✓ "
			style = theme.Correct
		case i == chosen:
			marker = "✗ "
			style = theme.Incorrect
		}
		b.WriteString(style.Render(fmt.Sprintf("   %s) %s%s", quiz.OptionLabel(i), marker, opt)))
		b.WriteString("\n")
	}
	return b.String()
}
