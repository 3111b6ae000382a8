// Package picker is a menu screen used to choose a quiz or a result.
package picker

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizgen/internal/router"
	"github.com/abhisek/quizgen/internal/screen"
	"github.com/abhisek/quizgen/internal/ui/components"
	"github.com/abhisek/quizgen/internal/ui/layout"
	"github.com/abhisek/quizgen/internal/ui/theme"
)

// PickerScreen lists items under a heading.
type PickerScreen struct {
	title   string
	heading string
	empty   string
	menu    components.Menu
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)

// New creates a picker. empty is shown instead of the menu when there are
// no items.
func New(title, heading, empty string, items []components.MenuItem) *PickerScreen {
	return &PickerScreen{
		title:   title,
		heading: heading,
		empty:   empty,
		menu:    components.NewMenu(items),
	}
}

func (p *PickerScreen) Init() tea.Cmd { return nil }

func (p *PickerScreen) Title() string { return p.title }

func (p *PickerScreen) KeyHints() []layout.KeyHint {
	if len(p.menu.Items) == 0 {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (p *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc", "q":
			return p, router.Pop()
		}
	}

	var cmd tea.Cmd
	p.menu, cmd = p.menu.Update(msg)
	return p, cmd
}

func (p *PickerScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Render("  " + p.heading))
	b.WriteString("\n")
	b.WriteString(layout.Rule(width))
	b.WriteString("\n\n")

	if len(p.menu.Items) == 0 {
		b.WriteString(theme.Hint.Render("  " + p.empty))
		return b.String()
	}
	b.WriteString(p.menu.View())
	return b.String()
}
