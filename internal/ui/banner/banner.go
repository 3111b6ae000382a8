// Package banner renders the quizgen logo.
package banner

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizgen/internal/ui/theme"
)

const bannerArt = `
  ██████╗ ██╗   ██╗██╗███████╗ ██████╗ ███████╗███╗   ██╗
 ██╔═══██╗██║   ██║██║╚══███╔╝██╔════╝ ██╔════╝████╗  ██║
 ██║   ██║██║   ██║██║  ███╔╝ ██║  ███╗█████╗  ██╔██╗ ██║
 ██║▄▄ ██║██║   ██║██║ ███╔╝  ██║   ██║██╔══╝  ██║╚██╗██║
 ╚██████╔╝╚██████╔╝██║███████╗╚██████╔╝███████╗██║ ╚████║
  ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝ ╚═════╝ ╚══════╝╚═╝  ╚═══╝`

const bannerCompact = "Q U I Z G E N"

// MinArtWidth is the narrowest terminal that gets the full logo.
const MinArtWidth = 60

// Render returns the banner in the primary color, falling back to a
// compact form below MinArtWidth columns.
func Render(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < MinArtWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
