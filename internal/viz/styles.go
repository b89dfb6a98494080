package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Layout styles. Colours that depend on the active theme are applied at
// render time through Theme.badge and Theme.dim.
var (
	canvasPane = lipgloss.NewStyle().Padding(1, 2)
	sidePane   = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			Padding(1, 2).
			Width(42)
	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle = lipgloss.NewStyle().Width(12)
	chartStyle = lipgloss.NewStyle().Padding(1, 0)
	keysStyle  = lipgloss.NewStyle().MarginTop(2)
)

type badge int

const (
	badgeLive badge = iota
	badgeHold
	badgeAlert
)

// badge styles the status line: live phases in the primary body colour,
// paused or replaying in the secondary one, errors and recording in the
// alert colour.
func (t Theme) badge(b badge) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	switch b {
	case badgeHold:
		return s.Foreground(t.Secondary)
	case badgeAlert:
		return s.Foreground(t.Alert)
	default:
		return s.Foreground(t.Primary)
	}
}

func (t Theme) dim() lipgloss.Style { return lipgloss.NewStyle().Foreground(t.Dim) }

var orbitGlyphs = []string{"◐", "◓", "◑", "◒"}

// orbitGlyph cycles a small rotating marker, one quarter turn per tick.
func orbitGlyph(tick int) string { return orbitGlyphs[tick%len(orbitGlyphs)] }

// rule draws a horizontal divider of the given width.
func rule(width int) string { return strings.Repeat("─", max(width, 0)) }
