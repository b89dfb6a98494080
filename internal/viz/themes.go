package viz

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a colour scheme shared by the terminal view and image export.
// Primary and Secondary paint the two bodies, Remnant the merged object.
type Theme struct {
	Name       string
	Background lipgloss.Color
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Remnant    lipgloss.Color
	Text       lipgloss.Color
	Dim        lipgloss.Color
	Alert      lipgloss.Color
}

var (
	// ThemeNight is white on black, the classic look of the animations.
	ThemeNight = Theme{
		Name:       "night",
		Background: "#000000",
		Primary:    "#ffffff",
		Secondary:  "#c8c8c8",
		Remnant:    "#ffffff",
		Text:       "#ffffff",
		Dim:        "#808080",
		Alert:      "#ff5050",
	}

	ThemeCyberpunk = Theme{
		Name:       "cyberpunk",
		Background: "#0a0a0a",
		Primary:    "#ff00ff",
		Secondary:  "#00ffff",
		Remnant:    "#ffff00",
		Text:       "#f0f0f0",
		Dim:        "#5a5a7a",
		Alert:      "#ff3030",
	}

	// ThemePaper prints dark bodies on white, for figures and slides.
	ThemePaper = Theme{
		Name:       "paper",
		Background: "#ffffff",
		Primary:    "#1f3a93",
		Secondary:  "#c0392b",
		Remnant:    "#2c2c2c",
		Text:       "#000000",
		Dim:        "#9a9a9a",
		Alert:      "#d35400",
	}

	Themes = []Theme{ThemeNight, ThemeCyberpunk, ThemePaper}
)

// GetTheme looks a theme up by name, falling back to ThemeNight.
func GetTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return ThemeNight, false
}

func ThemeNames() []string {
	names := make([]string, 0, len(Themes))
	for _, t := range Themes {
		names = append(names, t.Name)
	}
	return names
}

// RGB decodes a "#rrggbb" colour. Anything it cannot parse is white.
func RGB(c lipgloss.Color) (r, g, b uint8) {
	s := string(c)
	if len(s) != 7 || s[0] != '#' {
		return 0xff, 0xff, 0xff
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0xff, 0xff, 0xff
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}
