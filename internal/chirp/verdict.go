package chirp

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
)

// Result is the feedback shown for a match score.
type Result struct {
	Match   float64 // rounded to two decimals
	Message string
	Color   lipgloss.Color
}

// Percent is the match as a whole percentage.
func (r Result) Percent() int { return int(math.Round(r.Match * 100)) }

func (r Result) String() string {
	return fmt.Sprintf("match = %d%%  %s", r.Percent(), r.Message)
}

// Render styles the message in its band colour.
func (r Result) Render() string {
	return lipgloss.NewStyle().Bold(true).Foreground(r.Color).Render(r.Message)
}

// Verdict rounds match to two decimals and picks the feedback band.
func Verdict(match float64) Result {
	m := math.Round(match*100) / 100
	r := Result{Match: m}
	switch {
	case m > 0 && m <= 0.25:
		r.Message, r.Color = "Different chirps, try again!", lipgloss.Color("#ff0000")
	case m > 0.25 && m <= 0.5:
		r.Message, r.Color = "Slight overlap, try again!", lipgloss.Color("#ff8c00")
	case m > 0.5 && m <= 0.75:
		r.Message, r.Color = "Getting closer... try again!", lipgloss.Color("#ffa500")
	case m > 0.75 && m < 1:
		r.Message, r.Color = "Almost there... try again!", lipgloss.Color("#ffd700")
	case m == 1:
		r.Message, r.Color = "Perfect!", lipgloss.Color("#008000")
	default:
		r.Message, r.Color = "Calculating Match...", lipgloss.Color("#888888")
	}
	return r
}
