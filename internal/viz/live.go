package viz

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/chirpsim/internal/dynamo"
)

const (
	width           = 60
	height          = 20
	historyCapacity = 600
)

type TickMsg time.Time

// Recorder receives the frames captured between two presses of the record key.
type Recorder func(frames []RenderFrame) error

// LiveOptions configures a [Model].
type LiveOptions struct {
	Title         string
	StepsPerTick  int // kinematics steps per redraw
	TickRate      time.Duration
	Ringdown      *Ringdown
	RingdownTicks int
	Theme         Theme
	Recorder      Recorder
}

type phase int

const (
	phaseOrbit phase = iota
	phaseRingdown
	phaseDone
)

// Model animates a kinematics stepper in the terminal, followed by an
// optional ringdown once the stepper refuses to advance.
type Model struct {
	kin      dynamo.Kinematics
	artist   *BinaryArtist
	opts     LiveOptions
	canvas   *Canvas
	phase    phase
	ringTick int
	zoom     float64

	running   bool
	playHead  int // -1 follows the latest frame
	separated []float64
	history   []RenderFrame
	recording bool
	captured  []RenderFrame
	status    string
	showHelp  bool
	themeIdx  int
	err       error
}

// NewModel wraps an already constructed stepper. The first frame is
// recorded immediately when the history is empty.
func NewModel(k dynamo.Kinematics, artist *BinaryArtist, opts LiveOptions) Model {
	if opts.StepsPerTick < 1 {
		opts.StepsPerTick = 1
	}
	if opts.TickRate <= 0 {
		opts.TickRate = time.Second / 30
	}
	if opts.RingdownTicks <= 0 {
		opts.RingdownTicks = 90
	}
	if opts.Theme.Name == "" {
		opts.Theme = ThemeNight
	}
	if k.Frames() == 0 {
		_ = k.Evolve(1)
	}

	m := Model{
		kin:       k,
		artist:    artist,
		opts:      opts,
		canvas:    NewCanvas(width, height),
		zoom:      1,
		running:   true,
		playHead:  -1,
		separated: make([]float64, 0, historyCapacity),
		history:   make([]RenderFrame, 0, historyCapacity),
	}
	for i, t := range Themes {
		if t.Name == opts.Theme.Name {
			m.themeIdx = i
		}
	}
	m.push(artist.Frame(k.Frames() - 1))
	return m
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.opts.TickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "+", "=":
			m.zoom = math.Min(10, m.zoom*1.2)
		case "-", "_":
			m.zoom = math.Max(0.1, m.zoom/1.2)
		case "t":
			m.themeIdx = (m.themeIdx + 1) % len(Themes)
			m.opts.Theme = Themes[m.themeIdx]
		case "g":
			m.toggleRecording()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			if m.playHead == -1 {
				m.advance()
			} else {
				m.playHead++
				if m.playHead >= len(m.history) {
					m.playHead = -1
				}
			}
		}
		if m.recording {
			m.captured = append(m.captured, m.current())
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) advance() {
	switch m.phase {
	case phaseOrbit:
		for i := 0; i < m.opts.StepsPerTick; i++ {
			if err := m.kin.Evolve(1); err != nil {
				if errors.Is(err, dynamo.ErrMerged) && m.opts.Ringdown != nil {
					m.phase = phaseRingdown
				} else {
					m.phase = phaseDone
				}
				if !errors.Is(err, dynamo.ErrMerged) {
					m.err = err
				}
				break
			}
		}
		m.push(m.artist.Frame(m.kin.Frames() - 1))
	case phaseRingdown:
		m.push(m.opts.Ringdown.Frame(m.ringTick))
		m.ringTick++
		if m.ringTick >= m.opts.RingdownTicks {
			m.phase = phaseDone
		}
	}
}

func (m *Model) push(f RenderFrame) {
	if len(m.history) >= historyCapacity {
		m.history = m.history[1:]
		m.separated = m.separated[1:]
	}
	m.history = append(m.history, f)
	m.separated = append(m.separated, separation(f))
}

func separation(f RenderFrame) float64 {
	if len(f.Disks) < 2 {
		return 0
	}
	return math.Hypot(f.Disks[0].X-f.Disks[1].X, f.Disks[0].Y-f.Disks[1].Y)
}

func (m *Model) scrub(dir int) {
	if len(m.history) == 0 {
		return
	}
	if m.playHead == -1 {
		m.playHead = len(m.history) - 1
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.history) {
		m.playHead = -1
	}
}

func (m *Model) toggleRecording() {
	if !m.recording {
		m.recording = true
		m.captured = make([]RenderFrame, 0, historyCapacity)
		m.status = ""
		return
	}
	m.recording = false
	if m.opts.Recorder != nil && len(m.captured) > 0 {
		if err := m.opts.Recorder(m.captured); err != nil {
			m.status = "record failed: " + err.Error()
		} else {
			m.status = fmt.Sprintf("saved %d frames", len(m.captured))
		}
	}
	m.captured = nil
}

func (m Model) current() RenderFrame {
	if m.playHead >= 0 && m.playHead < len(m.history) {
		return m.history[m.playHead]
	}
	return m.history[len(m.history)-1]
}

// viewFor keeps the whole orbit in frame. During ringdown the view stays on
// the largest remnant so the oscillation is visible.
func (m Model) viewFor(f RenderFrame) View {
	pw, ph := m.canvas.PixelSize()
	e := OrbitExtent(f)
	if len(f.Disks) == 0 && m.opts.Ringdown != nil {
		e = OrbitExtent(m.opts.Ringdown.Frame(0))
	}
	v := FitView(e, pw, ph, 0.05)
	v.Scale *= m.zoom
	return v
}

func (m Model) View() string {
	f := m.current()
	m.canvas.Clear()
	Draw(m.canvas, f, m.viewFor(f))

	th := m.opts.Theme
	value := lipgloss.NewStyle().Foreground(th.Text)
	label := labelStyle.Foreground(th.Dim)

	title := m.opts.Title
	if title == "" {
		title = "binary"
	}

	var s strings.Builder
	s.WriteString(titleStyle.Foreground(th.Secondary).Render(strings.ToUpper(title)) + "\n")
	s.WriteString(m.statusLine() + "\n\n")

	if len(m.separated) > 1 {
		chart := asciigraph.Plot(m.separated, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Separation"))
		s.WriteString(chartStyle.Foreground(th.Primary).Render(chart) + "\n\n")
	}

	st := m.kin.CurrentState()
	rows := [][2]string{
		{"Frame", fmt.Sprintf("%d", m.kin.Frames())},
		{"Time", fmt.Sprintf("%.4g", st.Time)},
		{"Omega", fmt.Sprintf("%.4g", st.Omega)},
		{"Radius", fmt.Sprintf("%.4g", st.Radius)},
		{"Theme", th.Name},
	}
	for _, r := range rows {
		s.WriteString(label.Render(r[0]) + value.Render(r[1]) + "\n")
	}
	if m.status != "" {
		s.WriteString("\n" + th.dim().Render(m.status) + "\n")
	}
	s.WriteString(keysStyle.Foreground(th.Dim).Render("\n" + rule(24) + "\nSP:Pause Q:Quit T:Theme\nG:Record [ ]:Scrub +/-:Zoom"))

	canvasView := canvasPane.Foreground(th.Primary).Render(m.canvas.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, sidePane.BorderForeground(th.Dim).Render(s.String()))
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

func (m Model) statusLine() string {
	th := m.opts.Theme
	switch {
	case m.err != nil:
		return th.badge(badgeAlert).Render("ERROR " + m.err.Error())
	case m.recording:
		return th.badge(badgeAlert).Render("● REC")
	case !m.running:
		return th.badge(badgeHold).Render("PAUSED")
	case m.playHead != -1:
		return th.badge(badgeHold).Render(fmt.Sprintf("REPLAY %d/%d", m.playHead+1, len(m.history)))
	case m.phase == phaseRingdown:
		return th.badge(badgeLive).Render(orbitGlyph(m.ringTick) + " RINGDOWN")
	case m.phase == phaseDone:
		return th.badge(badgeLive).Render("MERGED")
	default:
		return th.badge(badgeLive).Render(orbitGlyph(len(m.history)) + " RUNNING")
	}
}

const helpOverlay = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  Q        - Quit                     ║
║  [ / ]    - Step through history     ║
║  + / -    - Zoom                     ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`
