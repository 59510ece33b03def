package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/flashboil/internal/config"
	"github.com/san-kum/flashboil/internal/flash"
	"github.com/san-kum/flashboil/internal/integrators"
	"github.com/san-kum/flashboil/internal/sim"
)

const (
	canvasWidth  = 40
	canvasHeight = 20
	chartWidth   = 38
	chartHeight  = 5
)

type TickMsg time.Time

// Model is the bubbletea model for the live view. It owns the run and
// advances it a batch of steps per frame; replay scrubs over the recorded
// series without re-integrating.
type Model struct {
	cfg config.Config
	run *sim.Run
	r0  float64

	canvas       *Canvas
	stepsPerTick int
	running      bool
	playHead     int // -1 means live
	selected     int
	showHelp     bool
	err          error
}

// tunable names the config fields adjustable from the TUI. Changes apply
// on restart so a running series stays internally consistent.
type tunable struct {
	name string
	get  func(*config.Config) float64
	set  func(*config.Config, float64)
}

var tunables = []tunable{
	{"alpha", func(c *config.Config) float64 { return c.Alpha },
		func(c *config.Config, v float64) { c.Alpha = v }},
	{"nucleation", func(c *config.Config) float64 { return c.NucleationFactor },
		func(c *config.Config, v float64) { c.NucleationFactor = v }},
	{"onset [K]", func(c *config.Config) float64 { return c.NucleationOnsetK },
		func(c *config.Config, v float64) { c.NucleationOnsetK = v }},
	{"frag [K]", func(c *config.Config) float64 { return c.FragSuperheatK },
		func(c *config.Config, v float64) { c.FragSuperheatK = v }},
}

// NewModel builds a run from the config and wires it to the view.
func NewModel(cfg config.Config) (Model, error) {
	run, err := newRun(cfg)
	if err != nil {
		return Model{}, err
	}
	return Model{
		cfg:          cfg,
		run:          run,
		r0:           run.Params().InitialRadius,
		canvas:       NewCanvas(canvasWidth, canvasHeight),
		stepsPerTick: 200,
		running:      true,
		playHead:     -1,
	}, nil
}

func newRun(cfg config.Config) (*sim.Run, error) {
	stepper, err := integrators.New(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	return sim.New(cfg.Params(), cfg.SimConfig(), stepper)
}

// Run starts the interactive view and blocks until the user quits.
func Run(cfg config.Config) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "+", "=":
			m.stepsPerTick = minInt(m.stepsPerTick*2, 20000)
		case "-", "_":
			m.stepsPerTick = maxInt(m.stepsPerTick/2, 1)
		case "tab":
			m.selected = (m.selected + 1) % len(tunables)
		case "up", "k":
			m.nudge(1.05)
		case "down", "j":
			m.nudge(0.95)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			if m.playHead == -1 {
				m.advance()
			} else {
				m.playHead++
				if m.playHead >= m.run.Series().Len() {
					m.playHead = -1
				}
			}
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// advance steps the run a batch per frame so the animation speed is
// decoupled from the physical timestep.
func (m *Model) advance() {
	for i := 0; i < m.stepsPerTick && m.run.Active(); i++ {
		if err := m.run.Advance(); err != nil {
			m.err = err
			m.running = false
			return
		}
	}
	if !m.run.Active() {
		m.running = false
	}
}

// scrub moves the replay position over the recorded series.
func (m *Model) scrub(dir int) {
	n := m.run.Series().Len()
	if n == 0 {
		return
	}
	if m.playHead == -1 {
		m.playHead = n - 1
		m.running = false
	}
	m.playHead += dir * maxInt(n/100, 1)
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= n {
		m.playHead = -1
	}
}

func (m *Model) nudge(factor float64) {
	t := tunables[m.selected]
	t.set(&m.cfg, t.get(&m.cfg)*factor)
}

func (m *Model) reset() {
	run, err := newRun(m.cfg)
	if err != nil {
		m.err = err
		return
	}
	m.run = run
	m.err = nil
	m.playHead = -1
	m.running = true
}

// current returns the sample the view should show: the replay position or
// the latest one.
func (m *Model) current() flash.Sample {
	s := m.run.Series()
	if m.playHead >= 0 && m.playHead < s.Len() {
		return s.At(m.playHead)
	}
	last, _ := s.Last()
	return last
}

func (m Model) View() string {
	smp := m.current()
	m.drawDroplet(smp)

	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("FLASH BOILING") + "\n")
	s.WriteString(m.status() + "\n\n")

	series := m.run.Series()
	if series.Len() > 1 {
		sup := downsample(series.Superheats(), chartWidth*4)
		chart := asciigraph.Plot(sup,
			asciigraph.Height(chartHeight), asciigraph.Width(chartWidth),
			asciigraph.Caption("Superheat [K]"))
		s.WriteString(graphStyle.Render(chart) + "\n")

		rad := downsample(series.Radii(), chartWidth*4)
		for i := range rad {
			rad[i] *= 1e3 // mm
		}
		chart = asciigraph.Plot(rad,
			asciigraph.Height(chartHeight), asciigraph.Width(chartWidth),
			asciigraph.Caption("Radius [mm]"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Regime") + RegimeBadge(smp.Regime) + "\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.3g s", smp.T)) + "\n")
	s.WriteString(labelStyle.Render("Radius") + valueStyle.Render(fmt.Sprintf("%.4g mm", smp.R*1e3)) + "\n")
	s.WriteString(labelStyle.Render("Temp") + valueStyle.Render(fmt.Sprintf("%.2f K", smp.Temp)) + "\n")
	s.WriteString(labelStyle.Render("Superheat") + valueStyle.Render(fmt.Sprintf("%.2f K", smp.Superheat)) + "\n")
	s.WriteString(labelStyle.Render("p_sat") + valueStyle.Render(fmt.Sprintf("%.4g Pa", smp.Psat)) + "\n")
	s.WriteString(labelStyle.Render("Mass flux") + valueStyle.Render(fmt.Sprintf("%.3g kg/s", smp.MassFlux)) + "\n")

	remaining := 0.0
	if m.r0 > 0 {
		ratio := smp.R / m.r0
		remaining = ratio * ratio * ratio
	}
	s.WriteString(labelStyle.Render("Mass left") + ProgressBar(remaining, 20) +
		valueStyle.Render(fmt.Sprintf(" %.1f%%", remaining*100)) + "\n")

	s.WriteString("\nPARAMETERS (apply on restart)\n")
	for i, t := range tunables {
		line := fmt.Sprintf("%-12s %.3g", t.name, t.get(&m.cfg))
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}

	if m.err != nil {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("196")).
			Render(fmt.Sprintf("error: %v", m.err)) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Restart Q:Quit\n[ ]:Replay +/-:Speed\nTab:Param ↑↓:Tune ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Restart the run          ║
║  Q        - Quit                     ║
║  [        - Rewind (replay)          ║
║  ]        - Forward (replay)         ║
║  + / -    - Faster / slower          ║
║  Tab      - Select parameter         ║
║  Up/Down  - Tune parameter (±5%)     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

func (m Model) status() string {
	switch {
	case m.playHead != -1:
		return fmt.Sprintf("REPLAY (sample %d/%d)", m.playHead+1, m.run.Series().Len())
	case m.err != nil:
		return "FAILED"
	case !m.run.Active():
		return strings.ToUpper(m.run.Outcome().String())
	case !m.running:
		return "PAUSED"
	}
	return "RUNNING"
}

// drawDroplet renders the droplet as a filled disc scaled to the current
// radius, with the outline of the initial size for reference.
func (m *Model) drawDroplet(smp flash.Sample) {
	m.canvas.Clear()

	cw, ch := m.canvas.Width*2, m.canvas.Height*4
	cx, cy := cw/2, ch/2
	maxR := minInt(cw, ch)/2 - 2

	m.canvas.DrawCircle(cx, cy, maxR)
	if m.r0 <= 0 {
		return
	}
	r := int(smp.R / m.r0 * float64(maxR))
	if smp.R > 0 && r < 1 {
		r = 1
	}
	if smp.Regime == flash.Fragmented {
		// Scatter shards on a ring instead of a disc.
		for i := 0; i < 8; i++ {
			angle := float64(i) * math.Pi / 4
			sx := cx + int(float64(r)*0.8*math.Cos(angle))
			sy := cy + int(float64(r)*0.8*math.Sin(angle))
			m.canvas.FillCircle(sx, sy, maxInt(r/5, 1))
		}
		return
	}
	if smp.R > 0 {
		m.canvas.FillCircle(cx, cy, r)
	}
}

// downsample reduces a series to at most n points for plotting.
func downsample(values []float64, n int) []float64 {
	if len(values) <= n {
		return values
	}
	out := make([]float64, n)
	step := float64(len(values)-1) / float64(n-1)
	for i := 0; i < n; i++ {
		out[i] = values[int(float64(i)*step)]
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
