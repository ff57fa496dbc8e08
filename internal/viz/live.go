package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitsim/internal/logging"
	"github.com/san-kum/orbitsim/internal/particles"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
)

const (
	width           = 80
	height          = 24
	hudWidth        = 36
	historyCapacity = 240
)

type TickMsg time.Time

// Model is the live view: it feeds input into a World, ticks it at the
// configured frame rate and renders it.
type Model struct {
	world    *sim.World
	renderer *Renderer
	log      *logging.Logger
	theme    Theme
	styles   styles
	layers   Layers
	frame    time.Duration

	width, height int
	showInfo      bool
	showHelp      bool
	speeds        []float64

	dragging     bool
	dragX, dragY int
	status       string
}

// NewModel wraps w. The world is expected to start paused.
func NewModel(w *sim.World, log *logging.Logger) Model {
	if log == nil {
		log = logging.Discard()
	}
	cfg := w.Config()
	theme := GetTheme(cfg.Display.Theme)
	fps := cfg.Display.FPS
	if fps <= 0 {
		fps = 60
	}

	m := Model{
		world:    w,
		log:      log,
		theme:    theme,
		styles:   newStyles(theme),
		layers:   Layers{Grid: true, Compass: true},
		frame:    time.Second / time.Duration(fps),
		width:    width,
		height:   height,
		showInfo: true,
		speeds:   make([]float64, 0, historyCapacity),
	}
	cols, rows := m.canvasSize()
	m.renderer = NewRenderer(cfg, cols, rows)
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) canvasSize() (int, int) {
	cols := m.width
	if m.showInfo {
		cols -= hudWidth + 2
	}
	return max(cols, 10), max(m.height-1, 5)
}

func (m *Model) resize() {
	m.renderer.Resize(m.canvasSize())
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case TickMsg:
		m.step()
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	w := m.world
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ", "space":
		paused := w.TogglePause()
		m.log.Debug("pause toggled", "paused", paused)
	case "r":
		if err := w.Reset(); err != nil {
			m.log.Error("reset failed", "error", err)
			m.status = err.Error()
		} else {
			m.status = ""
		}
		m.speeds = m.speeds[:0]
	case "c":
		w.ClearTrail()
	case "v":
		m.layers.Vectors = !m.layers.Vectors
	case "g":
		m.layers.Grid = !m.layers.Grid
	case "f":
		w.ThrustRandom()
	case "0":
		w.ResetCamera()
	case "i":
		m.showInfo = !m.showInfo
		m.layers.Compass = m.showInfo
		m.resize()
	case "+", "=":
		w.ZoomIn()
	case "-", "_":
		w.ZoomOut()
	case "up", "k":
		w.Pan(0, panStep)
	case "down", "j":
		w.Pan(0, -panStep)
	case "left", "h":
		w.Pan(panStep, 0)
	case "right", "l":
		w.Pan(-panStep, 0)
	case "t":
		m.theme = NextTheme(m.theme.Name)
		m.styles = newStyles(m.theme)
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// panStep is how far, in display units, one arrow key drags the view.
const panStep = 40

func (m *Model) handleMouse(msg tea.MouseMsg) {
	w := m.world
	cfg := w.Config()
	dw, dh := float64(cfg.Display.Width), float64(cfg.Display.Height)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		w.ZoomIn()
	case msg.Button == tea.MouseButtonWheelDown:
		w.ZoomOut()
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		p := m.renderer.CellToDisplay(msg.X, msg.Y)
		w.ThrustToward(p.X, p.Y, dw, dh)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonRight:
		m.dragging = true
		m.dragX, m.dragY = msg.X, msg.Y
	case msg.Action == tea.MouseActionRelease:
		m.dragging = false
	case msg.Action == tea.MouseActionMotion && m.dragging:
		from := m.renderer.CellToDisplay(m.dragX, m.dragY)
		to := m.renderer.CellToDisplay(msg.X, msg.Y)
		d := to.Sub(from)
		w.Pan(d.X, d.Y)
		m.dragX, m.dragY = msg.X, msg.Y
	}
}

// step ticks the world once and records the speed history.
func (m *Model) step() {
	m.world.Tick()
	if m.world.Paused() {
		return
	}
	speed := m.world.Station().Speed()
	if len(m.speeds) < historyCapacity {
		m.speeds = append(m.speeds, speed)
		return
	}
	copy(m.speeds, m.speeds[1:])
	m.speeds[len(m.speeds)-1] = speed
}

// View renders the canvas and, when enabled, the HUD.
func (m Model) View() string {
	m.renderer.Draw(m.world, m.layers)
	canvasView := m.renderer.Canvas().Render()

	mainView := canvasView
	if m.showInfo {
		mainView = lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.hud())
	}
	if m.showHelp {
		return lipgloss.JoinVertical(lipgloss.Left, m.styles.help.Render(helpText), mainView)
	}
	return mainView
}

func (m Model) hud() string {
	st := m.world.Stats()
	ps := m.world.Particles()
	s := m.styles

	var b strings.Builder
	b.WriteString(s.header.Render(GradientText("ORBITSIM", m.theme.Primary, m.theme.Secondary)) + "\n")

	switch {
	case st.Paused:
		b.WriteString(s.paused.Render("PAUSED"))
	default:
		b.WriteString(s.running.Render("RUNNING"))
	}
	if ps.Active() {
		frac := float64(ps.Remaining()) / float64(particles.EpisodeTicks)
		b.WriteString("  " + s.thrust.Render("THRUST ") + s.ProgressBar(frac, 10))
	}
	b.WriteString("\n\n")

	if len(m.speeds) > 1 {
		chart := asciigraph.Plot(m.speeds,
			asciigraph.Height(5),
			asciigraph.Width(hudWidth-12),
			asciigraph.Precision(2),
			asciigraph.Caption("speed"))
		b.WriteString(s.graph.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		b.WriteString(s.label.Render(label) + s.value.Render(value) + "\n")
	}
	row("Speed", fmt.Sprintf("%.2f", st.Speed))
	row("Min/Max", fmt.Sprintf("%.2f / %.2f", st.MinSpeed, st.MaxSpeed))
	row("Distance", fmt.Sprintf("%.1f", st.Distance))
	row("Energy", fmt.Sprintf("%.3f", st.Energy))
	row("Scale", fmt.Sprintf("%.2fx", st.Scale))
	row("Tick", fmt.Sprintf("%d", st.Tick))
	row("Particles", fmt.Sprintf("%d", ps.Len()))
	row("Heading", fmt.Sprintf("%.0f°", headingDegrees(m.world.Station().Vel)))
	row("Seed", fmt.Sprintf("%d", m.world.Seed()))

	b.WriteString("\n" + s.Separator(hudWidth-4) + "\n")
	b.WriteString(s.hint.Render(fmt.Sprintf("V:Vectors %s  G:Grid %s",
		onOff(m.layers.Vectors), onOff(m.layers.Grid))) + "\n")
	b.WriteString(s.hint.Render("SP:Pause R:New C:Clear F:Kick\nClick:Thrust RDrag:Pan Wheel:Zoom\n0:Camera I:Info T:Theme ?:Help"))
	if m.status != "" {
		b.WriteString("\n" + s.thrust.Render(m.status))
	}
	return s.panel.Render(b.String())
}

func headingDegrees(v physics.Vec2) float64 {
	if v.X == 0 && v.Y == 0 {
		return 0
	}
	deg := v.Angle() * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

const helpText = `KEYBOARD & MOUSE
Space      Pause/Resume
R          New system
C          Clear station trail
F          Random impulse
Click      Impulse toward cursor
Right-drag Pan camera
Wheel +/-  Zoom
Arrows     Pan camera
0          Reset camera
V / G      Force vectors / grid
I          Toggle info panel
T          Cycle theme
Q          Quit`

// Run starts the live view on the alternate screen with mouse support.
func Run(w *sim.World, log *logging.Logger) error {
	p := tea.NewProgram(NewModel(w, log), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
