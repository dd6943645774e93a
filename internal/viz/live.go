package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/inkfield/internal/driver"
	"github.com/san-kum/inkfield/internal/param"
	"github.com/san-kum/inkfield/internal/registry"
)

const (
	width  = 80
	height = 24
)

type TickMsg time.Time

// Model is the live preview. The controller does the drawing; the model
// maps keys onto it and turns its frames into braille.
type Model struct {
	reg      *registry.Registry
	ctrl     *driver.Controller
	canvas   *Canvas
	fps      int
	selected int
	theme    Theme
	showHelp bool
}

// NewModel previews ctrl, which must already hold a grid.
func NewModel(reg *registry.Registry, ctrl *driver.Controller, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	m := Model{
		reg:    reg,
		ctrl:   ctrl,
		canvas: NewCanvas(width, height),
		fps:    fps,
		theme:  Themes[0],
	}
	m.fit()
	return m
}

// WithTheme starts the preview in the named theme.
func (m Model) WithTheme(name string) (Model, error) {
	t, ok := GetTheme(name)
	if !ok {
		return m, fmt.Errorf("unknown theme: %s (available: %s)", name, strings.Join(ThemeNames(), ", "))
	}
	m.theme = t
	return m, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and draws on every tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.ctrl.TogglePause()
		case "tab":
			m.cycleParam(1)
		case "shift+tab":
			m.cycleParam(-1)
		case "up", "k":
			m.adjustParam(1)
		case "down", "j":
			m.adjustParam(-1)
		case "e":
			m.nextEffect()
		case "t":
			m.theme = NextTheme(m.theme.Name)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		// leave room for the side panel and padding
		cols, rows := msg.Width-50, msg.Height-4
		if cols >= 10 && rows >= 5 {
			m.canvas = NewCanvas(cols, rows)
			m.fit()
		}
	case TickMsg:
		if img, ok := m.ctrl.Frame(time.Time(msg)); ok {
			m.canvas.Plot(img)
		}
		return m, m.tick()
	}
	return m, nil
}

// fit sizes the controller to the largest area of the canvas that keeps
// the grid's proportions.
func (m *Model) fit() {
	g := m.ctrl.Grid()
	if g == nil {
		return
	}
	w, h := m.frameSize()
	m.ctrl.Resize(w, h)
}

func (m *Model) frameSize() (int, int) {
	maxW, maxH := m.canvas.Dots()
	w, h := m.ctrl.Grid().OutputSize(maxW)
	if h > maxH {
		w = int(math.Max(1, math.Round(float64(w)*float64(maxH)/float64(h))))
		h = maxH
	}
	return w, h
}

// tunable lists the numeric schema entries, in schema order.
func (m *Model) tunable() []param.Descriptor {
	var out []param.Descriptor
	for _, d := range m.ctrl.Module().Schema() {
		if d.Kind == param.Number {
			out = append(out, d)
		}
	}
	return out
}

func (m *Model) cycleParam(dir int) {
	n := len(m.tunable())
	if n == 0 {
		return
	}
	m.selected = ((m.selected+dir)%n + n) % n
}

func (m *Model) adjustParam(dir int) {
	keys := m.tunable()
	if len(keys) == 0 {
		return
	}
	d := keys[m.selected]
	p := m.ctrl.Params()
	step := d.Step
	if step <= 0 {
		step = (d.Max - d.Min) / 100
	}
	p[d.Key] = d.Clamp(p.Float(d.Key) + float64(dir)*step)
	m.ctrl.Rebuild(p)
}

func (m *Model) nextEffect() {
	next, err := m.reg.Get(m.reg.Next(m.ctrl.Module().Name()))
	if err != nil {
		return
	}
	w, h := m.ctrl.Size()
	m.ctrl.Reconstruct(next, m.ctrl.Grid(), w, h)
	m.selected = 0
}

// View renders the canvas beside the parameter panel.
func (m Model) View() string {
	canvasView := canvasStyle.Foreground(m.theme.Primary).Render(m.canvas.String())

	label := labelStyle.Foreground(m.theme.Muted)
	value := valueStyle.Foreground(m.theme.Text)

	var s strings.Builder
	mod := m.ctrl.Module()
	s.WriteString(GradientText(strings.ToUpper(mod.Title), m.theme.Primary, m.theme.Accent) + "\n\n")

	status := StatusRunning.Render("RUNNING")
	if m.ctrl.Paused() {
		status = StatusPaused.Render("PAUSED")
	}
	s.WriteString(status + "\n\n")

	s.WriteString(label.Render("Effect") + value.Render(mod.Name()) + "\n")
	s.WriteString(label.Render("Time") + value.Render(fmt.Sprintf("%.2fs", m.ctrl.Time())) + "\n")
	w, h := m.ctrl.Size()
	s.WriteString(label.Render("Frame") + value.Render(fmt.Sprintf("%dx%d", w, h)) + "\n")
	if g := m.ctrl.Grid(); g != nil {
		s.WriteString(label.Render("Grid") + value.Render(fmt.Sprintf("%dx%d", g.Cols, g.Rows)) + "\n")
	}
	s.WriteString(label.Render("Theme") + value.Render(m.theme.Name) + "\n")

	s.WriteString("\nPARAMETERS\n")
	p := m.ctrl.Params()
	active := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true)
	for i, d := range m.tunable() {
		v := p.Float(d.Key)
		ratio := 0.0
		if d.Max > d.Min {
			ratio = (v - d.Min) / (d.Max - d.Min)
		}
		line := fmt.Sprintf("%-12s %s %g", d.Key, ProgressBar(ratio, 10), v)
		if i == m.selected {
			s.WriteString(active.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + value.Render(line) + "\n")
		}
	}

	s.WriteString(KeyHint.Foreground(m.theme.Muted).Render("\nSP:Pause  TAB:Param  ↑↓:Tune\nE:Effect  T:Theme  ?:Help  Q:Quit"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panelStyle.BorderForeground(m.theme.Secondary).Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
  Space      pause or resume the frame
  Tab        next parameter
  Shift+Tab  previous parameter
  Up/K       increase parameter by one step
  Down/J     decrease parameter by one step
  E          next effect (restarts the clock)
  T          cycle themes
  ?          toggle this help
  Q          quit`
