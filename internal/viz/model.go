package viz

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/sketches/internal/canvas"
	"github.com/san-kum/sketches/internal/loop"
)

const (
	defaultCols     = 80
	defaultRows     = 24
	statsWidth      = 44
	headerRows      = 1
	historyCapacity = 600
)

type TickMsg time.Time

// Model hosts a sketch in the terminal. Mouse events become pointer events;
// every tick applies them and renders one frame onto the braille canvas.
type Model struct {
	name     string
	sketch   loop.Sketch
	driver   *loop.Driver
	surf     *Surface
	fps      int
	pending  []canvas.Event
	pressed  bool
	running  bool
	showHelp bool
	colored  bool
	history  []float64
	err      error
	logger   *slog.Logger
}

func NewModel(name string, sk loop.Sketch, fps int, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if fps <= 0 {
		fps = 30
	}
	w, h := sk.Size()
	m := &Model{
		name:    name,
		sketch:  sk,
		driver:  loop.New(sk, fps),
		surf:    NewSurface(NewCanvas(defaultCols, defaultRows), w, h),
		fps:     fps,
		running: true,
		colored: true,
		history: make([]float64, 0, historyCapacity),
		logger:  logger.With("host", "terminal"),
	}
	sk.SetViewport(m.surf.Viewport())
	return m
}

// Canvas exposes the braille canvas of the last frame.
func (m *Model) Canvas() *Canvas { return m.surf.Canvas }

// Err returns the error that stopped the program, if any.
func (m *Model) Err() error { return m.err }

func (m *Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Model) Init() tea.Cmd { return m.tick() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "c":
			m.colored = !m.colored
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.MouseMsg:
		m.mouse(msg)
	case TickMsg:
		if m.running {
			if err := m.step(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		} else {
			m.pending = m.pending[:0]
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) resize(width, height int) {
	cols := max(width-statsWidth, 10)
	rows := max(height-headerRows-1, 4)
	m.surf.Resize(cols, rows)
	m.sketch.SetViewport(m.surf.Viewport())
	m.logger.Debug("resize", "cols", cols, "rows", rows)
}

// mouse translates a bubbletea mouse message into a sketch event. Only the
// left button starts a gesture; motion counts only while it is held.
func (m *Model) mouse(msg tea.MouseMsg) {
	x, y := m.surf.CellToDisplay(msg.X, msg.Y-headerRows)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.pressed = true
		m.pending = append(m.pending, canvas.Event{Kind: canvas.Press, X: x, Y: y})
	case tea.MouseActionMotion:
		if m.pressed {
			m.pending = append(m.pending, canvas.Event{Kind: canvas.Move, X: x, Y: y})
		}
	case tea.MouseActionRelease:
		if m.pressed {
			m.pressed = false
			m.pending = append(m.pending, canvas.Event{Kind: canvas.Release, X: x, Y: y})
		}
	}
}

func (m *Model) step() error {
	if err := m.driver.Step(m.surf, m.pending...); err != nil {
		return err
	}
	m.pending = m.pending[:0]

	if t, ok := m.sketch.(loop.Telemeter); ok {
		m.history = append(m.history, t.Telemetry())
		if len(m.history) > historyCapacity {
			m.history = m.history[1:]
		}
	}
	return nil
}

func (m *Model) reset() {
	m.sketch.Reset()
	m.pending = m.pending[:0]
	m.pressed = false
	m.history = m.history[:0]
}

func (m *Model) View() string {
	header := GradientText("sketches", CurrentTheme.Primary, CurrentTheme.Secondary) + " " + headerStyle.Render(":: "+m.name)

	var body string
	if m.colored {
		body = m.surf.Canvas.Colored()
	} else {
		body = m.surf.Canvas.String()
	}

	var s strings.Builder
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(headerStyle.Render(status) + "\n\n")
	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d", m.driver.Frames())) + "\n")
	s.WriteString(labelStyle.Render("Theme") + valueStyle.Render(CurrentTheme.Name) + "\n")
	if st, ok := m.sketch.(loop.Statuser); ok {
		s.WriteString("\n" + valueStyle.Render(st.Status()) + "\n")
	}
	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(6), asciigraph.Width(statsWidth-14), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
		s.WriteString(SparklineChart(m.history, statsWidth-8) + "\n")
	}
	if m.showHelp {
		s.WriteString(helpStyle.Render(helpText))
	} else {
		s.WriteString(helpStyle.Render("SP:Pause R:Reset Q:Quit\nC:Colour T:Theme ?:Help"))
	}

	return header + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, body, statsStyle.Render(s.String()))
}

const helpText = `Mouse    - press and drag
Space    - Pause/Resume
R        - Reset
C        - Toggle colour
T        - Cycle themes
Q        - Quit
?        - Toggle this help`

// Run starts the terminal host for sk and blocks until the user quits.
func Run(name string, sk loop.Sketch, fps int, logger *slog.Logger) error {
	m := NewModel(name, sk, fps, logger)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		return err
	}
	return m.Err()
}
