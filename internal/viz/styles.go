package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme defines color scheme for the TUI
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
}

var Themes = []Theme{
	{Name: "ink", Primary: "#ffffff", Secondary: "#888888", Accent: "#0088ff", Text: "#dddddd", Muted: "#555555"},
	{Name: "neon", Primary: "#ff00ff", Secondary: "#00ffff", Accent: "#ffff00", Text: "#ffffff", Muted: "#666666"},
	{Name: "phosphor", Primary: "#00ff00", Secondary: "#00cc00", Accent: "#88ff88", Text: "#00ff00", Muted: "#005500"},
	{Name: "sunset", Primary: "#ff6b6b", Secondary: "#feca57", Accent: "#ff9ff3", Text: "#fff5f5", Muted: "#8b6b8c"},
}

// CurrentTheme drives every style below; call SetTheme to switch.
var CurrentTheme = Themes[0]

var (
	headerStyle lipgloss.Style
	labelStyle  lipgloss.Style
	valueStyle  lipgloss.Style
	graphStyle  lipgloss.Style
	helpStyle   lipgloss.Style
	statsStyle  lipgloss.Style
	sparkHigh   lipgloss.Style
	sparkLow    lipgloss.Style
)

func init() { applyTheme() }

func applyTheme() {
	t := CurrentTheme
	headerStyle = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(t.Muted).Width(10)
	valueStyle = lipgloss.NewStyle().Foreground(t.Text)
	graphStyle = lipgloss.NewStyle().Foreground(t.Accent).Padding(1, 0)
	helpStyle = lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1)
	statsStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(t.Muted).Padding(0, 2).Width(statsWidth - 2)
	sparkHigh = lipgloss.NewStyle().Foreground(t.Accent)
	sparkLow = lipgloss.NewStyle().Foreground(t.Secondary)
}

// SetTheme switches to the named theme. Unknown names are ignored.
func SetTheme(name string) bool {
	for _, t := range Themes {
		if t.Name == name {
			CurrentTheme = t
			applyTheme()
			return true
		}
	}
	return false
}

// NextTheme cycles to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			SetTheme(Themes[(i+1)%len(Themes)].Name)
			return
		}
	}
}

// GradientText colours text from start to end, blending in Luv space.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	a, errA := colorful.Hex(string(start))
	b, errB := colorful.Hex(string(end))
	if errA != nil || errB != nil {
		return text
	}

	var out strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := a.BlendLuv(b, t).Clamped()
		out.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
	}
	return out.String()
}

// SparklineChart renders a mini sparkline from the last width values.
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var result strings.Builder
	for _, v := range values {
		norm := (v - lo) / rng
		idx := min(max(int(norm*float64(len(chars)-1)), 0), len(chars)-1)
		if norm > 0.5 {
			result.WriteString(sparkHigh.Render(string(chars[idx])))
		} else {
			result.WriteString(sparkLow.Render(string(chars[idx])))
		}
	}
	return result.String()
}
