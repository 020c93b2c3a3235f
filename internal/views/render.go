package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header     string
	Grid       string
	SidePanel  string
	Overlay    string
	StatusLine string
	IsError    bool
	Footer     string
	Dark       bool
}

// Styles holds every style the screens use for one theme.
type Styles struct {
	Dark bool

	Header   lipgloss.Style
	Title    lipgloss.Style
	Muted    lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Panel    lipgloss.Style
	Dialog   lipgloss.Style
	Footer   lipgloss.Style
	Selected lipgloss.Style
	Today    lipgloss.Style

	NoTasks    lipgloss.Style
	Future     lipgloss.Style
	Incomplete lipgloss.Style
	Complete   lipgloss.Style
	OutOfMonth lipgloss.Style
}

func NewStyles(dark bool) Styles {
	text := lipgloss.Color("0")
	muted := lipgloss.Color("8")
	accent := lipgloss.Color("4")
	future := lipgloss.Color("252")
	if dark {
		text = lipgloss.Color("15")
		muted = lipgloss.Color("244")
		accent = lipgloss.Color("12")
		future = lipgloss.Color("238")
	}
	cell := lipgloss.NewStyle().Width(6).Align(lipgloss.Center)
	return Styles{
		Dark:     dark,
		Header:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(text),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1),
		Dialog:   lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(accent).Padding(0, 1),
		Footer:   lipgloss.NewStyle().Foreground(muted),
		Selected: lipgloss.NewStyle().Reverse(true),
		Today:    lipgloss.NewStyle().Underline(true).Bold(true),

		NoTasks:    cell.Background(lipgloss.Color("160")).Foreground(lipgloss.Color("15")),
		Future:     cell.Background(future).Foreground(text),
		Incomplete: cell.Background(lipgloss.Color("214")).Foreground(lipgloss.Color("0")),
		Complete:   cell.Background(lipgloss.Color("34")).Foreground(lipgloss.Color("15")),
		OutOfMonth: cell.Foreground(muted).Faint(true),
	}
}

func RenderApp(data AppData) string {
	st := NewStyles(data.Dark)
	left := st.Panel.Render(data.Grid)
	right := st.Panel.Width(34).Render(data.SidePanel)
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	lines := []string{
		st.Header.Render(data.Header),
		row,
	}
	if data.Overlay != "" {
		lines = append(lines, data.Overlay)
	}
	if data.StatusLine != "" {
		status := st.Status.Render(data.StatusLine)
		if data.IsError {
			status = st.Error.Render(data.StatusLine)
		}
		lines = append(lines, status)
	}
	if data.Footer != "" {
		lines = append(lines, st.Footer.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string, dark bool) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	style := "light"
	if dark {
		style = "dark"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
