package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const maxDots = 3

type CellData struct {
	Day      int
	State    string
	InMonth  bool
	Today    bool
	Selected bool
	Tasks    int
}

type GridData struct {
	Title   string
	Headers []string
	Cells   []CellData
	Dark    bool
}

type SidePanelData struct {
	WeekCompleted  int
	WeekTotal      int
	WeekRate       int
	WeekBar        string
	MissedDays     []string
	MissedMore     int
	TotalTasks     int
	CompletedTasks int
	Dark           bool
}

type EditorTaskData struct {
	Title       string
	Description string
	Completed   bool
}

type EditorData struct {
	Title           string
	Tasks           []EditorTaskData
	Cursor          int
	Mode            string
	InputView       string
	Completed       int
	Total           int
	Progress        int
	ProgressView    string
	DescriptionView string
	Dark            bool
}

type HelpPanelData struct {
	Bindings []string
	Commands []string
	HelpView string
}

// Dots renders the task marker line of a cell: one dot per task up to three,
// then +N for the rest.
func Dots(n int) string {
	if n <= 0 {
		return ""
	}
	if n <= maxDots {
		return strings.Repeat("•", n)
	}
	return strings.Repeat("•", maxDots) + fmt.Sprintf("+%d", n-maxDots)
}

func RenderMonthGrid(data GridData) string {
	st := NewStyles(data.Dark)
	var rows []string
	rows = append(rows, st.Title.Render(data.Title))

	headers := make([]string, 0, len(data.Headers))
	for _, h := range data.Headers {
		headers = append(headers, st.Muted.Width(6).Align(lipgloss.Center).Render(h))
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, headers...))

	for start := 0; start < len(data.Cells); start += 7 {
		end := min(start+7, len(data.Cells))
		cells := make([]string, 0, 7)
		for _, c := range data.Cells[start:end] {
			cells = append(cells, renderCell(st, c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	rows = append(rows, "", RenderLegend(data.Dark))
	return strings.Join(rows, "\n")
}

func renderCell(st Styles, c CellData) string {
	label := fmt.Sprintf("%2d", c.Day)
	if c.Today {
		label = st.Today.Render("*" + label)
	}
	body := label + "\n" + Dots(c.Tasks)

	style := st.OutOfMonth
	if c.InMonth {
		switch c.State {
		case "no-tasks":
			style = st.NoTasks
		case "incomplete":
			style = st.Incomplete
		case "complete":
			style = st.Complete
		default:
			style = st.Future
		}
	}
	if c.Selected {
		style = style.Reverse(true)
	}
	return style.Height(2).Render(body)
}

func RenderLegend(dark bool) string {
	st := NewStyles(dark)
	swatch := func(s lipgloss.Style, label string) string {
		return s.Width(2).Render("") + " " + label
	}
	return strings.Join([]string{
		swatch(st.NoTasks, "no tasks"),
		swatch(st.Incomplete, "incomplete"),
		swatch(st.Complete, "complete"),
		swatch(st.Future, "future"),
	}, "  ")
}

func RenderSidePanel(data SidePanelData) string {
	st := NewStyles(data.Dark)
	var b strings.Builder
	b.WriteString(st.Title.Render("This Week") + "\n")
	b.WriteString(fmt.Sprintf("%d/%d completed (%d%%)\n", data.WeekCompleted, data.WeekTotal, data.WeekRate))
	if data.WeekBar != "" {
		b.WriteString(data.WeekBar + "\n")
	}

	b.WriteString("\n" + st.Title.Render("Missed Days") + "\n")
	if len(data.MissedDays) == 0 {
		b.WriteString(st.Muted.Render("none") + "\n")
	}
	for _, day := range data.MissedDays {
		b.WriteString(st.Error.Render("• "+day) + "\n")
	}
	if data.MissedMore > 0 {
		b.WriteString(st.Muted.Render(fmt.Sprintf("+%d more missed days", data.MissedMore)) + "\n")
	}

	b.WriteString("\n" + st.Title.Render("Quick Stats") + "\n")
	b.WriteString(fmt.Sprintf("total tasks: %d\n", data.TotalTasks))
	b.WriteString(fmt.Sprintf("completed: %d", data.CompletedTasks))
	return b.String()
}

func RenderEditor(data EditorData) string {
	st := NewStyles(data.Dark)
	var b strings.Builder
	b.WriteString(st.Title.Render(data.Title) + "\n")
	b.WriteString(st.Muted.Render(fmt.Sprintf("%d tasks, %d completed", data.Total, data.Completed)) + "\n\n")

	if len(data.Tasks) == 0 {
		b.WriteString(st.Muted.Render("(no tasks yet)") + "\n")
	}
	for i, t := range data.Tasks {
		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %s", check, t.Title)
		if t.Completed {
			line = st.Muted.Strikethrough(true).Render(line)
		}
		if i == data.Cursor {
			line = st.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	if data.DescriptionView != "" {
		b.WriteString("\n" + data.DescriptionView + "\n")
	}

	b.WriteString("\n" + data.Mode + ": " + data.InputView + "\n")
	b.WriteString(fmt.Sprintf("%s %d%%\n", data.ProgressView, data.Progress))
	b.WriteString(st.Footer.Render("[enter]save [tab]focus list [space]toggle [e]edit [d]delete [esc]close"))
	return st.Dialog.Render(b.String())
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "command: " + inputView
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s\n\ncommands:\n%s\n\n%s",
		strings.Join(data.Bindings, "\n"),
		strings.Join(data.Commands, "\n"),
		data.HelpView,
	)
}
