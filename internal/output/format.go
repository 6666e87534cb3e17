// Package output renders tasks for terminals and browsers.
// Every renderer is a pure function of its input.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"taskflow/internal/controller"
	"taskflow/internal/service"
)

// MsgNoTasks is shown when the visible subset is empty.
const MsgNoTasks = "No tasks found"

// ListView is everything needed to render a task list.
type ListView struct {
	// Tasks is the visible subset, already filtered.
	Tasks     []service.Task
	Total     int
	Completed int
	Filter    controller.Filter
	Search    string
	EditingID int

	// Cursor is the index into Tasks of the selected row, or -1.
	Cursor int
}

// NewListView builds a ListView from a controller snapshot with no cursor.
func NewListView(v controller.View) ListView {
	return ListView{
		Tasks:     v.Visible,
		Total:     v.Total,
		Completed: v.Completed,
		Filter:    v.Filter,
		Search:    v.Search,
		EditingID: v.EditingID,
		Cursor:    -1,
	}
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	doneStyle    = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	editingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true)
)

// Header returns the summary line: totals, active filter and search.
func Header(lv ListView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d total, %d completed, %d pending", lv.Total, lv.Completed, lv.Total-lv.Completed)
	fmt.Fprintf(&b, "  filter: %s", filterName(lv.Filter))
	if lv.Search != "" {
		fmt.Fprintf(&b, "  search: %q", Sanitize(lv.Search))
	}
	return b.String()
}

// Text writes the list for a terminal.
// Format per task: "{CURSOR}[{x| }] {ID:>4}  {TEXT}" with "  (editing)" appended
// to the task under edit.
func Text(w io.Writer, lv ListView) {
	fmt.Fprintln(w, headerStyle.Render(Header(lv)))

	if len(lv.Tasks) == 0 {
		fmt.Fprintln(w, mutedStyle.Render(MsgNoTasks))
		return
	}
	for i, task := range lv.Tasks {
		fmt.Fprintln(w, TaskLine(task, i == lv.Cursor, task.ID == lv.EditingID))
	}
}

// TaskLine renders one task row.
func TaskLine(task service.Task, selected, editing bool) string {
	prefix := "  "
	if selected {
		prefix = cursorStyle.Render(">") + " "
	}

	check := "[ ]"
	text := normalizeText(task.Text)
	if task.Completed {
		check = "[x]"
		text = doneStyle.Render(text)
	}

	line := fmt.Sprintf("%s%s %4d  %s", prefix, check, task.ID, text)
	if editing {
		line += "  " + editingStyle.Render("(editing)")
	}
	return line
}

// Stats writes the collection summary.
func Stats(w io.Writer, s service.Stats) {
	fmt.Fprintf(w, "%-12s%d\n", "Total:", s.Total)
	fmt.Fprintf(w, "%-12s%d\n", "Completed:", s.Completed)
	fmt.Fprintf(w, "%-12s%d\n", "Pending:", s.Pending)
	fmt.Fprintf(w, "%-12s%.1f%%\n", "Completion:", s.CompletionRate)
}

// Task writes a single task with all its fields.
func Task(w io.Writer, t service.Task) {
	status := "pending"
	if t.Completed {
		status = "completed"
	}
	fmt.Fprintf(w, "%-9s%d\n", "ID:", t.ID)
	fmt.Fprintf(w, "%-9s%s\n", "Text:", normalizeText(t.Text))
	fmt.Fprintf(w, "%-9s%s\n", "Status:", status)
	fmt.Fprintf(w, "%-9s%s\n", "Created:", t.CreatedAt.UTC().Format(time.RFC3339))
}

// Sanitize makes untrusted text safe to print on a terminal.
// Escape sequences are removed, line breaks and tabs become spaces and
// other control characters are dropped.
func Sanitize(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, s)
}

// normalizeText sanitizes task text for display.
// Empty or whitespace-only text becomes "(untitled)".
func normalizeText(text string) string {
	text = Sanitize(text)
	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}

func filterName(f controller.Filter) string {
	if f == "" {
		return string(controller.FilterAll)
	}
	return string(f)
}
