package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/models"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/richtext"
)

var (
	errorColor = color.New(color.FgRed)
	okColor    = color.New(color.FgGreen)
	dimColor   = color.New(color.Faint)

	priorityColors = map[models.Priority]*color.Color{
		models.PriorityHigh:   color.New(color.FgRed, color.Bold),
		models.PriorityMedium: color.New(color.FgYellow),
		models.PriorityLow:    color.New(color.FgCyan),
	}
)

const (
	dueLayout     = "Jan 02 15:04"
	previewLength = 60

	defaultCategoryColor = "#6b7280"
	defaultCategoryIcon  = "folder"
)

func priorityLabel(p models.Priority) string {
	p = p.OrDefault()
	return priorityColors[p].Sprintf("%-6s", p)
}

func dueLabel(t models.Task, now time.Time) string {
	if t.DueDate == nil {
		return ""
	}
	s := "due " + t.DueDate.In(now.Location()).Format(dueLayout)
	if t.IsOverdue(now) {
		return errorColor.Sprint(s + " (overdue)")
	}
	return s
}

func formatTask(i int, t models.Task, categories map[string]string, now time.Time) string {
	check := "[ ]"
	if t.IsCompleted {
		check = "[x]"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%3d. %s %-24s %s", i, check, t.Title, priorityLabel(t.Priority))
	if name, ok := categories[t.Category]; ok {
		fmt.Fprintf(&b, " %-10s", name)
	}
	if due := dueLabel(t, now); due != "" {
		b.WriteString(" " + due)
	}
	if t.RecurrencePattern != nil {
		b.WriteString(" repeats " + formatRepeat(t.RecurrencePattern, now.Location()))
	}
	if len(t.Tags) > 0 {
		b.WriteString(" " + dimColor.Sprint("#"+strings.Join(t.Tags, " #")))
	}
	return b.String()
}

func formatNote(i int, n models.Note) string {
	pin := " "
	if n.IsPinned {
		pin = "*"
	}
	line := fmt.Sprintf("%3d. %s %-24s", i, pin, n.Title)
	if p := richtext.Preview(n.Content, previewLength); p != "" {
		line += " " + dimColor.Sprint(p)
	}
	if n.Color != "" && n.Color != models.DefaultNoteColor {
		line += " " + n.Color
	}
	return line
}

// bar renders n as a row of blocks scaled to limit.
func bar(n, limit, width int) string {
	if limit == 0 || n == 0 {
		return ""
	}
	w := n * width / limit
	if w == 0 {
		w = 1
	}
	return strings.Repeat("#", w)
}
