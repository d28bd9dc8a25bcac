package services

import (
	"cmp"
	"slices"
	"strings"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/models"
)

// TaskFilter is the filter state of the task view. Zero-valued fields do not
// filter, except ShowCompleted: when false, completed tasks are hidden.
type TaskFilter struct {
	Query         string
	Priority      models.Priority
	Category      string
	ShowCompleted bool
}

// DefaultTaskFilter shows everything.
func DefaultTaskFilter() TaskFilter {
	return TaskFilter{ShowCompleted: true}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}

// ProjectTasks returns the filtered, sorted view of tasks. tasks is not
// modified.
func ProjectTasks(tasks []models.Task, f TaskFilter) []models.Task {
	q := strings.ToLower(f.Query)

	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if q != "" && !containsFold(t.Title, q) && !containsFold(t.Description, q) {
			continue
		}
		if f.Priority != "" && t.Priority.OrDefault() != f.Priority {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if !f.ShowCompleted && t.IsCompleted {
			continue
		}
		out = append(out, t)
	}

	slices.SortStableFunc(out, compareTasks)
	return out
}

// compareTasks orders incomplete before completed, then tasks with a due date
// (earliest first) before tasks without, then by priority high, medium, low.
func compareTasks(a, b models.Task) int {
	if a.IsCompleted != b.IsCompleted {
		if a.IsCompleted {
			return 1
		}
		return -1
	}

	switch {
	case a.DueDate != nil && b.DueDate != nil:
		if c := a.DueDate.Compare(*b.DueDate); c != 0 {
			return c
		}
	case a.DueDate != nil:
		return -1
	case b.DueDate != nil:
		return 1
	}

	return cmp.Compare(a.Priority.Rank(), b.Priority.Rank())
}

// NoteFilter is the filter state of the note view.
type NoteFilter struct {
	Query      string
	Color      string
	PinnedOnly bool
}

// ProjectNotes returns the filtered view of notes, pinned first and most
// recently updated first within each group.
func ProjectNotes(notes []models.Note, f NoteFilter) []models.Note {
	q := strings.ToLower(f.Query)

	out := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if q != "" && !containsFold(n.Title, q) && !containsFold(n.Content, q) {
			continue
		}
		if f.Color != "" && n.Color != f.Color {
			continue
		}
		if f.PinnedOnly && !n.IsPinned {
			continue
		}
		out = append(out, n)
	}

	slices.SortStableFunc(out, func(a, b models.Note) int {
		if a.IsPinned != b.IsPinned {
			if a.IsPinned {
				return -1
			}
			return 1
		}
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return out
}
