package services

import (
	"time"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/models"
)

type TaskStats struct {
	Total     int
	Completed int
	Pending   int
	Overdue   int
	// CompletionRate is a percentage in [0, 100].
	CompletionRate float64
	ByPriority     map[models.Priority]int
}

func ComputeTaskStats(tasks []models.Task, now time.Time) TaskStats {
	s := TaskStats{
		Total: len(tasks),
		ByPriority: map[models.Priority]int{
			models.PriorityHigh:   0,
			models.PriorityMedium: 0,
			models.PriorityLow:    0,
		},
	}
	for _, t := range tasks {
		if t.IsCompleted {
			s.Completed++
		}
		if t.IsOverdue(now) {
			s.Overdue++
		}
		s.ByPriority[t.Priority.OrDefault()]++
	}
	s.Pending = s.Total - s.Completed
	if s.Total > 0 {
		s.CompletionRate = float64(s.Completed) / float64(s.Total) * 100
	}
	return s
}

// DayProgress counts the tasks created on Day and how many of those are
// completed.
type DayProgress struct {
	Day       time.Time
	Created   int
	Completed int
}

// WeeklyProgress returns seven entries, oldest first, ending with the day
// containing now. Days are calendar days in now's location.
func WeeklyProgress(tasks []models.Task, now time.Time) []DayProgress {
	loc := now.Location()
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)

	days := make([]DayProgress, 7)
	for i := range days {
		days[i].Day = today.AddDate(0, 0, i-6)
	}

	for _, t := range tasks {
		cy, cm, cd := t.CreatedAt.In(loc).Date()
		created := time.Date(cy, cm, cd, 0, 0, 0, 0, loc)
		for i := range days {
			if days[i].Day.Equal(created) {
				days[i].Created++
				if t.IsCompleted {
					days[i].Completed++
				}
				break
			}
		}
	}
	return days
}
