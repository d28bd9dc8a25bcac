package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/models"
)

func TestComputeTaskStats(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tasks := []models.Task{
		{ID: "1", Priority: models.PriorityHigh, DueDate: &past},
		{ID: "2", Priority: models.PriorityHigh, DueDate: &past, IsCompleted: true},
		{ID: "3", Priority: models.PriorityLow, DueDate: &future},
		{ID: "4"},
	}

	s := ComputeTaskStats(tasks, now)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 3, s.Pending)
	assert.Equal(t, 1, s.Overdue)
	assert.InDelta(t, 25.0, s.CompletionRate, 1e-9)
	assert.Equal(t, map[models.Priority]int{
		models.PriorityHigh:   2,
		models.PriorityMedium: 1,
		models.PriorityLow:    1,
	}, s.ByPriority)
}

func TestComputeTaskStats_Empty(t *testing.T) {
	s := ComputeTaskStats(nil, time.Now())
	assert.Zero(t, s.Total)
	assert.Zero(t, s.CompletionRate)
	assert.Len(t, s.ByPriority, 3)
}

func TestWeeklyProgress(t *testing.T) {
	now := time.Date(2026, 10, 15, 18, 30, 0, 0, time.UTC)
	tasks := []models.Task{
		{ID: "today", CreatedAt: now.Add(-time.Hour), IsCompleted: true},
		{ID: "today-2", CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "six-days-ago", CreatedAt: now.AddDate(0, 0, -6)},
		{ID: "too-old", CreatedAt: now.AddDate(0, 0, -7)},
	}

	days := WeeklyProgress(tasks, now)
	require.Len(t, days, 7)

	assert.Equal(t, time.Date(2026, 10, 9, 0, 0, 0, 0, time.UTC), days[0].Day)
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), days[6].Day)

	assert.Equal(t, 1, days[0].Created)
	assert.Equal(t, 0, days[0].Completed)
	assert.Equal(t, 2, days[6].Created)
	assert.Equal(t, 1, days[6].Completed)

	total := 0
	for _, d := range days {
		total += d.Created
	}
	assert.Equal(t, 3, total)
}
