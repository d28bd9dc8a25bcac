package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/common"
)

// Priority ranks a task. The zero value is treated as PriorityMedium.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority accepts high, medium or low in any case. Empty input yields
// PriorityMedium.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PriorityMedium, nil
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrInvalidPriority, s)
	}
}

// OrDefault maps the empty priority onto medium.
func (p Priority) OrDefault() Priority {
	if p == "" {
		return PriorityMedium
	}
	return p
}

// Rank orders priorities high < medium < low.
func (p Priority) Rank() int {
	switch p.OrDefault() {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

type RecurrenceType string

const (
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
	RecurrenceCustom  RecurrenceType = "custom"
)

// RecurrencePattern describes how a recurring task repeats.
type RecurrencePattern struct {
	Type     RecurrenceType `json:"type"`
	Interval int            `json:"interval"`
	EndDate  *time.Time     `json:"endDate,omitempty"`
}

func (r RecurrencePattern) Validate() error {
	switch r.Type {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceCustom:
	default:
		return fmt.Errorf("%w: unknown type %q", common.ErrInvalidRecurrence, r.Type)
	}
	if r.Interval < 1 {
		return fmt.Errorf("%w: interval must be positive, got %d", common.ErrInvalidRecurrence, r.Interval)
	}
	return nil
}

type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Category struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	Icon   string `json:"icon"`
	UserID string `json:"userId"`
}

type Task struct {
	ID                string
	Title             string
	Description       string
	DueDate           *time.Time
	Priority          Priority
	Category          string
	Tags              []string
	IsCompleted       bool
	IsRecurring       bool
	RecurrencePattern *RecurrencePattern
	CreatedAt         time.Time
	UpdatedAt         time.Time
	UserID            string
}

// HasDueDate reports whether the task carries a due date.
func (t Task) HasDueDate() bool { return t.DueDate != nil }

// IsOverdue reports whether an incomplete task's due date is before now.
func (t Task) IsOverdue(now time.Time) bool {
	return !t.IsCompleted && t.DueDate != nil && t.DueDate.Before(now)
}

// DefaultNoteColor is the schema default for notes.color.
const DefaultNoteColor = "#ffffff"

type Note struct {
	ID        string
	Title     string
	Content   string
	Color     string
	IsPinned  bool
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    string
}

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// AppSettings is the installation-wide preferences record.
type AppSettings struct {
	Theme                Theme `json:"theme"`
	BiometricEnabled     bool  `json:"biometricEnabled"`
	NotificationsEnabled bool  `json:"notificationsEnabled"`
	// AutoSaveInterval is in milliseconds.
	AutoSaveInterval int `json:"autoSaveInterval"`
}

func DefaultSettings() AppSettings {
	return AppSettings{
		Theme:                ThemeSystem,
		BiometricEnabled:     false,
		NotificationsEnabled: true,
		AutoSaveInterval:     3000,
	}
}
