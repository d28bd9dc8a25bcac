package services

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/logging"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/models"
)

// NoteManager owns the active user's notes and the derived, filtered view.
type NoteManager struct {
	store NoteStore
	log   logging.Logger
	now   Clock

	op sync.Mutex

	mu       sync.RWMutex
	notes    []models.Note
	filtered []models.Note
	filter   NoteFilter
	loading  bool
	err      error
}

func NewNoteManager(store NoteStore, logger logging.Logger, now Clock) *NoteManager {
	if now == nil {
		now = time.Now
	}
	return &NoteManager{
		store:    store,
		log:      logger.With("component", "notes"),
		now:      now,
		notes:    []models.Note{},
		filtered: []models.Note{},
	}
}

func (m *NoteManager) Dispose() {
	m.op.Lock()
	defer m.op.Unlock()

	m.mu.Lock()
	m.notes, m.filtered = []models.Note{}, []models.Note{}
	m.filter, m.err, m.loading = NoteFilter{}, nil, false
	m.mu.Unlock()
}

func (m *NoteManager) Notes() []models.Note {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.notes)
}

func (m *NoteManager) Filtered() []models.Note {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.filtered)
}

func (m *NoteManager) Filter() NoteFilter {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.filter
}

func (m *NoteManager) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

func (m *NoteManager) Err() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.err
}

func (m *NoteManager) ClearError() {
	m.mu.Lock()
	m.err = nil
	m.mu.Unlock()
}

func (m *NoteManager) fail(ctx context.Context, msg string, err error) {
	m.log.Error(ctx, msg, "error", err)
	m.mu.Lock()
	m.err = fmt.Errorf("%s: %w", msg, err)
	m.mu.Unlock()
}

func (m *NoteManager) setNotes(notes []models.Note) {
	m.notes = notes
	m.filtered = ProjectNotes(m.notes, m.filter)
}

func (m *NoteManager) find(id string) (models.Note, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := slices.IndexFunc(m.notes, func(n models.Note) bool { return n.ID == id })
	if i < 0 {
		return models.Note{}, false
	}
	return m.notes[i], true
}

func (m *NoteManager) LoadNotes(ctx context.Context, userID string) {
	m.op.Lock()
	defer m.op.Unlock()

	m.mu.Lock()
	m.loading, m.err = true, nil
	m.mu.Unlock()

	notes, err := m.store.GetNotes(ctx, userID)

	m.mu.Lock()
	m.loading = false
	if err == nil {
		m.setNotes(notes)
	}
	m.mu.Unlock()

	if err != nil {
		m.fail(ctx, "failed to load notes", err)
	}
}

// CreateNote assigns an id and timestamps to draft, stores it and puts it at
// the front of the list. An empty color becomes models.DefaultNoteColor.
func (m *NoteManager) CreateNote(ctx context.Context, draft models.Note) *models.Note {
	m.op.Lock()
	defer m.op.Unlock()

	n := draft
	n.ID = models.NewID(models.PrefixNote)
	n.CreatedAt = models.Timestamp(m.now())
	n.UpdatedAt = n.CreatedAt
	if n.Color == "" {
		n.Color = models.DefaultNoteColor
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}

	if err := m.store.CreateNote(ctx, &n); err != nil {
		m.fail(ctx, "failed to create note", err)
		return nil
	}

	m.mu.Lock()
	m.setNotes(append([]models.Note{n}, m.notes...))
	m.mu.Unlock()

	m.log.Debug(ctx, "note created", "note_id", n.ID)
	return &n
}

// UpdateNote stores n with a fresh update timestamp and replaces the loaded
// copy.
func (m *NoteManager) UpdateNote(ctx context.Context, n models.Note) {
	m.op.Lock()
	defer m.op.Unlock()

	prev := n.UpdatedAt
	if cur, ok := m.find(n.ID); ok && cur.UpdatedAt.After(prev) {
		prev = cur.UpdatedAt
	}
	if n.CreatedAt.After(prev) {
		prev = n.CreatedAt
	}
	n.UpdatedAt = stamp(m.now, prev)
	if n.Color == "" {
		n.Color = models.DefaultNoteColor
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}

	if err := m.store.UpdateNote(ctx, &n); err != nil {
		m.fail(ctx, "failed to update note", err)
		return
	}

	m.replace(n)
}

func (m *NoteManager) replace(n models.Note) {
	m.mu.Lock()
	defer m.mu.Unlock()

	notes := slices.Clone(m.notes)
	for i := range notes {
		if notes[i].ID == n.ID {
			notes[i] = n
		}
	}
	m.setNotes(notes)
}

// DeleteNote removes a loaded note. Unknown ids are ignored.
func (m *NoteManager) DeleteNote(ctx context.Context, id string) {
	m.op.Lock()
	defer m.op.Unlock()

	n, ok := m.find(id)
	if !ok {
		return
	}

	if err := m.store.DeleteNote(ctx, id, n.UserID); err != nil {
		m.fail(ctx, "failed to delete note", err)
		return
	}

	m.mu.Lock()
	m.setNotes(slices.DeleteFunc(slices.Clone(m.notes), func(n models.Note) bool { return n.ID == id }))
	m.mu.Unlock()
}

// ToggleNotePin flips the pinned flag of a loaded note. Unknown ids are
// ignored.
func (m *NoteManager) ToggleNotePin(ctx context.Context, id string) {
	m.op.Lock()
	defer m.op.Unlock()

	n, ok := m.find(id)
	if !ok {
		return
	}

	n.IsPinned = !n.IsPinned
	n.UpdatedAt = stamp(m.now, n.UpdatedAt)

	if err := m.store.UpdateNote(ctx, &n); err != nil {
		m.fail(ctx, "failed to toggle note pin", err)
		return
	}

	m.replace(n)
}

func (m *NoteManager) SetSearchQuery(q string) {
	m.updateFilter(func(f *NoteFilter) { f.Query = q })
}

// SetFilterColor filters by exact color; the empty string clears it.
func (m *NoteManager) SetFilterColor(c string) {
	m.updateFilter(func(f *NoteFilter) { f.Color = c })
}

func (m *NoteManager) SetShowPinnedOnly(only bool) {
	m.updateFilter(func(f *NoteFilter) { f.PinnedOnly = only })
}

func (m *NoteManager) updateFilter(fn func(*NoteFilter)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.filter)
	m.filtered = ProjectNotes(m.notes, m.filter)
}

func (m *NoteManager) ApplyFilters() {
	m.updateFilter(func(*NoteFilter) {})
}
