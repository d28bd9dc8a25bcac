package services

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/models"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/notify"
)

var errBoom = errors.New("boom")

// fixedClock always returns the same instant, which forces stamp to step
// update timestamps forward by itself.
func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// ---- key/value and secret stores ----

type memKV struct {
	mu     sync.Mutex
	data   map[string][]byte
	getErr error
	setErr error
	delErr error
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return slices.Clone(v), nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = slices.Clone(value)
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.delErr != nil {
		return m.delErr
	}
	delete(m.data, key)
	return nil
}

func (m *memKV) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

// ---- user writer ----

type fakeUsers struct {
	created []models.User
	err     error
}

func (f *fakeUsers) CreateUser(_ context.Context, u *models.User) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, *u)
	return nil
}

// ---- task and note stores ----

type fakeStore struct {
	tasks      []models.Task
	notes      []models.Note
	categories []models.Category

	getErr    error
	createErr error
	updateErr error
	deleteErr error

	taskDeletes []string
	noteDeletes []string
	catCreates  int
}

func (f *fakeStore) GetTasks(_ context.Context, userID string) ([]models.Task, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := []models.Task{}
	for _, t := range f.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateTask(_ context.Context, t *models.Task) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.tasks = append([]models.Task{*t}, f.tasks...)
	return nil
}

func (f *fakeStore) UpdateTask(_ context.Context, t *models.Task) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == t.ID && f.tasks[i].UserID == t.UserID {
			f.tasks[i] = *t
		}
	}
	return nil
}

func (f *fakeStore) DeleteTask(_ context.Context, id, userID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.taskDeletes = append(f.taskDeletes, id+"/"+userID)
	f.tasks = slices.DeleteFunc(f.tasks, func(t models.Task) bool { return t.ID == id && t.UserID == userID })
	return nil
}

func (f *fakeStore) GetCategories(_ context.Context, userID string) ([]models.Category, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := []models.Category{}
	for _, c := range f.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b models.Category) int { return compareStrings(a.Name, b.Name) })
	return out, nil
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (f *fakeStore) CreateCategory(_ context.Context, c *models.Category) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.catCreates++
	f.categories = append(f.categories, *c)
	return nil
}

func (f *fakeStore) DeleteCategory(_ context.Context, id, userID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.categories = slices.DeleteFunc(f.categories, func(c models.Category) bool { return c.ID == id && c.UserID == userID })
	return nil
}

func (f *fakeStore) GetNotes(_ context.Context, userID string) ([]models.Note, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := []models.Note{}
	for _, n := range f.notes {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateNote(_ context.Context, n *models.Note) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.notes = append([]models.Note{*n}, f.notes...)
	return nil
}

func (f *fakeStore) UpdateNote(_ context.Context, n *models.Note) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.notes {
		if f.notes[i].ID == n.ID && f.notes[i].UserID == n.UserID {
			f.notes[i] = *n
		}
	}
	return nil
}

func (f *fakeStore) DeleteNote(_ context.Context, id, userID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.noteDeletes = append(f.noteDeletes, id+"/"+userID)
	f.notes = slices.DeleteFunc(f.notes, func(n models.Note) bool { return n.ID == id && n.UserID == userID })
	return nil
}

// ---- notifier ----

type fakeNotifier struct {
	mu          sync.Mutex
	scheduled   map[string]notify.Notification
	cancels     []string
	scheduleErr error
	cancelErr   error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{scheduled: make(map[string]notify.Notification)}
}

func (f *fakeNotifier) Schedule(_ context.Context, n notify.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.scheduleErr != nil {
		return f.scheduleErr
	}
	f.scheduled[n.ID] = n
	return nil
}

func (f *fakeNotifier) Cancel(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancels = append(f.cancels, id)
	if f.cancelErr != nil {
		return f.cancelErr
	}
	delete(f.scheduled, id)
	return nil
}

func (f *fakeNotifier) pending(id string) (notify.Notification, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.scheduled[id]
	return n, ok
}

// ---- biometric ----

type fakeBiometric struct {
	hardware bool
	enrolled bool
	result   bool
	authErr  error
	hwErr    error
	prompts  []string
}

func (f *fakeBiometric) HasHardware(context.Context) (bool, error) { return f.hardware, f.hwErr }
func (f *fakeBiometric) IsEnrolled(context.Context) (bool, error)  { return f.enrolled, nil }

func (f *fakeBiometric) Authenticate(_ context.Context, prompt string) (bool, error) {
	f.prompts = append(f.prompts, prompt)
	return f.result, f.authErr
}
