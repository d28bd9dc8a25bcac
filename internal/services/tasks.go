package services

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/logging"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/models"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/notify"
)

// DefaultCategories are seeded for a user that has none. Each seeded row
// gets a fresh id because category ids are unique across users.
var DefaultCategories = []models.Category{
	{Name: "Work", Color: "#3b82f6", Icon: "work"},
	{Name: "Personal", Color: "#10b981", Icon: "person"},
	{Name: "Shopping", Color: "#f59e0b", Icon: "shopping-cart"},
	{Name: "Health", Color: "#ef4444", Icon: "heart"},
}

const reminderTitle = "Task Reminder"

// TaskManager owns the active user's tasks and categories and the derived,
// filtered task view.
type TaskManager struct {
	store    TaskStore
	notifier Notifier
	log      logging.Logger
	now      Clock

	op sync.Mutex

	mu         sync.RWMutex
	tasks      []models.Task
	filtered   []models.Task
	categories []models.Category
	filter     TaskFilter
	loading    bool
	err        error
}

func NewTaskManager(store TaskStore, notifier Notifier, logger logging.Logger, now Clock) *TaskManager {
	if now == nil {
		now = time.Now
	}
	return &TaskManager{
		store:      store,
		notifier:   notifier,
		log:        logger.With("component", "tasks"),
		now:        now,
		tasks:      []models.Task{},
		filtered:   []models.Task{},
		categories: []models.Category{},
		filter:     DefaultTaskFilter(),
	}
}

// Dispose drops all in-memory state. Scheduled notifications are kept.
func (m *TaskManager) Dispose() {
	m.op.Lock()
	defer m.op.Unlock()

	m.mu.Lock()
	m.tasks, m.filtered, m.categories = []models.Task{}, []models.Task{}, []models.Category{}
	m.filter, m.err, m.loading = DefaultTaskFilter(), nil, false
	m.mu.Unlock()
}

func (m *TaskManager) Tasks() []models.Task {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.tasks)
}

// Filtered returns the derived view.
func (m *TaskManager) Filtered() []models.Task {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.filtered)
}

func (m *TaskManager) Categories() []models.Category {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.categories)
}

func (m *TaskManager) Filter() TaskFilter {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.filter
}

func (m *TaskManager) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

func (m *TaskManager) Err() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.err
}

func (m *TaskManager) ClearError() {
	m.mu.Lock()
	m.err = nil
	m.mu.Unlock()
}

// Stats summarises all loaded tasks, ignoring the filter.
func (m *TaskManager) Stats() TaskStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return ComputeTaskStats(m.tasks, m.now())
}

func (m *TaskManager) WeeklyProgress() []DayProgress {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return WeeklyProgress(m.tasks, m.now())
}

func (m *TaskManager) fail(ctx context.Context, msg string, err error) {
	m.log.Error(ctx, msg, "error", err)
	m.mu.Lock()
	m.err = fmt.Errorf("%s: %w", msg, err)
	m.mu.Unlock()
}

// setTasks replaces the list and recomputes the view. Callers hold m.mu.
func (m *TaskManager) setTasks(tasks []models.Task) {
	m.tasks = tasks
	m.filtered = ProjectTasks(m.tasks, m.filter)
}

func (m *TaskManager) find(id string) (models.Task, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := slices.IndexFunc(m.tasks, func(t models.Task) bool { return t.ID == id })
	if i < 0 {
		return models.Task{}, false
	}
	return m.tasks[i], true
}

// LoadTasks replaces the in-memory list with the user's stored tasks.
func (m *TaskManager) LoadTasks(ctx context.Context, userID string) {
	m.op.Lock()
	defer m.op.Unlock()

	m.mu.Lock()
	m.loading, m.err = true, nil
	m.mu.Unlock()

	tasks, err := m.store.GetTasks(ctx, userID)

	m.mu.Lock()
	m.loading = false
	if err == nil {
		m.setTasks(tasks)
	}
	m.mu.Unlock()

	if err != nil {
		m.fail(ctx, "failed to load tasks", err)
	}
}

// LoadCategories loads the user's categories, seeding DefaultCategories
// first when the user has none.
func (m *TaskManager) LoadCategories(ctx context.Context, userID string) {
	m.op.Lock()
	defer m.op.Unlock()

	cats, err := m.loadOrSeedCategories(ctx, userID)
	if err != nil {
		m.fail(ctx, "failed to load categories", err)
		return
	}

	m.mu.Lock()
	m.categories = cats
	m.mu.Unlock()
}

func (m *TaskManager) loadOrSeedCategories(ctx context.Context, userID string) ([]models.Category, error) {
	cats, err := m.store.GetCategories(ctx, userID)
	if err != nil || len(cats) > 0 {
		return cats, err
	}

	for _, c := range DefaultCategories {
		c.ID = models.NewID(models.PrefixCategory)
		c.UserID = userID
		if err := m.store.CreateCategory(ctx, &c); err != nil {
			return nil, err
		}
	}
	m.log.Info(ctx, "default categories seeded", "user_id", userID)

	return m.store.GetCategories(ctx, userID)
}

// CreateCategory stores a new category for c.UserID and appends it to the
// list. The id is assigned here.
func (m *TaskManager) CreateCategory(ctx context.Context, c models.Category) *models.Category {
	m.op.Lock()
	defer m.op.Unlock()

	c.ID = models.NewID(models.PrefixCategory)
	if err := m.store.CreateCategory(ctx, &c); err != nil {
		m.fail(ctx, "failed to create category", err)
		return nil
	}

	m.mu.Lock()
	m.categories = append(m.categories, c)
	m.mu.Unlock()
	return &c
}

// DeleteCategory removes a loaded category. Unknown ids are ignored. Tasks
// that reference the category keep the reference.
func (m *TaskManager) DeleteCategory(ctx context.Context, id string) {
	m.op.Lock()
	defer m.op.Unlock()

	m.mu.RLock()
	i := slices.IndexFunc(m.categories, func(c models.Category) bool { return c.ID == id })
	var c models.Category
	if i >= 0 {
		c = m.categories[i]
	}
	m.mu.RUnlock()
	if i < 0 {
		return
	}

	if err := m.store.DeleteCategory(ctx, id, c.UserID); err != nil {
		m.fail(ctx, "failed to delete category", err)
		return
	}

	m.mu.Lock()
	m.categories = slices.DeleteFunc(m.categories, func(c models.Category) bool { return c.ID == id })
	m.mu.Unlock()
}

func validateTask(t *models.Task) error {
	p, err := models.ParsePriority(string(t.Priority))
	if err != nil {
		return err
	}
	t.Priority = p
	if t.Tags == nil {
		t.Tags = []string{}
	}
	if t.RecurrencePattern != nil {
		if err := t.RecurrencePattern.Validate(); err != nil {
			return err
		}
		rp := *t.RecurrencePattern
		rp.EndDate = storedTime(rp.EndDate)
		t.RecurrencePattern = &rp
	}
	t.DueDate = storedTime(t.DueDate)
	return nil
}

// storedTime returns a copy of tp at the precision the store keeps, so the
// loaded copy equals what GetTasks reads back.
func storedTime(tp *time.Time) *time.Time {
	if tp == nil {
		return nil
	}
	v := models.Timestamp(*tp)
	return &v
}

// CreateTask assigns an id and timestamps to draft, stores it, schedules its
// reminder when it has a due date and puts it at the front of the list.
func (m *TaskManager) CreateTask(ctx context.Context, draft models.Task) *models.Task {
	m.op.Lock()
	defer m.op.Unlock()

	t := draft
	if err := validateTask(&t); err != nil {
		m.fail(ctx, "failed to create task", err)
		return nil
	}
	t.ID = models.NewID(models.PrefixTask)
	t.CreatedAt = models.Timestamp(m.now())
	t.UpdatedAt = t.CreatedAt

	if err := m.store.CreateTask(ctx, &t); err != nil {
		m.fail(ctx, "failed to create task", err)
		return nil
	}

	if t.DueDate != nil {
		m.ScheduleNotification(ctx, t)
	}

	m.mu.Lock()
	m.setTasks(append([]models.Task{t}, m.tasks...))
	m.mu.Unlock()

	m.log.Debug(ctx, "task created", "task_id", t.ID)
	return &t
}

// UpdateTask stores t with a fresh update timestamp and replaces the loaded
// copy. When t has a due date its reminder is rescheduled. A reminder is
// not cancelled when the due date is removed.
func (m *TaskManager) UpdateTask(ctx context.Context, t models.Task) {
	m.op.Lock()
	defer m.op.Unlock()

	if err := validateTask(&t); err != nil {
		m.fail(ctx, "failed to update task", err)
		return
	}

	prev := t.UpdatedAt
	if cur, ok := m.find(t.ID); ok && cur.UpdatedAt.After(prev) {
		prev = cur.UpdatedAt
	}
	if t.CreatedAt.After(prev) {
		prev = t.CreatedAt
	}
	t.UpdatedAt = stamp(m.now, prev)

	if err := m.store.UpdateTask(ctx, &t); err != nil {
		m.fail(ctx, "failed to update task", err)
		return
	}

	if t.DueDate != nil {
		m.ScheduleNotification(ctx, t)
	}

	m.replace(t)
}

func (m *TaskManager) replace(t models.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tasks := slices.Clone(m.tasks)
	for i := range tasks {
		if tasks[i].ID == t.ID {
			tasks[i] = t
		}
	}
	m.setTasks(tasks)
}

// DeleteTask removes a loaded task and cancels its reminder. Unknown ids are
// ignored.
func (m *TaskManager) DeleteTask(ctx context.Context, id string) {
	m.op.Lock()
	defer m.op.Unlock()

	t, ok := m.find(id)
	if !ok {
		return
	}

	if err := m.store.DeleteTask(ctx, id, t.UserID); err != nil {
		m.fail(ctx, "failed to delete task", err)
		return
	}

	if err := m.notifier.Cancel(ctx, id); err != nil {
		m.log.Warn(ctx, "failed to cancel notification", "task_id", id, "error", err)
	}

	m.mu.Lock()
	m.setTasks(slices.DeleteFunc(slices.Clone(m.tasks), func(t models.Task) bool { return t.ID == id }))
	m.mu.Unlock()
}

// ToggleTaskComplete flips the completion flag of a loaded task. Unknown ids
// are ignored. Completing a task leaves its reminder scheduled.
func (m *TaskManager) ToggleTaskComplete(ctx context.Context, id string) {
	m.op.Lock()
	defer m.op.Unlock()

	t, ok := m.find(id)
	if !ok {
		return
	}

	t.IsCompleted = !t.IsCompleted
	t.UpdatedAt = stamp(m.now, t.UpdatedAt)

	if err := m.store.UpdateTask(ctx, &t); err != nil {
		m.fail(ctx, "failed to toggle task", err)
		return
	}

	m.replace(t)
}

// ScheduleNotification (re)schedules the reminder for t at its due date.
// Tasks without a due date or due in the past are skipped. Failures are
// logged and never recorded as the manager's error.
func (m *TaskManager) ScheduleNotification(ctx context.Context, t models.Task) {
	if t.DueDate == nil || !t.DueDate.After(m.now()) {
		return
	}

	if err := m.notifier.Cancel(ctx, t.ID); err != nil {
		m.log.Warn(ctx, "failed to cancel notification", "task_id", t.ID, "error", err)
	}

	n := notify.Notification{
		ID:    t.ID,
		Title: reminderTitle,
		Body:  fmt.Sprintf(`"%s" is due now`, t.Title),
		Data:  map[string]string{"taskId": t.ID},
		At:    *t.DueDate,
	}
	if err := m.notifier.Schedule(ctx, n); err != nil {
		m.log.Warn(ctx, "failed to schedule notification", "task_id", t.ID, "error", err)
	}
}

// RestoreNotifications schedules the reminder of every loaded task that is
// still due in the future. The scheduler keeps nothing across restarts, so
// the app calls it after LoadTasks. Completed tasks keep their reminder, as
// completing a task does not cancel it.
func (m *TaskManager) RestoreNotifications(ctx context.Context) {
	m.op.Lock()
	defer m.op.Unlock()

	for _, t := range m.Tasks() {
		m.ScheduleNotification(ctx, t)
	}
}

// SetSearchQuery and the other setters update one filter field and
// recompute the view.
func (m *TaskManager) SetSearchQuery(q string) {
	m.updateFilter(func(f *TaskFilter) { f.Query = q })
}

// SetFilterPriority filters by priority; the empty priority clears it.
func (m *TaskManager) SetFilterPriority(p models.Priority) {
	m.updateFilter(func(f *TaskFilter) { f.Priority = p })
}

// SetFilterCategory filters by category; the empty string clears it.
func (m *TaskManager) SetFilterCategory(c string) {
	m.updateFilter(func(f *TaskFilter) { f.Category = c })
}

func (m *TaskManager) SetShowCompleted(show bool) {
	m.updateFilter(func(f *TaskFilter) { f.ShowCompleted = show })
}

func (m *TaskManager) updateFilter(fn func(*TaskFilter)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.filter)
	m.filtered = ProjectTasks(m.tasks, m.filter)
}

// ApplyFilters recomputes the view from the current list and filter.
func (m *TaskManager) ApplyFilters() {
	m.updateFilter(func(*TaskFilter) {})
}
