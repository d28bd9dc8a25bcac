package tasks

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/dbx"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/models"
)

const columns = `id, title, description, due_date, priority, category, tags,
	is_completed, is_recurring, recurrence_pattern, created_at, updated_at, user_id`

// SQLiteRepository implements Repository over a DBTX.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

type row struct {
	tags       string
	recurrence sql.NullString
	dueDate    sql.NullString
}

func encode(t *models.Task) (row, error) {
	tags, err := models.EncodeTags(t.Tags)
	if err != nil {
		return row{}, err
	}
	rec, err := models.EncodeRecurrence(t.RecurrencePattern)
	if err != nil {
		return row{}, err
	}
	return row{tags: tags, recurrence: rec, dueDate: models.FormatNullTime(t.DueDate)}, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, t *models.Task) error {
	enc, err := encode(t)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}

	query := `INSERT INTO tasks (` + columns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		t.ID, t.Title, models.NullString(t.Description), enc.dueDate, string(t.Priority.OrDefault()),
		t.Category, enc.tags, dbx.BoolToInt(t.IsCompleted), dbx.BoolToInt(t.IsRecurring), enc.recurrence,
		models.FormatTime(t.CreatedAt), models.FormatTime(t.UpdatedAt), t.UserID)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

// Update overwrites every mutable column of the task owned by t.UserID.
// Unknown ids are not an error.
func (r *SQLiteRepository) Update(ctx context.Context, t *models.Task) error {
	enc, err := encode(t)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	query := `UPDATE tasks SET title = ?, description = ?, due_date = ?, priority = ?, category = ?,
			tags = ?, is_completed = ?, is_recurring = ?, recurrence_pattern = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`
	_, err = r.db.ExecContext(ctx, query,
		t.Title, models.NullString(t.Description), enc.dueDate, string(t.Priority.OrDefault()), t.Category,
		enc.tags, dbx.BoolToInt(t.IsCompleted), dbx.BoolToInt(t.IsRecurring), enc.recurrence,
		models.FormatTime(t.UpdatedAt), t.ID, t.UserID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ? AND user_id = ?`, id, userID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// ListByUser returns the user's tasks, newest first.
func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string) ([]models.Task, error) {
	query := `SELECT ` + columns + ` FROM tasks WHERE user_id = ? ORDER BY created_at DESC`
	return r.query(ctx, query, userID)
}

// Search matches query case-insensitively against title or description.
func (r *SQLiteRepository) Search(ctx context.Context, userID, query string) ([]models.Task, error) {
	pattern := dbx.ContainsPattern(query)
	q := `SELECT ` + columns + ` FROM tasks
		WHERE user_id = ? AND (title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\')
		ORDER BY created_at DESC`
	return r.query(ctx, q, userID, pattern, pattern)
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	result := []models.Task{}
	for rows.Next() {
		t, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return result, nil
}

func scan(rows *sql.Rows) (models.Task, error) {
	var (
		t                        models.Task
		description, dueDate     sql.NullString
		priority, category, tags sql.NullString
		recurrence               sql.NullString
		createdAt, updatedAt     sql.NullString
		isCompleted, isRecurring sql.NullInt64
	)
	if err := rows.Scan(&t.ID, &t.Title, &description, &dueDate, &priority, &category, &tags,
		&isCompleted, &isRecurring, &recurrence, &createdAt, &updatedAt, &t.UserID); err != nil {
		return t, fmt.Errorf("failed to scan task: %w", err)
	}

	var err error
	t.Description = description.String
	t.Priority = models.Priority(priority.String).OrDefault()
	t.Category = category.String
	t.IsCompleted = isCompleted.Int64 != 0
	t.IsRecurring = isRecurring.Int64 != 0

	if t.DueDate, err = models.ParseNullTime(dueDate); err != nil {
		return t, fmt.Errorf("task %s: %w", t.ID, err)
	}
	if t.Tags, err = models.DecodeTags(tags); err != nil {
		return t, fmt.Errorf("task %s: %w", t.ID, err)
	}
	if t.RecurrencePattern, err = models.DecodeRecurrence(recurrence); err != nil {
		return t, fmt.Errorf("task %s: %w", t.ID, err)
	}
	if createdAt.Valid {
		if t.CreatedAt, err = models.ParseTime(createdAt.String); err != nil {
			return t, fmt.Errorf("task %s: %w", t.ID, err)
		}
	}
	if updatedAt.Valid {
		if t.UpdatedAt, err = models.ParseTime(updatedAt.String); err != nil {
			return t, fmt.Errorf("task %s: %w", t.ID, err)
		}
	}
	return t, nil
}
