package notes

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/dbx"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/models"
)

const columns = `id, title, content, color, is_pinned, tags, created_at, updated_at, user_id`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func color(n *models.Note) string {
	if n.Color == "" {
		return models.DefaultNoteColor
	}
	return n.Color
}

func (r *SQLiteRepository) Create(ctx context.Context, n *models.Note) error {
	tags, err := models.EncodeTags(n.Tags)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}

	query := `INSERT INTO notes (` + columns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		n.ID, n.Title, n.Content, color(n), dbx.BoolToInt(n.IsPinned), tags,
		models.FormatTime(n.CreatedAt), models.FormatTime(n.UpdatedAt), n.UserID)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, n *models.Note) error {
	tags, err := models.EncodeTags(n.Tags)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	query := `UPDATE notes SET title = ?, content = ?, color = ?, is_pinned = ?, tags = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`
	_, err = r.db.ExecContext(ctx, query,
		n.Title, n.Content, color(n), dbx.BoolToInt(n.IsPinned), tags,
		models.FormatTime(n.UpdatedAt), n.ID, n.UserID)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ? AND user_id = ?`, id, userID); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

// ListByUser returns pinned notes first, newest first within each group.
func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string) ([]models.Note, error) {
	query := `SELECT ` + columns + ` FROM notes WHERE user_id = ? ORDER BY is_pinned DESC, created_at DESC`
	return r.query(ctx, query, userID)
}

// Search matches query case-insensitively against title or content.
func (r *SQLiteRepository) Search(ctx context.Context, userID, query string) ([]models.Note, error) {
	pattern := dbx.ContainsPattern(query)
	q := `SELECT ` + columns + ` FROM notes
		WHERE user_id = ? AND (title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\')
		ORDER BY is_pinned DESC, created_at DESC`
	return r.query(ctx, q, userID, pattern, pattern)
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]models.Note, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	result := []models.Note{}
	for rows.Next() {
		n, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}
	return result, nil
}

func scan(rows *sql.Rows) (models.Note, error) {
	var (
		n                    models.Note
		noteColor, tags      sql.NullString
		createdAt, updatedAt sql.NullString
		isPinned             sql.NullInt64
	)
	if err := rows.Scan(&n.ID, &n.Title, &n.Content, &noteColor, &isPinned, &tags,
		&createdAt, &updatedAt, &n.UserID); err != nil {
		return n, fmt.Errorf("failed to scan note: %w", err)
	}

	var err error
	n.Color = noteColor.String
	if n.Color == "" {
		n.Color = models.DefaultNoteColor
	}
	n.IsPinned = isPinned.Int64 != 0

	if n.Tags, err = models.DecodeTags(tags); err != nil {
		return n, fmt.Errorf("note %s: %w", n.ID, err)
	}
	if createdAt.Valid {
		if n.CreatedAt, err = models.ParseTime(createdAt.String); err != nil {
			return n, fmt.Errorf("note %s: %w", n.ID, err)
		}
	}
	if updatedAt.Valid {
		if n.UpdatedAt, err = models.ParseTime(updatedAt.String); err != nil {
			return n, fmt.Errorf("note %s: %w", n.ID, err)
		}
	}
	return n, nil
}
