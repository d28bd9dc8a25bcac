package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/dbx"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/models"
)

// SQLiteRepository implements Repository over a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Upsert inserts u or refreshes the email and display name of an existing row.
// The update path keeps the row in place so owned rows are not cascaded away.
func (r *SQLiteRepository) Upsert(ctx context.Context, u *models.User) error {
	query := `INSERT INTO users (id, email, display_name, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET email = excluded.email, display_name = excluded.display_name`
	_, err := r.db.ExecContext(ctx, query, u.ID, u.Email, models.NullString(u.DisplayName), models.FormatTime(u.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// DeleteByEmailExcept removes any user other than keepID registered under email.
func (r *SQLiteRepository) DeleteByEmailExcept(ctx context.Context, email, keepID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE email = ? AND id <> ?`, email, keepID)
	if err != nil {
		return fmt.Errorf("failed to delete user by email: %w", err)
	}
	return nil
}

// GetByID returns (nil, nil) when no such user exists.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var (
		u         models.User
		name      sql.NullString
		createdAt sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `SELECT id, email, display_name, created_at FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Email, &name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	u.DisplayName = name.String
	if createdAt.Valid {
		if u.CreatedAt, err = models.ParseTime(createdAt.String); err != nil {
			return nil, fmt.Errorf("failed to parse user created_at: %w", err)
		}
	}
	return &u, nil
}

// Delete removes the user; categories, tasks and notes go with it.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
