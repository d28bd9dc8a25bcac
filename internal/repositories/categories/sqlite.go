package categories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/dbx"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, c *models.Category) error {
	query := `INSERT INTO categories (id, name, color, icon, user_id) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.Color, models.NullString(c.Icon), c.UserID)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, c *models.Category) error {
	query := `UPDATE categories SET name = ?, color = ?, icon = ? WHERE id = ? AND user_id = ?`
	_, err := r.db.ExecContext(ctx, query, c.Name, c.Color, models.NullString(c.Icon), c.ID, c.UserID)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ? AND user_id = ?`, id, userID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// ListByUser returns the user's categories ordered by name.
func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, color, icon, user_id FROM categories WHERE user_id = ? ORDER BY name`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select categories: %w", err)
	}
	defer rows.Close()

	result := []models.Category{}
	for rows.Next() {
		var (
			c    models.Category
			icon sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &icon, &c.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		c.Icon = icon.String
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return result, nil
}
