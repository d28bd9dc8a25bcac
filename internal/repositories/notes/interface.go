package notes

import (
	"context"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/models"
)

type Repository interface {
	Create(ctx context.Context, n *models.Note) error
	Update(ctx context.Context, n *models.Note) error
	Delete(ctx context.Context, id, userID string) error
	ListByUser(ctx context.Context, userID string) ([]models.Note, error)
	Search(ctx context.Context, userID, query string) ([]models.Note, error)
}
