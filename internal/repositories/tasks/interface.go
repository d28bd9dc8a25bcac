package tasks

import (
	"context"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/models"
)

type Repository interface {
	Create(ctx context.Context, t *models.Task) error
	Update(ctx context.Context, t *models.Task) error
	Delete(ctx context.Context, id, userID string) error
	ListByUser(ctx context.Context, userID string) ([]models.Task, error)
	Search(ctx context.Context, userID, query string) ([]models.Task, error)
}
