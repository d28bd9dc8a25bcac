package categories

import (
	"context"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/models"
)

type Repository interface {
	Create(ctx context.Context, c *models.Category) error
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id, userID string) error
	ListByUser(ctx context.Context, userID string) ([]models.Category, error)
}
