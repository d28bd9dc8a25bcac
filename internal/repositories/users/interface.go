package users

import (
	"context"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/models"
)

type Repository interface {
	Upsert(ctx context.Context, u *models.User) error
	DeleteByEmailExcept(ctx context.Context, email, keepID string) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	Delete(ctx context.Context, id string) error
}
