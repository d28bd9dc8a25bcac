package services

import (
	"context"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/models"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/notify"
)

// UserWriter mirrors authenticated users into the database.
type UserWriter interface {
	CreateUser(ctx context.Context, u *models.User) error
}

// TaskStore is the slice of the persistence gateway used by TaskManager.
type TaskStore interface {
	GetTasks(ctx context.Context, userID string) ([]models.Task, error)
	CreateTask(ctx context.Context, t *models.Task) error
	UpdateTask(ctx context.Context, t *models.Task) error
	DeleteTask(ctx context.Context, id, userID string) error

	GetCategories(ctx context.Context, userID string) ([]models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) error
	DeleteCategory(ctx context.Context, id, userID string) error
}

// NoteStore is the slice of the persistence gateway used by NoteManager.
type NoteStore interface {
	GetNotes(ctx context.Context, userID string) ([]models.Note, error)
	CreateNote(ctx context.Context, n *models.Note) error
	UpdateNote(ctx context.Context, n *models.Note) error
	DeleteNote(ctx context.Context, id, userID string) error
}

// KeyValueStore is general-purpose storage for the cached profile and the
// settings record. Get returns (nil, nil) for absent keys.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// SecretStore has the same contract as KeyValueStore but keeps values
// encrypted at rest.
type SecretStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Notifier schedules one-shot local notifications by id.
type Notifier interface {
	Schedule(ctx context.Context, n notify.Notification) error
	Cancel(ctx context.Context, id string) error
}

// BiometricAuthenticator is the platform's device-owner challenge.
type BiometricAuthenticator interface {
	HasHardware(ctx context.Context) (bool, error)
	IsEnrolled(ctx context.Context) (bool, error)
	Authenticate(ctx context.Context, prompt string) (bool, error)
}
