// Package storage is the persistence gateway: it owns the embedded SQLite
// database, applies the schema and exposes create/update/delete, listing and
// search for users, categories, tasks and notes, always scoped by owning user.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"sync"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/common"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/dbx"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/filex"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/logging"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/migrations"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/models"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/repositories/categories"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/repositories/notes"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/repositories/tasks"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/repositories/users"

	_ "modernc.org/sqlite"
)

// Gateway is safe for use from multiple goroutines once initialized.
type Gateway struct {
	path string
	log  logging.Logger

	mu         sync.RWMutex
	db         *sql.DB
	users      users.Repository
	categories categories.Repository
	tasks      tasks.Repository
	notes      notes.Repository
}

func NewGateway(path string, logger logging.Logger) *Gateway {
	return &Gateway{path: path, log: logger.With("component", "storage")}
}

// DSN returns the modernc.org/sqlite connection string for path. The pragmas
// are applied to every pooled connection.
func DSN(path string) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "busy_timeout(5000)")
	return path + "?" + q.Encode()
}

// Initialize opens or creates the database and brings the schema up to date.
// On an already initialized gateway it only re-applies migrations.
func (g *Gateway) Initialize(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.db != nil {
		if _, err := migrations.Apply(ctx, g.db); err != nil {
			return err
		}
		return nil
	}

	if err := filex.EnsureParentDir(g.path); err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	db, err := sql.Open("sqlite", DSN(g.path))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("open database: %w", err)
	}

	results, err := migrations.Apply(ctx, db)
	if err != nil {
		_ = db.Close()
		return err
	}
	for _, r := range results {
		g.log.Info(ctx, "migration applied", "version", r.Source.Version, "duration", r.Duration)
	}

	g.db = db
	g.users = users.NewSQLiteRepository(db)
	g.categories = categories.NewSQLiteRepository(db)
	g.tasks = tasks.NewSQLiteRepository(db)
	g.notes = notes.NewSQLiteRepository(db)

	g.log.Info(ctx, "database ready", "path", g.path)
	return nil
}

// Close releases the database. The gateway may be initialized again afterwards.
func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.db == nil {
		return nil
	}
	err := g.db.Close()
	g.db = nil
	g.users, g.categories, g.tasks, g.notes = nil, nil, nil, nil
	return err
}

func (g *Gateway) conn() (*sql.DB, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.db == nil {
		return nil, common.ErrNotInitialized
	}
	return g.db, nil
}

func (g *Gateway) userRepo() (users.Repository, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.db == nil {
		return nil, common.ErrNotInitialized
	}
	return g.users, nil
}

func (g *Gateway) categoryRepo() (categories.Repository, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.db == nil {
		return nil, common.ErrNotInitialized
	}
	return g.categories, nil
}

func (g *Gateway) taskRepo() (tasks.Repository, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.db == nil {
		return nil, common.ErrNotInitialized
	}
	return g.tasks, nil
}

func (g *Gateway) noteRepo() (notes.Repository, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.db == nil {
		return nil, common.ErrNotInitialized
	}
	return g.notes, nil
}

// CreateUser registers u. A row with the same id is refreshed in place; a
// row with a different id but the same email is replaced.
func (g *Gateway) CreateUser(ctx context.Context, u *models.User) error {
	db, err := g.conn()
	if err != nil {
		return err
	}
	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := users.NewSQLiteRepository(tx)
		if err := repo.DeleteByEmailExcept(ctx, u.Email, u.ID); err != nil {
			return err
		}
		return repo.Upsert(ctx, u)
	})
}

func (g *Gateway) UpdateUser(ctx context.Context, u *models.User) error {
	repo, err := g.userRepo()
	if err != nil {
		return err
	}
	return repo.Upsert(ctx, u)
}

// GetUser returns (nil, nil) when the user does not exist.
func (g *Gateway) GetUser(ctx context.Context, id string) (*models.User, error) {
	repo, err := g.userRepo()
	if err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, id)
}

// DeleteUser removes the user together with everything they own.
func (g *Gateway) DeleteUser(ctx context.Context, id string) error {
	repo, err := g.userRepo()
	if err != nil {
		return err
	}
	return repo.Delete(ctx, id)
}

func (g *Gateway) CreateCategory(ctx context.Context, c *models.Category) error {
	repo, err := g.categoryRepo()
	if err != nil {
		return err
	}
	return repo.Create(ctx, c)
}

func (g *Gateway) UpdateCategory(ctx context.Context, c *models.Category) error {
	repo, err := g.categoryRepo()
	if err != nil {
		return err
	}
	return repo.Update(ctx, c)
}

func (g *Gateway) DeleteCategory(ctx context.Context, id, userID string) error {
	repo, err := g.categoryRepo()
	if err != nil {
		return err
	}
	return repo.Delete(ctx, id, userID)
}

func (g *Gateway) GetCategories(ctx context.Context, userID string) ([]models.Category, error) {
	repo, err := g.categoryRepo()
	if err != nil {
		return nil, err
	}
	return repo.ListByUser(ctx, userID)
}

func (g *Gateway) CreateTask(ctx context.Context, t *models.Task) error {
	repo, err := g.taskRepo()
	if err != nil {
		return err
	}
	return repo.Create(ctx, t)
}

func (g *Gateway) UpdateTask(ctx context.Context, t *models.Task) error {
	repo, err := g.taskRepo()
	if err != nil {
		return err
	}
	return repo.Update(ctx, t)
}

func (g *Gateway) DeleteTask(ctx context.Context, id, userID string) error {
	repo, err := g.taskRepo()
	if err != nil {
		return err
	}
	return repo.Delete(ctx, id, userID)
}

func (g *Gateway) GetTasks(ctx context.Context, userID string) ([]models.Task, error) {
	repo, err := g.taskRepo()
	if err != nil {
		return nil, err
	}
	return repo.ListByUser(ctx, userID)
}

func (g *Gateway) SearchTasks(ctx context.Context, userID, query string) ([]models.Task, error) {
	repo, err := g.taskRepo()
	if err != nil {
		return nil, err
	}
	return repo.Search(ctx, userID, query)
}

func (g *Gateway) CreateNote(ctx context.Context, n *models.Note) error {
	repo, err := g.noteRepo()
	if err != nil {
		return err
	}
	return repo.Create(ctx, n)
}

func (g *Gateway) UpdateNote(ctx context.Context, n *models.Note) error {
	repo, err := g.noteRepo()
	if err != nil {
		return err
	}
	return repo.Update(ctx, n)
}

func (g *Gateway) DeleteNote(ctx context.Context, id, userID string) error {
	repo, err := g.noteRepo()
	if err != nil {
		return err
	}
	return repo.Delete(ctx, id, userID)
}

func (g *Gateway) GetNotes(ctx context.Context, userID string) ([]models.Note, error) {
	repo, err := g.noteRepo()
	if err != nil {
		return nil, err
	}
	return repo.ListByUser(ctx, userID)
}

func (g *Gateway) SearchNotes(ctx context.Context, userID, query string) ([]models.Note, error) {
	repo, err := g.noteRepo()
	if err != nil {
		return nil, err
	}
	return repo.Search(ctx, userID, query)
}
