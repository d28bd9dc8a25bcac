package notes

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/migrations"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "notes.db")+"?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = migrations.Apply(context.Background(), db)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO users (id, email) VALUES ('u1', 'u1@example.com'), ('u2', 'u2@example.com')`)
	require.NoError(t, err)
	return db
}

var base = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

func newNote(id, title string, offset time.Duration) *models.Note {
	return &models.Note{
		ID:        id,
		Title:     title,
		Content:   "body of " + title,
		Color:     "#fef3c7",
		Tags:      []string{},
		CreatedAt: base.Add(offset),
		UpdatedAt: base.Add(offset),
		UserID:    "u1",
	}
}

func ids(notes []models.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

func TestCreate_RoundTrip(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	n := newNote("note-1", "Ideas", 0)
	n.IsPinned = true
	n.Tags = []string{"brainstorm"}
	n.UpdatedAt = base.Add(1500 * time.Millisecond)
	require.NoError(t, r.Create(ctx, n))

	got, err := r.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, cmp.Diff(*n, got[0]))
}

func TestCreate_EmptyColorGetsDefault(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	n := newNote("note-1", "Plain", 0)
	n.Color = ""
	require.NoError(t, r.Create(ctx, n))

	got, err := r.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.DefaultNoteColor, got[0].Color)
}

func TestListByUser_PinnedFirstThenNewest(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	a := newNote("a", "a", 0)
	b := newNote("b", "b", time.Hour)
	c := newNote("c", "c", 2*time.Hour)
	a.IsPinned = true
	for _, n := range []*models.Note{a, b, c} {
		require.NoError(t, r.Create(ctx, n))
	}

	got, err := r.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "b"}, ids(got))
}

func TestUpdate_AndOwnerScoping(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	n := newNote("note-1", "Draft", 0)
	require.NoError(t, r.Create(ctx, n))

	n.Title = "Final"
	n.Content = "done"
	n.IsPinned = true
	n.UpdatedAt = base.Add(time.Minute)
	require.NoError(t, r.Update(ctx, n))

	intruder := *n
	intruder.UserID = "u2"
	intruder.Title = "hacked"
	require.NoError(t, r.Update(ctx, &intruder))
	require.NoError(t, r.Delete(ctx, n.ID, "u2"))

	got, err := r.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Final", got[0].Title)
	assert.True(t, got[0].IsPinned)
	assert.Equal(t, base.Add(time.Minute), got[0].UpdatedAt)

	require.NoError(t, r.Delete(ctx, n.ID, "u1"))
	got, err = r.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearch_TitleOrContent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	budget := newNote("budget", "Budget 2026", 0)
	groceries := newNote("groceries", "Groceries", time.Hour)
	groceries.Content = "stay under BUDGET"
	trip := newNote("trip", "Trip", 2*time.Hour)
	under := newNote("under", "snake_case", 3*time.Hour)
	for _, n := range []*models.Note{budget, groceries, trip, under} {
		require.NoError(t, r.Create(ctx, n))
	}

	got, err := r.Search(ctx, "u1", "bud")
	require.NoError(t, err)
	assert.Equal(t, []string{"groceries", "budget"}, ids(got))

	got, err = r.Search(ctx, "u1", "_")
	require.NoError(t, err)
	assert.Equal(t, []string{"under"}, ids(got))

	got, err = r.Search(ctx, "u2", "bud")
	require.NoError(t, err)
	assert.Empty(t, got)
}
