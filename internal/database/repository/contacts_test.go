package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/pricebook/internal/database"
)

func newTestRepo(t *testing.T) *ContactRepo {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.RunMigrations(db))
	return NewContactRepo(db)
}

func contactRow(id, name, category string) ContactRow {
	return ContactRow{
		ID:         id,
		Name:       name,
		Category:   category,
		PhonesJSON: "[]",
		UpdatedAt:  database.Now(),
	}
}

func TestReplaceCategorySwapsOnlyThatCategory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := newTestRepo(t)
	require.NoError(t, repo.Upsert(ctx, contactRow("p1", "Old Plumber", "plumber")))
	require.NoError(t, repo.Upsert(ctx, contactRow("e1", "Electrician", "electrician")))

	err := repo.ReplaceCategory(ctx, "plumber", []ContactRow{
		contactRow("p2", "Ram Kumar", "plumber"),
		contactRow("p3", "Shyam Singh", "plumber"),
	})
	require.NoError(t, err)

	plumbers, err := repo.ListByCategory(ctx, "plumber")
	require.NoError(t, err)
	require.Len(t, plumbers, 2)
	for _, r := range plumbers {
		require.NotEqual(t, "p1", r.ID)
	}

	others, err := repo.ListByCategory(ctx, "electrician")
	require.NoError(t, err)
	require.Len(t, others, 1, "other categories must be untouched")
}

func TestReplaceCategoryFailureLeavesRowsUntouched(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := newTestRepo(t)
	require.NoError(t, repo.Upsert(ctx, contactRow("p1", "Old Plumber", "plumber")))

	// a transaction that cannot run must not lose the category's contacts
	dead, cancel := context.WithCancel(ctx)
	cancel()
	err := repo.ReplaceCategory(dead, "plumber", []ContactRow{
		contactRow("p2", "Ram Kumar", "plumber"),
	})
	require.Error(t, err)

	rows, err := repo.ListByCategory(ctx, "plumber")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "p1", rows[0].ID)
}

func TestUpsertBatchAllOrNothing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := newTestRepo(t)

	dead, cancel := context.WithCancel(ctx)
	cancel()
	err := repo.UpsertBatch(dead, []ContactRow{contactRow("c1", "Ram", "other")})
	require.Error(t, err)

	rows, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, rows)
}
