package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threatlens/threatlens-api/internal/database"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	ctx := context.Background()

	db, err := database.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(ctx, db))
	return NewRepository(db)
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "a@x.com", "hash")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "a@x.com", created.Email)

	byEmail, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", byID.Email)
}

func TestRepository_DuplicateEmail(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "dup@x.com", "h1")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "dup@x.com", "h2")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	n, err := repo.CountByEmail(ctx, "dup@x.com")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRepository_EmailIsCaseSensitive(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "Case@x.com", "h")
	require.NoError(t, err)

	_, err = repo.GetByEmail(ctx, "case@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_NotFoundAndDelete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.GetByEmail(ctx, "missing@x.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.DeleteByEmail(ctx, "missing@x.com"), ErrNotFound)

	_, err = repo.Create(ctx, "gone@x.com", "h")
	require.NoError(t, err)
	require.NoError(t, repo.DeleteByEmail(ctx, "gone@x.com"))

	_, err = repo.GetByEmail(ctx, "gone@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}
