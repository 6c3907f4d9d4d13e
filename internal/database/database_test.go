package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threatlens/threatlens-api/internal/config"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	ctx := context.Background()

	db, err := Open(ctx, config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(ctx, db))
	// idempotent
	require.NoError(t, Migrate(ctx, db))

	n, err := db.NewSelect().Model((*User)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = db.NewSelect().Model((*Threat)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}
