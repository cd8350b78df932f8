package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/userql/core"
	"github.com/trezcool/userql/storage/database"
	"github.com/trezcool/userql/tests"
)

func TestOpen(t *testing.T) {
	t.Run("missing url", func(t *testing.T) {
		_, err := database.Open(&core.Config{Database: core.DatabaseConfig{Engine: testutil.Engine}})
		assert.EqualError(t, err, "DATABASE_URL must be set")
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := database.Open(&core.Config{Database: core.DatabaseConfig{Engine: "lol", URL: "x"}})
		assert.ErrorContains(t, err, `unknown driver "lol"`)
	})

	t.Run("pool settings", func(t *testing.T) {
		conf := testutil.Config(t)
		db, err := database.Open(conf)
		require.NoError(t, err)
		defer db.Close()

		assert.Equal(t, 1, db.Stats().MaxOpenConnections)
	})
}

func TestRunMigration(t *testing.T) {
	ctx := context.Background()
	db := testutil.PrepareDB(t)

	var count int
	require.NoError(t, db.GetContext(ctx, &count, "SELECT COUNT(*) FROM users"))
	assert.Zero(t, count)

	// up is idempotent
	require.NoError(t, database.Migrate(ctx, db, testutil.Engine))

	require.NoError(t, database.RunMigration(ctx, db, testutil.Engine, "down"))
	assert.Error(t, db.GetContext(ctx, &count, "SELECT COUNT(*) FROM users"))

	assert.ErrorContains(t, database.RunMigration(ctx, db, "lol", "up"), "setting migration dialect")
}
