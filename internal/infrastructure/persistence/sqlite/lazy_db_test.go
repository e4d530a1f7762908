package sqlite_test

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/bnema/tapmap/internal/infrastructure/persistence/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLazyDB_NotOpenedUntilFirstUse(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "keymaps.db")
	lazy := sqlite.NewLazyDB(dbPath)
	assert.False(t, lazy.IsOpen())

	db, err := lazy.DB(testCtx())
	require.NoError(t, err)
	require.NotNil(t, db)
	assert.True(t, lazy.IsOpen())
	assert.FileExists(t, dbPath)

	require.NoError(t, lazy.Close())
	assert.False(t, lazy.IsOpen())
}

func TestLazyDB_ConcurrentCallersShareConnection(t *testing.T) {
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "keymaps.db"))
	t.Cleanup(func() { _ = lazy.Close() })

	const goroutines = 8
	var wg sync.WaitGroup
	results := make([]any, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			db, err := lazy.DB(testCtx())
			if err == nil {
				results[i] = db
			}
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		require.NotNil(t, results[i])
		assert.Same(t, results[0], results[i])
	}
}

func TestLazyDB_RemembersOpenFailure(t *testing.T) {
	lazy := sqlite.NewLazyDB("")

	_, err := lazy.DB(testCtx())
	require.Error(t, err)
	_, err = lazy.DB(testCtx())
	assert.ErrorContains(t, err, "database path cannot be empty")
}

func TestNewConnection_InMemory(t *testing.T) {
	db, err := sqlite.NewConnection(testCtx(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })

	version, err := sqlite.GetMigrationStatus(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}
