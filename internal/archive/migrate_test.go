package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rotorpost/rotorpost/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateArchive_NoneBackend(t *testing.T) {
	err := MigrateArchive(schema.NoneBackend, "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migrations are not supported for NoneBackend")
}

func TestMigrateArchive_SQLite(t *testing.T) {
	// Create a temporary database file for testing
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test_migration.db")

	// Run migration to the latest version
	err := MigrateArchive(schema.SQLiteBackend, dbPath, -1)
	require.NoError(t, err)

	// Verify migration was successful by checking the database file exists
	_, err = os.Stat(dbPath)
	assert.NoError(t, err)

	// Run migration again (should be a no-op)
	err = MigrateArchive(schema.SQLiteBackend, dbPath, -1)
	assert.NoError(t, err)

	// Roll back to version 1 (drops the indexes, keeps the tables)
	err = MigrateArchive(schema.SQLiteBackend, dbPath, 1)
	assert.NoError(t, err)

	// Rollback to version 0
	err = MigrateArchive(schema.SQLiteBackend, dbPath, 0)
	assert.NoError(t, err)

	// Migrate back up to version 2
	err = MigrateArchive(schema.SQLiteBackend, dbPath, 2)
	assert.NoError(t, err)
}

func TestMigrateArchive_SQLiteInMemory(t *testing.T) {
	// Test with in-memory database
	err := MigrateArchive(schema.SQLiteBackend, ":memory:", -1)
	require.NoError(t, err)
}
