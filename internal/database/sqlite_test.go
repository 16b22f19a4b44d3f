package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filedrop.db")
	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
	assert.FileExists(t, path)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestOpenFailsForMissingDirectory(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "filedrop.db"))
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	got := dsn("/var/lib/filedrop.db")
	assert.Contains(t, got, "file:/var/lib/filedrop.db?")
	assert.Contains(t, got, "_journal_mode=WAL")
	assert.Contains(t, got, "_busy_timeout=5000")
	assert.Contains(t, got, "mode=rwc")
}
