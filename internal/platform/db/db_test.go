package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalogue.db")

	db, err := OpenDriver(DriverSQLite, path, "")
	require.NoError(t, err)
	defer db.Close()

	assert.FileExists(t, path)
}

func TestOpenDriverRejectsUnknown(t *testing.T) {
	_, err := OpenDriver("mysql", "", "")
	assert.Error(t, err)
}
