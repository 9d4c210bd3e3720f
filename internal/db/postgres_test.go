package db

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles_SortedAndFiltered(t *testing.T) {
	fsys := fstest.MapFS{
		"002_notifications.sql": {Data: []byte("SELECT 1")},
		"001_init.sql":          {Data: []byte("SELECT 1")},
		"README.md":             {Data: []byte("docs")},
		"old/003_skip.sql":      {Data: []byte("SELECT 1")},
	}

	names, err := migrationFiles(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_init.sql", "002_notifications.sql"}, names)
}

func TestPending(t *testing.T) {
	all := []string{"001_init.sql", "002_notifications.sql", "003_listings.sql"}

	assert.Equal(t, []string{"002_notifications.sql", "003_listings.sql"}, pending(all, []string{"001_init.sql"}))
	assert.Empty(t, pending(all, all))
}
