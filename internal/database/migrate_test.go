package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsArePaired(t *testing.T) {
	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	for _, name := range names {
		if strings.HasSuffix(name, ".up.sql") {
			assert.Contains(t, names, strings.TrimSuffix(name, ".up.sql")+".down.sql")
		}
	}
}

// Values are JSON text that may carry \u0000, which Postgres jsonb refuses.
func TestEntryValuesStoredAsText(t *testing.T) {
	raw, err := fs.ReadFile(migrationFiles, "migrations/000001_create_kv_entries.up.sql")
	require.NoError(t, err)

	schema := strings.ToUpper(string(raw))
	assert.NotContains(t, schema, "JSONB")
	assert.Regexp(t, `VALUE\s+TEXT\s+NOT NULL`, schema)
}
