// Package testdb opens a migrated, private in-memory SQLite database for tests.
package testdb

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tabletennis_backend/internals/configs"
	database "tabletennis_backend/internals/databases"
)

// New returns a fresh database with foreign keys on. It is closed when the
// test ends.
func New(t *testing.T) *gorm.DB {
	t.Helper()
	return NewWithForeignKeys(t, true)
}

func NewWithForeignKeys(t *testing.T, foreignKeys bool) *gorm.DB {
	t.Helper()

	db, err := database.ConnectDB(configs.DatabaseConfig{
		Driver:      configs.DriverSQLite,
		Path:        "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		ForeignKeys: foreignKeys,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
