package testutil

import (
	"database/sql"
	"testing"

	"github.com/janmersch/phasegate/internal/db"
)

// NewTestDB opens a migrated in-memory SQLite database and registers a
// cleanup that closes it when the test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}
