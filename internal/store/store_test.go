// store_test.go provides a shared test database helper for all store
// integration tests. Each test gets a fresh, migrated SQLite file, so no
// external service is needed.
package store

import (
	"database/sql"
	"path/filepath"
	"testing"

	"kachel/internal/database"
)

// testDB opens a fresh SQLite database in a temporary directory and runs
// migrations and the seed. A cleanup function closes the connection when
// the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Connect(filepath.Join(t.TempDir(), "kachel.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Initialize(db); err != nil {
		t.Fatalf("failed to initialize test database: %v", err)
	}
	return db.DB
}
