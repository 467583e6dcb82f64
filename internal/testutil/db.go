package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"asset-management-api/internal/config"
	"asset-management-api/internal/store"

	"github.com/rs/zerolog"
)

// NewTestStore opens a migrated sqlite store in a file under t.TempDir. A
// file is used rather than :memory: because each pooled connection to an
// in-memory database sees its own empty schema.
func NewTestStore(t *testing.T) *store.Store {
	t.Helper()

	cfg := config.Database{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "assets_test.db"),
	}
	db, err := store.Open(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	st := store.New(db)

	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := st.Migrate(ctx); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return st
}
