// Package testutil provides test utilities for database setup.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/enroll/internal/infrastructure/sqlite"
)

// Now is the fixed time used by NewDB's clock.
var Now = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

// NewDB opens a migrated database in a temp dir with a fixed clock.
// The database is closed when the test ends.
func NewDB(t *testing.T, opts ...sqlite.Option) *sqlite.DB {
	t.Helper()
	opts = append([]sqlite.Option{sqlite.WithClock(func() time.Time { return Now })}, opts...)
	db, err := sqlite.NewDB(filepath.Join(t.TempDir(), "enroll.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}
