package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/focuslearner/backend/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The single-connection pool keeps the memory database alive for the whole
// test.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	database, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}
