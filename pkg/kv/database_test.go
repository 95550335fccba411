package kv_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/revoshop/pkg/database"
	"github.com/shashiranjanraj/revoshop/pkg/kv"
)

func TestDatabaseStoreSQLite(t *testing.T) {
	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)

	s, err := kv.NewDatabase(db)
	require.NoError(t, err)
	defer s.Close()

	exerciseStore(t, s)
}
