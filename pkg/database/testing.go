package database

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskmanager/pkg/config"
	"gorm.io/gorm"
)

// OpenTestDB returns a migrated in-memory sqlite database that is closed with the test.
func OpenTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	conn, err := Open(config.Database{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(conn))

	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return conn
}
