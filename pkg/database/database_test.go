package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskmanager/pkg/config"
	"github.com/taskmanager/pkg/entities"
	"gorm.io/gorm"
)

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(config.Database{Driver: "oracle"})
	require.Error(t, err)
}

func TestAutoMigrate_CreatesTables(t *testing.T) {
	db := OpenTestDB(t)

	assert.True(t, db.Migrator().HasTable(&entities.User{}))
	assert.True(t, db.Migrator().HasTable(&entities.Task{}))
	assert.True(t, db.Migrator().HasIndex(&entities.Task{}, "idx_tasks_user_status"))
}

func TestIsDuplicateKey_SQLiteUniqueEmail(t *testing.T) {
	db := OpenTestDB(t)

	require.NoError(t, db.Create(&entities.User{Email: "a@x.com", Password: "h"}).Error)
	err := db.Create(&entities.User{Email: "a@x.com", Password: "h"}).Error
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))
}

func TestIsDuplicateKey(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm duplicated", gorm.ErrDuplicatedKey, true},
		{"wrapped gorm duplicated", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), true},
		{"postgres unique", &pgconn.PgError{Code: "23505"}, true},
		{"postgres fk", &pgconn.PgError{Code: "23503"}, false},
		{"other", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDuplicateKey(tt.err))
		})
	}
}
