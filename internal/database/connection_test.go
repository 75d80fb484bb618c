package database

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectorByType(t *testing.T) {
	for _, dbType := range []string{"mysql", "mariadb", "postgres", "sqlite", "sqlite-pure", "sqlserver"} {
		t.Run(dbType, func(t *testing.T) {
			d, err := Dialector(&config.Config{DBType: dbType, DBDatabase: "community", DBHost: "db", DBPort: "1"})
			require.NoError(t, err)
			assert.NotNil(t, d)
		})
	}

	_, err := Dialector(&config.Config{DBType: "oracle"})
	assert.Error(t, err)
}

func TestWithParams(t *testing.T) {
	assert.Equal(t, "a.db?x=1", withParams("a.db", "x=1"))
	assert.Equal(t, "a.db?mode=ro", withParams("a.db?mode=ro", "x=1"))
}

func TestConnectSQLiteAndMigrate(t *testing.T) {
	for _, dbType := range []string{"sqlite", "sqlite-pure"} {
		t.Run(dbType, func(t *testing.T) {
			cfg := &config.Config{
				DBType:            dbType,
				DBDatabase:        filepath.Join(t.TempDir(), "community.db"),
				DBConnectionLimit: 10,
				DBConnectAttempts: 2,
			}
			db, err := ConnectWithRetry(context.Background(), cfg, zerolog.Nop())
			require.NoError(t, err)
			defer Close(db)

			require.NoError(t, AutoMigrate(db))
			for _, m := range Models() {
				assert.True(t, db.Migrator().HasTable(m), "missing table for %T", m)
			}

			sqlDB, err := db.DB()
			require.NoError(t, err)
			assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
		})
	}
}

func TestConnectWithRetryGivesUpOnUnsupportedType(t *testing.T) {
	cfg := &config.Config{DBType: "oracle", DBConnectAttempts: 5}
	_, err := ConnectWithRetry(context.Background(), cfg, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type")
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"mysql deadlock", &mysqlDriver.MySQLError{Number: 1213}, true},
		{"mysql lock wait", fmt.Errorf("tx: %w", &mysqlDriver.MySQLError{Number: 1205}), true},
		{"mysql duplicate", &mysqlDriver.MySQLError{Number: 1062}, false},
		{"sqlite busy", errors.New("database is locked (5) (SQLITE_BUSY)"), true},
		{"postgres serialization", errors.New("ERROR: could not serialize access (SQLSTATE 40001)"), true},
		{"postgres deadlock", errors.New("ERROR: deadlock detected (SQLSTATE 40P01)"), true},
		{"other", errors.New("syntax error"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}
