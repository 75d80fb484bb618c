package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/kshengbe-dot/This-Is-Us-Series/internal/config"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/database"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/identity"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testBook = "book-1"

var testNow = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

// setupTestDB opens a migrated SQLite file database with a single connection
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		DBType:     "sqlite",
		DBDatabase: filepath.Join(t.TempDir(), "community.db"),
	}
	dialector, err := database.Dialector(cfg)
	require.NoError(t, err)

	db, err := database.Open(dialector)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func guest(token string) identity.Reader {
	return identity.Reader{GuestToken: token}
}

func user(id string) identity.Reader {
	return identity.Reader{UserID: id, GuestToken: "g-" + id}
}

func admin() identity.Reader {
	return identity.Reader{UserID: "admin-1", IsAdmin: true}
}

// guestToken returns a valid token that differs per n
func guestToken(n int) string {
	const hex = "0123456789abcdef"
	b := []byte("00000000000000000000000000000000")
	for i := len(b) - 1; n > 0 && i >= 0; i-- {
		b[i] = hex[n%16]
		n /= 16
	}
	return string(b)
}
