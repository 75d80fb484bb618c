// integration_test.go
//
// Community data service storage tests against real database servers
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of This-Is-Us-Series.
// This-Is-Us-Series is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// This-Is-Us-Series is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with This-Is-Us-Series.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package database_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/kshengbe-dot/This-Is-Us-Series/internal/cache"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/database"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/devstack"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/identity"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/models"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/services"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWithDatabaseServer runs the concurrent write paths against the DB_TYPE server (mysql by default)
func TestWithDatabaseServer(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbType := os.Getenv("DB_TYPE")
	if dbType == "" || dbType == "sqlite" || dbType == "sqlite-pure" {
		dbType = "mysql"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	stack, err := devstack.Start(ctx, dbType, true)
	require.NoError(t, err)
	defer func() {
		for _, err := range stack.Terminate(context.Background()) {
			t.Logf("Failed to terminate: %v", err)
		}
	}()

	cfg := stack.Config()
	db, err := database.ConnectWithRetry(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	defer database.Close(db)
	require.NoError(t, database.AutoMigrate(db))

	t.Run("readers counted once under concurrency", func(t *testing.T) {
		const readers = 10
		var wg sync.WaitGroup
		for i := 0; i < readers; i++ {
			for repeat := 0; repeat < 3; repeat++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					r := identity.Reader{GuestToken: fmt.Sprintf("%032x", i+1)}
					_, err := services.CountReader(db, "book-int", r)
					assert.NoError(t, err)
				}(i)
			}
		}
		wg.Wait()

		stats, err := services.GetStats(db, "book-int")
		require.NoError(t, err)
		assert.EqualValues(t, readers, stats.TotalReaders)
		assert.EqualValues(t, readers, stats.GuestReaders)
	})

	t.Run("reaction counters mirror records", func(t *testing.T) {
		comment := models.Comment{
			BookID:        "book-int",
			Name:          "Reader",
			Text:          "Hello",
			EditableUntil: time.Now().Add(time.Hour),
		}
		require.NoError(t, db.Create(&comment).Error)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				r := identity.Reader{UserID: fmt.Sprintf("user-%d", i)}
				kind := "like"
				if i%2 == 0 {
					kind = "love"
				}
				_, err := services.ToggleReaction(db, "book-int", comment.ID, r, kind)
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		like, love, err := services.ReactionCounts(db, comment.ID)
		require.NoError(t, err)

		var stored models.Comment
		require.NoError(t, db.First(&stored, "id = ?", comment.ID).Error)
		assert.EqualValues(t, 4, like)
		assert.EqualValues(t, 4, love)
		assert.Equal(t, like, stored.LikeCount)
		assert.Equal(t, love, stored.LoveCount)
	})

	t.Run("terms version never lowered", func(t *testing.T) {
		r := identity.Reader{UserID: "terms-user", GuestToken: fmt.Sprintf("%032x", 99)}
		_, err := services.AcceptTerms(db, r, 2, true, time.Now())
		require.NoError(t, err)

		status, err := services.AcceptTerms(db, r, 1, true, time.Now())
		require.NoError(t, err)
		assert.Equal(t, 2, status.Accepted)
	})

	t.Run("stats cache round trip", func(t *testing.T) {
		redis := cache.NewRedisCache(stack.RedisAddr, "", 0)
		require.NotNil(t, redis)
		defer redis.Close()
		require.NoError(t, redis.Ping(ctx))

		bc := cache.NewBookCache(redis, time.Minute, zerolog.Nop())
		stats, err := services.GetStats(db, "book-int")
		require.NoError(t, err)

		bc.SetStats(ctx, stats)
		cached, ok := bc.Stats(ctx, "book-int")
		require.True(t, ok)
		assert.Equal(t, stats.TotalReaders, cached.TotalReaders)

		bc.InvalidateStats(ctx, "book-int")
		_, ok = bc.Stats(ctx, "book-int")
		assert.False(t, ok)
	})
}
