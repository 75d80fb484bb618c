package cache

import (
	"context"
	"testing"
	"time"

	"github.com/kshengbe-dot/This-Is-Us-Series/internal/devstack"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/models"
	"github.com/rs/zerolog"
)

func TestNilCacheIsAlwaysEmpty(t *testing.T) {
	ctx := context.Background()

	var rc *RedisCache
	if rc.Enabled() {
		t.Error("nil cache should not be enabled")
	}
	if err := rc.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Errorf("Set on nil cache: %v", err)
	}
	if v, err := rc.Get(ctx, "k"); v != nil || err != nil {
		t.Errorf("Get on nil cache = %v, %v", v, err)
	}

	bc := NewBookCache(NewRedisCache("", "", 0), time.Minute, zerolog.Nop())
	bc.SetStats(ctx, &models.BookStats{BookID: "b"})
	if _, ok := bc.Stats(ctx, "b"); ok {
		t.Error("Disabled book cache should miss")
	}
	bc.InvalidateStats(ctx, "b")

	var nilBook *BookCache
	if _, ok := nilBook.RatingSummary(ctx, "b"); ok {
		t.Error("nil book cache should miss")
	}
}

func TestBookCacheRedis(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}
	ctx := context.Background()

	stack, err := devstack.StartRedis(ctx)
	if err != nil {
		t.Fatalf("Failed to start redis: %v", err)
	}
	t.Cleanup(func() { stack.Terminate(context.Background()) })

	rc := NewRedisCache(stack.RedisAddr, "", 0)
	t.Cleanup(func() { rc.Close() })
	if err := rc.Ping(ctx); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}

	bc := NewBookCache(rc, time.Minute, zerolog.Nop())

	bc.SetStats(ctx, &models.BookStats{BookID: "season-1", TotalReaders: 3, GuestReaders: 2, SignedInReaders: 1})
	stats, ok := bc.Stats(ctx, "season-1")
	if !ok {
		t.Fatal("Expected a cache hit")
	}
	if stats.TotalReaders != 3 || stats.GuestReaders != 2 || stats.SignedInReaders != 1 {
		t.Errorf("Unexpected cached stats %+v", stats)
	}

	bc.InvalidateStats(ctx, "season-1")
	if _, ok := bc.Stats(ctx, "season-1"); ok {
		t.Error("Expected a miss after invalidation")
	}

	bc.SetRatingSummary(ctx, "season-1", RatingSummary{Average: 4.5, Count: 2})
	summary, ok := bc.RatingSummary(ctx, "season-1")
	if !ok || summary.Average != 4.5 || summary.Count != 2 {
		t.Errorf("Unexpected cached summary %+v %v", summary, ok)
	}
}
