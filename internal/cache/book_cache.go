// book_cache.go
//
// Reader community data service for the This Is Us series
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

package cache

import (
	"context"
	"time"

	"github.com/kshengbe-dot/This-Is-Us-Series/internal/models"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// RatingSummary is the cached shape of a rating aggregate
type RatingSummary struct {
	Average float64 `msgpack:"a"`
	Count   int64   `msgpack:"c"`
}

// BookCache caches per-item aggregates. Failures are logged and treated as misses.
type BookCache struct {
	redis *RedisCache
	ttl   time.Duration
	log   zerolog.Logger
}

// NewBookCache returns a cache over redis; redis may be nil
func NewBookCache(redis *RedisCache, ttl time.Duration, log zerolog.Logger) *BookCache {
	return &BookCache{redis: redis, ttl: ttl, log: log}
}

func statsKey(bookID string) string   { return "stats:" + bookID }
func summaryKey(bookID string) string { return "ratings:" + bookID }

// Stats returns cached stats for bookID
func (c *BookCache) Stats(ctx context.Context, bookID string) (*models.BookStats, bool) {
	var stats models.BookStats
	if !c.get(ctx, statsKey(bookID), &stats) {
		return nil, false
	}
	return &stats, true
}

// SetStats caches stats
func (c *BookCache) SetStats(ctx context.Context, stats *models.BookStats) {
	c.set(ctx, statsKey(stats.BookID), stats)
}

// RatingSummary returns a cached rating aggregate for bookID
func (c *BookCache) RatingSummary(ctx context.Context, bookID string) (*RatingSummary, bool) {
	var summary RatingSummary
	if !c.get(ctx, summaryKey(bookID), &summary) {
		return nil, false
	}
	return &summary, true
}

// SetRatingSummary caches a rating aggregate
func (c *BookCache) SetRatingSummary(ctx context.Context, bookID string, summary RatingSummary) {
	c.set(ctx, summaryKey(bookID), summary)
}

// InvalidateStats drops cached stats after a counter write
func (c *BookCache) InvalidateStats(ctx context.Context, bookID string) {
	c.drop(ctx, statsKey(bookID))
}

// InvalidateRatings drops a cached rating aggregate after a rating write
func (c *BookCache) InvalidateRatings(ctx context.Context, bookID string) {
	c.drop(ctx, summaryKey(bookID))
}

func (c *BookCache) get(ctx context.Context, key string, target interface{}) bool {
	if c == nil || !c.redis.Enabled() {
		return false
	}
	data, err := c.redis.Get(ctx, key)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		return false
	}
	if data == nil {
		return false
	}
	if err := msgpack.Unmarshal(data, target); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache decode failed")
		return false
	}
	return true
}

func (c *BookCache) set(ctx context.Context, key string, value interface{}) {
	if c == nil || !c.redis.Enabled() {
		return
	}
	data, err := msgpack.Marshal(value)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache encode failed")
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

func (c *BookCache) drop(ctx context.Context, key string) {
	if c == nil || !c.redis.Enabled() {
		return
	}
	if err := c.redis.Delete(ctx, key); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache invalidate failed")
	}
}
