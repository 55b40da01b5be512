// Package cache names Redis response-cache entries and drops them when the
// data behind them changes.  Entries are grouped by tag (halls, foods,
// themes, bookings) so a mutation only clears the listings it affects.
package cache

import (
	"context"
	"crypto/sha1"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Tags used by the HTTP layer.
const (
	TagHalls    = "halls"
	TagFoods    = "foods"
	TagThemes   = "themes"
	TagBookings = "bookings"
)

// Key builds the storage key of a cached response:
// <prefix>:<tag>:<sha1(route:query)>.
func Key(prefix, tag, route, rawQuery string) string {
	sum := sha1.Sum([]byte(route + ":" + rawQuery))
	return fmt.Sprintf("%s:%s:%x", prefix, tag, sum[:])
}

// Pattern matches every key stored under tag.
func Pattern(prefix, tag string) string {
	return prefix + ":" + tag + ":*"
}

// Invalidator drops cached responses.  Services call it after a
// successful mutation.
type Invalidator interface {
	Invalidate(ctx context.Context, tags ...string) error
}

// RedisInvalidator deletes cached entries with SCAN + DEL so large key
// spaces never block Redis.
type RedisInvalidator struct {
	rdb    *redis.Client
	prefix string
}

// NewInvalidator returns a RedisInvalidator, or a no-op Invalidator when
// rdb is nil (caching disabled).
func NewInvalidator(rdb *redis.Client, prefix string) Invalidator {
	if rdb == nil {
		return Nop{}
	}
	return &RedisInvalidator{rdb: rdb, prefix: prefix}
}

func (r *RedisInvalidator) Invalidate(ctx context.Context, tags ...string) error {
	for _, tag := range tags {
		iter := r.rdb.Scan(ctx, 0, Pattern(r.prefix, tag), 100).Iterator()
		batch := make([]string, 0, 100)
		for iter.Next(ctx) {
			batch = append(batch, iter.Val())
			if len(batch) == cap(batch) {
				if err := r.rdb.Del(ctx, batch...).Err(); err != nil {
					return fmt.Errorf("cache: delete %s entries: %w", tag, err)
				}
				batch = batch[:0]
			}
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("cache: scan %s entries: %w", tag, err)
		}
		if len(batch) > 0 {
			if err := r.rdb.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("cache: delete %s entries: %w", tag, err)
			}
		}
	}
	return nil
}

// Nop is used when no Redis client is configured.
type Nop struct{}

func (Nop) Invalidate(context.Context, ...string) error { return nil }
