package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Prince-singh-1619/ticket-booking/internal/domain"
	pkgredis "github.com/Prince-singh-1619/ticket-booking/pkg/redis"
)

const availabilityCacheKey = "shows:availability"

// ErrCacheMiss is returned when the cached listing is absent or expired
var ErrCacheMiss = errors.New("availability cache miss")

// RedisAvailabilityCache caches the show listing with a short TTL.
// Reservation-time checks stay authoritative; this only bounds how stale
// the listing view can get.
type RedisAvailabilityCache struct {
	client *pkgredis.Client
	ttl    time.Duration
}

// NewRedisAvailabilityCache creates a new RedisAvailabilityCache
func NewRedisAvailabilityCache(client *pkgredis.Client, ttl time.Duration) *RedisAvailabilityCache {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &RedisAvailabilityCache{client: client, ttl: ttl}
}

// Get returns the cached show listing, or ErrCacheMiss
func (c *RedisAvailabilityCache) Get(ctx context.Context) ([]*domain.ShowAvailability, error) {
	data, err := c.client.Client().Get(ctx, availabilityCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read availability cache: %w", err)
	}

	var shows []*domain.ShowAvailability
	if err := json.Unmarshal(data, &shows); err != nil {
		// Treat a corrupt entry as a miss; the next Set overwrites it
		return nil, ErrCacheMiss
	}
	return shows, nil
}

// Set stores the show listing with the configured TTL
func (c *RedisAvailabilityCache) Set(ctx context.Context, shows []*domain.ShowAvailability) error {
	data, err := json.Marshal(shows)
	if err != nil {
		return fmt.Errorf("failed to marshal availability: %w", err)
	}
	if err := c.client.Client().Set(ctx, availabilityCacheKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write availability cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached listing
func (c *RedisAvailabilityCache) Invalidate(ctx context.Context) error {
	if err := c.client.Client().Del(ctx, availabilityCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate availability cache: %w", err)
	}
	return nil
}

// Ensure RedisAvailabilityCache implements AvailabilityCache
var _ AvailabilityCache = (*RedisAvailabilityCache)(nil)
