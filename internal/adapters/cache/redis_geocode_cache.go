package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"rental-dispatch-service/internal/domain"
)

// RedisGeocodeCache stores geocode results in redis so they survive restarts
// and are shared across instances. Keys are the exact address string under a
// fixed prefix; values are small JSON documents.
type RedisGeocodeCache struct {
	client *redis.Client
	ttl    time.Duration
}

const redisGeocodeKeyPrefix = "geocode:"

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{client: client, ttl: ttl}
}

type redisCoords struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c *RedisGeocodeCache) Get(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	if c.client == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: redis client is nil")
	}

	raw, err := c.client.Get(ctx, redisGeocodeKeyPrefix+address).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache %q: %w", address, err)
	}

	var rc redisCoords
	if err := json.Unmarshal([]byte(raw), &rc); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache %q: decode: %w", address, err)
	}

	return domain.Coordinates{Lat: rc.Lat, Lon: rc.Lon}, true, nil
}

func (c *RedisGeocodeCache) Put(ctx context.Context, address string, coords domain.Coordinates) error {
	if c.client == nil {
		return errors.New("geocode cache: redis client is nil")
	}
	if address == "" {
		return errors.New("insert geocode cache: empty address key")
	}

	raw, err := json.Marshal(redisCoords{Lat: coords.Lat, Lon: coords.Lon})
	if err != nil {
		return fmt.Errorf("insert geocode cache %q: encode: %w", address, err)
	}

	if err := c.client.Set(ctx, redisGeocodeKeyPrefix+address, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("insert geocode cache %q: %w", address, err)
	}

	return nil
}
