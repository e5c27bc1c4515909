package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/platform/obs"
)

const geocodeKeyPrefix = "geocode:"

// RedisGeocodeCache is a Redis-backed geocode cache with per-entry TTL,
// for deployments that share a cache across service instances instead
// of (or in front of) the Postgres one.
type RedisGeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client, TTL: ttl}
}

type cachedCoords struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Fetch cached coordinates for the given addresses with one MGET.
func (c *RedisGeocodeCache) GetMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.redis.GetMany")(&err)

	if c.Client == nil {
		return nil, errors.New("geocode cache: redis client is nil")
	}

	if len(addresses) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(addresses))
	keys := make([]string, 0, len(addresses))
	for _, a := range addresses {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		uniq = append(uniq, a)
		keys = append(keys, geocodeKeyPrefix+a)
	}

	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	values, err := c.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: redis mget: %w", err)
	}

	out := make(map[string]domain.Coordinates, len(uniq))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue // miss
		}
		var cc cachedCoords
		if err := json.Unmarshal([]byte(raw), &cc); err != nil {
			return nil, fmt.Errorf("get geocode cache: decode %q: %w", keys[i], err)
		}
		out[uniq[i]] = domain.Coordinates{Lon: cc.Lon, Lat: cc.Lat}
	}

	return out, nil
}

// Store resolved coordinates for many addresses in one pipeline.
func (c *RedisGeocodeCache) PutMany(
	ctx context.Context,
	coords map[string]domain.Coordinates,
) error {
	if c.Client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	if len(coords) == 0 {
		return nil
	}

	pipe := c.Client.Pipeline()
	for addr, coord := range coords {
		if strings.TrimSpace(addr) == "" {
			return fmt.Errorf("insert geocode cache: empty address key")
		}

		payload, err := json.Marshal(cachedCoords{Lon: coord.Lon, Lat: coord.Lat})
		if err != nil {
			return fmt.Errorf("insert geocode cache addr=%q: encode: %w", addr, err)
		}
		pipe.Set(ctx, geocodeKeyPrefix+addr, payload, c.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert geocode cache: redis pipeline: %w", err)
	}
	return nil
}
