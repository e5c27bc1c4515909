package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/platform/obs"
)

// PGRouteCache is a Postgres-backed cache of computed routes, keyed by
// the waypoint signature the routing provider derives from the
// request. The route itself is stored as a JSON payload: it is opaque
// planning data, never queried by field.
type PGRouteCache struct {
	DB *sql.DB
}

func NewPGRouteCache(db *sql.DB) *PGRouteCache {
	return &PGRouteCache{DB: db}
}

// Fetch a cached route; a nil route with nil error means a miss.
func (s *PGRouteCache) Get(ctx context.Context, key string) (_ *domain.Route, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if s.DB == nil {
		return nil, errors.New("route cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return nil, errors.New("get route cache: key must not be empty")
	}

	var payload []byte
	row := s.DB.QueryRowContext(ctx, `SELECT payload FROM route_cache WHERE key = $1;`, key)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	var route domain.Route
	if err := json.Unmarshal(payload, &route); err != nil {
		return nil, fmt.Errorf("get route cache: decode payload: %w", err)
	}
	return &route, nil
}

// Store a computed route.
func (s *PGRouteCache) Put(ctx context.Context, key string, route *domain.Route) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("insert route cache: key must not be empty")
	}
	if route == nil {
		return errors.New("insert route cache: route is nil")
	}

	payload, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("insert route cache: encode payload: %w", err)
	}

	q := `
	INSERT INTO route_cache (key, payload)
    VALUES ($1, $2)
	ON CONFLICT (key) DO UPDATE
	SET payload = EXCLUDED.payload;
	`
	if _, err := s.DB.ExecContext(ctx, q, key, payload); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}
	return nil
}
