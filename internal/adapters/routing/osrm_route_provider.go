package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/platform/obs"
	"hos-trip-planner/internal/ports"
)

const (
	DefaultOSRMBaseURL = "https://router.project-osrm.org"

	metersToMiles  = 0.000621371
	secondsToHours = 1.0 / 3600.0
)

var waypointNames = []string{"current", "pickup", "dropoff"}

// OSRMRouteProvider implements RouteProvider using the public OSRM
// routing service.
//
// It coordinates:
//   - Route lookups through a persistent cache keyed by waypoints
//   - External API calls with retry/backoff
//   - Unit conversion into the miles/hours the scheduler works in
//
// The provider is safe for concurrent use.
type OSRMRouteProvider struct {
	session *http.Client
	baseURL string
	cache   ports.RouteCache
}

// NewOSRMRouteProvider builds a provider against the given base URL
// (DefaultOSRMBaseURL for the public instance). cache may be nil.
func NewOSRMRouteProvider(baseURL string, cache ports.RouteCache) (*OSRMRouteProvider, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("OSRM base URL is empty")
	}

	return &OSRMRouteProvider{
		session: &http.Client{Timeout: 30 * time.Second},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		cache:   cache,
	}, nil
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry string  `json:"geometry"`
		Legs     []struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
	Waypoints []struct {
		Name     string    `json:"name"`
		Location []float64 `json:"location"`
	} `json:"waypoints"`
}

// GetRoute computes the driving route current -> pickup -> dropoff.
func (o *OSRMRouteProvider) GetRoute(
	ctx context.Context,
	current, pickup, dropoff domain.Location,
) (_ *domain.Route, err error) {
	defer obs.Time(ctx, "osrm.GetRoute")(&err)

	stops := []domain.Location{current, pickup, dropoff}

	coords := make([]string, 0, len(stops))
	for _, s := range stops {
		coords = append(coords, s.OSRMString())
	}
	key := strings.Join(coords, ";")

	// Check the persistent route cache before issuing an external call.
	if o.cache != nil {
		cached, err := o.cache.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("get route cache: %w", err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	endpoint := o.baseURL + "/route/v1/driving/" + key

	makeReq := func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("overview", "full")
		q.Set("geometries", "polyline")
		q.Set("steps", "false")
		q.Set("annotations", "false")
		req.URL.RawQuery = q.Encode()
		return req, nil
	}

	resp, err := doWithRetry(ctx, o.session, makeReq)
	if err != nil {
		return nil, fmt.Errorf("get OSRM route: %w", err)
	}
	defer resp.Body.Close()

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode OSRM response: %w", err)
	}

	if decoded.Code != "Ok" || len(decoded.Routes) == 0 {
		return nil, fmt.Errorf("OSRM returned no route (code %q)", decoded.Code)
	}

	best := decoded.Routes[0]
	if len(best.Legs) != len(stops)-1 {
		return nil, fmt.Errorf("OSRM returned %d legs for %d waypoints", len(best.Legs), len(stops))
	}

	route := &domain.Route{
		TotalDistanceMiles: best.Distance * metersToMiles,
		TotalDurationHours: best.Duration * secondsToHours,
		Polyline:           best.Geometry,
	}

	for i, leg := range best.Legs {
		route.Legs = append(route.Legs, domain.RouteLeg{
			Ordinal:       i,
			From:          waypointNames[i],
			To:            waypointNames[i+1],
			DistanceMiles: leg.Distance * metersToMiles,
			DrivingHours:  leg.Duration * secondsToHours,
		})
	}

	for i, s := range stops {
		route.Waypoints = append(route.Waypoints, domain.Waypoint{
			Name:        s.Address,
			Kind:        waypointNames[i],
			Coordinates: s.Coordinates,
		})
	}

	if o.cache != nil {
		if err := o.cache.Put(ctx, key, route); err != nil {
			log.Printf("route cache write failed: %v", err)
		}
	}

	return route, nil
}
