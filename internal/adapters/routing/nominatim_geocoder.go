package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/platform/obs"
	"hos-trip-planner/internal/ports"
)

const DefaultNominatimBaseURL = "https://nominatim.openstreetmap.org"

// NominatimGeocoder implements Geocoder using OpenStreetMap's
// Nominatim service, with an optional persistent cache for forward
// lookups. Searches are US-bounded (trucking routes).
type NominatimGeocoder struct {
	session *http.Client
	baseURL string
	cache   ports.GeocodeCache
}

func NewNominatimGeocoder(baseURL string, cache ports.GeocodeCache) (*NominatimGeocoder, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("nominatim base URL is empty")
	}

	return &NominatimGeocoder{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		cache:   cache,
	}, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (n *NominatimGeocoder) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves a free-form address via /search (limit 1).
func (n *NominatimGeocoder) Geocode(ctx context.Context, address string) (_ domain.Location, err error) {
	defer obs.Time(ctx, "nominatim.Geocode")(&err)

	addr := n.normalize(address)
	if addr == "" {
		return domain.Location{}, errors.New("geocode: address must be non-empty")
	}

	if n.cache != nil {
		hits, err := n.cache.GetMany(ctx, []string{addr})
		if err != nil {
			return domain.Location{}, fmt.Errorf("geocode cache: %w", err)
		}
		if c, ok := hits[addr]; ok {
			return domain.Location{Coordinates: c, Address: addr}, nil
		}
	}

	endpoint := n.baseURL + "/search"
	makeReq := func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("q", addr)
		q.Set("format", "json")
		q.Set("limit", "1")
		q.Set("countrycodes", "us")
		req.URL.RawQuery = q.Encode()
		return req, nil
	}

	resp, err := doWithRetry(ctx, n.session, makeReq)
	if err != nil {
		return domain.Location{}, fmt.Errorf("geocode %q: %w", addr, err)
	}
	defer resp.Body.Close()

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Location{}, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(results) == 0 {
		return domain.Location{}, fmt.Errorf("no geocode results for %q", addr)
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return domain.Location{}, fmt.Errorf("invalid coordinates in geocode result for %q", addr)
	}

	loc := domain.Location{
		Coordinates: domain.Coordinates{Lon: lon, Lat: lat},
		Address:     results[0].DisplayName,
	}

	if n.cache != nil {
		put := map[string]domain.Coordinates{addr: loc.Coordinates}
		if err := n.cache.PutMany(ctx, put); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return loc, nil
}

type reverseResult struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		County  string `json:"county"`
		State   string `json:"state"`
	} `json:"address"`
}

// ReverseGeocode resolves coordinates to a short "City, State" address
// via /reverse, falling back to the display name or raw coordinates.
func (n *NominatimGeocoder) ReverseGeocode(ctx context.Context, coords domain.Coordinates) (_ string, err error) {
	defer obs.Time(ctx, "nominatim.ReverseGeocode")(&err)

	endpoint := n.baseURL + "/reverse"
	makeReq := func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("lat", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
		q.Set("lon", strconv.FormatFloat(coords.Lon, 'f', -1, 64))
		q.Set("format", "json")
		req.URL.RawQuery = q.Encode()
		return req, nil
	}

	resp, err := doWithRetry(ctx, n.session, makeReq)
	if err != nil {
		return "", fmt.Errorf("reverse geocode %.4f,%.4f: %w", coords.Lat, coords.Lon, err)
	}
	defer resp.Body.Close()

	var decoded reverseResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode reverse geocode response: %w", err)
	}

	city := decoded.Address.City
	if city == "" {
		city = decoded.Address.Town
	}
	if city == "" {
		city = decoded.Address.Village
	}
	if city == "" {
		city = decoded.Address.County
	}

	if city != "" && decoded.Address.State != "" {
		return city + ", " + decoded.Address.State, nil
	}
	if decoded.DisplayName != "" {
		return decoded.DisplayName, nil
	}
	return fmt.Sprintf("%.4f, %.4f", coords.Lat, coords.Lon), nil
}
