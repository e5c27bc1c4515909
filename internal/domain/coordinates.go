package domain

import "fmt"

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// Format as "lon,lat" the way OSRM expects waypoints.
func (c Coordinates) OSRMString() string {
	return fmt.Sprintf("%f,%f", c.Lon, c.Lat)
}

// A resolved place: coordinates plus the human-readable address they
// were geocoded from (or reverse-geocoded to).
type Location struct {
	Coordinates
	Address string
}
