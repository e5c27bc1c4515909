package domain

// Represents one directed segment of a trip (e.g., current->pickup).
// Legs are produced by the routing provider and are immutable; the
// scheduler consumes them in order and never reorders them.
type RouteLeg struct {
	Ordinal       int
	From          string
	To            string
	DistanceMiles float64
	DrivingHours  float64
	// Fixed on-duty activity at the end of the leg (loading, unloading).
	// Zero means the leg ends without a scheduled stop.
	StopHours float64
	StopNote  string
}

// A named point the route passes through, echoed back to API clients.
type Waypoint struct {
	Name string
	Kind string // "current", "pickup", "dropoff"
	Coordinates
}

// Route is the routing provider's output for one trip: ordered legs
// plus aggregate metrics and the encoded overview polyline. It is
// immutable planning data and contains no side effects.
type Route struct {
	Legs               []RouteLeg
	TotalDistanceMiles float64
	TotalDurationHours float64
	Polyline           string
	Waypoints          []Waypoint
}
