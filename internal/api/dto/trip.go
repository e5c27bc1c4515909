package dto

import "time"

// LocationInput accepts either a free-form address (geocoded server
// side) or explicit coordinates (reverse-geocoded for display).
type LocationInput struct {
	Address string   `json:"address"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
}

type PlanTripRequest struct {
	Current        LocationInput `json:"current"`
	Pickup         LocationInput `json:"pickup"`
	Dropoff        LocationInput `json:"dropoff"`
	CycleUsedHours float64       `json:"cycle_used_hours"`
	StartTime      *time.Time    `json:"start_time"`
}

type WaypointResponse struct {
	Name string  `json:"name"`
	Kind string  `json:"kind"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type RouteLegResponse struct {
	From          string  `json:"from"`
	To            string  `json:"to"`
	DistanceMiles float64 `json:"distance_miles"`
	DrivingHours  float64 `json:"driving_hours"`
}

type RouteResponse struct {
	Legs               []RouteLegResponse `json:"legs"`
	TotalDistanceMiles float64            `json:"total_distance_miles"`
	TotalDurationHours float64            `json:"total_duration_hours"`
	Polyline           string             `json:"polyline"`
	Waypoints          []WaypointResponse `json:"waypoints"`
}

type ScheduleEntryResponse struct {
	Status     string    `json:"status"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	MilesStart float64   `json:"miles_start"`
	MilesEnd   float64   `json:"miles_end"`
	Note       string    `json:"note"`
}

type DailyTotalsResponse struct {
	DrivingHours float64 `json:"driving_hours"`
	OnDutyHours  float64 `json:"on_duty_hours"`
	OffDutyHours float64 `json:"off_duty_hours"`
	SleeperHours float64 `json:"sleeper_hours"`
	Miles        float64 `json:"miles"`
}

type DailyLogResponse struct {
	Date      string                  `json:"date"`
	DayNumber int                     `json:"day_number"`
	Entries   []ScheduleEntryResponse `json:"entries"`
	Totals    DailyTotalsResponse     `json:"totals"`
	Remarks   []string                `json:"remarks"`
}

type TripSummaryResponse struct {
	TotalMiles          float64   `json:"total_miles"`
	TotalDurationHours  float64   `json:"total_duration_hours"`
	TotalDrivingHours   float64   `json:"total_driving_hours"`
	TotalOnDutyHours    float64   `json:"total_on_duty_hours"`
	TotalOffDutyHours   float64   `json:"total_off_duty_hours"`
	RestBreaks          int       `json:"rest_breaks"`
	WindowResets        int       `json:"window_resets"`
	CycleRestarts       int       `json:"cycle_restarts"`
	FuelStops           int       `json:"fuel_stops"`
	CycleHoursUsed      float64   `json:"cycle_hours_used"`
	CycleHoursRemaining float64   `json:"cycle_hours_remaining"`
	StartTime           time.Time `json:"start_time"`
	ArrivalTime         time.Time `json:"arrival_time"`
}

type TripResponse struct {
	TripID    string                  `json:"trip_id"`
	CreatedAt time.Time               `json:"created_at"`
	Route     RouteResponse           `json:"route"`
	Schedule  []ScheduleEntryResponse `json:"schedule"`
	DailyLogs []DailyLogResponse      `json:"daily_logs"`
	Summary   TripSummaryResponse     `json:"summary"`
}
