package routing

import (
	"strings"
	"time"

	"github.com/rajivmehta/cargoplan-go/internal/domain/planning"
)

// RouteLeg is one flight within an itinerary together with the dwell
// spent waiting for it (time since cargo ready, or since the previous
// leg's arrival).
type RouteLeg struct {
	Flight      *planning.Flight
	Departure   time.Time
	Arrival     time.Time
	DwellBefore time.Duration
	HandlingFee float64
}

// RouteOption is one candidate itinerary for a cargo, fully scored.
// Empty legs mark the distinguished DENIED option.
type RouteOption struct {
	CargoID       string
	Legs          []RouteLeg
	OperatingCost float64
	HandlingCost  float64
	SLAPenalty    float64
	Revenue       float64
	Margin        float64
	TransitHours  float64
	LatenessHours float64
	Relaxed       bool
	Notes         string
}

// Denied reports whether this is the DENIED fallback option.
func (r *RouteOption) Denied() bool {
	return len(r.Legs) == 0
}

// OnTime reports whether the itinerary arrives by the cargo due time.
func (r *RouteOption) OnTime() bool {
	return !r.Denied() && r.LatenessHours == 0
}

// Departure is the first leg departure; zero for DENIED.
func (r *RouteOption) Departure() time.Time {
	if r.Denied() {
		return time.Time{}
	}
	return r.Legs[0].Departure
}

// Arrival is the final leg arrival; zero for DENIED.
func (r *RouteOption) Arrival() time.Time {
	if r.Denied() {
		return time.Time{}
	}
	return r.Legs[len(r.Legs)-1].Arrival
}

// FlightIDs returns the ordered flight identifiers of the itinerary.
func (r *RouteOption) FlightIDs() []string {
	ids := make([]string, len(r.Legs))
	for i, leg := range r.Legs {
		ids[i] = leg.Flight.ID
	}
	return ids
}

// Sequence renders the itinerary as space-delimited flight ids, or the
// literal DENIED for the fallback option.
func (r *RouteOption) Sequence() string {
	if r.Denied() {
		return "DENIED"
	}
	return strings.Join(r.FlightIDs(), " ")
}

// DwellHoursOn returns the dwell in hours spent before boarding the
// given flight, zero when the flight is not part of the route.
func (r *RouteOption) DwellHoursOn(flightID string) float64 {
	for _, leg := range r.Legs {
		if leg.Flight.ID == flightID {
			return leg.DwellBefore.Hours()
		}
	}
	return 0
}

// Uses reports whether the route traverses the given flight.
func (r *RouteOption) Uses(flightID string) bool {
	for _, leg := range r.Legs {
		if leg.Flight.ID == flightID {
			return true
		}
	}
	return false
}
