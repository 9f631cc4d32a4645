package planning

import (
	"fmt"
	"sort"
	"time"
)

// Flight represents one scheduled cargo flight. Immutable once loaded;
// disruption handling produces adjusted copies instead of mutating.
type Flight struct {
	ID               string
	Origin           string
	Destination      string
	Departure        time.Time
	Arrival          time.Time
	WeightCapacityKg float64
	VolumeCapacityM3 float64
	CostPerKg        float64
}

// NewFlight creates a flight with validation
func NewFlight(
	id, origin, destination string,
	departure, arrival time.Time,
	weightCapacityKg, volumeCapacityM3, costPerKg float64,
) (*Flight, error) {
	if id == "" {
		return nil, NewDataValidationError("flight_id", "cannot be empty")
	}
	if origin == "" || destination == "" {
		return nil, NewDataValidationError("origin/destination", fmt.Sprintf("flight %s must have both airports", id))
	}
	if !arrival.After(departure) {
		return nil, NewDataValidationError("arrival", fmt.Sprintf("flight %s arrival must be after departure", id))
	}
	if weightCapacityKg <= 0 {
		return nil, NewDataValidationError("weight_capacity_kg", fmt.Sprintf("flight %s capacity must be positive", id))
	}
	if volumeCapacityM3 <= 0 {
		return nil, NewDataValidationError("volume_capacity_m3", fmt.Sprintf("flight %s capacity must be positive", id))
	}
	return &Flight{
		ID:               id,
		Origin:           origin,
		Destination:      destination,
		Departure:        departure,
		Arrival:          arrival,
		WeightCapacityKg: weightCapacityKg,
		VolumeCapacityM3: volumeCapacityM3,
		CostPerKg:        costPerKg,
	}, nil
}

// Delayed returns a copy of the flight shifted by the given duration.
func (f *Flight) Delayed(by time.Duration) *Flight {
	shifted := *f
	shifted.Departure = f.Departure.Add(by)
	shifted.Arrival = f.Arrival.Add(by)
	return &shifted
}

// WithCapacity returns a copy of the flight with replaced capacities.
// A non-positive value keeps the current capacity for that axis.
func (f *Flight) WithCapacity(weightKg, volumeM3 float64) *Flight {
	swapped := *f
	if weightKg > 0 {
		swapped.WeightCapacityKg = weightKg
	}
	if volumeM3 > 0 {
		swapped.VolumeCapacityM3 = volumeM3
	}
	return &swapped
}

func (f *Flight) String() string {
	return fmt.Sprintf("%s %s→%s dep %s", f.ID, f.Origin, f.Destination, f.Departure.Format(time.RFC3339))
}

// FlightMap holds the loaded flight set keyed by flight id.
type FlightMap map[string]*Flight

// Clone returns a shallow copy of the map. Flights themselves are
// immutable so sharing the pointers is safe.
func (m FlightMap) Clone() FlightMap {
	cloned := make(FlightMap, len(m))
	for id, flight := range m {
		cloned[id] = flight
	}
	return cloned
}

// SortedByDeparture returns flights in ascending departure order.
// Identical departures are broken by flight id so that iteration is
// canonical regardless of map order.
func (m FlightMap) SortedByDeparture() []*Flight {
	flights := make([]*Flight, 0, len(m))
	for _, flight := range m {
		flights = append(flights, flight)
	}
	sort.Slice(flights, func(i, j int) bool {
		if flights[i].Departure.Equal(flights[j].Departure) {
			return flights[i].ID < flights[j].ID
		}
		return flights[i].Departure.Before(flights[j].Departure)
	})
	return flights
}

// ByOrigin groups flights by origin airport, each group sorted by
// departure time then flight id.
func (m FlightMap) ByOrigin() map[string][]*Flight {
	grouped := make(map[string][]*Flight)
	for _, flight := range m.SortedByDeparture() {
		grouped[flight.Origin] = append(grouped[flight.Origin], flight)
	}
	return grouped
}
