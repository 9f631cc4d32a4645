package selection

import (
	"fmt"

	"github.com/rajivmehta/cargoplan-go/internal/domain/planning"
)

// Weights are the low-priority subset scoring weights: revenue density,
// priority weight, utilization band bonus, dwell penalty.
type Weights struct {
	Density     float64
	Priority    float64
	Utilization float64
	Dwell       float64
}

// DefaultWeights returns the standard scoring weights.
func DefaultWeights() Weights {
	return Weights{Density: 1.0, Priority: 0.5, Utilization: 0.3, Dwell: 0.05}
}

// Selector decides which cargo boards a flight.
//
// Protocol: all high and medium priority candidates are reserved first.
// When they fit, low priority cargo competes for the residual capacity
// through a bounded subset search. When they do not fit, the emergency
// override boards every guaranteed candidate anyway (the delivery
// guarantee outranks nominal capacity) and raises a critical
// capacity_breach alert; low priority gets nothing on that flight.
//
// Given identical inputs the selector returns identical output; ties
// are broken by ascending cargo identifier.
type Selector struct {
	weights Weights
}

// NewSelector creates a selector with the given scoring weights.
func NewSelector(weights Weights) *Selector {
	if weights == (Weights{}) {
		weights = DefaultWeights()
	}
	return &Selector{weights: weights}
}

// Select chooses the cargo to board on one flight.
func (s *Selector) Select(flight *planning.Flight, candidates []*Candidate) *Selection {
	ordered := make([]*Candidate, len(candidates))
	copy(ordered, candidates)
	sortByID(ordered)

	var high, medium, low []*Candidate
	for _, candidate := range ordered {
		switch candidate.Cargo.Priority {
		case planning.PriorityHigh:
			high = append(high, candidate)
		case planning.PriorityMedium:
			medium = append(medium, candidate)
		default:
			low = append(low, candidate)
		}
	}

	guaranteed := append(append([]*Candidate{}, high...), medium...)
	reservedWeight := sumWeight(guaranteed)
	reservedVolume := sumVolume(guaranteed)

	if reservedWeight > flight.WeightCapacityKg || reservedVolume > flight.VolumeCapacityM3 {
		return s.emergencyOverride(flight, guaranteed, low, reservedWeight, reservedVolume)
	}

	boarded := guaranteed
	chosenLow := s.chooseLow(flight, low, reservedWeight, reservedVolume)
	boarded = append(boarded, chosenLow...)

	rejected := make([]*Candidate, 0, len(low)-len(chosenLow))
	for _, candidate := range low {
		if !containsCandidate(chosenLow, candidate) {
			rejected = append(rejected, candidate)
		}
	}

	return &Selection{
		Flight:      flight,
		Boarded:     boarded,
		Rejected:    rejected,
		TotalWeight: sumWeight(boarded),
		TotalVolume: sumVolume(boarded),
	}
}

// emergencyOverride boards every guaranteed candidate beyond nominal
// capacity. Low priority is shut out entirely.
func (s *Selector) emergencyOverride(
	flight *planning.Flight,
	guaranteed, low []*Candidate,
	totalWeight, totalVolume float64,
) *Selection {
	breach := planning.NewAlert(
		planning.AlertCapacityBreach,
		planning.SeverityCritical,
		fmt.Sprintf(
			"flight %s boarded %.0fkg/%.1fm3 of guaranteed cargo against capacity %.0fkg/%.1fm3",
			flight.ID, totalWeight, totalVolume, flight.WeightCapacityKg, flight.VolumeCapacityM3,
		),
	).WithFlight(flight.ID)

	return &Selection{
		Flight:      flight,
		Boarded:     guaranteed,
		Rejected:    low,
		TotalWeight: totalWeight,
		TotalVolume: totalVolume,
		Overloaded:  true,
		Alerts:      []planning.Alert{breach},
	}
}

func containsCandidate(candidates []*Candidate, target *Candidate) bool {
	for _, candidate := range candidates {
		if candidate == target {
			return true
		}
	}
	return false
}
