package selection

import (
	"sort"

	"github.com/rajivmehta/cargoplan-go/internal/domain/planning"
)

// Candidate is one cargo competing for space on a specific flight.
// DwellHours is the wait this cargo's route spends before boarding the
// flight, used as a tie-down in low-priority scoring.
type Candidate struct {
	Cargo          *planning.Cargo
	RevenueDensity float64
	DwellHours     float64
}

// NewCandidate builds a candidate from a cargo and its route dwell.
func NewCandidate(cargo *planning.Cargo, dwellHours float64) *Candidate {
	return &Candidate{
		Cargo:          cargo,
		RevenueDensity: cargo.RevenueDensity(),
		DwellHours:     dwellHours,
	}
}

// Selection is the boarding decision for one flight.
type Selection struct {
	Flight      *planning.Flight
	Boarded     []*Candidate
	Rejected    []*Candidate
	TotalWeight float64
	TotalVolume float64
	Overloaded  bool
	Alerts      []planning.Alert
}

// BoardedIDs returns the boarded cargo ids in boarding order.
func (s *Selection) BoardedIDs() []string {
	ids := make([]string, len(s.Boarded))
	for i, candidate := range s.Boarded {
		ids[i] = candidate.Cargo.ID
	}
	return ids
}

// Contains reports whether the given cargo was boarded.
func (s *Selection) Contains(cargoID string) bool {
	for _, candidate := range s.Boarded {
		if candidate.Cargo.ID == cargoID {
			return true
		}
	}
	return false
}

// WeightUtilization returns boarded weight as a fraction of capacity.
func (s *Selection) WeightUtilization() float64 {
	return s.TotalWeight / s.Flight.WeightCapacityKg
}

// VolumeUtilization returns boarded volume as a fraction of capacity.
func (s *Selection) VolumeUtilization() float64 {
	return s.TotalVolume / s.Flight.VolumeCapacityM3
}

// Revenue sums the revenue of the boarded cargo.
func (s *Selection) Revenue() float64 {
	total := 0.0
	for _, candidate := range s.Boarded {
		total += candidate.Cargo.RevenueINR
	}
	return total
}

// sortByID orders candidates by ascending cargo id, the canonical
// tie-break of the selector.
func sortByID(candidates []*Candidate) {
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Cargo.ID < candidates[j].Cargo.ID
	})
}

func sumWeight(candidates []*Candidate) float64 {
	total := 0.0
	for _, candidate := range candidates {
		total += candidate.Cargo.WeightKg
	}
	return total
}

func sumVolume(candidates []*Candidate) float64 {
	total := 0.0
	for _, candidate := range candidates {
		total += candidate.Cargo.VolumeM3
	}
	return total
}
