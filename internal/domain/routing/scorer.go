package routing

import (
	"fmt"

	"github.com/rajivmehta/cargoplan-go/internal/domain/planning"
)

// DefaultDenialFactor is the share of cargo revenue charged as goodwill
// loss when a shipment is denied.
const DefaultDenialFactor = 0.25

// Scorer computes the deterministic economics of an itinerary:
// operating cost, handling cost, SLA penalty and resulting margin.
//
// This is a pure domain service; all methods are stateless apart from
// the configured denial factor.
type Scorer struct {
	rules        *planning.RuleIndex
	denialFactor float64
}

// NewScorer creates a scorer using the given connection rule index.
// A non-positive denial factor falls back to the default.
func NewScorer(rules *planning.RuleIndex, denialFactor float64) *Scorer {
	if denialFactor <= 0 {
		denialFactor = DefaultDenialFactor
	}
	return &Scorer{rules: rules, denialFactor: denialFactor}
}

// DenialFactor returns the configured goodwill-loss factor.
func (s *Scorer) DenialFactor() float64 {
	return s.denialFactor
}

// DenialPenalty is the goodwill loss charged when the cargo ships on no
// itinerary at all.
func (s *Scorer) DenialPenalty(cargo *planning.Cargo) float64 {
	return cargo.RevenueINR * s.denialFactor
}

// Score builds a fully costed RouteOption from an ordered flight path.
// The caller guarantees the path is connection-feasible; Score only
// prices it.
func (s *Scorer) Score(cargo *planning.Cargo, flights []*planning.Flight) *RouteOption {
	legs := make([]RouteLeg, 0, len(flights))
	operatingCost := 0.0
	connectionFees := 0.0

	for i, flight := range flights {
		var dwell = flight.Departure.Sub(cargo.ReadyTime)
		var fee float64
		if i > 0 {
			prev := flights[i-1]
			dwell = flight.Departure.Sub(prev.Arrival)
			_, _, fee = s.rules.Window(cargo.Origin, cargo.Destination, prev.Destination)
			connectionFees += fee
		}
		operatingCost += flight.CostPerKg * cargo.WeightKg
		legs = append(legs, RouteLeg{
			Flight:      flight,
			Departure:   flight.Departure,
			Arrival:     flight.Arrival,
			DwellBefore: dwell,
			HandlingFee: fee,
		})
	}

	handlingCost := connectionFees + cargo.HandlingCostPerKg*cargo.WeightKg

	lastArrival := flights[len(flights)-1].Arrival
	firstDeparture := flights[0].Departure
	latenessHours := 0.0
	if lastArrival.After(cargo.DueBy) {
		latenessHours = lastArrival.Sub(cargo.DueBy).Hours()
	}
	slaPenalty := latenessHours * cargo.SLAPenaltyPerHour

	return &RouteOption{
		CargoID:       cargo.ID,
		Legs:          legs,
		OperatingCost: operatingCost,
		HandlingCost:  handlingCost,
		SLAPenalty:    slaPenalty,
		Revenue:       cargo.RevenueINR,
		Margin:        cargo.RevenueINR - (operatingCost + handlingCost + slaPenalty),
		TransitHours:  lastArrival.Sub(firstDeparture).Hours(),
		LatenessHours: latenessHours,
	}
}

// Denied builds the DENIED fallback option for a cargo. Its penalty is
// the configured share of revenue, capturing goodwill loss.
func (s *Scorer) Denied(cargo *planning.Cargo, reason string) *RouteOption {
	penalty := s.DenialPenalty(cargo)
	if reason == "" {
		reason = fmt.Sprintf("no feasible itinerary for %s", cargo.ID)
	}
	return &RouteOption{
		CargoID:    cargo.ID,
		SLAPenalty: penalty,
		Margin:     -penalty,
		Notes:      reason,
	}
}
