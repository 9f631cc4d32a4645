package optimizer

import (
	"fmt"

	"github.com/rajivmehta/cargoplan-go/internal/domain/planning"
	"github.com/rajivmehta/cargoplan-go/internal/domain/routing"
	"github.com/rajivmehta/cargoplan-go/internal/domain/selection"
)

// Simulator walks the flight schedule in departure order and resolves
// capacity contention per flight. It is a pure function of the gene
// vector plus the shared read-only inputs, so evaluator workers can run
// it concurrently without locking.
type Simulator struct {
	flightOrder  []*planning.Flight
	cargoMap     planning.CargoMap
	catalog      *routing.Catalog
	selector     *selection.Selector
	denialFactor float64
}

// NewSimulator creates a simulator over immutable planning inputs.
func NewSimulator(
	flights planning.FlightMap,
	cargoMap planning.CargoMap,
	catalog *routing.Catalog,
	selector *selection.Selector,
	denialFactor float64,
) *Simulator {
	if denialFactor <= 0 {
		denialFactor = routing.DefaultDenialFactor
	}
	return &Simulator{
		flightOrder:  flights.SortedByDeparture(),
		cargoMap:     cargoMap,
		catalog:      catalog,
		selector:     selector,
		denialFactor: denialFactor,
	}
}

// cargoProgress tracks one in-flight cargo through its itinerary.
type cargoProgress struct {
	cargo   *planning.Cargo
	route   *routing.RouteOption
	nextLeg int
	rolled  bool
	reason  string
}

// Run simulates the plan encoded by one gene vector. Genes index into
// each cargo's route option list in catalog order; out-of-range values
// wrap, so any integer vector is a valid individual.
func (s *Simulator) Run(genes []int) *SimulationResult {
	result := &SimulationResult{
		Assignments: make(map[string]*CargoAssignment, s.catalog.Len()),
		FlightLoads: make(map[string]*selection.Selection),
	}

	progress := make(map[string]*cargoProgress, s.catalog.Len())
	for i, cargoID := range s.catalog.CargoIDs() {
		cargo := s.cargoMap[cargoID]
		options := s.catalog.OptionsAt(i)
		route := options[((genes[i]%len(options))+len(options))%len(options)]
		if route.Denied() {
			result.Assignments[cargoID] = &CargoAssignment{
				Cargo:  cargo,
				Route:  route,
				Status: planning.StatusDenied,
				Margin: route.Margin,
				Reason: route.Notes,
			}
			continue
		}
		progress[cargoID] = &cargoProgress{cargo: cargo, route: route}
	}

	for _, flight := range s.flightOrder {
		candidates := s.waitlist(flight, progress)
		if len(candidates) == 0 {
			continue
		}
		chosen := s.selector.Select(flight, candidates)
		result.FlightLoads[flight.ID] = chosen
		result.Alerts = append(result.Alerts, chosen.Alerts...)

		for _, candidate := range candidates {
			state := progress[candidate.Cargo.ID]
			if chosen.Contains(candidate.Cargo.ID) {
				state.nextLeg++
				continue
			}
			// A roll on leg k abandons the remaining legs; their
			// capacity is reclaimed by later selections.
			state.rolled = true
			state.reason = fmt.Sprintf("lost capacity contention on flight %s", flight.ID)
		}
	}

	for _, cargoID := range s.catalog.CargoIDs() {
		state, ok := progress[cargoID]
		if !ok {
			continue
		}
		assignment := &CargoAssignment{Cargo: state.cargo, Route: state.route}
		if !state.rolled && state.nextLeg == len(state.route.Legs) {
			assignment.Status = planning.StatusDelivered
			assignment.Margin = state.route.Margin
		} else {
			assignment.Status = planning.StatusRolled
			assignment.Margin = -state.cargo.RevenueINR * s.denialFactor
			assignment.Reason = state.reason
			if assignment.Reason == "" {
				assignment.Reason = "incomplete itinerary"
			}
		}
		result.Assignments[cargoID] = assignment
	}

	for _, assignment := range s.orderedAssignments(result) {
		result.TotalMargin += assignment.Margin
	}

	result.Alerts = append(result.Alerts, s.exceptionAlerts(result)...)
	return result
}

// waitlist gathers the still-eligible cargo whose next leg is this
// flight. Candidate order follows catalog order and is canonicalized
// again inside the selector.
func (s *Simulator) waitlist(flight *planning.Flight, progress map[string]*cargoProgress) []*selection.Candidate {
	var candidates []*selection.Candidate
	for _, cargoID := range s.catalog.CargoIDs() {
		state, ok := progress[cargoID]
		if !ok || state.rolled || state.nextLeg >= len(state.route.Legs) {
			continue
		}
		if state.route.Legs[state.nextLeg].Flight.ID != flight.ID {
			continue
		}
		candidates = append(candidates, selection.NewCandidate(state.cargo, state.route.DwellHoursOn(flight.ID)))
	}
	return candidates
}

// exceptionAlerts raises the per-cargo alerts owed by the plan: a
// critical guarantee violation for any undelivered high or medium
// cargo, and a baseline exception for every cargo that did not ship.
func (s *Simulator) exceptionAlerts(result *SimulationResult) []planning.Alert {
	var alerts []planning.Alert
	for _, cargoID := range s.catalog.CargoIDs() {
		assignment := result.Assignments[cargoID]
		if assignment == nil || assignment.Status == planning.StatusDelivered {
			continue
		}
		if assignment.Cargo.Priority.Guaranteed() {
			alerts = append(alerts, planning.NewAlert(
				planning.AlertPriorityViolation,
				planning.SeverityCritical,
				fmt.Sprintf("%s priority cargo %s ended %s: %s",
					assignment.Cargo.Priority, cargoID, assignment.Status, assignment.Reason),
			).WithCargo(cargoID).WithStatus(assignment.Status))
		}
		alerts = append(alerts, planning.NewAlert(
			planning.AlertBaselineException,
			planning.SeverityWarning,
			fmt.Sprintf("cargo %s not delivered: %s", cargoID, assignment.Reason),
		).WithCargo(cargoID).WithStatus(assignment.Status))
	}
	return alerts
}

// orderedAssignments returns assignments in canonical cargo order.
func (s *Simulator) orderedAssignments(result *SimulationResult) []*CargoAssignment {
	ordered := make([]*CargoAssignment, 0, len(result.Assignments))
	for _, cargoID := range s.catalog.CargoIDs() {
		if assignment, ok := result.Assignments[cargoID]; ok {
			ordered = append(ordered, assignment)
		}
	}
	return ordered
}
