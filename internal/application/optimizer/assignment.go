package optimizer

import (
	"github.com/rajivmehta/cargoplan-go/internal/domain/planning"
	"github.com/rajivmehta/cargoplan-go/internal/domain/routing"
	"github.com/rajivmehta/cargoplan-go/internal/domain/selection"
)

// CargoAssignment is the final outcome for one cargo in a plan.
type CargoAssignment struct {
	Cargo  *planning.Cargo
	Route  *routing.RouteOption
	Status planning.AssignmentStatus
	Margin float64
	Reason string
}

// SimulationResult is the complete outcome of simulating one route
// choice per cargo: assignments, per-flight loads, margins and the
// alerts raised along the way.
type SimulationResult struct {
	TotalMargin float64
	Assignments map[string]*CargoAssignment
	FlightLoads map[string]*selection.Selection
	Alerts      []planning.Alert
}

// StatusCounts tallies assignments per final status.
func (r *SimulationResult) StatusCounts() (delivered, rolled, denied int) {
	for _, assignment := range r.Assignments {
		switch assignment.Status {
		case planning.StatusDelivered:
			delivered++
		case planning.StatusRolled:
			rolled++
		case planning.StatusDenied:
			denied++
		}
	}
	return delivered, rolled, denied
}

// AssignmentFor returns the assignment for a cargo id, nil if absent.
func (r *SimulationResult) AssignmentFor(cargoID string) *CargoAssignment {
	return r.Assignments[cargoID]
}
