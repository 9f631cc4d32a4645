package disruption

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/rajivmehta/cargoplan-go/internal/application/common"
	"github.com/rajivmehta/cargoplan-go/internal/application/optimizer"
	"github.com/rajivmehta/cargoplan-go/internal/domain/planning"
)

// ScenarioSeedSalt decorrelates the scenario optimizer from the
// baseline run while keeping the pair fully determined by one seed.
const ScenarioSeedSalt int64 = 0x9E3779B9

// DefaultMarginThreshold is the absolute margin movement, in INR, below
// which no margin_change alert is raised.
const DefaultMarginThreshold = 5000.0

// ReplanFunc reruns enumeration and optimization against an adjusted
// flight set. The engine stays agnostic of how the pipeline wires its
// components together.
type ReplanFunc func(ctx context.Context, flights planning.FlightMap) (*optimizer.SimulationResult, error)

// Outcome bundles a what-if run: the adjusted flight set, the
// re-optimized plan and every alert the disruption produced.
type Outcome struct {
	Flights  planning.FlightMap
	Scenario *optimizer.SimulationResult
	Alerts   []planning.Alert
}

// Engine applies disruption events and diffs the re-optimized plan
// against the baseline.
type Engine struct {
	marginThreshold float64
}

// NewEngine creates a disruption engine. A non-positive threshold
// falls back to the default.
func NewEngine(marginThreshold float64) *Engine {
	if marginThreshold <= 0 {
		marginThreshold = DefaultMarginThreshold
	}
	return &Engine{marginThreshold: marginThreshold}
}

// Run applies the events, replans and diffs. An empty event list is a
// no-op: the baseline comes back untouched with zero alerts.
func (e *Engine) Run(
	ctx context.Context,
	baseline *optimizer.SimulationResult,
	flights planning.FlightMap,
	events []Event,
	replan ReplanFunc,
) (*Outcome, error) {
	if len(events) == 0 {
		return &Outcome{Flights: flights, Scenario: baseline}, nil
	}

	adjusted, applied := e.Apply(ctx, flights, events)
	scenario, err := replan(ctx, adjusted)
	if err != nil {
		return nil, err
	}

	alerts := append(applied, e.Diff(baseline, scenario)...)
	return &Outcome{Flights: adjusted, Scenario: scenario, Alerts: alerts}, nil
}

// Apply mutates a clone of the flight map event by event, in input
// order. Events naming unknown flights raise a warning and are skipped.
func (e *Engine) Apply(ctx context.Context, flights planning.FlightMap, events []Event) (planning.FlightMap, []planning.Alert) {
	logger := common.LoggerFromContext(ctx)
	adjusted := flights.Clone()
	alerts := make([]planning.Alert, 0, len(events))

	for _, event := range events {
		flight, ok := adjusted[event.FlightID]
		if !ok {
			alerts = append(alerts, planning.NewAlert(
				planning.AlertDisruptionApplied,
				planning.SeverityWarning,
				fmt.Sprintf("event %s skipped: unknown flight %s", event.Kind, event.FlightID),
			).WithFlight(event.FlightID))
			continue
		}

		switch event.Kind {
		case EventDelay:
			adjusted[event.FlightID] = flight.Delayed(event.Delay())
		case EventCancel:
			delete(adjusted, event.FlightID)
		case EventSwap:
			weight, volume := 0.0, 0.0
			if event.NewWeightCapacityKg != nil {
				weight = *event.NewWeightCapacityKg
			}
			if event.NewVolumeCapacityM3 != nil {
				volume = *event.NewVolumeCapacityM3
			}
			adjusted[event.FlightID] = flight.WithCapacity(weight, volume)
		}

		logger.Log("info", "disruption applied", map[string]interface{}{
			"event_type": string(event.Kind),
			"flight_id":  event.FlightID,
		})
		alerts = append(alerts, planning.NewAlert(
			planning.AlertDisruptionApplied,
			planning.SeverityInfo,
			event.Describe(),
		).WithFlight(event.FlightID))
	}

	return adjusted, alerts
}

// Diff compares the scenario plan against the baseline, cargo by cargo
// in canonical id order.
func (e *Engine) Diff(baseline, scenario *optimizer.SimulationResult) []planning.Alert {
	var alerts []planning.Alert

	cargoIDs := make([]string, 0, len(baseline.Assignments))
	for cargoID := range baseline.Assignments {
		cargoIDs = append(cargoIDs, cargoID)
	}
	sort.Strings(cargoIDs)

	for _, cargoID := range cargoIDs {
		before := baseline.Assignments[cargoID]
		after := scenario.AssignmentFor(cargoID)
		if after == nil {
			alerts = append(alerts, planning.NewAlert(
				planning.AlertCargoMissing,
				planning.SeverityCritical,
				fmt.Sprintf("cargo %s present in baseline is missing from the disrupted plan", cargoID),
			).WithCargo(cargoID))
			continue
		}

		if before.Status != after.Status {
			alerts = append(alerts, planning.NewAlert(
				planning.AlertStatusChange,
				statusChangeSeverity(before.Status, after.Status),
				fmt.Sprintf("cargo %s changed from %s to %s", cargoID, before.Status, after.Status),
			).WithCargo(cargoID).WithStatus(after.Status))
		} else if before.Status == planning.StatusDelivered &&
			before.Route.Sequence() != after.Route.Sequence() {
			alerts = append(alerts, planning.NewAlert(
				planning.AlertReroute,
				planning.SeverityWarning,
				fmt.Sprintf("cargo %s rerouted from [%s] to [%s]", cargoID, before.Route.Sequence(), after.Route.Sequence()),
			).WithCargo(cargoID))
		}

		delta := after.Margin - before.Margin
		threshold := math.Max(e.marginThreshold, 0.10*math.Abs(before.Margin))
		if math.Abs(delta) > threshold {
			severity := planning.SeverityInfo
			if delta < 0 {
				severity = planning.SeverityWarning
			}
			alerts = append(alerts, planning.NewAlert(
				planning.AlertMarginChange,
				severity,
				fmt.Sprintf("cargo %s margin moved by %+.2f INR", cargoID, delta),
			).WithCargo(cargoID).WithMarginDelta(delta))
		}
	}

	return alerts
}

func statusChangeSeverity(before, after planning.AssignmentStatus) planning.AlertSeverity {
	switch {
	case before == planning.StatusDelivered && after == planning.StatusDenied:
		return planning.SeverityCritical
	case before == planning.StatusDelivered && after == planning.StatusRolled:
		return planning.SeverityWarning
	case after == planning.StatusDelivered:
		return planning.SeverityInfo
	default:
		return planning.SeverityWarning
	}
}
