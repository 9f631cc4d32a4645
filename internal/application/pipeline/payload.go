package pipeline

import (
	"sort"
	"strings"
	"time"

	"github.com/rajivmehta/cargoplan-go/internal/application/optimizer"
	"github.com/rajivmehta/cargoplan-go/internal/domain/planning"
)

// RouteRow is one cargo's line in plan_routes.csv and the plan payload.
type RouteRow struct {
	CargoID      string  `json:"cargo_id"`
	Status       string  `json:"status"`
	Reason       string  `json:"reason,omitempty"`
	Flights      string  `json:"flights"`
	ETD          string  `json:"etd,omitempty"`
	ETA          string  `json:"eta,omitempty"`
	TotalCost    float64 `json:"total_cost"`
	RevenueINR   float64 `json:"revenue_inr"`
	MarginINR    float64 `json:"margin_inr"`
	TransitHours float64 `json:"transit_hours"`
	SLAPenalty   float64 `json:"sla_penalty"`
	HandlingCost float64 `json:"handling_cost"`
	Notes        string  `json:"notes,omitempty"`
}

// FlightLoadRow is one flight's line in flight_loads.csv. Flights with
// no boarded cargo still get a zero-utilization row.
type FlightLoadRow struct {
	FlightID             string  `json:"flight_id"`
	Origin               string  `json:"origin"`
	Destination          string  `json:"destination"`
	Departure            string  `json:"departure"`
	Arrival              string  `json:"arrival"`
	WeightCapacityKg     float64 `json:"weight_capacity_kg"`
	VolumeCapacityM3     float64 `json:"volume_capacity_m3"`
	BoardedCargo         string  `json:"boarded_cargo"`
	BoardedWeightKg      float64 `json:"boarded_weight_kg"`
	BoardedVolumeM3      float64 `json:"boarded_volume_m3"`
	WeightUtilizationPct float64 `json:"weight_utilization_pct"`
	VolumeUtilizationPct float64 `json:"volume_utilization_pct"`
	RevenueINR           float64 `json:"revenue_inr"`
}

// AlertRow is one alert's line in alerts.csv.
type AlertRow struct {
	Type        string   `json:"alert_type"`
	Severity    string   `json:"severity"`
	Message     string   `json:"message"`
	CargoID     string   `json:"cargo_id,omitempty"`
	FlightID    string   `json:"flight_id,omitempty"`
	Status      string   `json:"status,omitempty"`
	MarginDelta *float64 `json:"margin_delta,omitempty"`
}

// Summary is the plan_summary.json document.
type Summary struct {
	TotalMargin             float64        `json:"total_margin"`
	Delivered               int            `json:"delivered"`
	Rolled                  int            `json:"rolled"`
	Denied                  int            `json:"denied"`
	AvgWeightUtilizationPct float64        `json:"avg_weight_utilization_pct"`
	AvgVolumeUtilizationPct float64        `json:"avg_volume_utilization_pct"`
	AlertCounts             map[string]int `json:"alert_counts"`
	Seed                    int64          `json:"seed"`
	Generations             int            `json:"generations"`
	Evaluations             int            `json:"evaluations"`
}

// Payload is the complete structured result of a plan run, equivalent
// to the four output artifacts.
type Payload struct {
	Routes      []RouteRow      `json:"routes"`
	FlightLoads []FlightLoadRow `json:"flight_loads"`
	Alerts      []AlertRow      `json:"alerts"`
	Summary     Summary         `json:"summary"`
}

// BuildPayload flattens a simulation result and its alerts into the
// output payload. Routes come out in ascending cargo id order, flight
// loads in departure order.
func BuildPayload(
	result *optimizer.SimulationResult,
	flights planning.FlightMap,
	alerts []planning.Alert,
	seed int64,
	generations, evaluations int,
) *Payload {
	payload := &Payload{}

	cargoIDs := make([]string, 0, len(result.Assignments))
	for cargoID := range result.Assignments {
		cargoIDs = append(cargoIDs, cargoID)
	}
	sort.Strings(cargoIDs)

	for _, cargoID := range cargoIDs {
		assignment := result.Assignments[cargoID]
		route := assignment.Route
		row := RouteRow{
			CargoID:      cargoID,
			Status:       string(assignment.Status),
			Reason:       assignment.Reason,
			Flights:      route.Sequence(),
			TotalCost:    route.OperatingCost + route.HandlingCost + route.SLAPenalty,
			RevenueINR:   assignment.Cargo.RevenueINR,
			MarginINR:    assignment.Margin,
			TransitHours: route.TransitHours,
			SLAPenalty:   route.SLAPenalty,
			HandlingCost: route.HandlingCost,
			Notes:        route.Notes,
		}
		if !route.Denied() {
			row.ETD = route.Departure().Format(time.RFC3339)
			row.ETA = route.Arrival().Format(time.RFC3339)
		}
		payload.Routes = append(payload.Routes, row)
	}

	weightUtilSum, volumeUtilSum := 0.0, 0.0
	flightOrder := flights.SortedByDeparture()
	for _, flight := range flightOrder {
		row := FlightLoadRow{
			FlightID:         flight.ID,
			Origin:           flight.Origin,
			Destination:      flight.Destination,
			Departure:        flight.Departure.Format(time.RFC3339),
			Arrival:          flight.Arrival.Format(time.RFC3339),
			WeightCapacityKg: flight.WeightCapacityKg,
			VolumeCapacityM3: flight.VolumeCapacityM3,
		}
		if load, ok := result.FlightLoads[flight.ID]; ok {
			row.BoardedCargo = strings.Join(load.BoardedIDs(), " ")
			row.BoardedWeightKg = load.TotalWeight
			row.BoardedVolumeM3 = load.TotalVolume
			row.WeightUtilizationPct = load.WeightUtilization() * 100
			row.VolumeUtilizationPct = load.VolumeUtilization() * 100
			row.RevenueINR = load.Revenue()
		}
		weightUtilSum += row.WeightUtilizationPct
		volumeUtilSum += row.VolumeUtilizationPct
		payload.FlightLoads = append(payload.FlightLoads, row)
	}

	for _, alert := range alerts {
		payload.Alerts = append(payload.Alerts, AlertRow{
			Type:        string(alert.Kind),
			Severity:    string(alert.Severity),
			Message:     alert.Message,
			CargoID:     alert.CargoID,
			FlightID:    alert.FlightID,
			Status:      string(alert.Status),
			MarginDelta: alert.MarginDelta,
		})
	}

	delivered, rolled, denied := result.StatusCounts()
	payload.Summary = Summary{
		TotalMargin: result.TotalMargin,
		Delivered:   delivered,
		Rolled:      rolled,
		Denied:      denied,
		AlertCounts: alertCounts(alerts),
		Seed:        seed,
		Generations: generations,
		Evaluations: evaluations,
	}
	if len(flightOrder) > 0 {
		payload.Summary.AvgWeightUtilizationPct = weightUtilSum / float64(len(flightOrder))
		payload.Summary.AvgVolumeUtilizationPct = volumeUtilSum / float64(len(flightOrder))
	}

	return payload
}

func alertCounts(alerts []planning.Alert) map[string]int {
	counts := make(map[string]int, 3)
	for severity, count := range planning.CountBySeverity(alerts) {
		counts[string(severity)] = count
	}
	return counts
}
