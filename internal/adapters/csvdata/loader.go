// Package csvdata loads the planning inputs: flight, cargo and
// connection-rule CSV files plus the disruption event JSON document.
// Every malformed row surfaces as a DataValidationError naming the
// offending field.
package csvdata

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rajivmehta/cargoplan-go/internal/application/disruption"
	"github.com/rajivmehta/cargoplan-go/internal/domain/planning"
)

// LoadFlights parses flights.csv content into a flight map.
func LoadFlights(r io.Reader) (planning.FlightMap, error) {
	rows, columns, err := readTable(r, "flights.csv",
		"flight_id", "origin", "destination", "departure", "arrival",
		"weight_capacity_kg", "volume_capacity_m3", "cost_per_kg")
	if err != nil {
		return nil, err
	}

	flights := make(planning.FlightMap, len(rows))
	for _, row := range rows {
		departure, err := parseTimestamp("departure", columns.get(row, "departure"))
		if err != nil {
			return nil, err
		}
		arrival, err := parseTimestamp("arrival", columns.get(row, "arrival"))
		if err != nil {
			return nil, err
		}
		weight, err := parseFloat("weight_capacity_kg", columns.get(row, "weight_capacity_kg"))
		if err != nil {
			return nil, err
		}
		volume, err := parseFloat("volume_capacity_m3", columns.get(row, "volume_capacity_m3"))
		if err != nil {
			return nil, err
		}
		cost, err := parseFloat("cost_per_kg", columns.get(row, "cost_per_kg"))
		if err != nil {
			return nil, err
		}

		flight, err := planning.NewFlight(
			columns.get(row, "flight_id"),
			columns.get(row, "origin"),
			columns.get(row, "destination"),
			departure, arrival, weight, volume, cost,
		)
		if err != nil {
			return nil, err
		}
		if _, exists := flights[flight.ID]; exists {
			return nil, planning.NewDataValidationError("flight_id", fmt.Sprintf("duplicate flight %s", flight.ID))
		}
		flights[flight.ID] = flight
	}
	return flights, nil
}

// LoadCargo parses cargo.csv content into a cargo map.
func LoadCargo(r io.Reader) (planning.CargoMap, error) {
	rows, columns, err := readTable(r, "cargo.csv",
		"cargo_id", "origin", "destination", "weight_kg", "volume_m3",
		"revenue_inr", "priority", "perishable", "max_transit_hours",
		"ready_time", "due_by", "handling_cost_per_kg", "sla_penalty_per_hour")
	if err != nil {
		return nil, err
	}

	pool := make(planning.CargoMap, len(rows))
	for _, row := range rows {
		weight, err := parseFloat("weight_kg", columns.get(row, "weight_kg"))
		if err != nil {
			return nil, err
		}
		volume, err := parseFloat("volume_m3", columns.get(row, "volume_m3"))
		if err != nil {
			return nil, err
		}
		revenue, err := parseFloat("revenue_inr", columns.get(row, "revenue_inr"))
		if err != nil {
			return nil, err
		}
		priority, err := planning.ParsePriority(columns.get(row, "priority"))
		if err != nil {
			return nil, err
		}
		perishable, err := parseBool("perishable", columns.get(row, "perishable"))
		if err != nil {
			return nil, err
		}
		maxTransit, err := parseFloat("max_transit_hours", columns.get(row, "max_transit_hours"))
		if err != nil {
			return nil, err
		}
		readyTime, err := parseTimestamp("ready_time", columns.get(row, "ready_time"))
		if err != nil {
			return nil, err
		}
		dueBy, err := parseTimestamp("due_by", columns.get(row, "due_by"))
		if err != nil {
			return nil, err
		}
		handling, err := parseFloat("handling_cost_per_kg", columns.get(row, "handling_cost_per_kg"))
		if err != nil {
			return nil, err
		}
		slaPenalty, err := parseFloat("sla_penalty_per_hour", columns.get(row, "sla_penalty_per_hour"))
		if err != nil {
			return nil, err
		}

		cargo, err := planning.NewCargo(
			columns.get(row, "cargo_id"),
			columns.get(row, "origin"),
			columns.get(row, "destination"),
			weight, volume, revenue, priority, perishable,
			maxTransit, readyTime, dueBy, handling, slaPenalty,
		)
		if err != nil {
			return nil, err
		}
		if _, exists := pool[cargo.ID]; exists {
			return nil, planning.NewDataValidationError("cargo_id", fmt.Sprintf("duplicate cargo %s", cargo.ID))
		}
		pool[cargo.ID] = cargo
	}
	return pool, nil
}

// LoadConnections parses connections.csv into a rule index. An empty
// connection_airport column is the wildcard rule for the pair.
func LoadConnections(r io.Reader) (*planning.RuleIndex, error) {
	rows, columns, err := readTable(r, "connections.csv",
		"origin", "destination", "connection_airport",
		"min_connection_minutes", "max_connection_minutes", "handling_fee")
	if err != nil {
		return nil, err
	}

	rules := make([]*planning.ConnectionRule, 0, len(rows))
	for _, row := range rows {
		minMinutes, err := parseInt("min_connection_minutes", columns.get(row, "min_connection_minutes"))
		if err != nil {
			return nil, err
		}
		maxMinutes, err := parseInt("max_connection_minutes", columns.get(row, "max_connection_minutes"))
		if err != nil {
			return nil, err
		}
		fee, err := parseFloat("handling_fee", columns.get(row, "handling_fee"))
		if err != nil {
			return nil, err
		}

		rule, err := planning.NewConnectionRule(
			columns.get(row, "origin"),
			columns.get(row, "destination"),
			columns.get(row, "connection_airport"),
			time.Duration(minMinutes)*time.Minute,
			time.Duration(maxMinutes)*time.Minute,
			fee,
		)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return planning.NewRuleIndex(rules), nil
}

// LoadEvents parses a disruption event JSON array.
func LoadEvents(r io.Reader) ([]disruption.Event, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var events []disruption.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, planning.NewDataValidationError("events", fmt.Sprintf("unparseable event document: %v", err))
	}
	for _, event := range events {
		if err := event.Validate(); err != nil {
			return nil, err
		}
	}
	return events, nil
}

// LoadFlightsFile loads flights.csv from disk.
func LoadFlightsFile(path string) (planning.FlightMap, error) {
	return loadFile(path, LoadFlights)
}

// LoadCargoFile loads cargo.csv from disk.
func LoadCargoFile(path string) (planning.CargoMap, error) {
	return loadFile(path, LoadCargo)
}

// LoadConnectionsFile loads connections.csv from disk.
func LoadConnectionsFile(path string) (*planning.RuleIndex, error) {
	return loadFile(path, LoadConnections)
}

// LoadEventsFile loads a disruption event document from disk.
func LoadEventsFile(path string) ([]disruption.Event, error) {
	return loadFile(path, LoadEvents)
}

func loadFile[T any](path string, load func(io.Reader) (T, error)) (T, error) {
	file, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()
	return load(file)
}

// readTable reads all CSV rows, validates the header and returns the
// data rows with their column lookup.
func readTable(r io.Reader, fileName string, required ...string) ([][]string, header, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, planning.NewDataValidationError(fileName, fmt.Sprintf("unreadable CSV: %v", err))
	}
	if len(records) == 0 {
		return nil, nil, planning.NewDataValidationError(fileName, "missing header row")
	}

	columns, err := newHeader(fileName, records[0])
	if err != nil {
		return nil, nil, err
	}
	if err := columns.require(fileName, required...); err != nil {
		return nil, nil, err
	}
	return records[1:], columns, nil
}
