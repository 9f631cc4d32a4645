// Package output renders a plan payload as the four output artifacts:
// plan_routes.csv, flight_loads.csv, alerts.csv and plan_summary.json.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rajivmehta/cargoplan-go/internal/application/pipeline"
)

const (
	RoutesFileName  = "plan_routes.csv"
	LoadsFileName   = "flight_loads.csv"
	AlertsFileName  = "alerts.csv"
	SummaryFileName = "plan_summary.json"
)

// WriteAll writes the four artifacts into dir, creating it if needed.
func WriteAll(dir string, payload *pipeline.Payload) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir %s: %w", dir, err)
	}
	writers := map[string]func(io.Writer, *pipeline.Payload) error{
		RoutesFileName:  WriteRoutes,
		LoadsFileName:   WriteFlightLoads,
		AlertsFileName:  WriteAlerts,
		SummaryFileName: WriteSummary,
	}
	for _, name := range []string{RoutesFileName, LoadsFileName, AlertsFileName, SummaryFileName} {
		if err := writeFile(filepath.Join(dir, name), payload, writers[name]); err != nil {
			return err
		}
	}
	return nil
}

// WriteRoutes renders plan_routes.csv, one row per cargo in ascending
// cargo id order.
func WriteRoutes(w io.Writer, payload *pipeline.Payload) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{
		"cargo_id", "status", "reason", "flights", "etd", "eta",
		"total_cost", "revenue_inr", "margin_inr", "transit_hours",
		"sla_penalty", "handling_cost", "notes",
	}); err != nil {
		return err
	}
	for _, row := range payload.Routes {
		if err := writer.Write([]string{
			row.CargoID, row.Status, row.Reason, row.Flights, row.ETD, row.ETA,
			money(row.TotalCost), money(row.RevenueINR), money(row.MarginINR),
			money(row.TransitHours), money(row.SLAPenalty), money(row.HandlingCost),
			row.Notes,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteFlightLoads renders flight_loads.csv in departure order,
// including zero-utilization rows for flights nothing boarded.
func WriteFlightLoads(w io.Writer, payload *pipeline.Payload) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{
		"flight_id", "origin", "destination", "departure", "arrival",
		"weight_capacity_kg", "volume_capacity_m3", "boarded_cargo",
		"boarded_weight_kg", "boarded_volume_m3",
		"weight_utilization_pct", "volume_utilization_pct", "revenue_inr",
	}); err != nil {
		return err
	}
	for _, row := range payload.FlightLoads {
		if err := writer.Write([]string{
			row.FlightID, row.Origin, row.Destination, row.Departure, row.Arrival,
			money(row.WeightCapacityKg), money(row.VolumeCapacityM3), row.BoardedCargo,
			money(row.BoardedWeightKg), money(row.BoardedVolumeM3),
			money(row.WeightUtilizationPct), money(row.VolumeUtilizationPct),
			money(row.RevenueINR),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteAlerts renders alerts.csv in emission order.
func WriteAlerts(w io.Writer, payload *pipeline.Payload) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{
		"alert_type", "severity", "message", "cargo_id", "flight_id", "status", "margin_delta",
	}); err != nil {
		return err
	}
	for _, row := range payload.Alerts {
		delta := ""
		if row.MarginDelta != nil {
			delta = money(*row.MarginDelta)
		}
		if err := writer.Write([]string{
			row.Type, row.Severity, row.Message, row.CargoID, row.FlightID, row.Status, delta,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteSummary renders plan_summary.json.
func WriteSummary(w io.Writer, payload *pipeline.Payload) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload.Summary)
}

// money formats a numeric cell with fixed two-decimal precision so that
// output bytes are identical across platforms.
func money(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}

func writeFile(path string, payload *pipeline.Payload, render func(io.Writer, *pipeline.Payload) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := render(file, payload); err != nil {
		file.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return file.Close()
}
