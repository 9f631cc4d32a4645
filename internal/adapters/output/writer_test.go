package output_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajivmehta/cargoplan-go/internal/adapters/output"
	"github.com/rajivmehta/cargoplan-go/internal/application/pipeline"
)

func samplePayload() *pipeline.Payload {
	delta := -11000.0
	return &pipeline.Payload{
		Routes: []pipeline.RouteRow{
			{
				CargoID: "CG001", Status: "delivered", Flights: "AI101 6E201",
				ETD: "2025-11-10T06:00:00+05:30", ETA: "2025-11-10T11:10:00+05:30",
				TotalCost: 25500, RevenueINR: 100000, MarginINR: 74500,
				TransitHours: 5.1667, HandlingCost: 3500,
			},
			{
				CargoID: "CG002", Status: "denied", Flights: "DENIED",
				RevenueINR: 40000, MarginINR: -10000, SLAPenalty: 10000,
				Notes: "no feasible itinerary",
			},
		},
		FlightLoads: []pipeline.FlightLoadRow{
			{
				FlightID: "AI101", Origin: "DEL", Destination: "BOM",
				Departure: "2025-11-10T06:00:00+05:30", Arrival: "2025-11-10T08:10:00+05:30",
				WeightCapacityKg: 12000, VolumeCapacityM3: 60,
				BoardedCargo: "CG001", BoardedWeightKg: 1500, BoardedVolumeM3: 8,
				WeightUtilizationPct: 12.5, VolumeUtilizationPct: 13.333, RevenueINR: 100000,
			},
		},
		Alerts: []pipeline.AlertRow{
			{Type: "margin_change", Severity: "warning", Message: "cargo CG001 margin moved by -11000.00 INR", CargoID: "CG001", MarginDelta: &delta},
		},
		Summary: pipeline.Summary{
			TotalMargin: 64500, Delivered: 1, Denied: 1,
			AlertCounts: map[string]int{"warning": 1},
			Seed:        42, Generations: 30, Evaluations: 2400,
		},
	}
}

func TestWriteRoutes_FixedPrecision(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, output.WriteRoutes(&buf, samplePayload()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "cargo_id,status,reason,flights,etd,eta,total_cost,revenue_inr,margin_inr,transit_hours,sla_penalty,handling_cost,notes", lines[0])
	assert.Contains(t, lines[1], "CG001,delivered,,AI101 6E201")
	assert.Contains(t, lines[1], "74500.00")
	assert.Contains(t, lines[2], "CG002,denied")
	assert.Contains(t, lines[2], "-10000.00")
}

func TestWriteAlerts_EmptyMarginDeltaCell(t *testing.T) {
	var buf bytes.Buffer
	payload := samplePayload()
	payload.Alerts = append(payload.Alerts, pipeline.AlertRow{
		Type: "capacity_breach", Severity: "critical", Message: "over", FlightID: "FL1",
	})

	require.NoError(t, output.WriteAlerts(&buf, payload))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[1], "-11000.00"))
	assert.True(t, strings.HasSuffix(lines[2], ","))
}

func TestWriteAll_ProducesFourArtifacts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	require.NoError(t, output.WriteAll(dir, samplePayload()))

	for _, name := range []string{
		output.RoutesFileName, output.LoadsFileName,
		output.AlertsFileName, output.SummaryFileName,
	} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}

	raw, err := os.ReadFile(filepath.Join(dir, output.SummaryFileName))
	require.NoError(t, err)
	var summary pipeline.Summary
	require.NoError(t, json.Unmarshal(raw, &summary))
	assert.InDelta(t, 64500.0, summary.TotalMargin, 1e-9)
	assert.Equal(t, int64(42), summary.Seed)
}

func TestWriteAll_IsByteStable(t *testing.T) {
	var first, second bytes.Buffer
	payload := samplePayload()

	require.NoError(t, output.WriteFlightLoads(&first, payload))
	require.NoError(t, output.WriteFlightLoads(&second, payload))

	assert.Equal(t, first.Bytes(), second.Bytes())
	assert.Contains(t, first.String(), "13.33")
}
