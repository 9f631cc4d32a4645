package pipeline_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajivmehta/cargoplan-go/internal/application/disruption"
	"github.com/rajivmehta/cargoplan-go/internal/application/pipeline"
	"github.com/rajivmehta/cargoplan-go/internal/domain/planning"
	"github.com/rajivmehta/cargoplan-go/internal/sampledata"
)

func testOptions(seed int64) pipeline.Options {
	options := pipeline.DefaultOptions()
	options.Params.PopulationSize = 30
	options.Params.Generations = 40
	options.Params.Seed = seed
	return options
}

type recordingHistory struct {
	saved []*pipeline.PlanRecord
}

func (h *recordingHistory) Save(_ context.Context, record *pipeline.PlanRecord) error {
	h.saved = append(h.saved, record)
	return nil
}

func (h *recordingHistory) FindByID(context.Context, string) (*pipeline.PlanRecord, error) {
	return nil, nil
}

func (h *recordingHistory) FindRecent(context.Context, int) ([]*pipeline.PlanRecord, error) {
	return h.saved, nil
}

func TestPlanner_BaselineRunOnSampleData(t *testing.T) {
	inputs, err := sampledata.Load()
	require.NoError(t, err)
	planner := pipeline.NewPlanner(testOptions(7), nil, nil)

	result, err := planner.Run(context.Background(), inputs)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.RunID, "plan-"))
	require.NotNil(t, result.Payload)

	assert.Len(t, result.Payload.Routes, len(inputs.Cargo))
	assert.Len(t, result.Payload.FlightLoads, len(inputs.Flights))

	marginSum := 0.0
	for _, route := range result.Payload.Routes {
		marginSum += route.MarginINR
	}
	assert.InDelta(t, result.Payload.Summary.TotalMargin, marginSum, 1e-6)
	assert.InDelta(t, result.Final.TotalMargin, result.Payload.Summary.TotalMargin, 1e-9)

	summary := result.Payload.Summary
	assert.Equal(t, len(inputs.Cargo), summary.Delivered+summary.Rolled+summary.Denied)

	for _, alert := range result.Payload.Alerts {
		assert.NotEqual(t, "disruption_applied", alert.Type)
	}
}

func TestPlanner_SameSeedProducesIdenticalPayload(t *testing.T) {
	inputs, err := sampledata.Load()
	require.NoError(t, err)

	first, err := pipeline.NewPlanner(testOptions(7), nil, nil).Run(context.Background(), inputs)
	require.NoError(t, err)
	second, err := pipeline.NewPlanner(testOptions(7), nil, nil).Run(context.Background(), inputs)
	require.NoError(t, err)

	// Run ids differ per run; everything the artifacts are built from
	// must not.
	assert.Equal(t, first.Payload, second.Payload)
}

func TestPlanner_DisruptionRunDiffsAgainstBaseline(t *testing.T) {
	inputs, err := sampledata.Load()
	require.NoError(t, err)
	events, err := sampledata.Events()
	require.NoError(t, err)
	inputs.Events = events
	planner := pipeline.NewPlanner(testOptions(7), nil, nil)

	result, err := planner.Run(context.Background(), inputs)

	require.NoError(t, err)
	applied := 0
	for _, alert := range result.Payload.Alerts {
		if alert.Type == "disruption_applied" {
			applied++
		}
	}
	assert.Equal(t, len(events), applied)
	assert.NotSame(t, result.Baseline.Simulation, result.Final)
}

func TestPlanner_CapacitySwapNeverReducesDeliveries(t *testing.T) {
	// One direct flight that fits only one of two identical shipments,
	// then a swap to a larger aircraft. More capacity must never cost a
	// delivery or margin versus the constrained baseline.
	dep := time.Date(2025, 11, 10, 8, 0, 0, 0, time.UTC)
	flight, err := planning.NewFlight("FL1", "DEL", "BOM", dep, dep.Add(2*time.Hour), 1000, 50, 10)
	require.NoError(t, err)

	cargoPool := planning.CargoMap{}
	for _, id := range []string{"CG1", "CG2"} {
		shipment, err := planning.NewCargo(id, "DEL", "BOM", 600, 5, 60000,
			planning.PriorityLow, false, 24,
			dep.Add(-2*time.Hour), dep.Add(4*time.Hour), 2, 500)
		require.NoError(t, err)
		cargoPool[id] = shipment
	}

	bigger := 2000.0
	inputs := pipeline.Inputs{
		Flights: planning.FlightMap{"FL1": flight},
		Cargo:   cargoPool,
		Rules:   planning.NewRuleIndex(nil),
		Events: []disruption.Event{
			{Kind: disruption.EventSwap, FlightID: "FL1", NewWeightCapacityKg: &bigger},
		},
	}

	result, err := pipeline.NewPlanner(testOptions(7), nil, nil).Run(context.Background(), inputs)

	require.NoError(t, err)
	baseDelivered, baseRolled, _ := result.Baseline.Simulation.StatusCounts()
	require.Equal(t, 1, baseDelivered, "baseline must be capacity constrained")
	require.Equal(t, 1, baseRolled)

	delivered, rolled, _ := result.Final.StatusCounts()
	assert.GreaterOrEqual(t, delivered, baseDelivered)
	assert.Equal(t, 2, delivered)
	assert.Zero(t, rolled)
	assert.GreaterOrEqual(t, result.Final.TotalMargin, result.Baseline.Simulation.TotalMargin)
}

func TestPlanner_RecordsRunHistory(t *testing.T) {
	inputs, err := sampledata.Load()
	require.NoError(t, err)
	history := &recordingHistory{}
	planner := pipeline.NewPlanner(testOptions(7), nil, history)

	result, err := planner.Run(context.Background(), inputs)

	require.NoError(t, err)
	require.Len(t, history.saved, 1)
	record := history.saved[0]
	assert.Equal(t, result.RunID, record.ID)
	assert.Equal(t, int64(7), record.Seed)
	assert.Equal(t, len(inputs.Cargo), record.Delivered+record.Rolled+record.Denied)
	assert.Contains(t, record.SummaryJSON, "total_margin")
}
