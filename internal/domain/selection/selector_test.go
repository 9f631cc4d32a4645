package selection_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajivmehta/cargoplan-go/internal/domain/planning"
	"github.com/rajivmehta/cargoplan-go/internal/domain/selection"
)

func testFlight(t *testing.T, weightKg, volumeM3 float64) *planning.Flight {
	t.Helper()
	dep := time.Date(2025, 11, 10, 8, 0, 0, 0, time.UTC)
	flight, err := planning.NewFlight("FL1", "DEL", "BOM", dep, dep.Add(2*time.Hour), weightKg, volumeM3, 10)
	require.NoError(t, err)
	return flight
}

func testCandidate(t *testing.T, id string, priority planning.Priority, weightKg, revenue float64) *selection.Candidate {
	t.Helper()
	ready := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
	cargo, err := planning.NewCargo(id, "DEL", "BOM", weightKg, 5, revenue,
		priority, false, 24, ready, ready.Add(12*time.Hour), 0, 100)
	require.NoError(t, err)
	return selection.NewCandidate(cargo, 0)
}

func TestSelector_GuaranteedOversubscriptionTriggersOverride(t *testing.T) {
	// Arrange
	selector := selection.NewSelector(selection.DefaultWeights())
	flight := testFlight(t, 1000, 50)
	candidates := []*selection.Candidate{
		testCandidate(t, "CG-H", planning.PriorityHigh, 600, 90000),
		testCandidate(t, "CG-M", planning.PriorityMedium, 600, 60000),
		testCandidate(t, "CG-L", planning.PriorityLow, 600, 30000),
	}

	// Act
	result := selector.Select(flight, candidates)

	// Assert
	assert.True(t, result.Overloaded)
	assert.ElementsMatch(t, []string{"CG-H", "CG-M"}, result.BoardedIDs())
	assert.False(t, result.Contains("CG-L"))
	assert.InDelta(t, 1200.0, result.TotalWeight, 1e-9)
	require.Len(t, result.Alerts, 1)
	assert.Equal(t, planning.AlertCapacityBreach, result.Alerts[0].Kind)
	assert.Equal(t, planning.SeverityCritical, result.Alerts[0].Severity)
	assert.Equal(t, "FL1", result.Alerts[0].FlightID)
}

func TestSelector_LowPriorityKnapsackOnResidualCapacity(t *testing.T) {
	// One high-priority reservation leaves 8000kg. The two densest low
	// candidates fit together and land the flight in the utilization
	// band; the heavy cheap one is rejected.
	selector := selection.NewSelector(selection.DefaultWeights())
	flight := testFlight(t, 10000, 50)
	candidates := []*selection.Candidate{
		testCandidate(t, "CG-H", planning.PriorityHigh, 2000, 500000),
		testCandidate(t, "L1", planning.PriorityLow, 3000, 300000),
		testCandidate(t, "L2", planning.PriorityLow, 4000, 200000),
		testCandidate(t, "L3", planning.PriorityLow, 6000, 150000),
	}

	result := selector.Select(flight, candidates)

	assert.False(t, result.Overloaded)
	assert.ElementsMatch(t, []string{"CG-H", "L1", "L2"}, result.BoardedIDs())
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, "L3", result.Rejected[0].Cargo.ID)
	assert.InDelta(t, 0.9, result.WeightUtilization(), 1e-9)
	assert.Empty(t, result.Alerts)
}

func TestSelector_EqualScoreTieBreaksOnLowestCargoID(t *testing.T) {
	// Two identical low candidates, capacity for one. The ascending-id
	// enumeration order makes L1 the deterministic winner.
	selector := selection.NewSelector(selection.DefaultWeights())
	flight := testFlight(t, 1000, 50)
	candidates := []*selection.Candidate{
		testCandidate(t, "L2", planning.PriorityLow, 800, 40000),
		testCandidate(t, "L1", planning.PriorityLow, 800, 40000),
	}

	first := selector.Select(flight, candidates)
	second := selector.Select(flight, candidates)

	assert.Equal(t, []string{"L1"}, first.BoardedIDs())
	assert.Equal(t, first.BoardedIDs(), second.BoardedIDs())
}

func TestSelector_NoCandidates(t *testing.T) {
	selector := selection.NewSelector(selection.Weights{})
	flight := testFlight(t, 1000, 50)

	result := selector.Select(flight, nil)

	assert.Empty(t, result.Boarded)
	assert.Empty(t, result.Rejected)
	assert.Zero(t, result.TotalWeight)
	assert.False(t, result.Overloaded)
}

func TestSelector_GreedyPathBoardsEverythingThatFits(t *testing.T) {
	// Above the exhaustive-search limit the selector switches to greedy
	// seeding. With ample capacity every candidate boards, in canonical
	// id order.
	selector := selection.NewSelector(selection.DefaultWeights())
	flight := testFlight(t, 100000, 1000)
	candidates := make([]*selection.Candidate, 0, 14)
	for i := 14; i >= 1; i-- {
		id := fmt.Sprintf("L%02d", i)
		candidates = append(candidates, testCandidate(t, id, planning.PriorityLow, 100, 10000))
	}

	result := selector.Select(flight, candidates)

	require.Len(t, result.Boarded, 14)
	ids := result.BoardedIDs()
	for i := 1; i < len(ids); i++ {
		assert.Less(t, ids[i-1], ids[i])
	}
}
