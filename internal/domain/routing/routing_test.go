package routing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajivmehta/cargoplan-go/internal/domain/planning"
	"github.com/rajivmehta/cargoplan-go/internal/domain/routing"
)

var day = time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func mustFlight(t *testing.T, id, origin, destination string, dep, arr time.Time, costPerKg float64) *planning.Flight {
	t.Helper()
	flight, err := planning.NewFlight(id, origin, destination, dep, arr, 10000, 50, costPerKg)
	require.NoError(t, err)
	return flight
}

func mustCargo(t *testing.T, id, origin, destination string, priority planning.Priority, dueBy time.Time) *planning.Cargo {
	t.Helper()
	cargo, err := planning.NewCargo(id, origin, destination, 1000, 5, 100000,
		priority, false, 24, at(0, 0), dueBy, 2, 500)
	require.NoError(t, err)
	return cargo
}

func newEnumerator(t *testing.T, flights planning.FlightMap, rules []*planning.ConnectionRule) *routing.Enumerator {
	t.Helper()
	index := planning.NewRuleIndex(rules)
	scorer := routing.NewScorer(index, 0.25)
	return routing.NewEnumerator(flights, index, scorer, 0)
}

func TestScorer_TwoLegEconomics(t *testing.T) {
	// Arrange
	rule, err := planning.NewConnectionRule("AAA", "CCC", "BBB", time.Hour, 3*time.Hour, 1500)
	require.NoError(t, err)
	index := planning.NewRuleIndex([]*planning.ConnectionRule{rule})
	scorer := routing.NewScorer(index, 0.25)

	first := mustFlight(t, "AB1", "AAA", "BBB", at(8, 0), at(10, 0), 10)
	second := mustFlight(t, "BC1", "BBB", "CCC", at(11, 30), at(14, 0), 12)
	cargo := mustCargo(t, "CG1", "AAA", "CCC", planning.PriorityMedium, at(15, 0))

	// Act
	option := scorer.Score(cargo, []*planning.Flight{first, second})

	// Assert
	assert.InDelta(t, 22000.0, option.OperatingCost, 1e-9) // (10+12) per kg x 1000kg
	assert.InDelta(t, 3500.0, option.HandlingCost, 1e-9)   // 1500 fee + 2 per kg x 1000kg
	assert.Zero(t, option.SLAPenalty)
	assert.InDelta(t, 74500.0, option.Margin, 1e-9)
	assert.InDelta(t, 6.0, option.TransitHours, 1e-9)
	assert.Equal(t, "AB1 BC1", option.Sequence())
	assert.InDelta(t, 1.5, option.DwellHoursOn("BC1"), 1e-9)
	assert.True(t, option.OnTime())
}

func TestScorer_LatenessIncursSLAPenalty(t *testing.T) {
	scorer := routing.NewScorer(planning.NewRuleIndex(nil), 0.25)
	flight := mustFlight(t, "FL1", "AAA", "BBB", at(8, 0), at(14, 0), 10)
	cargo := mustCargo(t, "CG1", "AAA", "BBB", planning.PriorityHigh, at(12, 0))

	option := scorer.Score(cargo, []*planning.Flight{flight})

	assert.InDelta(t, 2.0, option.LatenessHours, 1e-9)
	assert.InDelta(t, 1000.0, option.SLAPenalty, 1e-9) // 2h x 500/h
	assert.False(t, option.OnTime())
}

func TestScorer_DeniedCarriesGoodwillLoss(t *testing.T) {
	scorer := routing.NewScorer(planning.NewRuleIndex(nil), 0.25)
	cargo := mustCargo(t, "CG1", "AAA", "BBB", planning.PriorityLow, at(12, 0))

	option := scorer.Denied(cargo, "no feasible itinerary")

	assert.True(t, option.Denied())
	assert.Equal(t, "DENIED", option.Sequence())
	assert.InDelta(t, -25000.0, option.Margin, 1e-9)
	assert.Equal(t, "no feasible itinerary", option.Notes)
}

func TestEnumerator_TwoLegWithinConnectionWindow(t *testing.T) {
	rule, err := planning.NewConnectionRule("AAA", "CCC", "BBB", time.Hour, 3*time.Hour, 0)
	require.NoError(t, err)
	flights := planning.FlightMap{
		"AB1": mustFlight(t, "AB1", "AAA", "BBB", at(8, 0), at(10, 0), 10),
		"BC1": mustFlight(t, "BC1", "BBB", "CCC", at(11, 30), at(14, 0), 10),
	}
	enumerator := newEnumerator(t, flights, []*planning.ConnectionRule{rule})
	cargo := mustCargo(t, "CG1", "AAA", "CCC", planning.PriorityMedium, at(15, 0))

	options := enumerator.Enumerate(cargo)

	require.Len(t, options, 1)
	assert.Equal(t, "AB1 BC1", options[0].Sequence())
	assert.False(t, options[0].Relaxed)
}

func TestEnumerator_DwellExactlyAtMinimumIsFeasible(t *testing.T) {
	rule, err := planning.NewConnectionRule("AAA", "CCC", "BBB", 90*time.Minute, 3*time.Hour, 0)
	require.NoError(t, err)
	flights := planning.FlightMap{
		"AB1": mustFlight(t, "AB1", "AAA", "BBB", at(8, 0), at(10, 0), 10),
		"BC1": mustFlight(t, "BC1", "BBB", "CCC", at(11, 30), at(14, 0), 10),
	}
	enumerator := newEnumerator(t, flights, []*planning.ConnectionRule{rule})
	cargo := mustCargo(t, "CG1", "AAA", "CCC", planning.PriorityMedium, at(15, 0))

	options := enumerator.Enumerate(cargo)

	require.Len(t, options, 1)
	assert.Equal(t, "AB1 BC1", options[0].Sequence())
}

func TestEnumerator_DwellBelowMinimumIsPruned(t *testing.T) {
	rule, err := planning.NewConnectionRule("AAA", "CCC", "BBB", 2*time.Hour, 3*time.Hour, 0)
	require.NoError(t, err)
	flights := planning.FlightMap{
		"AB1": mustFlight(t, "AB1", "AAA", "BBB", at(8, 0), at(10, 0), 10),
		"BC1": mustFlight(t, "BC1", "BBB", "CCC", at(11, 30), at(14, 0), 10),
	}
	enumerator := newEnumerator(t, flights, []*planning.ConnectionRule{rule})
	cargo := mustCargo(t, "CG1", "AAA", "CCC", planning.PriorityLow, at(15, 0))

	options := enumerator.Enumerate(cargo)

	require.Len(t, options, 1)
	assert.True(t, options[0].Denied())
}

func TestEnumerator_GuaranteedCargoGetsRelaxedOptionWhenLate(t *testing.T) {
	// The only itinerary lands after due-by; guaranteed cargo still
	// gets it, marked relaxed, instead of DENIED.
	flights := planning.FlightMap{
		"FL1": mustFlight(t, "FL1", "AAA", "BBB", at(8, 0), at(16, 0), 10),
	}
	enumerator := newEnumerator(t, flights, nil)
	cargo := mustCargo(t, "CG1", "AAA", "BBB", planning.PriorityHigh, at(12, 0))

	options := enumerator.Enumerate(cargo)

	require.Len(t, options, 1)
	assert.True(t, options[0].Relaxed)
	assert.False(t, options[0].Denied())
	assert.Greater(t, options[0].SLAPenalty, 0.0)
}

func TestEnumerator_LowPriorityCargoIsDeniedWhenLate(t *testing.T) {
	flights := planning.FlightMap{
		"FL1": mustFlight(t, "FL1", "AAA", "BBB", at(8, 0), at(16, 0), 10),
	}
	enumerator := newEnumerator(t, flights, nil)
	cargo := mustCargo(t, "CG1", "AAA", "BBB", planning.PriorityLow, at(12, 0))

	options := enumerator.Enumerate(cargo)

	require.Len(t, options, 1)
	assert.True(t, options[0].Denied())
}

func TestEnumerator_DueByExactlyAtArrivalIsOnTime(t *testing.T) {
	flights := planning.FlightMap{
		"FL1": mustFlight(t, "FL1", "AAA", "BBB", at(8, 0), at(12, 0), 10),
	}
	enumerator := newEnumerator(t, flights, nil)
	cargo := mustCargo(t, "CG1", "AAA", "BBB", planning.PriorityMedium, at(12, 0))

	options := enumerator.Enumerate(cargo)

	require.Len(t, options, 1)
	assert.True(t, options[0].OnTime())
	assert.Zero(t, options[0].SLAPenalty)
}

func TestEnumerator_RespectsLegCap(t *testing.T) {
	// Five hops exist but the cap stops the chain at four legs.
	flights := planning.FlightMap{
		"L1": mustFlight(t, "L1", "AAA", "BBB", at(1, 0), at(2, 0), 1),
		"L2": mustFlight(t, "L2", "BBB", "CCC", at(3, 30), at(4, 0), 1),
		"L3": mustFlight(t, "L3", "CCC", "DDD", at(5, 30), at(6, 0), 1),
		"L4": mustFlight(t, "L4", "DDD", "EEE", at(7, 30), at(8, 0), 1),
		"L5": mustFlight(t, "L5", "EEE", "FFF", at(9, 30), at(10, 0), 1),
	}
	enumerator := newEnumerator(t, flights, nil)
	cargo := mustCargo(t, "CG1", "AAA", "FFF", planning.PriorityLow, at(23, 0))

	options := enumerator.Enumerate(cargo)

	require.Len(t, options, 1)
	assert.True(t, options[0].Denied())
}

func TestBuildCatalog_CanonicalOrderAndOnTimeIndexes(t *testing.T) {
	flights := planning.FlightMap{
		"FL1": mustFlight(t, "FL1", "AAA", "BBB", at(8, 0), at(10, 0), 10),
	}
	enumerator := newEnumerator(t, flights, nil)
	cargoMap := planning.CargoMap{
		"CG2": mustCargo(t, "CG2", "AAA", "BBB", planning.PriorityLow, at(12, 0)),
		"CG1": mustCargo(t, "CG1", "AAA", "BBB", planning.PriorityHigh, at(12, 0)),
	}

	catalog := routing.BuildCatalog(cargoMap, enumerator)

	assert.Equal(t, []string{"CG1", "CG2"}, catalog.CargoIDs())
	assert.Equal(t, 2, catalog.Len())
	assert.Equal(t, []int{0}, catalog.OnTimeIndexes(0))
	assert.NotNil(t, catalog.Options("CG2"))
	assert.Nil(t, catalog.Options("CGX"))
}
