package bdd

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"

	"github.com/rajivmehta/cargoplan-go/internal/application/disruption"
	"github.com/rajivmehta/cargoplan-go/internal/application/pipeline"
	"github.com/rajivmehta/cargoplan-go/internal/domain/planning"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

var ist = time.FixedZone("IST", 5*3600+30*60)

// planContext accumulates scenario inputs and holds the run result.
type planContext struct {
	seed    int64
	flights planning.FlightMap
	cargo   planning.CargoMap
	rules   []*planning.ConnectionRule
	events  []disruption.Event
	result  *pipeline.PlanResult
}

func (c *planContext) reset(*godog.Scenario) {
	c.seed = 42
	c.flights = make(planning.FlightMap)
	c.cargo = make(planning.CargoMap)
	c.rules = nil
	c.events = nil
	c.result = nil
}

func (c *planContext) parseTime(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02T15:04:05", value, ist)
}

func (c *planContext) theOptimizerSeedIs(seed int64) error {
	c.seed = seed
	return nil
}

func (c *planContext) aFlight(id, origin, destination, departure, arrival string, weightKg, volumeM3 float64) error {
	dep, err := c.parseTime(departure)
	if err != nil {
		return err
	}
	arr, err := c.parseTime(arrival)
	if err != nil {
		return err
	}
	flight, err := planning.NewFlight(id, origin, destination, dep, arr, weightKg, volumeM3, 10)
	if err != nil {
		return err
	}
	c.flights[id] = flight
	return nil
}

func (c *planContext) aCargo(id, origin, destination string, weightKg float64, priority, dueBy string) error {
	due, err := c.parseTime(dueBy)
	if err != nil {
		return err
	}
	prio, err := planning.ParsePriority(priority)
	if err != nil {
		return err
	}
	ready := due.Add(-24 * time.Hour)
	cargo, err := planning.NewCargo(id, origin, destination, weightKg, 1, 100000,
		prio, false, 24, ready, due, 0, 100)
	if err != nil {
		return err
	}
	c.cargo[id] = cargo
	return nil
}

func (c *planContext) aConnectionRule(origin, destination, via string, minMinutes, maxMinutes int) error {
	rule, err := planning.NewConnectionRule(origin, destination, via,
		time.Duration(minMinutes)*time.Minute, time.Duration(maxMinutes)*time.Minute, 0)
	if err != nil {
		return err
	}
	c.rules = append(c.rules, rule)
	return nil
}

func (c *planContext) aCancellation(flightID string) error {
	c.events = append(c.events, disruption.Event{Kind: disruption.EventCancel, FlightID: flightID})
	return nil
}

func (c *planContext) aDelay(flightID string, minutes int) error {
	c.events = append(c.events, disruption.Event{
		Kind: disruption.EventDelay, FlightID: flightID, DelayMinutes: minutes,
	})
	return nil
}

func (c *planContext) thePlanIsOptimized() error {
	options := pipeline.DefaultOptions()
	options.Params.Seed = c.seed

	planner := pipeline.NewPlanner(options, nil, nil)
	result, err := planner.Run(context.Background(), pipeline.Inputs{
		Flights: c.flights,
		Cargo:   c.cargo,
		Rules:   planning.NewRuleIndex(c.rules),
		Events:  c.events,
	})
	if err != nil {
		return err
	}
	c.result = result
	return nil
}

func (c *planContext) assignment(cargoID string) (*pipeline.RouteRow, error) {
	for i := range c.result.Payload.Routes {
		if c.result.Payload.Routes[i].CargoID == cargoID {
			return &c.result.Payload.Routes[i], nil
		}
	}
	return nil, fmt.Errorf("cargo %s not present in plan", cargoID)
}

func (c *planContext) cargoEnds(cargoID, status string) error {
	row, err := c.assignment(cargoID)
	if err != nil {
		return err
	}
	if row.Status != status {
		return fmt.Errorf("cargo %s ended %s (reason %q), expected %s", cargoID, row.Status, row.Reason, status)
	}
	return nil
}

func (c *planContext) cargoHasPositiveMargin(cargoID string) error {
	row, err := c.assignment(cargoID)
	if err != nil {
		return err
	}
	if row.MarginINR <= 0 {
		return fmt.Errorf("cargo %s margin %.2f, expected > 0", cargoID, row.MarginINR)
	}
	return nil
}

func (c *planContext) cargoFlies(cargoID, sequence string) error {
	row, err := c.assignment(cargoID)
	if err != nil {
		return err
	}
	if row.Flights != sequence {
		return fmt.Errorf("cargo %s flew %q, expected %q", cargoID, row.Flights, sequence)
	}
	return nil
}

func (c *planContext) cargoHasNoSLAPenalty(cargoID string) error {
	row, err := c.assignment(cargoID)
	if err != nil {
		return err
	}
	if row.SLAPenalty != 0 {
		return fmt.Errorf("cargo %s has SLA penalty %.2f, expected 0", cargoID, row.SLAPenalty)
	}
	return nil
}

func (c *planContext) alertReferencesFlight(severity, kind, flightID string) error {
	for _, alert := range c.result.Payload.Alerts {
		if alert.Type == kind && alert.Severity == severity && alert.FlightID == flightID {
			return nil
		}
	}
	return fmt.Errorf("no %s %s alert for flight %s", severity, kind, flightID)
}

func (c *planContext) alertReferencesCargo(severity, kind, cargoID string) error {
	for _, alert := range c.result.Payload.Alerts {
		if alert.Type == kind && alert.Severity == severity && alert.CargoID == cargoID {
			return nil
		}
	}
	return fmt.Errorf("no %s %s alert for cargo %s", severity, kind, cargoID)
}

func (c *planContext) rolledReasonNamesFlight(cargoID, flightID string) error {
	row, err := c.assignment(cargoID)
	if err != nil {
		return err
	}
	if !strings.Contains(row.Reason, flightID) {
		return fmt.Errorf("cargo %s reason %q does not name flight %s", cargoID, row.Reason, flightID)
	}
	return nil
}

func (c *planContext) noAlertsOfKind(kind string) error {
	for _, alert := range c.result.Payload.Alerts {
		if alert.Type == kind {
			return fmt.Errorf("unexpected %s alert: %s", kind, alert.Message)
		}
	}
	return nil
}

func InitializeScenario(sc *godog.ScenarioContext) {
	planCtx := &planContext{}
	sc.Before(func(ctx context.Context, scenario *godog.Scenario) (context.Context, error) {
		planCtx.reset(scenario)
		return ctx, nil
	})

	sc.Step(`^the optimizer seed is (\d+)$`, planCtx.theOptimizerSeedIs)
	sc.Step(`^a flight "([^"]+)" from "([^"]+)" to "([^"]+)" departing "([^"]+)" arriving "([^"]+)" with capacity (\d+(?:\.\d+)?) kg and (\d+(?:\.\d+)?) m3$`, planCtx.aFlight)
	sc.Step(`^cargo "([^"]+)" from "([^"]+)" to "([^"]+)" weighing (\d+(?:\.\d+)?) kg with priority "([^"]+)" due by "([^"]+)"$`, planCtx.aCargo)
	sc.Step(`^a connection rule for "([^"]+)" to "([^"]+)" via "([^"]+)" with window (\d+) to (\d+) minutes$`, planCtx.aConnectionRule)
	sc.Step(`^a disruption cancelling flight "([^"]+)"$`, planCtx.aCancellation)
	sc.Step(`^a disruption delaying flight "([^"]+)" by (\d+) minutes$`, planCtx.aDelay)
	sc.Step(`^the plan is optimized$`, planCtx.thePlanIsOptimized)
	sc.Step(`^cargo "([^"]+)" ends "([^"]+)"$`, planCtx.cargoEnds)
	sc.Step(`^cargo "([^"]+)" has a positive margin$`, planCtx.cargoHasPositiveMargin)
	sc.Step(`^cargo "([^"]+)" flies "([^"]+)"$`, planCtx.cargoFlies)
	sc.Step(`^cargo "([^"]+)" has no SLA penalty$`, planCtx.cargoHasNoSLAPenalty)
	sc.Step(`^an? "([^"]+)" "([^"]+)" alert references flight "([^"]+)"$`, planCtx.alertReferencesFlight)
	sc.Step(`^an? "([^"]+)" "([^"]+)" alert references cargo "([^"]+)"$`, planCtx.alertReferencesCargo)
	sc.Step(`^the rolled reason for "([^"]+)" names flight "([^"]+)"$`, planCtx.rolledReasonNamesFlight)
	sc.Step(`^no "([^"]+)" alerts are raised$`, planCtx.noAlertsOfKind)
}
