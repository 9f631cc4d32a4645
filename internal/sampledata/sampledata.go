// Package sampledata bundles a small Indian domestic network used by
// the sample CLI command, the HTTP sample endpoint and the test suite.
package sampledata

import (
	"bytes"
	_ "embed"

	"github.com/rajivmehta/cargoplan-go/internal/adapters/csvdata"
	"github.com/rajivmehta/cargoplan-go/internal/application/disruption"
	"github.com/rajivmehta/cargoplan-go/internal/application/pipeline"
)

//go:embed data/flights.csv
var flightsCSV []byte

//go:embed data/cargo.csv
var cargoCSV []byte

//go:embed data/connections.csv
var connectionsCSV []byte

//go:embed data/disruptions.json
var disruptionsJSON []byte

// Load parses the bundled dataset into planning inputs, without the
// disruption events.
func Load() (pipeline.Inputs, error) {
	flights, err := csvdata.LoadFlights(bytes.NewReader(flightsCSV))
	if err != nil {
		return pipeline.Inputs{}, err
	}
	cargo, err := csvdata.LoadCargo(bytes.NewReader(cargoCSV))
	if err != nil {
		return pipeline.Inputs{}, err
	}
	rules, err := csvdata.LoadConnections(bytes.NewReader(connectionsCSV))
	if err != nil {
		return pipeline.Inputs{}, err
	}
	return pipeline.Inputs{Flights: flights, Cargo: cargo, Rules: rules}, nil
}

// Events parses the bundled disruption scenario.
func Events() ([]disruption.Event, error) {
	return csvdata.LoadEvents(bytes.NewReader(disruptionsJSON))
}
