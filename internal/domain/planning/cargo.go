package planning

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Priority classifies cargo by contractual importance. High and medium
// priority cargo carry a delivery guarantee, low priority competes on
// value alone.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority parses a case-insensitive priority value.
func ParsePriority(value string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	default:
		return "", NewDataValidationError("priority", fmt.Sprintf("unknown priority %q", value))
	}
}

// Weight returns the scalar priority weight used in selection scoring.
func (p Priority) Weight() float64 {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}

// Guaranteed reports whether the cargo falls under the priority
// delivery guarantee.
func (p Priority) Guaranteed() bool {
	return p == PriorityHigh || p == PriorityMedium
}

const revenueDensityEpsilon = 1e-9

// Cargo represents one shipment to be planned.
type Cargo struct {
	ID                string
	Origin            string
	Destination       string
	WeightKg          float64
	VolumeM3          float64
	RevenueINR        float64
	Priority          Priority
	Perishable        bool
	MaxTransitHours   float64
	ReadyTime         time.Time
	DueBy             time.Time
	HandlingCostPerKg float64
	SLAPenaltyPerHour float64
}

// NewCargo creates a cargo shipment with validation
func NewCargo(
	id, origin, destination string,
	weightKg, volumeM3, revenueINR float64,
	priority Priority,
	perishable bool,
	maxTransitHours float64,
	readyTime, dueBy time.Time,
	handlingCostPerKg, slaPenaltyPerHour float64,
) (*Cargo, error) {
	if id == "" {
		return nil, NewDataValidationError("cargo_id", "cannot be empty")
	}
	if origin == "" || destination == "" {
		return nil, NewDataValidationError("origin/destination", fmt.Sprintf("cargo %s must have both airports", id))
	}
	if origin == destination {
		return nil, NewDataValidationError("destination", fmt.Sprintf("cargo %s origin equals destination", id))
	}
	if weightKg <= 0 {
		return nil, NewDataValidationError("weight_kg", fmt.Sprintf("cargo %s weight must be positive", id))
	}
	if volumeM3 <= 0 {
		return nil, NewDataValidationError("volume_m3", fmt.Sprintf("cargo %s volume must be positive", id))
	}
	if maxTransitHours <= 0 {
		return nil, NewDataValidationError("max_transit_hours", fmt.Sprintf("cargo %s transit cap must be positive", id))
	}
	if !dueBy.After(readyTime) {
		return nil, NewDataValidationError("due_by", fmt.Sprintf("cargo %s due_by must be after ready_time", id))
	}
	return &Cargo{
		ID:                id,
		Origin:            origin,
		Destination:       destination,
		WeightKg:          weightKg,
		VolumeM3:          volumeM3,
		RevenueINR:        revenueINR,
		Priority:          priority,
		Perishable:        perishable,
		MaxTransitHours:   maxTransitHours,
		ReadyTime:         readyTime,
		DueBy:             dueBy,
		HandlingCostPerKg: handlingCostPerKg,
		SLAPenaltyPerHour: slaPenaltyPerHour,
	}, nil
}

// RevenueDensity is revenue per kg, guarded against zero weight.
func (c *Cargo) RevenueDensity() float64 {
	weight := c.WeightKg
	if weight < revenueDensityEpsilon {
		weight = revenueDensityEpsilon
	}
	return c.RevenueINR / weight
}

func (c *Cargo) String() string {
	return fmt.Sprintf("%s %s→%s %.0fkg %s", c.ID, c.Origin, c.Destination, c.WeightKg, c.Priority)
}

// CargoMap holds the loaded cargo pool keyed by cargo id.
type CargoMap map[string]*Cargo

// SortedIDs returns cargo identifiers in ascending order. This is the
// canonical cargo ordering used by the optimizer encoding.
func (m CargoMap) SortedIDs() []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
