package disruption

import (
	"fmt"
	"time"

	"github.com/rajivmehta/cargoplan-go/internal/domain/planning"
)

// EventKind identifies a flight-set mutation.
type EventKind string

const (
	EventDelay  EventKind = "delay"
	EventCancel EventKind = "cancel"
	EventSwap   EventKind = "swap"
)

// Event is one what-if mutation to the flight set.
type Event struct {
	Kind                EventKind `json:"event_type" validate:"required,oneof=delay cancel swap"`
	FlightID            string    `json:"flight_id" validate:"required"`
	DelayMinutes        int       `json:"delay_minutes,omitempty"`
	NewWeightCapacityKg *float64  `json:"new_weight_capacity_kg,omitempty"`
	NewVolumeCapacityM3 *float64  `json:"new_volume_capacity_m3,omitempty"`
}

// Validate checks the event against its kind's requirements.
func (e Event) Validate() error {
	if e.FlightID == "" {
		return planning.NewDataValidationError("flight_id", "disruption event must reference a flight")
	}
	switch e.Kind {
	case EventDelay:
		if e.DelayMinutes <= 0 {
			return planning.NewDataValidationError("delay_minutes", fmt.Sprintf("delay event for flight %s must be positive", e.FlightID))
		}
	case EventCancel:
	case EventSwap:
		if e.NewWeightCapacityKg == nil && e.NewVolumeCapacityM3 == nil {
			return planning.NewDataValidationError("new_weight_capacity_kg", fmt.Sprintf("swap event for flight %s must replace at least one capacity", e.FlightID))
		}
	default:
		return planning.NewDataValidationError("event_type", fmt.Sprintf("unknown event type %q", e.Kind))
	}
	return nil
}

// Delay returns the delay duration for a delay event.
func (e Event) Delay() time.Duration {
	return time.Duration(e.DelayMinutes) * time.Minute
}

// Describe renders a short operator-facing summary of the event.
func (e Event) Describe() string {
	switch e.Kind {
	case EventDelay:
		return fmt.Sprintf("flight %s delayed by %d minutes", e.FlightID, e.DelayMinutes)
	case EventCancel:
		return fmt.Sprintf("flight %s cancelled", e.FlightID)
	case EventSwap:
		weight := "kept"
		if e.NewWeightCapacityKg != nil {
			weight = fmt.Sprintf("%.0fkg", *e.NewWeightCapacityKg)
		}
		volume := "kept"
		if e.NewVolumeCapacityM3 != nil {
			volume = fmt.Sprintf("%.1fm3", *e.NewVolumeCapacityM3)
		}
		return fmt.Sprintf("flight %s capacity swapped to weight=%s volume=%s", e.FlightID, weight, volume)
	default:
		return fmt.Sprintf("flight %s: unknown event %q", e.FlightID, e.Kind)
	}
}
