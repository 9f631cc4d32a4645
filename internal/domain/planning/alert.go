package planning

// AlertKind identifies what an alert reports. Kinds are a closed set so
// downstream consumers can switch on them instead of parsing messages.
type AlertKind string

const (
	AlertStatusChange        AlertKind = "status_change"
	AlertReroute             AlertKind = "reroute"
	AlertMarginChange        AlertKind = "margin_change"
	AlertCargoMissing        AlertKind = "cargo_missing"
	AlertBaselineException   AlertKind = "baseline_exception"
	AlertDisruptionApplied   AlertKind = "disruption_applied"
	AlertCapacityBreach      AlertKind = "capacity_breach"
	AlertPriorityViolation   AlertKind = "priority_guarantee_violation"
	AlertPartialOptimization AlertKind = "partial_optimization"
)

// AlertSeverity grades alerts for triage.
type AlertSeverity string

const (
	SeverityInfo     AlertSeverity = "info"
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// AssignmentStatus is the final per-cargo outcome of a plan.
type AssignmentStatus string

const (
	// StatusDelivered means the cargo completed every leg of its route.
	StatusDelivered AssignmentStatus = "delivered"
	// StatusRolled means a feasible route existed but the cargo lost a
	// capacity contention on one of its flights.
	StatusRolled AssignmentStatus = "rolled"
	// StatusDenied means no feasible itinerary existed.
	StatusDenied AssignmentStatus = "denied"
)

// Alert is an operational finding attached to a plan: a capacity
// breach, a guarantee violation, or a disruption diff entry.
type Alert struct {
	Kind        AlertKind
	Severity    AlertSeverity
	Message     string
	CargoID     string
	FlightID    string
	Status      AssignmentStatus
	MarginDelta *float64
}

// NewAlert creates an alert with the common fields.
func NewAlert(kind AlertKind, severity AlertSeverity, message string) Alert {
	return Alert{Kind: kind, Severity: severity, Message: message}
}

// WithCargo attaches a cargo reference.
func (a Alert) WithCargo(cargoID string) Alert {
	a.CargoID = cargoID
	return a
}

// WithFlight attaches a flight reference.
func (a Alert) WithFlight(flightID string) Alert {
	a.FlightID = flightID
	return a
}

// WithStatus attaches the cargo status the alert refers to.
func (a Alert) WithStatus(status AssignmentStatus) Alert {
	a.Status = status
	return a
}

// WithMarginDelta attaches a margin movement.
func (a Alert) WithMarginDelta(delta float64) Alert {
	a.MarginDelta = &delta
	return a
}

// CountBySeverity tallies alerts per severity level.
func CountBySeverity(alerts []Alert) map[AlertSeverity]int {
	counts := make(map[AlertSeverity]int, 3)
	for _, alert := range alerts {
		counts[alert.Severity]++
	}
	return counts
}
