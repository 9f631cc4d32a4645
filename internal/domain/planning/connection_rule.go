package planning

import (
	"fmt"
	"time"
)

// Default connection window applied when no rule matches a leg pair.
const (
	DefaultMinConnect = 60 * time.Minute
	DefaultMaxConnect = 720 * time.Minute
)

// ConnectionRule constrains the dwell window for itineraries of an
// (origin, destination) pair. ConnectionAirport narrows the rule to a
// specific transfer airport; empty means wildcard.
type ConnectionRule struct {
	Origin            string
	Destination       string
	ConnectionAirport string
	MinConnect        time.Duration
	MaxConnect        time.Duration
	HandlingFee       float64
}

// NewConnectionRule creates a connection rule with validation
func NewConnectionRule(
	origin, destination, connectionAirport string,
	minConnect, maxConnect time.Duration,
	handlingFee float64,
) (*ConnectionRule, error) {
	if origin == "" || destination == "" {
		return nil, NewDataValidationError("origin/destination", "connection rule must name both endpoints")
	}
	if minConnect < 0 {
		return nil, NewDataValidationError("min_connection_minutes", fmt.Sprintf("must be >= 0 for %s->%s", origin, destination))
	}
	if maxConnect <= 0 || maxConnect < minConnect {
		return nil, NewDataValidationError("max_connection_minutes", fmt.Sprintf("must be >= min for %s->%s", origin, destination))
	}
	if handlingFee < 0 {
		return nil, NewDataValidationError("handling_fee", fmt.Sprintf("must be >= 0 for %s->%s", origin, destination))
	}
	return &ConnectionRule{
		Origin:            origin,
		Destination:       destination,
		ConnectionAirport: connectionAirport,
		MinConnect:        minConnect,
		MaxConnect:        maxConnect,
		HandlingFee:       handlingFee,
	}, nil
}

// Wildcard reports whether the rule applies to any connection airport.
func (r *ConnectionRule) Wildcard() bool {
	return r.ConnectionAirport == ""
}

type ruleKey struct {
	origin      string
	destination string
	via         string
}

// RuleIndex resolves connection rules by (origin, destination,
// connection airport) with wildcard fallback. Read-only after build.
type RuleIndex struct {
	rules map[ruleKey]*ConnectionRule
}

// NewRuleIndex builds the lookup index. Later duplicates win, matching
// last-entry-wins semantics of the source file.
func NewRuleIndex(rules []*ConnectionRule) *RuleIndex {
	index := &RuleIndex{rules: make(map[ruleKey]*ConnectionRule, len(rules))}
	for _, rule := range rules {
		index.rules[ruleKey{rule.Origin, rule.Destination, rule.ConnectionAirport}] = rule
	}
	return index
}

// Lookup returns the rule for the triple, falling back to the wildcard
// entry, or nil when neither exists.
func (idx *RuleIndex) Lookup(origin, destination, via string) *ConnectionRule {
	if rule, ok := idx.rules[ruleKey{origin, destination, via}]; ok {
		return rule
	}
	if rule, ok := idx.rules[ruleKey{origin, destination, ""}]; ok {
		return rule
	}
	return nil
}

// Window returns the effective dwell window and handling fee for a
// connection, applying defaults when no rule matches.
func (idx *RuleIndex) Window(origin, destination, via string) (min, max time.Duration, fee float64) {
	if rule := idx.Lookup(origin, destination, via); rule != nil {
		return rule.MinConnect, rule.MaxConnect, rule.HandlingFee
	}
	return DefaultMinConnect, DefaultMaxConnect, 0
}
