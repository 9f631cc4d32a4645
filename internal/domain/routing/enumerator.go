package routing

import (
	"sort"

	"github.com/rajivmehta/cargoplan-go/internal/domain/planning"
)

// DefaultMaxLegs caps itinerary length; longer paths add cost and dwell
// without improving coverage on realistic networks.
const DefaultMaxLegs = 4

// Enumerator walks the temporal flight graph and produces the feasible
// itineraries for each cargo. It never fails: a cargo with no feasible
// path gets the single DENIED option.
type Enumerator struct {
	flightsByOrigin map[string][]*planning.Flight
	rules           *planning.RuleIndex
	scorer          *Scorer
	maxLegs         int
}

// NewEnumerator creates an enumerator over the given flight set.
func NewEnumerator(flights planning.FlightMap, rules *planning.RuleIndex, scorer *Scorer, maxLegs int) *Enumerator {
	if maxLegs <= 0 {
		maxLegs = DefaultMaxLegs
	}
	return &Enumerator{
		flightsByOrigin: flights.ByOrigin(),
		rules:           rules,
		scorer:          scorer,
		maxLegs:         maxLegs,
	}
}

// Enumerate returns the ordered route options for one cargo. On-time
// itineraries come first, cheapest first. Guaranteed-priority cargo
// with no on-time itinerary gets a single relaxed option (shortest
// elapsed time, SLA penalty applies). The list is never empty: DENIED
// is the fallback of last resort.
func (e *Enumerator) Enumerate(cargo *planning.Cargo) []*RouteOption {
	paths := e.search(cargo, true)
	if len(paths) > 0 {
		options := make([]*RouteOption, 0, len(paths))
		for _, path := range paths {
			options = append(options, e.scorer.Score(cargo, path))
		}
		sortOptions(options)
		return options
	}

	if cargo.Priority.Guaranteed() {
		if relaxed := e.relaxedOption(cargo); relaxed != nil {
			return []*RouteOption{relaxed}
		}
	}

	return []*RouteOption{e.scorer.Denied(cargo, "no feasible itinerary")}
}

// relaxedOption retries enumeration ignoring the due-by cutoff and
// keeps the shortest-elapsed itinerary. Late arrival incurs the SLA
// penalty but keeps guaranteed cargo eligible.
func (e *Enumerator) relaxedOption(cargo *planning.Cargo) *RouteOption {
	paths := e.search(cargo, false)
	if len(paths) == 0 {
		return nil
	}
	options := make([]*RouteOption, 0, len(paths))
	for _, path := range paths {
		options = append(options, e.scorer.Score(cargo, path))
	}
	sort.Slice(options, func(i, j int) bool {
		if options[i].TransitHours != options[j].TransitHours {
			return options[i].TransitHours < options[j].TransitHours
		}
		ci := options[i].OperatingCost + options[i].HandlingCost
		cj := options[j].OperatingCost + options[j].HandlingCost
		if ci != cj {
			return ci < cj
		}
		return options[i].Sequence() < options[j].Sequence()
	})
	best := options[0]
	best.Relaxed = true
	best.Notes = "relaxed due-by constraint"
	return best
}

// search runs the depth-first enumeration. honorDueBy additionally
// prunes any partial path that already arrives after the cargo due
// time, which can never recover.
func (e *Enumerator) search(cargo *planning.Cargo, honorDueBy bool) [][]*planning.Flight {
	var found [][]*planning.Flight
	var path []*planning.Flight
	used := make(map[string]bool)

	var dfs func(at string)
	dfs = func(at string) {
		for _, flight := range e.flightsByOrigin[at] {
			if used[flight.ID] {
				continue
			}
			if len(path) == 0 {
				if flight.Departure.Before(cargo.ReadyTime) {
					continue
				}
			} else {
				prev := path[len(path)-1]
				dwell := flight.Departure.Sub(prev.Arrival)
				min, max, _ := e.rules.Window(cargo.Origin, cargo.Destination, prev.Destination)
				if dwell < min || dwell > max {
					continue
				}
			}

			firstDeparture := flight.Departure
			if len(path) > 0 {
				firstDeparture = path[0].Departure
			}
			if flight.Arrival.Sub(firstDeparture).Hours() > cargo.MaxTransitHours {
				continue
			}
			if honorDueBy && flight.Arrival.After(cargo.DueBy) {
				continue
			}

			path = append(path, flight)
			used[flight.ID] = true

			if flight.Destination == cargo.Destination {
				itinerary := make([]*planning.Flight, len(path))
				copy(itinerary, path)
				found = append(found, itinerary)
			} else if len(path) < e.maxLegs {
				dfs(flight.Destination)
			}

			used[flight.ID] = false
			path = path[:len(path)-1]
		}
	}

	dfs(cargo.Origin)
	return found
}

// sortOptions orders route options the way the optimizer expects:
// on-time itineraries first, then ascending operating+handling cost,
// flight sequence as the final deterministic tie-break.
func sortOptions(options []*RouteOption) {
	sort.Slice(options, func(i, j int) bool {
		if options[i].OnTime() != options[j].OnTime() {
			return options[i].OnTime()
		}
		ci := options[i].OperatingCost + options[i].HandlingCost
		cj := options[j].OperatingCost + options[j].HandlingCost
		if ci != cj {
			return ci < cj
		}
		return options[i].Sequence() < options[j].Sequence()
	})
}
