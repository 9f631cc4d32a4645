package routing

import "github.com/rajivmehta/cargoplan-go/internal/domain/planning"

// Catalog is the per-run slab of route options, one ordered option list
// per cargo in canonical (ascending cargo id) order. Optimizer
// individuals reference options by (cargo index, option index), so the
// catalog must not be mutated once built.
type Catalog struct {
	cargoIDs []string
	index    map[string]int
	options  [][]*RouteOption
}

// NewCatalog assembles a catalog from pre-enumerated options. cargoIDs
// must be sorted ascending and options aligned with it.
func NewCatalog(cargoIDs []string, options [][]*RouteOption) *Catalog {
	index := make(map[string]int, len(cargoIDs))
	for i, id := range cargoIDs {
		index[id] = i
	}
	return &Catalog{cargoIDs: cargoIDs, index: index, options: options}
}

// CargoIDs returns the canonical cargo ordering.
func (c *Catalog) CargoIDs() []string {
	return c.cargoIDs
}

// Len returns the number of cargo entries (the gene count).
func (c *Catalog) Len() int {
	return len(c.cargoIDs)
}

// OptionsAt returns the route options for the cargo at gene position i.
func (c *Catalog) OptionsAt(i int) []*RouteOption {
	return c.options[i]
}

// Options returns the route options for a cargo id, or nil when the
// cargo is not in the catalog.
func (c *Catalog) Options(cargoID string) []*RouteOption {
	i, ok := c.index[cargoID]
	if !ok {
		return nil
	}
	return c.options[i]
}

// BuildCatalog enumerates route options for every cargo in the pool,
// in canonical id order.
func BuildCatalog(cargoMap planning.CargoMap, enumerator *Enumerator) *Catalog {
	cargoIDs := cargoMap.SortedIDs()
	options := make([][]*RouteOption, len(cargoIDs))
	for i, id := range cargoIDs {
		options[i] = enumerator.Enumerate(cargoMap[id])
	}
	return NewCatalog(cargoIDs, options)
}

// OnTimeIndexes returns the gene values at position i whose options
// arrive on time. Used by the optimizer's biased initialization.
func (c *Catalog) OnTimeIndexes(i int) []int {
	var indexes []int
	for j, option := range c.options[i] {
		if option.OnTime() {
			indexes = append(indexes, j)
		}
	}
	return indexes
}
