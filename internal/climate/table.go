package climate

import (
	"errors"
	"fmt"
	"math"

	"heatpump_simulator/internal/model"
)

// ErrNotFound is returned when a location index is outside the table.
var ErrNotFound = errors.New("climate zone not found")

// Table is an immutable set of climate zones addressed by 1-based location index.
type Table struct {
	zones []model.ClimateZone // zones[index-1]
}

// NewTable validates zones and returns a table owning a copy of them.
// Zones must carry contiguous indices 1..N in order.
func NewTable(zones []model.ClimateZone) (*Table, error) {
	if len(zones) == 0 {
		return nil, errors.New("climate table is empty")
	}
	cp := make([]model.ClimateZone, len(zones))
	copy(cp, zones)

	for i, z := range cp {
		if z.Index != i+1 {
			return nil, fmt.Errorf("zone at row %d has index %d, want %d", i+1, z.Index, i+1)
		}
		if math.IsNaN(z.DesignTempC) || math.IsInf(z.DesignTempC, 0) || z.DesignTempC >= 20 {
			return nil, fmt.Errorf("zone %d: design temperature %v must be below 20 °C", z.Index, z.DesignTempC)
		}
		for _, gtz := range []float64{z.DegreeDays15, z.DegreeDays12, z.DegreeDays10} {
			if !(gtz > 0) {
				return nil, fmt.Errorf("zone %d: degree-zone factor %v must be positive", z.Index, gtz)
			}
		}
		if cp[i].Name == "" {
			cp[i].Name = model.RegionName(z.Index)
		}
	}

	return &Table{zones: cp}, nil
}

// Lookup returns the zone for a 1-based location index.
func (t *Table) Lookup(index int) (model.ClimateZone, error) {
	if index < 1 || index > len(t.zones) {
		return model.ClimateZone{}, fmt.Errorf("location %d: %w", index, ErrNotFound)
	}
	return t.zones[index-1], nil
}

// Len returns the number of zones.
func (t *Table) Len() int {
	return len(t.zones)
}

// Zones returns a copy of all zones in index order.
func (t *Table) Zones() []model.ClimateZone {
	cp := make([]model.ClimateZone, len(t.zones))
	copy(cp, t.zones)
	return cp
}

// Reference bundles the average-year and extreme-winter tables.
type Reference struct {
	Average       *Table
	ExtremeWinter *Table
}

// For returns the table for a reference year. A missing extreme-winter
// table falls back to the average one.
func (r Reference) For(year model.ReferenceYear) *Table {
	if year == model.ReferenceExtremeWinter && r.ExtremeWinter != nil {
		return r.ExtremeWinter
	}
	return r.Average
}
