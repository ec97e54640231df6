package heatload

import (
	"fmt"
	"math"

	"heatpump_simulator/internal/model"
)

// Regime is the heating threshold and distribution efficiency implied by a
// building's construction era.
type Regime struct {
	ThresholdC        float64
	HeatingEfficiency float64
}

type eraBound struct {
	MaxYear int // inclusive
	Value   float64
}

// Distribution efficiency, average of DIN EN 12831 table 38.
var efficiencyByEra = []eraBound{
	{MaxYear: 1995, Value: 0.85},
	{MaxYear: math.MaxInt, Value: 0.9},
}

// Heating threshold temperature (°C) per construction era.
var thresholdByEra = []eraBound{
	{MaxYear: 2000, Value: 15},
	{MaxYear: 2015, Value: 12},
	{MaxYear: math.MaxInt, Value: 10},
}

func lookupEra(table []eraBound, year int) float64 {
	for _, b := range table {
		if year <= b.MaxYear {
			return b.Value
		}
	}
	return table[len(table)-1].Value
}

// RegimeFor returns the heating regime for a construction year.
func RegimeFor(constructionYear int) Regime {
	return Regime{
		ThresholdC:        lookupEra(thresholdByEra, constructionYear),
		HeatingEfficiency: lookupEra(efficiencyByEra, constructionYear),
	}
}

// DegreeDaysFor selects the zone's degree-zone factor for a heating threshold.
func DegreeDaysFor(z model.ClimateZone, thresholdC float64) (float64, error) {
	switch thresholdC {
	case 15:
		return z.DegreeDays15, nil
	case 12:
		return z.DegreeDays12, nil
	case 10:
		return z.DegreeDays10, nil
	default:
		return 0, fmt.Errorf("no degree-zone factor for threshold %v °C: %w", thresholdC, ErrInvalidInput)
	}
}
