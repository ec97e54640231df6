package heatload

import (
	"fmt"

	"heatpump_simulator/internal/model"
)

// Estimator turns a building profile and its climate zone into a design heat load.
type Estimator interface {
	Estimate(b model.BuildingProfile, z model.ClimateZone) (model.HeatLoadResult, error)
	Variant() model.Variant
}

const (
	// Share of gas-equivalent energy that ends up as useful heat.
	combustionEfficiency = 0.86
	// Extra capacity reserved per occupant for hot-water production.
	hotWaterMarginW = 200.0
)

// Simple is the energy-proportional estimate: the annual energy is spread over
// the zone's degree days and scaled to the design temperature difference.
type Simple struct {
	HotWaterPowerW float64 // fixed hot-water load added to the result
	ThresholdC     float64 // 12 or 15
}

// DefaultSimple mirrors the usual parameters: 1 kW hot water, 15 °C threshold.
var DefaultSimple = Simple{HotWaterPowerW: 1000, ThresholdC: 15}

func (s Simple) Variant() model.Variant { return model.VariantSimple }

func (s Simple) Estimate(b model.BuildingProfile, z model.ClimateZone) (model.HeatLoadResult, error) {
	if err := validateEnergy(b.AnnualEnergyKWh); err != nil {
		return model.HeatLoadResult{}, err
	}
	if s.ThresholdC != 12 && s.ThresholdC != 15 {
		return model.HeatLoadResult{}, fmt.Errorf("simple estimate supports 12 or 15 °C thresholds, got %v: %w",
			s.ThresholdC, ErrInvalidInput)
	}
	gtz, err := DegreeDaysFor(z, s.ThresholdC)
	if err != nil {
		return model.HeatLoadResult{}, err
	}

	load := (IndoorTempC - z.DesignTempC) * b.AnnualEnergyKWh * combustionEfficiency * 1000 / (24 * gtz)
	return model.HeatLoadResult{
		RequiredW:  load + s.HotWaterPowerW,
		HeatLoadW:  load,
		ThresholdC: s.ThresholdC,
		Variant:    model.VariantSimple,
	}, nil
}

// Refined accounts for construction era (threshold, distribution efficiency)
// and subtracts the occupants' hot-water energy before normalizing.
type Refined struct{}

func (Refined) Variant() model.Variant { return model.VariantRefined }

func (Refined) Estimate(b model.BuildingProfile, z model.ClimateZone) (model.HeatLoadResult, error) {
	heatWh, regime, err := HeatingEnergyWh(b)
	if err != nil {
		return model.HeatLoadResult{}, err
	}
	gtz, err := DegreeDaysFor(z, regime.ThresholdC)
	if err != nil {
		return model.HeatLoadResult{}, err
	}

	if regime.ThresholdC <= z.DesignTempC {
		return model.HeatLoadResult{}, fmt.Errorf("design temperature %v °C is not below threshold %v °C: %w",
			z.DesignTempC, regime.ThresholdC, ErrInvalidInput)
	}

	// Degree-zone normalization: full-load hours per kelvin of design difference.
	norm := gtz * 24 / (regime.ThresholdC - z.DesignTempC)
	load := heatWh / norm
	return model.HeatLoadResult{
		RequiredW:  load + hotWaterMarginW*float64(b.Occupants),
		HeatLoadW:  load,
		ThresholdC: regime.ThresholdC,
		Variant:    model.VariantRefined,
	}, nil
}

// ForProfile picks the refined strategy whenever the profile carries a
// construction year and falls back to simple otherwise. Zero occupants is a
// valid refined input without a hot-water share.
func ForProfile(b model.BuildingProfile, simple Simple) Estimator {
	if b.ConstructionYear > 0 {
		return Refined{}
	}
	return simple
}
