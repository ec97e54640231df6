package heatload

import (
	"errors"
	"fmt"
	"math"

	"heatpump_simulator/internal/model"
)

// ErrInvalidInput is returned for physically inconsistent building profiles.
var ErrInvalidInput = errors.New("invalid building profile")

const (
	// IndoorTempC is the indoor reference temperature of the linear load model.
	IndoorTempC = 20.0

	hotWaterKWhPerOccupant = 14.9 * 30
)

// HotWaterEnergyKWh returns the annual hot-water energy share for a household.
func HotWaterEnergyKWh(occupants int, class model.DHWClass) (float64, error) {
	if occupants < 0 {
		return 0, fmt.Errorf("negative occupant count %d: %w", occupants, ErrInvalidInput)
	}
	factor, ok := model.DHWFactor[class]
	if !ok {
		return 0, fmt.Errorf("unknown hot-water class %q: %w", class, ErrInvalidInput)
	}
	return hotWaterKWhPerOccupant * float64(occupants) / factor, nil
}

// HeatingEnergyWh returns the annual space-heating energy (Wh) delivered by the
// heating system, i.e. (E - Q_tww) scaled by the era's distribution efficiency,
// together with the regime it was computed for.
func HeatingEnergyWh(b model.BuildingProfile) (float64, Regime, error) {
	if err := validateEnergy(b.AnnualEnergyKWh); err != nil {
		return 0, Regime{}, err
	}
	if b.ConstructionYear <= 0 {
		return 0, Regime{}, fmt.Errorf("construction year is required for the era regime: %w", ErrInvalidInput)
	}
	qTww, err := HotWaterEnergyKWh(b.Occupants, b.DHW)
	if err != nil {
		return 0, Regime{}, err
	}
	if b.AnnualEnergyKWh <= qTww {
		return 0, Regime{}, fmt.Errorf("hot-water share %.1f kWh meets or exceeds annual energy %.1f kWh: %w",
			qTww, b.AnnualEnergyKWh, ErrInvalidInput)
	}

	regime := RegimeFor(b.ConstructionYear)
	return (b.AnnualEnergyKWh - qTww) * regime.HeatingEfficiency * 1000, regime, nil
}

func validateEnergy(kwh float64) error {
	if math.IsNaN(kwh) || math.IsInf(kwh, 0) || kwh <= 0 {
		return fmt.Errorf("annual energy %v kWh must be positive: %w", kwh, ErrInvalidInput)
	}
	return nil
}
