package simulator

import (
	"fmt"
	"math"

	"heatpump_simulator/internal/climate"
	"heatpump_simulator/internal/heatload"
	"heatpump_simulator/internal/model"
)

// Simulator turns a reference weather year into a heating power demand profile.
// It holds only immutable reference data and is safe for concurrent use.
type Simulator struct {
	climate *climate.Table
}

// New creates a simulator backed by the (average-year) climate table.
func New(table *climate.Table) *Simulator {
	return &Simulator{climate: table}
}

// Simulate returns one demand value (W) per weather sample. A sample demands
// heat only while its 24 h mean is strictly below the building's heating
// threshold; demand then grows linearly with the gap to the indoor reference.
func (s *Simulator) Simulate(location int, b model.BuildingProfile, w model.WeatherSeries) (model.DemandSeries, error) {
	zone, err := s.climate.Lookup(location)
	if err != nil {
		return model.DemandSeries{}, err
	}
	if w.Location != 0 && w.Location != location {
		return model.DemandSeries{}, fmt.Errorf("weather series is for location %d, not %d: %w",
			w.Location, location, heatload.ErrInvalidInput)
	}

	heatWh, regime, err := heatload.HeatingEnergyWh(b)
	if err != nil {
		return model.DemandSeries{}, err
	}
	gtz, err := heatload.DegreeDaysFor(zone, regime.ThresholdC)
	if err != nil {
		return model.DemandSeries{}, err
	}

	samples := w.Samples
	if needsRolling(samples) {
		samples = FillRolling24h(samples)
	}

	// Power per kelvin below the indoor reference, constant for the whole year.
	perKelvinW := heatWh / (gtz * 24)

	power := make([]float64, len(samples))
	for i, sample := range samples {
		if sample.Temp24hC < regime.ThresholdC {
			power[i] = (heatload.IndoorTempC - sample.Temp24hC) * perKelvinW
		}
	}

	return model.DemandSeries{
		Location:   location,
		ThresholdC: regime.ThresholdC,
		PowerW:     power,
	}, nil
}

func needsRolling(samples []model.WeatherSample) bool {
	for _, s := range samples {
		if math.IsNaN(s.Temp24hC) {
			return true
		}
	}
	return false
}
