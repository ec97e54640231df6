package heatload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heatpump_simulator/internal/model"
)

func TestRegimeFor(t *testing.T) {
	tests := []struct {
		year       int
		threshold  float64
		efficiency float64
	}{
		{1950, 15, 0.85},
		{1995, 15, 0.85},
		{1996, 15, 0.9},
		{2000, 15, 0.9},
		{2001, 12, 0.9},
		{2015, 12, 0.9},
		{2016, 10, 0.9},
		{2020, 10, 0.9},
	}

	for _, tt := range tests {
		r := RegimeFor(tt.year)
		assert.Equal(t, tt.threshold, r.ThresholdC, "year %d", tt.year)
		assert.Equal(t, tt.efficiency, r.HeatingEfficiency, "year %d", tt.year)
	}
}

func TestDegreeDaysFor(t *testing.T) {
	z := model.ClimateZone{DegreeDays15: 3850, DegreeDays12: 3160, DegreeDays10: 2620}

	gtz, err := DegreeDaysFor(z, 15)
	require.NoError(t, err)
	assert.Equal(t, 3850.0, gtz)

	gtz, err = DegreeDaysFor(z, 12)
	require.NoError(t, err)
	assert.Equal(t, 3160.0, gtz)

	gtz, err = DegreeDaysFor(z, 10)
	require.NoError(t, err)
	assert.Equal(t, 2620.0, gtz)

	_, err = DegreeDaysFor(z, 14)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestHotWaterEnergyKWh(t *testing.T) {
	q, err := HotWaterEnergyKWh(3, model.DHWMedium)
	require.NoError(t, err)
	assert.InDelta(t, 1788.0, q, 1e-6)

	q, err = HotWaterEnergyKWh(0, model.DHWLow)
	require.NoError(t, err)
	assert.Zero(t, q)

	_, err = HotWaterEnergyKWh(2, model.DHWClass("excellent"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = HotWaterEnergyKWh(-1, model.DHWLow)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestHeatingEnergyWh(t *testing.T) {
	b := model.BuildingProfile{AnnualEnergyKWh: 15000, ConstructionYear: 1990, Occupants: 3, DHW: model.DHWMedium}

	wh, regime, err := HeatingEnergyWh(b)
	require.NoError(t, err)
	assert.InDelta(t, (15000-1788.0)*0.85*1000, wh, 1e-3)
	assert.Equal(t, 15.0, regime.ThresholdC)
}

func TestHeatingEnergyWh_UnknownYear(t *testing.T) {
	for _, year := range []int{0, -1} {
		b := model.BuildingProfile{AnnualEnergyKWh: 15000, ConstructionYear: year, Occupants: 3, DHW: model.DHWMedium}
		_, _, err := HeatingEnergyWh(b)
		assert.ErrorIs(t, err, ErrInvalidInput, "year %d", year)
	}
}

func TestHeatingEnergyWh_HotWaterExceedsTotal(t *testing.T) {
	// 10 occupants at low efficiency need ~7450 kWh of hot water.
	b := model.BuildingProfile{AnnualEnergyKWh: 7000, ConstructionYear: 2010, Occupants: 10, DHW: model.DHWLow}
	_, _, err := HeatingEnergyWh(b)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Exactly equal is rejected too.
	b = model.BuildingProfile{AnnualEnergyKWh: 1788, ConstructionYear: 2010, Occupants: 3, DHW: model.DHWMedium}
	_, _, err = HeatingEnergyWh(b)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
