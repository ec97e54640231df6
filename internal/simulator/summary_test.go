package simulator

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heatpump_simulator/internal/model"
)

func errorIsAny(err error, targets ...error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

func TestSummarize(t *testing.T) {
	w := makeWeather(4, []float64{0, 0, 0, 0})
	d := model.DemandSeries{PowerW: []float64{1000, 2000, 0, 3000}}

	s := Summarize(w, d)
	assert.InDelta(t, 6.0, s.HeatKWh, 1e-9)
	assert.Equal(t, 3000.0, s.PeakW)
	assert.InDelta(t, 3.0, s.HeatingHours, 1e-9)
	assert.InDelta(t, 2.0, s.FullLoadHours, 1e-9)
	assert.InDelta(t, 6.0, s.MonthlyKWh[0], 1e-9)
}

func TestSummarize_MonthlySplit(t *testing.T) {
	w := model.WeatherSeries{Samples: []model.WeatherSample{
		{Time: time.Date(2015, 1, 31, 23, 0, 0, 0, time.UTC)},
		{Time: time.Date(2015, 2, 1, 0, 0, 0, 0, time.UTC)},
	}}
	d := model.DemandSeries{PowerW: []float64{500, 1500}}

	s := Summarize(w, d)
	assert.InDelta(t, 0.5, s.MonthlyKWh[0], 1e-9)
	assert.InDelta(t, 1.5, s.MonthlyKWh[1], 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(model.WeatherSeries{}, model.DemandSeries{})
	assert.Zero(t, s.HeatKWh)
	assert.Zero(t, s.FullLoadHours)
}

func TestHourlyMeans(t *testing.T) {
	// 15-minute samples over two hours.
	var samples []model.WeatherSample
	var power []float64
	for i := 0; i < 8; i++ {
		samples = append(samples, model.WeatherSample{Time: startTime.Add(time.Duration(i) * 15 * time.Minute)})
		power = append(power, float64(i))
	}

	points := HourlyMeans(model.WeatherSeries{Samples: samples}, model.DemandSeries{PowerW: power})
	require.Len(t, points, 2)
	assert.Equal(t, startTime, points[0].Time)
	assert.InDelta(t, 1.5, points[0].PowerW, 1e-9)
	assert.Equal(t, startTime.Add(time.Hour), points[1].Time)
	assert.InDelta(t, 5.5, points[1].PowerW, 1e-9)
}
