package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heatpump_simulator/internal/model"
)

func makeSeries(location int, temps []float64, startTime time.Time, interval time.Duration) model.WeatherSeries {
	samples := make([]model.WeatherSample, len(temps))
	for i, v := range temps {
		samples[i] = model.WeatherSample{
			Time:     startTime.Add(time.Duration(i) * interval),
			TempC:    v,
			Temp24hC: v,
		}
	}
	return model.WeatherSeries{Location: location, Samples: samples}
}

var (
	location  = 4
	startTime = time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	hour      = time.Hour
)

func TestStore_AddAndQuery(t *testing.T) {
	s := New()
	s.AddSeries(makeSeries(location, []float64{1, 2, 3, 4, 5}, startTime, hour))

	assert.Equal(t, 5, s.SampleCount(location))
	assert.Equal(t, 0, s.SampleCount(99))
	assert.Equal(t, []int{4}, s.Locations())
}

func TestStore_SeriesIsCopy(t *testing.T) {
	s := New()
	s.AddSeries(makeSeries(location, []float64{1, 2}, startTime, hour))

	w, ok := s.Series(location)
	require.True(t, ok)
	assert.Equal(t, location, w.Location)
	w.Samples[0].TempC = 99

	again, _ := s.Series(location)
	assert.Equal(t, 1.0, again.Samples[0].TempC)

	_, ok = s.Series(99)
	assert.False(t, ok)
}

func TestStore_SortsOnAdd(t *testing.T) {
	s := New()
	w := makeSeries(location, []float64{1, 2, 3}, startTime, hour)
	w.Samples[0], w.Samples[2] = w.Samples[2], w.Samples[0]
	s.AddSeries(w)

	got, _ := s.Series(location)
	assert.Equal(t, startTime, got.Samples[0].Time)
	assert.Equal(t, 1.0, got.Samples[0].TempC)
}

func TestStore_ReplacesSeries(t *testing.T) {
	s := New()
	s.AddSeries(makeSeries(location, []float64{1, 2, 3}, startTime, hour))
	s.AddSeries(makeSeries(location, []float64{7}, startTime, hour))

	assert.Equal(t, 1, s.SampleCount(location))
}

func TestStore_TimeRange(t *testing.T) {
	s := New()
	s.AddSeries(makeSeries(location, []float64{1, 2, 3}, startTime, hour))

	tr, ok := s.TimeRange(location)
	require.True(t, ok)
	assert.Equal(t, startTime, tr.Start)
	assert.Equal(t, startTime.Add(2*hour), tr.End)

	_, ok = s.TimeRange(99)
	assert.False(t, ok)
}
