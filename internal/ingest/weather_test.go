package ingest

import (
	"math"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeatherParser_Parse(t *testing.T) {
	input := `time,temperature [degC],temperature 24h [degC]
2015-01-01T00:00:00Z,-2.5,-1.0
2015-01-01T00:01:00Z,-2.6,-1.1`

	series, err := NewWeatherParser(4).Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 4, series.Location)
	require.Len(t, series.Samples, 2)
	assert.Equal(t, time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), series.Samples[0].Time)
	assert.InDelta(t, -2.5, series.Samples[0].TempC, 1e-9)
	assert.InDelta(t, -1.0, series.Samples[0].Temp24hC, 1e-9)
	assert.Equal(t, time.Minute, series.Samples[1].Time.Sub(series.Samples[0].Time))
}

func TestWeatherParser_WithoutRollingColumn(t *testing.T) {
	input := `time,temperature [degC]
1420070400,-3
1420074000,-4`

	series, err := NewWeatherParser(7).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, series.Samples, 2)
	assert.True(t, math.IsNaN(series.Samples[0].Temp24hC))
	assert.Equal(t, 2015, series.Samples[0].Time.Year())
}

func TestWeatherParser_RejectsUnorderedTime(t *testing.T) {
	input := `time,temperature [degC]
2015-01-01T01:00:00Z,-3
2015-01-01T00:00:00Z,-4`

	_, err := NewWeatherParser(1).Parse(strings.NewReader(input))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestWeatherParser_InvalidHeader(t *testing.T) {
	input := `timestamp,temperature [degC]
2015-01-01T01:00:00Z,-3`

	_, err := NewWeatherParser(1).Parse(strings.NewReader(input))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "time")
}

func TestWeatherParser_SampleFile(t *testing.T) {
	f, err := os.Open("../../testdata/weather/weather_4_a_2015_1h.csv")
	require.NoError(t, err)
	defer f.Close()

	series, err := NewWeatherParser(4).Parse(f)
	require.NoError(t, err)
	require.Len(t, series.Samples, 72)
	for _, s := range series.Samples {
		assert.False(t, math.IsNaN(s.Temp24hC))
	}
}

func TestLocationFromFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		location int
		ok       bool
	}{
		{"full original name", "weather_4_a_2015_1min.csv", 4, true},
		{"short name", "weather_12.csv", 12, true},
		{"zero index", "weather_0_a.csv", 0, false},
		{"no index", "weather_a.csv", 0, false},
		{"other file", "catalog.csv", 0, false},
		{"wrong extension", "weather_4_a.txt", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, ok := LocationFromFilename(tt.filename)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.location, loc)
		})
	}
}
