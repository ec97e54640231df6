package model

import "time"

// WeatherSample is one ambient-temperature sample of a reference year.
type WeatherSample struct {
	Time     time.Time
	TempC    float64
	Temp24hC float64 // trailing 24 h mean, NaN when not yet computed
}

// WeatherSeries is a full reference year for one location, ordered by time.
type WeatherSeries struct {
	Location int
	Samples  []WeatherSample
}

// DemandSeries holds one heating power value per weather sample.
type DemandSeries struct {
	Location   int
	ThresholdC float64
	PowerW     []float64
}

type TimeRange struct {
	Start time.Time
	End   time.Time
}
