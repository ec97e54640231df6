package simulator

import (
	"math"
	"time"

	"heatpump_simulator/internal/model"
)

const rollingWindow = 24 * time.Hour

// FillRolling24h returns a copy of samples in which every missing (NaN)
// Temp24hC holds the mean TempC over the trailing 24 h window (t-24h, t].
// Samples must be sorted by time; present values are kept as they are.
func FillRolling24h(samples []model.WeatherSample) []model.WeatherSample {
	out := make([]model.WeatherSample, len(samples))
	copy(out, samples)

	var sum float64
	start := 0
	for i := range out {
		sum += out[i].TempC
		for out[start].Time.Add(rollingWindow).Compare(out[i].Time) <= 0 {
			sum -= out[start].TempC
			start++
		}
		if math.IsNaN(out[i].Temp24hC) {
			out[i].Temp24hC = sum / float64(i-start+1)
		}
	}
	return out
}
