package simulator

import (
	"time"

	"heatpump_simulator/internal/model"
)

// Summary holds annual totals of a demand series.
type Summary struct {
	HeatKWh       float64     `json:"heat_kwh"`
	PeakW         float64     `json:"peak_w"`
	HeatingHours  float64     `json:"heating_hours"`
	FullLoadHours float64     `json:"full_load_hours"`
	MonthlyKWh    [12]float64 `json:"monthly_kwh"`
}

// HourlyPoint is the mean demand over one clock hour.
type HourlyPoint struct {
	Time   time.Time `json:"time"`
	PowerW float64   `json:"power_w"`
}

// sampleDurations returns how long each sample's value holds: the gap to the
// next sample, with the last sample reusing the previous gap.
func sampleDurations(samples []model.WeatherSample) []time.Duration {
	d := make([]time.Duration, len(samples))
	switch len(samples) {
	case 0:
		return d
	case 1:
		d[0] = time.Hour
		return d
	}
	for i := 0; i < len(samples)-1; i++ {
		d[i] = samples[i+1].Time.Sub(samples[i].Time)
	}
	d[len(d)-1] = d[len(d)-2]
	return d
}

// Summarize integrates a demand series over its weather series' time axis.
// Both series must have the same length.
func Summarize(w model.WeatherSeries, d model.DemandSeries) Summary {
	var s Summary
	n := min(len(w.Samples), len(d.PowerW))
	durations := sampleDurations(w.Samples[:n])

	for i := 0; i < n; i++ {
		p := d.PowerW[i]
		hours := durations[i].Hours()
		kWh := p * hours / 1000

		s.HeatKWh += kWh
		s.MonthlyKWh[w.Samples[i].Time.Month()-1] += kWh
		if p > 0 {
			s.HeatingHours += hours
		}
		if p > s.PeakW {
			s.PeakW = p
		}
	}

	if s.PeakW > 0 {
		s.FullLoadHours = s.HeatKWh * 1000 / s.PeakW
	}
	return s
}

// HourlyMeans averages a demand series per clock hour (UTC), in time order.
func HourlyMeans(w model.WeatherSeries, d model.DemandSeries) []HourlyPoint {
	n := min(len(w.Samples), len(d.PowerW))
	var points []HourlyPoint
	var sum float64
	var count int

	for i := 0; i < n; i++ {
		h := w.Samples[i].Time.UTC().Truncate(time.Hour)
		if len(points) > 0 && !points[len(points)-1].Time.Equal(h) {
			points[len(points)-1].PowerW = sum / float64(count)
			sum, count = 0, 0
		}
		if len(points) == 0 || !points[len(points)-1].Time.Equal(h) {
			points = append(points, HourlyPoint{Time: h})
		}
		sum += d.PowerW[i]
		count++
	}
	if count > 0 {
		points[len(points)-1].PowerW = sum / float64(count)
	}
	return points
}
