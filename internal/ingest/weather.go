package ingest

import (
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"

	"heatpump_simulator/internal/model"
)

const (
	colTime   = "time"
	colTemp   = "temperature [degC]"
	colTemp24 = "temperature 24h [degC]"
)

// WeatherParser parses one location's reference-year weather series.
//
// Expected format:
//
//	time,temperature [degC],temperature 24h [degC]
//	2015-01-01T00:00:00Z,3.2,4.1
//
// Time may also be a Unix epoch. The 24 h column is optional; missing values
// are left as NaN for the simulator to fill.
type WeatherParser struct {
	Location int
}

func NewWeatherParser(location int) *WeatherParser {
	return &WeatherParser{Location: location}
}

func (p *WeatherParser) Parse(r io.Reader) (model.WeatherSeries, error) {
	cr := newReader(r)
	h, err := readHeader(cr, colTime, colTemp)
	if err != nil {
		return model.WeatherSeries{}, err
	}
	has24 := h.has(colTemp24)

	series := model.WeatherSeries{Location: p.Location}
	err = eachRecord(cr, func(record []string, lineNum int) error {
		ts, err := h.field(record, colTime)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
		t, err := parseTimestamp(ts)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
		temp, err := h.number(record, colTemp)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}

		temp24 := math.NaN()
		if has24 {
			if v, err := h.number(record, colTemp24); err == nil {
				temp24 = v
			}
		}

		if n := len(series.Samples); n > 0 && !t.After(series.Samples[n-1].Time) {
			return fmt.Errorf("line %d: timestamp %s is not after the previous sample", lineNum, t.Format("2006-01-02T15:04:05Z07:00"))
		}
		series.Samples = append(series.Samples, model.WeatherSample{Time: t, TempC: temp, Temp24hC: temp24})
		return nil
	})
	if err != nil {
		return model.WeatherSeries{}, err
	}
	return series, nil
}

var weatherFilePattern = regexp.MustCompile(`^weather_(\d+)(_.*)?\.csv$`)

// LocationFromFilename extracts the location index from names like
// weather_4_a_2015_1min.csv.
func LocationFromFilename(name string) (int, bool) {
	m := weatherFilePattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	loc, err := strconv.Atoi(m[1])
	if err != nil || loc < 1 {
		return 0, false
	}
	return loc, true
}
