package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"heatpump_simulator/internal/climate"
	"heatpump_simulator/internal/model"
)

// LoadClimateFile reads a climate CSV. An empty path returns the built-in tables.
func LoadClimateFile(path string) (climate.Reference, error) {
	if path == "" {
		return climate.Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return climate.Reference{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	ref, err := (&ClimateParser{}).Parse(f)
	if err != nil {
		return climate.Reference{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return ref, nil
}

// LoadCatalogFile reads a heat-pump catalog CSV.
func LoadCatalogFile(path string) ([]model.HeatPumpRating, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	ratings, err := (&CatalogParser{}).Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return ratings, nil
}

// LoadWeatherDir parses every weather_<location>_*.csv file in dir, in name
// order. Other files are ignored. When two files name the same location the
// later one wins.
func LoadWeatherDir(dir string) ([]model.WeatherSeries, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading weather directory: %w", err)
	}

	byLocation := make(map[int]model.WeatherSeries)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		loc, ok := LocationFromFilename(entry.Name())
		if !ok {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		series, err := loadWeatherFile(path, loc)
		if err != nil {
			return nil, err
		}
		byLocation[loc] = series
	}

	result := make([]model.WeatherSeries, 0, len(byLocation))
	for _, s := range byLocation {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Location < result[j].Location
	})
	return result, nil
}

func loadWeatherFile(path string, location int) (model.WeatherSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.WeatherSeries{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	series, err := NewWeatherParser(location).Parse(f)
	if err != nil {
		return model.WeatherSeries{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return series, nil
}
