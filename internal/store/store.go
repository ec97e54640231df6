package store

import (
	"sort"
	"sync"

	"heatpump_simulator/internal/model"
)

// Store holds reference-year weather series in memory, keyed by location index.
type Store struct {
	mu     sync.RWMutex
	series map[int][]model.WeatherSample // sorted by time
}

func New() *Store {
	return &Store{
		series: make(map[int][]model.WeatherSample),
	}
}

// AddSeries stores a series for its location, replacing any previous one,
// and sorts it by time.
func (s *Store) AddSeries(w model.WeatherSeries) {
	samples := make([]model.WeatherSample, len(w.Samples))
	copy(samples, w.Samples)
	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].Time.Before(samples[j].Time)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.series[w.Location] = samples
}

// Series returns a copy of the series for a location.
func (s *Store) Series(location int) (model.WeatherSeries, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	samples, ok := s.series[location]
	if !ok {
		return model.WeatherSeries{}, false
	}
	cp := make([]model.WeatherSample, len(samples))
	copy(cp, samples)
	return model.WeatherSeries{Location: location, Samples: cp}, true
}

// Locations returns the indices with a stored series, ascending.
func (s *Store) Locations() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	locs := make([]int, 0, len(s.series))
	for loc := range s.series {
		locs = append(locs, loc)
	}
	sort.Ints(locs)
	return locs
}

// SampleCount returns the number of samples stored for a location.
func (s *Store) SampleCount(location int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.series[location])
}

// TimeRange returns the time range covered by a location's series.
func (s *Store) TimeRange(location int) (model.TimeRange, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	samples := s.series[location]
	if len(samples) == 0 {
		return model.TimeRange{}, false
	}

	return model.TimeRange{
		Start: samples[0].Time,
		End:   samples[len(samples)-1].Time,
	}, true
}
