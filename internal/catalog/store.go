package catalog

import (
	"sort"

	"heatpump_simulator/internal/model"
)

// Store holds a heat-pump catalog indexed by location. It is never modified
// after NewStore, so it is safe for concurrent readers without locking.
type Store struct {
	byLocation map[int][]model.HeatPumpRating // catalog order within each location
	size       int
}

// NewStore copies ratings into a new store; later changes to the slice do not
// affect it.
func NewStore(ratings []model.HeatPumpRating) *Store {
	s := &Store{
		byLocation: make(map[int][]model.HeatPumpRating),
		size:       len(ratings),
	}
	for _, r := range ratings {
		s.byLocation[r.Location] = append(s.byLocation[r.Location], r)
	}
	return s
}

// Len returns the number of catalog rows.
func (s *Store) Len() int {
	return s.size
}

// SupplyTemps returns the distinct rated supply temperatures at a location, ascending.
func (s *Store) SupplyTemps(location int) []int {
	seen := make(map[int]bool)
	var temps []int
	for _, r := range s.byLocation[location] {
		if !seen[r.SupplyTempC] {
			seen[r.SupplyTempC] = true
			temps = append(temps, r.SupplyTempC)
		}
	}
	sort.Ints(temps)
	return temps
}

// Match runs Match against the location's rows only.
func (s *Store) Match(q Query) []model.HeatPumpRating {
	return Match(s.byLocation[q.Location], q)
}
