package catalog

import (
	"sort"

	"heatpump_simulator/internal/model"
)

// Band is the accepted capacity range as multiples of the required capacity.
// Both bounds are inclusive.
type Band struct {
	Lower float64
	Upper float64
}

// The two estimation variants historically use different lower bounds; they
// are kept as separate policies.
var (
	SimpleBand  = Band{Lower: 0.98, Upper: 1.25}
	RefinedBand = Band{Lower: 1.0, Upper: 1.25}
)

// BandFor returns the capacity band paired with an estimation variant.
func BandFor(v model.Variant) Band {
	if v == model.VariantSimple {
		return SimpleBand
	}
	return RefinedBand
}

// Query selects catalog rows for one location, supply temperature and load.
type Query struct {
	Location    int
	SupplyTempC int
	RequiredW   float64
	Band        Band
}

// Bounds returns the absolute capacity bounds (W) of the query.
func (q Query) Bounds() (lower, upper float64) {
	return q.RequiredW * q.Band.Lower, q.RequiredW * q.Band.Upper
}

func (q Query) accepts(r model.HeatPumpRating) bool {
	lower, upper := q.Bounds()
	return r.Location == q.Location &&
		r.SupplyTempC == q.SupplyTempC &&
		r.CapacityW >= lower &&
		r.CapacityW <= upper
}

// Match returns the ratings satisfying q ordered by COP, best first. Rows with
// equal COP keep their catalog order. An empty result is not an error.
func Match(ratings []model.HeatPumpRating, q Query) []model.HeatPumpRating {
	result := make([]model.HeatPumpRating, 0)
	for _, r := range ratings {
		if q.accepts(r) {
			result = append(result, r)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].COP > result[j].COP
	})
	return result
}
