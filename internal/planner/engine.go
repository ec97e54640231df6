package planner

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"heatpump_simulator/internal/catalog"
	"heatpump_simulator/internal/climate"
	"heatpump_simulator/internal/heatload"
	"heatpump_simulator/internal/logging"
	"heatpump_simulator/internal/model"
	"heatpump_simulator/internal/simulator"
	"heatpump_simulator/internal/store"
)

// Request describes one building at one location.
type Request struct {
	Location int
	Building model.BuildingProfile
	// Variant forces an estimation strategy; empty picks one from the profile.
	Variant model.Variant
}

// SizingResult is a heat-load estimate together with the matching catalog rows.
type SizingResult struct {
	Location    int
	SupplyTempC int
	Region      string
	Zone        model.ClimateZone
	HeatLoad    model.HeatLoadResult
	LowerW      float64
	UpperW      float64
	Candidates  []model.HeatPumpRating
}

// SimulationResult is one annual demand simulation.
type SimulationResult struct {
	ID       string
	Location int
	Region   string
	Demand   model.DemandSeries
	Summary  simulator.Summary
	Hourly   []simulator.HourlyPoint
	Started  time.Time
	Duration time.Duration
}

// Options tune an Engine. Zero values fall back to defaults.
type Options struct {
	Simple      heatload.Simple
	Parallelism int
	Logger      logrus.FieldLogger
}

// Engine combines the reference data with the estimation, matching and
// simulation components.
type Engine struct {
	climate     climate.Reference
	catalog     *catalog.Store
	weather     *store.Store
	sim         *simulator.Simulator
	simple      heatload.Simple
	parallelism int
	callback    Callback
	log         logrus.FieldLogger
}

func New(ref climate.Reference, cat *catalog.Store, weather *store.Store, cb Callback, opts Options) *Engine {
	if cb == nil {
		cb = nopCallback{}
	}
	if opts.Simple == (heatload.Simple{}) {
		opts.Simple = heatload.DefaultSimple
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &Engine{
		climate:     ref,
		catalog:     cat,
		weather:     weather,
		sim:         simulator.New(ref.For(model.ReferenceAverage)),
		simple:      opts.Simple,
		parallelism: opts.Parallelism,
		callback:    cb,
		log:         opts.Logger,
	}
}

// Regions returns the zones of the average reference year.
func (e *Engine) Regions() []model.ClimateZone {
	return e.climate.For(model.ReferenceAverage).Zones()
}

// WeatherLocations returns the locations that can be simulated.
func (e *Engine) WeatherLocations() []int {
	return e.weather.Locations()
}

// CatalogSize returns the number of catalog rows.
func (e *Engine) CatalogSize() int {
	return e.catalog.Len()
}

// SupplyTemps returns the supply temperatures the catalog rates at a location.
func (e *Engine) SupplyTemps(location int) []int {
	return e.catalog.SupplyTemps(location)
}

func (e *Engine) estimator(req Request) (heatload.Estimator, error) {
	switch req.Variant {
	case "":
		return heatload.ForProfile(req.Building, e.simple), nil
	case model.VariantSimple:
		return e.simple, nil
	case model.VariantRefined:
		return heatload.Refined{}, nil
	default:
		return nil, fmt.Errorf("unknown variant %q: %w", req.Variant, heatload.ErrInvalidInput)
	}
}

// referenceFor pairs each variant with its climate set: the simple estimate is
// sized for an extreme winter, the refined one for the average year.
func referenceFor(v model.Variant) model.ReferenceYear {
	if v == model.VariantSimple {
		return model.ReferenceExtremeWinter
	}
	return model.ReferenceAverage
}

// Estimate computes the design heat load for a request.
func (e *Engine) Estimate(req Request) (model.HeatLoadResult, model.ClimateZone, error) {
	est, err := e.estimator(req)
	if err != nil {
		return model.HeatLoadResult{}, model.ClimateZone{}, err
	}
	zone, err := e.climate.For(referenceFor(est.Variant())).Lookup(req.Location)
	if err != nil {
		return model.HeatLoadResult{}, model.ClimateZone{}, err
	}
	result, err := est.Estimate(req.Building, zone)
	if err != nil {
		return model.HeatLoadResult{}, model.ClimateZone{}, fmt.Errorf("estimating location %d: %w", req.Location, err)
	}
	return result, zone, nil
}

// Match returns the catalog candidates for an already known required capacity.
func (e *Engine) Match(q catalog.Query) []model.HeatPumpRating {
	return e.catalog.Match(q)
}

// Size estimates the heat load and matches the catalog against it.
func (e *Engine) Size(req Request) (SizingResult, error) {
	hl, zone, err := e.Estimate(req)
	if err != nil {
		return SizingResult{}, err
	}

	q := catalog.Query{
		Location:    req.Location,
		SupplyTempC: req.Building.SupplyTempC,
		RequiredW:   hl.RequiredW,
		Band:        catalog.BandFor(hl.Variant),
	}
	lower, upper := q.Bounds()

	result := SizingResult{
		Location:    req.Location,
		SupplyTempC: req.Building.SupplyTempC,
		Region:      model.RegionName(req.Location),
		Zone:        zone,
		HeatLoad:    hl,
		LowerW:      lower,
		UpperW:      upper,
		Candidates:  e.catalog.Match(q),
	}

	e.log.WithFields(logrus.Fields{
		"location":   req.Location,
		"variant":    hl.Variant,
		"required_w": round1(hl.RequiredW),
		"candidates": len(result.Candidates),
	}).Info("sizing completed")
	e.callback.OnSizing(result)
	return result, nil
}

// Simulate runs the annual demand simulation for one location using its
// stored reference weather year.
func (e *Engine) Simulate(location int, b model.BuildingProfile) (SimulationResult, error) {
	w, err := e.weatherFor(location)
	if err != nil {
		return SimulationResult{}, err
	}

	started := time.Now()
	d, err := e.sim.Simulate(location, b, w)
	if err != nil {
		return SimulationResult{}, fmt.Errorf("simulating location %d: %w", location, err)
	}
	result := e.finish(w, d, started)
	e.callback.OnSimulation(result)
	return result, nil
}

// SimulateLocations runs the same building at several locations in parallel.
// Results keep the order of locations.
func (e *Engine) SimulateLocations(ctx context.Context, locations []int, b model.BuildingProfile) ([]SimulationResult, error) {
	jobs := make([]simulator.Job, len(locations))
	series := make([]model.WeatherSeries, len(locations))
	for i, loc := range locations {
		w, err := e.weatherFor(loc)
		if err != nil {
			return nil, err
		}
		series[i] = w
		jobs[i] = simulator.Job{Location: loc, Building: b, Weather: w}
	}

	started := time.Now()
	demands, err := e.sim.SimulateBatch(ctx, jobs, e.parallelism)
	if err != nil {
		return nil, err
	}

	results := make([]SimulationResult, len(demands))
	for i, d := range demands {
		results[i] = e.finish(series[i], d, started)
		e.callback.OnSimulation(results[i])
	}
	return results, nil
}

func (e *Engine) weatherFor(location int) (model.WeatherSeries, error) {
	w, ok := e.weather.Series(location)
	if !ok {
		return model.WeatherSeries{}, fmt.Errorf("no weather series for location %d: %w", location, climate.ErrNotFound)
	}
	return w, nil
}

func (e *Engine) finish(w model.WeatherSeries, d model.DemandSeries, started time.Time) SimulationResult {
	result := SimulationResult{
		ID:       uuid.NewString(),
		Location: d.Location,
		Region:   model.RegionName(d.Location),
		Demand:   d,
		Summary:  simulator.Summarize(w, d),
		Hourly:   simulator.HourlyMeans(w, d),
		Started:  started,
		Duration: time.Since(started),
	}

	e.log.WithFields(logrus.Fields{
		"id":        result.ID,
		"location":  result.Location,
		"heat_kwh":  round1(result.Summary.HeatKWh),
		"peak_w":    round1(result.Summary.PeakW),
		"threshold": d.ThresholdC,
	}).Info("simulation completed")
	return result
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
