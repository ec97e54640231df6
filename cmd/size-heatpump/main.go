package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"heatpump_simulator/internal/catalog"
	"heatpump_simulator/internal/heatload"
	"heatpump_simulator/internal/ingest"
	"heatpump_simulator/internal/logging"
	"heatpump_simulator/internal/model"
	"heatpump_simulator/internal/planner"
	"heatpump_simulator/internal/store"
)

type options struct {
	location        int
	building        model.BuildingProfile
	variant         string
	climateFile     string
	catalogFile     string
	weatherDir      string
	simpleThreshold float64
	hotWaterPowerW  float64
}

func main() {
	var o options
	var dhw string
	flag.IntVar(&o.location, "location", 4, "climate zone / weather region index (1-15)")
	flag.Float64Var(&o.building.AnnualEnergyKWh, "energy", 15000, "annual heating + hot-water energy in kWh")
	flag.IntVar(&o.building.SupplyTempC, "supply-temp", 55, "heating supply temperature in °C")
	flag.IntVar(&o.building.ConstructionYear, "year", 0, "construction year (0 = unknown, uses the simple estimate)")
	flag.IntVar(&o.building.Occupants, "occupants", 0, "number of occupants")
	flag.StringVar(&dhw, "dhw", "medium", "hot-water system class: low, medium, high")
	flag.StringVar(&o.variant, "variant", "", "force estimate variant: simple or refined")
	flag.StringVar(&o.climateFile, "climate", "", "climate CSV (default: built-in tables)")
	flag.StringVar(&o.catalogFile, "catalog", "input/catalog.csv", "heat-pump catalog CSV")
	flag.StringVar(&o.weatherDir, "weather-dir", "", "directory with weather_<n>_*.csv files (empty = skip simulation)")
	flag.Float64Var(&o.simpleThreshold, "simple-threshold", 15, "heating threshold of the simple estimate (12 or 15)")
	flag.Float64Var(&o.hotWaterPowerW, "hot-water-power", 1000, "hot-water power added by the simple estimate in W")
	flag.Parse()
	o.building.DHW = model.DHWClass(dhw)

	if err := run(os.Stdout, o); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, o options) error {
	ref, err := ingest.LoadClimateFile(o.climateFile)
	if err != nil {
		return err
	}
	ratings, err := ingest.LoadCatalogFile(o.catalogFile)
	if err != nil {
		return err
	}
	weather := store.New()
	if o.weatherDir != "" {
		series, err := ingest.LoadWeatherDir(o.weatherDir)
		if err != nil {
			return err
		}
		for _, s := range series {
			weather.AddSeries(s)
		}
	}

	engine := planner.New(ref, catalog.NewStore(ratings), weather, nil, planner.Options{
		Simple:      heatload.Simple{HotWaterPowerW: o.hotWaterPowerW, ThresholdC: o.simpleThreshold},
		Parallelism: 1,
		Logger:      logging.Discard(),
	})

	req := planner.Request{Location: o.location, Building: o.building, Variant: model.Variant(o.variant)}
	sizing, err := engine.Size(req)
	if err != nil {
		return err
	}
	printSizing(w, sizing)

	if weather.SampleCount(o.location) == 0 {
		return nil
	}
	if o.building.ConstructionYear <= 0 {
		fmt.Fprintln(w, "Annual demand simulation needs -year.")
		return nil
	}
	sim, err := engine.SimulateLocations(context.Background(), []int{o.location}, o.building)
	if err != nil {
		return err
	}
	printSimulation(w, sim[0])
	return nil
}

func printSizing(w io.Writer, r planner.SizingResult) {
	hl := r.HeatLoad
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Heat-Pump Sizing: location %d (%s)\n", r.Location, r.Region)
	fmt.Fprintf(w, "  Design temperature: %.1f °C, heating threshold: %.0f °C (%s estimate)\n",
		r.Zone.DesignTempC, hl.ThresholdC, hl.Variant)
	fmt.Fprintf(w, "  Heat load: %.0f W, required capacity: %.0f W\n", hl.HeatLoadW, hl.RequiredW)
	fmt.Fprintf(w, "  Accepted capacity: %.0f – %.0f W at %d °C supply\n", r.LowerW, r.UpperW, r.SupplyTempC)
	fmt.Fprintln(w)

	if len(r.Candidates) == 0 {
		fmt.Fprintln(w, "  No matching heat pump in the catalog.")
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, " %3s │ %-20s │ %-14s │ %10s │ %5s\n", "#", "Model", "Manufacturer", "Capacity", "COP")
	fmt.Fprintf(w, "─────┼──────────────────────┼────────────────┼────────────┼──────\n")
	for i, c := range r.Candidates {
		fmt.Fprintf(w, " %3d │ %-20s │ %-14s │ %8.0f W │ %5.2f\n", i+1, c.Model, c.Manufacturer, c.CapacityW, c.COP)
	}
	fmt.Fprintln(w)
}

func printSimulation(w io.Writer, r planner.SimulationResult) {
	s := r.Summary
	fmt.Fprintf(w, "Annual Heating Demand (threshold %.0f °C)\n", r.Demand.ThresholdC)
	fmt.Fprintf(w, "  Heat: %.0f kWh, peak: %.0f W\n", s.HeatKWh, s.PeakW)
	fmt.Fprintf(w, "  Heating hours: %.0f h, full-load hours: %.0f h\n", s.HeatingHours, s.FullLoadHours)
	fmt.Fprintln(w)

	fmt.Fprintf(w, " %5s │ %9s\n", "Month", "Heat")
	fmt.Fprintf(w, "───────┼───────────\n")
	for m, kWh := range s.MonthlyKWh {
		fmt.Fprintf(w, " %5d │ %5.0f kWh\n", m+1, kWh)
	}
	fmt.Fprintln(w)
}
