package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"heatpump_simulator/internal/catalog"
	"heatpump_simulator/internal/climate"
	"heatpump_simulator/internal/config"
	"heatpump_simulator/internal/ingest"
	"heatpump_simulator/internal/model"
	"heatpump_simulator/internal/store"
)

// referenceData is everything loaded once at startup.
type referenceData struct {
	climate climate.Reference
	catalog *catalog.Store
	weather *store.Store
}

// loadData reads the climate tables, the catalog and the weather directory.
// A missing weather directory only disables simulation.
func loadData(cfg config.DataConfig, logger logrus.FieldLogger) (referenceData, error) {
	var data referenceData

	ref, err := ingest.LoadClimateFile(cfg.ClimateFile)
	if err != nil {
		return data, fmt.Errorf("loading climate data: %w", err)
	}
	data.climate = ref
	source := cfg.ClimateFile
	if source == "" {
		source = "built-in"
	}
	logger.WithFields(logrus.Fields{
		"source": source,
		"zones":  ref.Average.Len(),
	}).Info("climate reference loaded")

	ratings, err := ingest.LoadCatalogFile(cfg.CatalogFile)
	if err != nil {
		return data, fmt.Errorf("loading catalog: %w", err)
	}
	data.catalog = catalog.NewStore(ratings)
	logger.WithFields(logrus.Fields{
		"file": cfg.CatalogFile,
		"rows": len(ratings),
	}).Info("catalog loaded")

	data.weather = store.New()
	series, err := ingest.LoadWeatherDir(cfg.WeatherDir)
	if err != nil {
		logger.WithError(err).Warn("no weather data, demand simulation disabled")
		return data, nil
	}
	for _, s := range series {
		if _, err := ref.Average.Lookup(s.Location); err != nil {
			logger.WithField("location", s.Location).Warn("weather file for unknown location skipped")
			continue
		}
		data.weather.AddSeries(s)
		tr, _ := data.weather.TimeRange(s.Location)
		logger.WithFields(logrus.Fields{
			"location": s.Location,
			"region":   model.RegionName(s.Location),
			"samples":  len(s.Samples),
			"from":     tr.Start.Format(time.DateOnly),
			"to":       tr.End.Format(time.DateOnly),
		}).Info("weather loaded")
	}
	return data, nil
}
