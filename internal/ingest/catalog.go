package ingest

import (
	"io"

	"heatpump_simulator/internal/model"
)

// CatalogParser parses heat-pump rating tables.
//
// Expected format:
//
//	Standort,Vorlauftemperatur,Normheizlast,COP,Model,Manufacturer
//	4,55,4500,3.4,WP 45,Acme
//
// Model and Manufacturer are optional. Rows with unparseable numbers are
// skipped.
type CatalogParser struct{}

func (p *CatalogParser) Parse(r io.Reader) ([]model.HeatPumpRating, error) {
	cr := newReader(r)
	h, err := readHeader(cr, "Standort", "Vorlauftemperatur", "Normheizlast", "COP")
	if err != nil {
		return nil, err
	}

	var ratings []model.HeatPumpRating
	err = eachRecord(cr, func(record []string, lineNum int) error {
		rating, err := parseCatalogRecord(h, record)
		if err != nil {
			return nil
		}
		ratings = append(ratings, rating)
		return nil
	})
	return ratings, err
}

func parseCatalogRecord(h header, record []string) (model.HeatPumpRating, error) {
	var r model.HeatPumpRating
	var err error

	if r.Location, err = h.integer(record, "Standort"); err != nil {
		return r, err
	}
	if r.SupplyTempC, err = h.integer(record, "Vorlauftemperatur"); err != nil {
		return r, err
	}
	if r.CapacityW, err = h.number(record, "Normheizlast"); err != nil {
		return r, err
	}
	if r.COP, err = h.number(record, "COP"); err != nil {
		return r, err
	}
	if h.has("Model") {
		r.Model, _ = h.field(record, "Model")
	}
	if h.has("Manufacturer") {
		r.Manufacturer, _ = h.field(record, "Manufacturer")
	}
	return r, nil
}
