package ingest

import (
	"fmt"
	"io"
	"strings"

	"heatpump_simulator/internal/climate"
	"heatpump_simulator/internal/model"
)

// ClimateParser parses the test-reference-year region table.
//
// Expected format:
//
//	Standort,Art,T_NA,GTZ15,GTZ12,GTZ10
//	1,a,-9.9,3620,2970,2460
//
// The Art column (a = average year, w = extreme winter) is optional. Without
// it the rows are split into blocks wherever the index restarts at 1: the
// first block is the average year, the last one the extreme winter. Blocks in
// between (the summer year of a full table) are ignored.
type ClimateParser struct{}

func (p *ClimateParser) Parse(r io.Reader) (climate.Reference, error) {
	cr := newReader(r)
	h, err := readHeader(cr, "Standort", "T_NA", "GTZ15", "GTZ12", "GTZ10")
	if err != nil {
		return climate.Reference{}, err
	}

	sets := map[model.ReferenceYear][]model.ClimateZone{}
	var blocks [][]model.ClimateZone

	err = eachRecord(cr, func(record []string, lineNum int) error {
		z, err := parseClimateRecord(h, record)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}

		if !h.has("Art") {
			if z.Index == 1 || len(blocks) == 0 {
				blocks = append(blocks, nil)
			}
			blocks[len(blocks)-1] = append(blocks[len(blocks)-1], z)
			return nil
		}

		art, _ := h.field(record, "Art")
		year := model.ReferenceYear(strings.ToLower(art))
		if year != model.ReferenceAverage && year != model.ReferenceExtremeWinter {
			// Summer reference years are not used for heating.
			return nil
		}
		sets[year] = append(sets[year], z)
		return nil
	})
	if err != nil {
		return climate.Reference{}, err
	}

	if len(blocks) > 0 {
		sets[model.ReferenceAverage] = blocks[0]
	}
	if len(blocks) > 1 {
		sets[model.ReferenceExtremeWinter] = blocks[len(blocks)-1]
	}

	var ref climate.Reference
	if ref.Average, err = climate.NewTable(sets[model.ReferenceAverage]); err != nil {
		return climate.Reference{}, fmt.Errorf("average year: %w", err)
	}
	if len(sets[model.ReferenceExtremeWinter]) > 0 {
		if ref.ExtremeWinter, err = climate.NewTable(sets[model.ReferenceExtremeWinter]); err != nil {
			return climate.Reference{}, fmt.Errorf("extreme winter: %w", err)
		}
	}
	return ref, nil
}

func parseClimateRecord(h header, record []string) (model.ClimateZone, error) {
	var z model.ClimateZone
	var err error

	if z.Index, err = h.integer(record, "Standort"); err != nil {
		return z, err
	}
	if z.DesignTempC, err = h.number(record, "T_NA"); err != nil {
		return z, err
	}
	if z.DegreeDays15, err = h.number(record, "GTZ15"); err != nil {
		return z, err
	}
	if z.DegreeDays12, err = h.number(record, "GTZ12"); err != nil {
		return z, err
	}
	if z.DegreeDays10, err = h.number(record, "GTZ10"); err != nil {
		return z, err
	}
	z.Name = model.RegionName(z.Index)
	return z, nil
}
