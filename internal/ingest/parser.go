package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// header maps column names to their position in a CSV header.
type header map[string]int

// readHeader reads the first CSV line and checks that every required column is present.
func readHeader(cr *csv.Reader, required ...string) (header, error) {
	row, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	h := make(header, len(row))
	for i, col := range row {
		// Excel exports prefix the first column with a BOM.
		col = strings.TrimPrefix(strings.TrimSpace(col), "\ufeff")
		h[col] = i
	}
	for _, col := range required {
		if _, ok := h[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}
	return h, nil
}

func (h header) has(col string) bool {
	_, ok := h[col]
	return ok
}

func (h header) field(record []string, col string) (string, error) {
	i, ok := h[col]
	if !ok {
		return "", fmt.Errorf("no column %q", col)
	}
	if i >= len(record) {
		return "", fmt.Errorf("column %q missing in record of %d fields", col, len(record))
	}
	return strings.TrimSpace(record[i]), nil
}

func (h header) number(record []string, col string) (float64, error) {
	s, err := h.field(record, col)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s %q: %w", col, s, err)
	}
	return v, nil
}

func (h header) integer(record []string, col string) (int, error) {
	v, err := h.number(record, col)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("%s %v is not an integer", col, v)
	}
	return int(v), nil
}

// eachRecord calls fn for every data line. Read errors abort; fn errors are
// returned with the line number.
func eachRecord(cr *csv.Reader, fn func(record []string, lineNum int) error) error {
	lineNum := 1 // header was line 1
	for {
		lineNum++
		record, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading CSV line %d: %w", lineNum, err)
		}
		if err := fn(record, lineNum); err != nil {
			return err
		}
	}
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	return cr
}

// parseTimestamp accepts RFC3339 or a Unix epoch float (seconds).
func parseTimestamp(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts, nil
	}
	return parseUnixTimestamp(s)
}

// parseUnixTimestamp parses a Unix epoch float (seconds) into a time.Time.
func parseUnixTimestamp(s string) (time.Time, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %q as timestamp: %w", s, err)
	}
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC(), nil
}
