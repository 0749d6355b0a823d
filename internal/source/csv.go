// Package source reads the accident and vehicle tables from delimited files.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"roadsafety/internal/models"
	"roadsafety/pkg/utils"
)

// Source errors.
var (
	ErrEmptyInput      = errors.New("input has no header row")
	ErrMissingColumn   = errors.New("required column not found")
	ErrDuplicateColumn = errors.New("headers collapse to the same column")
)

// Required columns, after canonicalization.
var (
	AccidentColumns = []string{"accident_id", "latitude", "longitude", "severity", "accident_date", "accident_time"}
	VehicleColumns  = []string{"accident_id", "vehicle_id", "vehicle_type"}
)

// Dataset is a parsed table. Rows are keyed by the header exactly as written.
type Dataset struct {
	Path   string
	Header []string
	Rows   []models.RawRecord
}

// Reader loads tables and checks that the required columns resolve.
type Reader struct {
	strings *utils.StringHelper
}

// NewReader creates a new reader instance.
func NewReader() *Reader {
	return &Reader{strings: utils.NewStringHelper()}
}

// ReadFile opens path and parses it. The file is closed before returning.
func (r *Reader) ReadFile(path string, required []string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	ds, err := r.Read(f, required)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	ds.Path = path

	return ds, nil
}

// Read parses a header row followed by data rows.
func (r *Reader) Read(in io.Reader, required []string) (*Dataset, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if err := r.checkColumns(header, required); err != nil {
		return nil, err
	}

	ds := &Dataset{Header: header}

	for line := 2; ; line++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", line, err)
		}

		if len(fields) > len(header) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", line, len(fields), len(header))
		}

		rec := make(models.RawRecord, len(header))
		for i, name := range header {
			if i < len(fields) {
				rec[name] = fields[i]
			} else {
				rec[name] = ""
			}
		}

		ds.Rows = append(ds.Rows, rec)
	}

	return ds, nil
}

func (r *Reader) checkColumns(header, required []string) error {
	present := make(map[string]string, len(header))
	for _, h := range header {
		key := r.strings.CanonicalColumn(h)
		if prev, ok := present[key]; ok {
			return fmt.Errorf("%w: %q and %q", ErrDuplicateColumn, prev, h)
		}

		present[key] = h
	}

	for _, col := range required {
		if _, ok := present[col]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	return nil
}
