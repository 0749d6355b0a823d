// Package sink persists the finished BI tables.
package sink

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"roadsafety/internal/models"
)

// ErrNoColumns is returned for a table without a header.
var ErrNoColumns = errors.New("table has no columns")

// Sink persists one table at a time.
type Sink interface {
	Write(t models.Table) error
}

// CSVSink writes each table to its own file with a header row.
type CSVSink struct {
	dir   string
	files map[string]string
}

// NewCSVSink creates a sink. files maps table names to paths; tables not in
// files go to dir/<name>.csv.
func NewCSVSink(dir string, files map[string]string) *CSVSink {
	return &CSVSink{dir: dir, files: files}
}

// Path returns the file a table is written to.
func (s *CSVSink) Path(name string) string {
	if p, ok := s.files[name]; ok {
		return p
	}

	return filepath.Join(s.dir, name+".csv")
}

// Write replaces the table's file. The file is closed before returning.
func (s *CSVSink) Write(t models.Table) (err error) {
	if len(t.Columns) == 0 {
		return fmt.Errorf("%s: %w", t.Name, ErrNoColumns)
	}

	path := s.Path(t.Name)

	if dir := filepath.Dir(path); dir != "." {
		if mkErr := os.MkdirAll(dir, 0755); mkErr != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, mkErr)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	w := csv.NewWriter(f)

	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", path, err)
	}

	if err := w.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("failed to write rows to %s: %w", path, err)
	}

	return nil
}

// WriteAll writes tables to every sink in order and stops at the first error.
func WriteAll(tables []models.Table, sinks ...Sink) error {
	for _, s := range sinks {
		for _, t := range tables {
			if err := s.Write(t); err != nil {
				return err
			}
		}
	}

	return nil
}
