package normalizer

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"roadsafety/internal/models"
	"roadsafety/pkg/utils"
)

// Cleaning errors. All of them abort the run.
var (
	ErrNonNumericSeverity   = errors.New("severity is not an integer")
	ErrSeverityOutOfRange   = errors.New("severity must be 1, 2 or 3")
	ErrNonNumericCoordinate = errors.New("coordinate is not numeric")
)

// MandatoryColumns must be non-null for a row to survive cleaning.
var MandatoryColumns = []string{"accident_id", "latitude", "longitude", "severity"}

// Cleaner drops incomplete accident rows and types the mandatory fields.
type Cleaner struct {
	strings *utils.StringHelper
}

// NewCleaner creates a new cleaner instance.
func NewCleaner() *Cleaner {
	return &Cleaner{strings: utils.NewStringHelper()}
}

// Clean drops incomplete rows, then casts the survivors.
func (c *Cleaner) Clean(rows []models.NormalizedAccident) ([]models.Accident, error) {
	return c.Cast(c.DropIncomplete(rows))
}

// DropIncomplete keeps the rows whose mandatory columns are all non-null.
// Dropped rows are not reported.
func (c *Cleaner) DropIncomplete(rows []models.NormalizedAccident) []models.NormalizedAccident {
	kept := make([]models.NormalizedAccident, 0, len(rows))

	for _, row := range rows {
		if c.complete(row) {
			kept = append(kept, row)
		}
	}

	return kept
}

func (c *Cleaner) complete(row models.NormalizedAccident) bool {
	for _, col := range MandatoryColumns {
		if c.strings.IsNull(row.Fields[col]) {
			return false
		}
	}

	return true
}

// Cast converts complete rows into accidents. The first row that cannot be
// typed fails the whole batch.
func (c *Cleaner) Cast(rows []models.NormalizedAccident) ([]models.Accident, error) {
	out := make([]models.Accident, 0, len(rows))

	for _, row := range rows {
		severity, err := ParseSeverity(row.Fields["severity"])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row.Row, err)
		}

		lat, err := parseCoordinate(row.Fields["latitude"])
		if err != nil {
			return nil, fmt.Errorf("row %d: latitude: %w", row.Row, err)
		}

		lon, err := parseCoordinate(row.Fields["longitude"])
		if err != nil {
			return nil, fmt.Errorf("row %d: longitude: %w", row.Row, err)
		}

		out = append(out, models.Accident{
			AccidentID:   c.strings.CanonicalID(row.Fields["accident_id"]),
			Latitude:     lat,
			Longitude:    lon,
			Severity:     severity,
			AccidentDate: row.AccidentDate,
			AccidentTime: row.AccidentTime,
		})
	}

	return out, nil
}

// ParseSeverity accepts integer text and integral float text ("2", "2.0").
func ParseSeverity(s string) (int, error) {
	s = strings.TrimSpace(s)

	code, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
			return 0, fmt.Errorf("%w: %q", ErrNonNumericSeverity, s)
		}

		if f < models.SeverityFatal || f > models.SeveritySlight {
			return 0, fmt.Errorf("%w: got %v", ErrSeverityOutOfRange, f)
		}

		code = int(f)
	}

	if code < models.SeverityFatal || code > models.SeveritySlight {
		return 0, fmt.Errorf("%w: got %d", ErrSeverityOutOfRange, code)
	}

	return code, nil
}

func parseCoordinate(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNonNumericCoordinate, s)
	}

	return v, nil
}
