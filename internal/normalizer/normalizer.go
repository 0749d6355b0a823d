// Package normalizer turns raw accident and vehicle rows into enriched accident records.
package normalizer

import (
	"maps"
	"slices"
	"strings"
	"time"

	"roadsafety/internal/models"
	"roadsafety/pkg/utils"
)

// DefaultDateLayouts are tried in order. Slash dates are month first.
var DefaultDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"20060102",
	"02 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

const clockLayout = "15:04"

// Normalizer canonicalizes column names and parses the temporal fields.
type Normalizer struct {
	strings     *utils.StringHelper
	dateLayouts []string
}

// NewNormalizer creates a normalizer. Nil or empty layouts select DefaultDateLayouts.
func NewNormalizer(dateLayouts []string) *Normalizer {
	if len(dateLayouts) == 0 {
		dateLayouts = DefaultDateLayouts
	}

	return &Normalizer{
		strings:     utils.NewStringHelper(),
		dateLayouts: dateLayouts,
	}
}

// Accidents normalizes raw accident rows. Nothing is dropped here.
func (n *Normalizer) Accidents(rows []models.RawRecord) []models.NormalizedAccident {
	out := make([]models.NormalizedAccident, 0, len(rows))

	for i, row := range rows {
		fields := n.Columns(row)

		out = append(out, models.NormalizedAccident{
			Row:          i + 1,
			Fields:       fields,
			AccidentDate: n.ParseDate(fields["accident_date"]),
			AccidentTime: n.ParseTime(fields["accident_time"]),
		})
	}

	return out
}

// Vehicles normalizes raw vehicle rows. Null cells become empty strings.
func (n *Normalizer) Vehicles(rows []models.RawRecord) []models.Vehicle {
	out := make([]models.Vehicle, 0, len(rows))

	for _, row := range rows {
		fields := n.Columns(row)

		out = append(out, models.Vehicle{
			VehicleID:   n.value(fields["vehicle_id"]),
			AccidentID:  n.id(fields["accident_id"]),
			VehicleType: n.value(fields["vehicle_type"]),
		})
	}

	return out
}

// Columns returns a copy of row keyed by canonical column names.
// When two headers collapse to the same name, the first non-null value in
// sorted header order is kept.
func (n *Normalizer) Columns(row models.RawRecord) models.RawRecord {
	out := make(models.RawRecord, len(row))

	for _, k := range slices.Sorted(maps.Keys(row)) {
		v := row[k]
		key := n.strings.CanonicalColumn(k)
		if prev, ok := out[key]; ok && !n.strings.IsNull(prev) {
			continue
		}

		out[key] = v
	}

	return out
}

// ParseDate returns nil when s is null or matches none of the layouts.
func (n *Normalizer) ParseDate(s string) *time.Time {
	if n.strings.IsNull(s) {
		return nil
	}

	s = strings.TrimSpace(s)
	for _, layout := range n.dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}

	return nil
}

// ParseTime reads a 24-hour HH:MM clock. Anything else is nil.
func (n *Normalizer) ParseTime(s string) *models.ClockTime {
	if n.strings.IsNull(s) {
		return nil
	}

	t, err := time.Parse(clockLayout, strings.TrimSpace(s))
	if err != nil {
		return nil
	}

	return &models.ClockTime{Hour: t.Hour(), Minute: t.Minute()}
}

func (n *Normalizer) value(s string) string {
	if n.strings.IsNull(s) {
		return ""
	}

	return n.strings.NormalizeWhitespace(s)
}

func (n *Normalizer) id(s string) string {
	if n.strings.IsNull(s) {
		return ""
	}

	return n.strings.CanonicalID(s)
}
