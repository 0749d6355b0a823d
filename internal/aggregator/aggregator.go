// Package aggregator builds the grouped BI tables from enriched accidents.
package aggregator

import (
	"cmp"
	"math"
	"slices"

	"roadsafety/internal/models"
)

// Severity score weights.
const (
	FatalWeight   = 3
	SeriousWeight = 2
	SlightWeight  = 1
)

// Aggregator groups enriched accidents into the three summary tables.
type Aggregator struct {
	precision int
}

// NewAggregator creates an aggregator. A negative precision groups on exact
// coordinates; otherwise coordinates are rounded to that many decimals first.
func NewAggregator(precision int) *Aggregator {
	return &Aggregator{precision: precision}
}

type coordKey struct {
	lat, lon float64
}

type labelKey struct {
	group, label string
}

// Location groups accidents by coordinate pair, ordered by latitude then longitude.
func (a *Aggregator) Location(accidents []models.Accident) []models.LocationAggregate {
	groups := make(map[coordKey]*models.LocationAggregate)

	for _, acc := range accidents {
		key := coordKey{lat: a.round(acc.Latitude), lon: a.round(acc.Longitude)}

		g, ok := groups[key]
		if !ok {
			g = &models.LocationAggregate{Latitude: key.lat, Longitude: key.lon}
			groups[key] = g
		}

		g.TotalAccidents++

		switch acc.Severity {
		case models.SeverityFatal:
			g.Fatal++
		case models.SeveritySerious:
			g.Serious++
		case models.SeveritySlight:
			g.Slight++
		}
	}

	out := make([]models.LocationAggregate, 0, len(groups))
	for _, g := range groups {
		g.SeverityScore = SeverityScore(g.Fatal, g.Serious, g.Slight)
		out = append(out, *g)
	}

	slices.SortFunc(out, func(x, y models.LocationAggregate) int {
		return cmp.Or(cmp.Compare(x.Latitude, y.Latitude), cmp.Compare(x.Longitude, y.Longitude))
	})

	return out
}

// Time counts accidents per (time bucket, severity label).
func (a *Aggregator) Time(accidents []models.Accident) []models.TimeAggregate {
	counts := countBy(accidents, func(acc models.Accident) string { return acc.TimeBucket })

	out := make([]models.TimeAggregate, 0, len(counts))
	for k, n := range counts {
		out = append(out, models.TimeAggregate{TimeBucket: k.group, SeverityLabel: k.label, TotalAccidents: n})
	}

	slices.SortFunc(out, func(x, y models.TimeAggregate) int {
		return cmp.Or(cmp.Compare(x.TimeBucket, y.TimeBucket), cmp.Compare(x.SeverityLabel, y.SeverityLabel))
	})

	return out
}

// Vehicle counts accidents per (dominant vehicle type, severity label).
func (a *Aggregator) Vehicle(accidents []models.Accident) []models.VehicleAggregate {
	counts := countBy(accidents, func(acc models.Accident) string { return acc.DominantVehicleType })

	out := make([]models.VehicleAggregate, 0, len(counts))
	for k, n := range counts {
		out = append(out, models.VehicleAggregate{DominantVehicleType: k.group, SeverityLabel: k.label, TotalAccidents: n})
	}

	slices.SortFunc(out, func(x, y models.VehicleAggregate) int {
		return cmp.Or(cmp.Compare(x.DominantVehicleType, y.DominantVehicleType), cmp.Compare(x.SeverityLabel, y.SeverityLabel))
	})

	return out
}

// SeverityScore weighs severity counts into a location risk score.
func SeverityScore(fatal, serious, slight int) int {
	return FatalWeight*fatal + SeriousWeight*serious + SlightWeight*slight
}

// countBy groups on (group(acc), severity label). Rows without a label are
// skipped, the same way a null group key is.
func countBy(accidents []models.Accident, group func(models.Accident) string) map[labelKey]int {
	counts := make(map[labelKey]int)

	for _, acc := range accidents {
		if acc.SeverityLabel == "" {
			continue
		}

		counts[labelKey{group: group(acc), label: acc.SeverityLabel}]++
	}

	return counts
}

func (a *Aggregator) round(v float64) float64 {
	if a.precision < 0 {
		return v
	}

	scale := math.Pow(10, float64(a.precision))

	return math.Round(v*scale) / scale
}
