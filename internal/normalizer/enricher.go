package normalizer

import (
	"time"

	"roadsafety/internal/models"
)

var severityLabels = map[int]string{
	models.SeverityFatal:   models.LabelFatal,
	models.SeveritySerious: models.LabelSerious,
	models.SeveritySlight:  models.LabelSlight,
}

// Enricher derives the per-accident features and joins the vehicle aggregates.
type Enricher struct{}

// NewEnricher creates a new enricher instance.
func NewEnricher() *Enricher {
	return &Enricher{}
}

// Enrich returns enriched copies of accidents; the input slice is not modified.
func (e *Enricher) Enrich(accidents []models.Accident, vehicles []models.Vehicle) []models.Accident {
	stats := SummarizeVehicles(vehicles)
	out := make([]models.Accident, len(accidents))

	for i, a := range accidents {
		a.DayOfWeek = DayOfWeek(a.AccidentDate)
		a.HourOfDay = HourOfDay(a.AccidentTime)
		a.TimeBucket = TimeBucket(a.HourOfDay)
		a.SeverityLabel = SeverityLabel(a.Severity)

		a.VehicleCount = 0
		a.DominantVehicleType = models.Unknown

		if s, ok := stats[a.AccidentID]; ok {
			a.VehicleCount = s.Count
			if s.DominantType != "" {
				a.DominantVehicleType = s.DominantType
			}
		}

		out[i] = a
	}

	return out
}

// DayOfWeek returns the full weekday name, or "" for a nil date.
func DayOfWeek(date *time.Time) string {
	if date == nil {
		return ""
	}

	return date.Weekday().String()
}

// HourOfDay returns the hour of a clock time, or nil.
func HourOfDay(clock *models.ClockTime) *int {
	if clock == nil || clock.Hour < 0 || clock.Hour > 23 {
		return nil
	}

	h := clock.Hour

	return &h
}

// TimeBucket partitions the day: Morning [5,12), Afternoon [12,17),
// Evening [17,21), Night otherwise. A nil hour is Unknown.
func TimeBucket(hour *int) string {
	if hour == nil {
		return models.Unknown
	}

	switch h := *hour; {
	case h >= 5 && h < 12:
		return models.BucketMorning
	case h >= 12 && h < 17:
		return models.BucketAfternoon
	case h >= 17 && h < 21:
		return models.BucketEvening
	default:
		return models.BucketNight
	}
}

// SeverityLabel maps a severity code to its label; unknown codes map to "".
func SeverityLabel(code int) string {
	return severityLabels[code]
}

// SeverityCode is the inverse of SeverityLabel.
func SeverityCode(label string) (int, bool) {
	for code, l := range severityLabels {
		if l == label {
			return code, true
		}
	}

	return 0, false
}

// VehicleStats is the per-accident vehicle aggregate.
type VehicleStats struct {
	Count        int
	DominantType string
}

// SummarizeVehicles groups vehicles by accident id. Count covers rows with a
// vehicle id; the dominant type is the most frequent non-null type, ties going
// to the type seen first. Rows without an accident id are ignored.
func SummarizeVehicles(vehicles []models.Vehicle) map[string]VehicleStats {
	type tally struct {
		count  int
		order  []string
		counts map[string]int
	}

	tallies := make(map[string]*tally)

	for _, v := range vehicles {
		if v.AccidentID == "" {
			continue
		}

		t, ok := tallies[v.AccidentID]
		if !ok {
			t = &tally{counts: make(map[string]int)}
			tallies[v.AccidentID] = t
		}

		if v.VehicleID != "" {
			t.count++
		}

		if v.VehicleType == "" {
			continue
		}

		if t.counts[v.VehicleType] == 0 {
			t.order = append(t.order, v.VehicleType)
		}

		t.counts[v.VehicleType]++
	}

	out := make(map[string]VehicleStats, len(tallies))

	for id, t := range tallies {
		s := VehicleStats{Count: t.count}

		best := 0
		for _, typ := range t.order {
			if n := t.counts[typ]; n > best {
				best = n
				s.DominantType = typ
			}
		}

		out[id] = s
	}

	return out
}
