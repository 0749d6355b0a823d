package aggregator

import (
	"gonum.org/v1/gonum/stat"

	"roadsafety/internal/models"
)

// Summary describes a finished run.
type Summary struct {
	Accidents          int
	Locations          int
	MeanVehicles       float64
	StdDevVehicles     float64
	MeanSeverityScore  float64
	MaxSeverityScore   int
	WithoutVehicleRows int
}

// Summarize computes run statistics from the enriched accidents and the
// location aggregate.
func Summarize(accidents []models.Accident, locations []models.LocationAggregate) Summary {
	s := Summary{
		Accidents: len(accidents),
		Locations: len(locations),
	}

	if len(accidents) > 0 {
		counts := make([]float64, len(accidents))
		for i, a := range accidents {
			counts[i] = float64(a.VehicleCount)
			if a.VehicleCount == 0 {
				s.WithoutVehicleRows++
			}
		}

		s.MeanVehicles, s.StdDevVehicles = stat.MeanStdDev(counts, nil)
		if len(accidents) == 1 {
			s.StdDevVehicles = 0
		}
	}

	if len(locations) > 0 {
		scores := make([]float64, len(locations))
		for i, l := range locations {
			scores[i] = float64(l.SeverityScore)
			if l.SeverityScore > s.MaxSeverityScore {
				s.MaxSeverityScore = l.SeverityScore
			}
		}

		s.MeanSeverityScore = stat.Mean(scores, nil)
	}

	return s
}
