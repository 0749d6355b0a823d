package aggregator

import (
	"math"
	"testing"

	"roadsafety/internal/models"
)

func TestSummarize(t *testing.T) {
	accidents := []models.Accident{
		{VehicleCount: 2},
		{VehicleCount: 0},
		{VehicleCount: 4},
	}
	locations := []models.LocationAggregate{
		{SeverityScore: 3},
		{SeverityScore: 6},
	}

	s := Summarize(accidents, locations)

	if s.Accidents != 3 || s.Locations != 2 {
		t.Errorf("counts = %d/%d, want 3/2", s.Accidents, s.Locations)
	}

	if s.MeanVehicles != 2 {
		t.Errorf("MeanVehicles = %v, want 2", s.MeanVehicles)
	}

	if math.Abs(s.StdDevVehicles-2) > 1e-9 {
		t.Errorf("StdDevVehicles = %v, want 2", s.StdDevVehicles)
	}

	if s.MeanSeverityScore != 4.5 || s.MaxSeverityScore != 6 {
		t.Errorf("scores = %v/%d, want 4.5/6", s.MeanSeverityScore, s.MaxSeverityScore)
	}

	if s.WithoutVehicleRows != 1 {
		t.Errorf("WithoutVehicleRows = %d, want 1", s.WithoutVehicleRows)
	}
}

func TestSummarize_Small(t *testing.T) {
	if s := Summarize(nil, nil); s != (Summary{}) {
		t.Errorf("Summarize(nil) = %+v, want zero", s)
	}

	s := Summarize([]models.Accident{{VehicleCount: 3}}, nil)
	if s.MeanVehicles != 3 || s.StdDevVehicles != 0 {
		t.Errorf("single accident summary = %+v", s)
	}
}
