package aggregator

import (
	"testing"

	"roadsafety/internal/models"
)

func accident(id string, lat, lon float64, sev int, bucket, vehicle string) models.Accident {
	labels := map[int]string{1: models.LabelFatal, 2: models.LabelSerious, 3: models.LabelSlight}

	return models.Accident{
		AccidentID:          id,
		Latitude:            lat,
		Longitude:           lon,
		Severity:            sev,
		SeverityLabel:       labels[sev],
		TimeBucket:          bucket,
		DominantVehicleType: vehicle,
	}
}

func fixture() []models.Accident {
	return []models.Accident{
		accident("1", 10.0, 20.0, 1, models.BucketMorning, "Car"),
		accident("2", 10.0, 20.0, 3, models.BucketNight, "Car"),
		accident("3", 10.0, 20.0, 2, models.BucketMorning, "Bus"),
		accident("4", 10.00001, 20.0, 3, models.Unknown, models.Unknown),
		accident("5", -5.5, 30.0, 2, models.BucketEvening, "Car"),
	}
}

func TestAggregator_Location(t *testing.T) {
	got := NewAggregator(-1).Location(fixture())

	if len(got) != 3 {
		t.Fatalf("groups = %d, want 3 (exact coordinates)", len(got))
	}

	if got[0].Latitude != -5.5 || got[1].Latitude != 10.0 || got[2].Latitude != 10.00001 {
		t.Errorf("groups not ordered by latitude: %+v", got)
	}

	g := got[1]
	if g.TotalAccidents != 3 || g.Fatal != 1 || g.Serious != 1 || g.Slight != 1 || g.SeverityScore != 6 {
		t.Errorf("group (10,20) = %+v", g)
	}

	for _, g := range got {
		if g.Fatal+g.Serious+g.Slight != g.TotalAccidents {
			t.Errorf("counts do not add up: %+v", g)
		}

		if g.SeverityScore != 3*g.Fatal+2*g.Serious+g.Slight {
			t.Errorf("score mismatch: %+v", g)
		}
	}
}

func TestAggregator_Location_Rounded(t *testing.T) {
	got := NewAggregator(3).Location(fixture())

	if len(got) != 2 {
		t.Fatalf("groups = %d, want 2 with 3 decimals", len(got))
	}

	if got[1].TotalAccidents != 4 || got[1].SeverityScore != 7 {
		t.Errorf("rounded group = %+v", got[1])
	}
}

func TestAggregator_Location_SingleFatal(t *testing.T) {
	got := NewAggregator(-1).Location([]models.Accident{accident("1", 10.0, 20.0, 1, models.BucketMorning, "Car")})

	want := models.LocationAggregate{Latitude: 10, Longitude: 20, TotalAccidents: 1, Fatal: 1, SeverityScore: 3}
	if len(got) != 1 || got[0] != want {
		t.Errorf("Location = %+v, want %+v", got, want)
	}
}

func TestAggregator_Time(t *testing.T) {
	got := NewAggregator(-1).Time(fixture())

	want := []models.TimeAggregate{
		{TimeBucket: models.BucketEvening, SeverityLabel: models.LabelSerious, TotalAccidents: 1},
		{TimeBucket: models.BucketMorning, SeverityLabel: models.LabelFatal, TotalAccidents: 1},
		{TimeBucket: models.BucketMorning, SeverityLabel: models.LabelSerious, TotalAccidents: 1},
		{TimeBucket: models.BucketNight, SeverityLabel: models.LabelSlight, TotalAccidents: 1},
		{TimeBucket: models.Unknown, SeverityLabel: models.LabelSlight, TotalAccidents: 1},
	}

	if len(got) != len(want) {
		t.Fatalf("rows = %d, want %d: %+v", len(got), len(want), got)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestAggregator_Vehicle(t *testing.T) {
	got := NewAggregator(-1).Vehicle(fixture())

	want := []models.VehicleAggregate{
		{DominantVehicleType: "Bus", SeverityLabel: models.LabelSerious, TotalAccidents: 1},
		{DominantVehicleType: "Car", SeverityLabel: models.LabelFatal, TotalAccidents: 1},
		{DominantVehicleType: "Car", SeverityLabel: models.LabelSerious, TotalAccidents: 1},
		{DominantVehicleType: "Car", SeverityLabel: models.LabelSlight, TotalAccidents: 1},
		{DominantVehicleType: models.Unknown, SeverityLabel: models.LabelSlight, TotalAccidents: 1},
	}

	if len(got) != len(want) {
		t.Fatalf("rows = %d, want %d: %+v", len(got), len(want), got)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestAggregator_Empty(t *testing.T) {
	a := NewAggregator(-1)

	if len(a.Location(nil)) != 0 || len(a.Time(nil)) != 0 || len(a.Vehicle(nil)) != 0 {
		t.Error("expected empty aggregates for no accidents")
	}
}

func TestSeverityScore(t *testing.T) {
	if got := SeverityScore(2, 1, 4); got != 12 {
		t.Errorf("SeverityScore(2,1,4) = %d, want 12", got)
	}
}
