package normalizer

import (
	"testing"
	"time"

	"roadsafety/internal/models"
)

func intPtr(v int) *int { return &v }

func TestTimeBucket(t *testing.T) {
	want := map[int]string{}
	for h := 0; h < 24; h++ {
		switch {
		case h >= 5 && h < 12:
			want[h] = models.BucketMorning
		case h >= 12 && h < 17:
			want[h] = models.BucketAfternoon
		case h >= 17 && h < 21:
			want[h] = models.BucketEvening
		default:
			want[h] = models.BucketNight
		}
	}

	for h := 0; h < 24; h++ {
		if got := TimeBucket(intPtr(h)); got != want[h] {
			t.Errorf("TimeBucket(%d) = %s, want %s", h, got, want[h])
		}
	}

	if got := TimeBucket(nil); got != models.Unknown {
		t.Errorf("TimeBucket(nil) = %s, want Unknown", got)
	}
}

func TestTimeBucket_Boundaries(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{4, models.BucketNight},
		{5, models.BucketMorning},
		{11, models.BucketMorning},
		{12, models.BucketAfternoon},
		{16, models.BucketAfternoon},
		{17, models.BucketEvening},
		{20, models.BucketEvening},
		{21, models.BucketNight},
		{23, models.BucketNight},
		{0, models.BucketNight},
	}

	for _, tt := range tests {
		if got := TimeBucket(intPtr(tt.hour)); got != tt.want {
			t.Errorf("TimeBucket(%d) = %s, want %s", tt.hour, got, tt.want)
		}
	}
}

func TestSeverityLabel_RoundTrip(t *testing.T) {
	want := map[int]string{1: "Fatal", 2: "Serious", 3: "Slight"}

	for code, label := range want {
		if got := SeverityLabel(code); got != label {
			t.Errorf("SeverityLabel(%d) = %s, want %s", code, got, label)
		}

		back, ok := SeverityCode(SeverityLabel(code))
		if !ok || back != code {
			t.Errorf("SeverityCode(%s) = %d, %v; want %d", label, back, ok, code)
		}
	}

	if got := SeverityLabel(9); got != "" {
		t.Errorf("SeverityLabel(9) = %q, want empty", got)
	}
}

func TestDayOfWeek(t *testing.T) {
	d := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	if got := DayOfWeek(&d); got != "Monday" {
		t.Errorf("DayOfWeek = %s, want Monday", got)
	}

	if got := DayOfWeek(nil); got != "" {
		t.Errorf("DayOfWeek(nil) = %q, want empty", got)
	}
}

func TestSummarizeVehicles(t *testing.T) {
	stats := SummarizeVehicles([]models.Vehicle{
		{VehicleID: "v1", AccidentID: "1", VehicleType: "Van"},
		{VehicleID: "v2", AccidentID: "1", VehicleType: "Car"},
		{VehicleID: "v3", AccidentID: "1", VehicleType: "Car"},
		{VehicleID: "v4", AccidentID: "2", VehicleType: "Bus"},
		{VehicleID: "v5", AccidentID: "2", VehicleType: "Van"},
		{VehicleID: "", AccidentID: "3", VehicleType: "Lorry"},
		{VehicleID: "v7", AccidentID: "4", VehicleType: ""},
		{VehicleID: "v8", AccidentID: "", VehicleType: "Car"},
	})

	tests := []struct {
		id        string
		wantCount int
		wantType  string
	}{
		{"1", 3, "Car"},
		{"2", 2, "Bus"}, // tie goes to first seen
		{"3", 0, "Lorry"},
		{"4", 1, ""},
	}

	for _, tt := range tests {
		s := stats[tt.id]
		if s.Count != tt.wantCount || s.DominantType != tt.wantType {
			t.Errorf("stats[%s] = %+v, want {%d %s}", tt.id, s, tt.wantCount, tt.wantType)
		}
	}

	if _, ok := stats[""]; ok {
		t.Error("vehicles without accident id must not be grouped")
	}
}

func TestEnricher_Enrich(t *testing.T) {
	e := NewEnricher()

	date := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	accidents := []models.Accident{
		{AccidentID: "1", Latitude: 10, Longitude: 20, Severity: 1, AccidentDate: &date, AccidentTime: &models.ClockTime{Hour: 6, Minute: 30}},
		{AccidentID: "2", Latitude: 11, Longitude: 21, Severity: 3},
	}
	vehicles := []models.Vehicle{
		{VehicleID: "v1", AccidentID: "1", VehicleType: "Car"},
		{VehicleID: "v2", AccidentID: "1", VehicleType: "Car"},
	}

	got := e.Enrich(accidents, vehicles)

	first := got[0]
	if first.TimeBucket != models.BucketMorning || first.SeverityLabel != models.LabelFatal {
		t.Errorf("first = %+v", first)
	}

	if first.VehicleCount != 2 || first.DominantVehicleType != "Car" {
		t.Errorf("first vehicles = %d %s, want 2 Car", first.VehicleCount, first.DominantVehicleType)
	}

	if first.HourOfDay == nil || *first.HourOfDay != 6 || first.DayOfWeek != "Monday" {
		t.Errorf("first temporal = %v %s", first.HourOfDay, first.DayOfWeek)
	}

	second := got[1]
	if second.VehicleCount != 0 || second.DominantVehicleType != models.Unknown {
		t.Errorf("second vehicles = %d %s, want 0 Unknown", second.VehicleCount, second.DominantVehicleType)
	}

	if second.HourOfDay != nil || second.TimeBucket != models.Unknown || second.DayOfWeek != "" {
		t.Errorf("second temporal = %v %s %q", second.HourOfDay, second.TimeBucket, second.DayOfWeek)
	}

	if accidents[0].TimeBucket != "" {
		t.Error("Enrich must not modify its input")
	}
}

func TestEnricher_Enrich_TypelessVehicles(t *testing.T) {
	got := NewEnricher().Enrich(
		[]models.Accident{{AccidentID: "4", Severity: 2}},
		[]models.Vehicle{{VehicleID: "v7", AccidentID: "4"}},
	)

	if got[0].VehicleCount != 1 || got[0].DominantVehicleType != models.Unknown {
		t.Errorf("got %d %s, want 1 Unknown", got[0].VehicleCount, got[0].DominantVehicleType)
	}
}
