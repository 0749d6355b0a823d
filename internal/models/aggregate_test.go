package models

import "testing"

func TestFormatCoordinate(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{10, "10.0"},
		{-0.5, "-0.5"},
		{51.507351, "51.507351"},
		{0, "0.0"},
	}

	for _, tt := range tests {
		if got := FormatCoordinate(tt.in); got != tt.want {
			t.Errorf("FormatCoordinate(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestLocationTable(t *testing.T) {
	table := LocationTable([]LocationAggregate{
		{Latitude: 10, Longitude: 20, TotalAccidents: 1, Fatal: 1, SeverityScore: 3},
	})

	if table.Name != TableLocation {
		t.Errorf("Name = %s, want %s", table.Name, TableLocation)
	}

	if len(table.Columns) != 7 {
		t.Fatalf("Columns = %d, want 7", len(table.Columns))
	}

	want := []string{"10.0", "20.0", "1", "1", "0", "0", "3"}
	for i, v := range want {
		if table.Rows[0][i] != v {
			t.Errorf("Rows[0][%d] = %s, want %s", i, table.Rows[0][i], v)
		}
	}
}

func TestTimeAndVehicleTables(t *testing.T) {
	tt := TimeTable([]TimeAggregate{{TimeBucket: BucketMorning, SeverityLabel: LabelFatal, TotalAccidents: 4}})
	if tt.Rows[0][0] != BucketMorning || tt.Rows[0][2] != "4" {
		t.Errorf("TimeTable row = %v", tt.Rows[0])
	}

	vt := VehicleTable([]VehicleAggregate{{DominantVehicleType: "Car", SeverityLabel: LabelSlight, TotalAccidents: 2}})
	if vt.Columns[0] != "dominant_vehicle_type" || vt.Rows[0][1] != LabelSlight {
		t.Errorf("VehicleTable = %v %v", vt.Columns, vt.Rows[0])
	}
}
