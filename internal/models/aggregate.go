package models

import (
	"strconv"
	"strings"
)

// LocationAggregate counts accidents at one coordinate pair.
type LocationAggregate struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	TotalAccidents int     `json:"totalAccidents"`
	Fatal          int     `json:"fatal"`
	Serious        int     `json:"serious"`
	Slight         int     `json:"slight"`
	SeverityScore  int     `json:"severityScore"`
}

// TimeAggregate counts accidents per time bucket and severity label.
type TimeAggregate struct {
	TimeBucket     string `json:"timeBucket"`
	SeverityLabel  string `json:"severityLabel"`
	TotalAccidents int    `json:"totalAccidents"`
}

// VehicleAggregate counts accidents per dominant vehicle type and severity label.
type VehicleAggregate struct {
	DominantVehicleType string `json:"dominantVehicleType"`
	SeverityLabel       string `json:"severityLabel"`
	TotalAccidents      int    `json:"totalAccidents"`
}

// Table is a finalized aggregate ready for a sink. Types holds the
// storage class of each column for sinks that keep one.
type Table struct {
	Name    string
	Columns []string
	Types   []string
	Rows    [][]string
}

// Column storage classes.
const (
	ColumnText    = "TEXT"
	ColumnInteger = "INTEGER"
	ColumnReal    = "REAL"
)

// Output table names.
const (
	TableLocation = "bi_location_agg"
	TableTime     = "bi_time_agg"
	TableVehicle  = "bi_vehicle_agg"
)

// LocationTable converts location aggregates into a Table.
func LocationTable(rows []LocationAggregate) Table {
	t := Table{
		Name:    TableLocation,
		Columns: []string{"latitude", "longitude", "total_accidents", "fatal", "serious", "slight", "severity_score"},
		Types:   []string{ColumnReal, ColumnReal, ColumnInteger, ColumnInteger, ColumnInteger, ColumnInteger, ColumnInteger},
		Rows:    make([][]string, 0, len(rows)),
	}

	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			FormatCoordinate(r.Latitude),
			FormatCoordinate(r.Longitude),
			strconv.Itoa(r.TotalAccidents),
			strconv.Itoa(r.Fatal),
			strconv.Itoa(r.Serious),
			strconv.Itoa(r.Slight),
			strconv.Itoa(r.SeverityScore),
		})
	}

	return t
}

// TimeTable converts time aggregates into a Table.
func TimeTable(rows []TimeAggregate) Table {
	t := Table{
		Name:    TableTime,
		Columns: []string{"time_bucket", "severity_label", "total_accidents"},
		Types:   []string{ColumnText, ColumnText, ColumnInteger},
		Rows:    make([][]string, 0, len(rows)),
	}

	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.TimeBucket, r.SeverityLabel, strconv.Itoa(r.TotalAccidents)})
	}

	return t
}

// VehicleTable converts vehicle aggregates into a Table.
func VehicleTable(rows []VehicleAggregate) Table {
	t := Table{
		Name:    TableVehicle,
		Columns: []string{"dominant_vehicle_type", "severity_label", "total_accidents"},
		Types:   []string{ColumnText, ColumnText, ColumnInteger},
		Rows:    make([][]string, 0, len(rows)),
	}

	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.DominantVehicleType, r.SeverityLabel, strconv.Itoa(r.TotalAccidents)})
	}

	return t
}

// FormatCoordinate writes the shortest round-trip form, keeping a ".0" on integral values.
func FormatCoordinate(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}

	return s
}
