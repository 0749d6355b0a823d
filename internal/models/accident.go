// Package models defines the record and table types that flow through the report pipeline.
package models

import (
	"fmt"
	"time"
)

// RawRecord is one row of a tabular source keyed by its column header.
type RawRecord map[string]string

// ClockTime is a time of day with minute resolution.
type ClockTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// String renders the clock time as HH:MM.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// NormalizedAccident is an accident row with canonical column names and parsed
// temporal fields. Mandatory fields are still raw text at this point.
type NormalizedAccident struct {
	Row          int        `json:"row"`
	Fields       RawRecord  `json:"fields"`
	AccidentDate *time.Time `json:"accidentDate,omitempty"`
	AccidentTime *ClockTime `json:"accidentTime,omitempty"`
}

// Accident is a cleaned accident record, progressively filled in by the enricher.
type Accident struct {
	AccidentID   string     `json:"accidentId"`
	Latitude     float64    `json:"latitude"`
	Longitude    float64    `json:"longitude"`
	Severity     int        `json:"severity"`
	AccidentDate *time.Time `json:"accidentDate,omitempty"`
	AccidentTime *ClockTime `json:"accidentTime,omitempty"`

	DayOfWeek     string `json:"dayOfWeek,omitempty"`
	HourOfDay     *int   `json:"hourOfDay,omitempty"`
	TimeBucket    string `json:"timeBucket"`
	SeverityLabel string `json:"severityLabel"`

	VehicleCount        int    `json:"vehicleCount"`
	DominantVehicleType string `json:"dominantVehicleType"`
}
