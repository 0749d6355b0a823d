package models

// Vehicle is one vehicle involved in an accident. Empty strings stand for null values.
type Vehicle struct {
	VehicleID   string `json:"vehicleId"`
	AccidentID  string `json:"accidentId"`
	VehicleType string `json:"vehicleType"`
}
