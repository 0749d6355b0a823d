package utils

import "testing"

func TestStringHelper_IsNull(t *testing.T) {
	h := NewStringHelper()

	for _, v := range []string{"", "  ", "NA", "NaN", "null", "None", "<NA>", " #N/A "} {
		if !h.IsNull(v) {
			t.Errorf("IsNull(%q) = false, want true", v)
		}
	}

	for _, v := range []string{"0", "Car", "na-ish", "1"} {
		if h.IsNull(v) {
			t.Errorf("IsNull(%q) = true, want false", v)
		}
	}
}

func TestStringHelper_CanonicalColumn(t *testing.T) {
	h := NewStringHelper()

	tests := []struct {
		in   string
		want string
	}{
		{"Accident ID", "accident_id"},
		{"  Accident   Date ", "accident_date"},
		{"latitude", "latitude"},
		{"\ufeffVehicle_Type", "vehicle_type"},
	}

	for _, tt := range tests {
		if got := h.CanonicalColumn(tt.in); got != tt.want {
			t.Errorf("CanonicalColumn(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStringHelper_NormalizeWhitespace(t *testing.T) {
	h := NewStringHelper()
	if got := h.NormalizeWhitespace("  Motor   cycle "); got != "Motor cycle" {
		t.Errorf("NormalizeWhitespace = %q, want %q", got, "Motor cycle")
	}
}

func TestStringHelper_CanonicalID(t *testing.T) {
	h := NewStringHelper()

	tests := []struct {
		in   string
		want string
	}{
		{"7", "7"},
		{" 7 ", "7"},
		{"7.0", "7"},
		{"7.5", "7.5"},
		{"ACC-001", "ACC-001"},
		{"2e3", "2000"},
	}

	for _, tt := range tests {
		if got := h.CanonicalID(tt.in); got != tt.want {
			t.Errorf("CanonicalID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
