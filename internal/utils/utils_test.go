package utils

import "testing"

func TestMakeMap(t *testing.T) {
	m := MakeMap("traveler_id", "42")
	if len(m) != 1 || m["traveler_id"] != "42" {
		t.Errorf("Expected a single traveler_id entry, got %v", m)
	}
}

func TestFormatMiles(t *testing.T) {
	tests := []struct {
		miles    float64
		expected string
	}{
		{0, "0.00"},
		{10, "10.00"},
		{774.5167, "774.52"},
	}
	for _, tt := range tests {
		if got := FormatMiles(tt.miles); got != tt.expected {
			t.Errorf("FormatMiles(%v) = %s, want %s", tt.miles, got, tt.expected)
		}
	}
}
