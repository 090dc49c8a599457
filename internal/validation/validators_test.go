package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmejia/plant-bot/internal/entities"
)

// fixed reference date for the date-relative rules
var testNow = time.Date(2024, 6, 15, 12, 30, 0, 0, time.UTC)

func TestPlantName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"simple name", "Monstera", "Monstera", false},
		{"trims whitespace", "  Ficus  ", "Ficus", false},
		{"accented letters", "Cáctus señorial", "Cáctus señorial", false},
		{"digits hyphen underscore", "Aloe-Vera_2", "Aloe-Vera_2", false},
		{"empty", "", "", true},
		{"only spaces", "   ", "", true},
		{"too long", strings.Repeat("a", 51), "", true},
		{"exactly max length", strings.Repeat("a", 50), strings.Repeat("a", 50), false},
		{"punctuation rejected", "Rose!", "", true},
		{"emoji rejected", "🌵", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PlantName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("PlantName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("PlantName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestHours(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"2.5", 2.5, false},
		{"24", 24, false},
		{" 8 ", 8, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"24.5", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := Hours(tt.input)
		if (err != nil) != tt.wantErr {
			t.Fatalf("Hours(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("Hours(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestMeasurement(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"25.5", 25.5, false},
		{"1000", 1000, false},
		{"0.1", 0.1, false},
		{"0", 0, true},
		{"-5", 0, true},
		{"1000.1", 0, true},
		{"tall", 0, true},
	}

	for _, tt := range tests {
		got, err := Measurement(tt.input)
		if (err != nil) != tt.wantErr {
			t.Fatalf("Measurement(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("Measurement(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFrequency(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"7", 7, false},
		{"1", 1, false},
		{"365", 365, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"366", 0, true},
		{"3.5", 0, true},
		{"weekly", 0, true},
	}

	for _, tt := range tests {
		got, err := Frequency(tt.input)
		if (err != nil) != tt.wantErr {
			t.Fatalf("Frequency(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("Frequency(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"past date", "2024-01-15", false},
		{"today", "2024-06-15", false},
		{"tomorrow rejected", "2024-06-16", true},
		{"wrong format", "15/06/2024", true},
		{"wrong format short year", "24-06-15", true},
		{"garbage", "yesterday", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Date(tt.input, testNow)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Date(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestRecentDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"recent date", "2024-06-01", false},
		{"exactly two years back", "2022-06-15", false},
		{"just over two years back", "2022-06-14", true},
		{"future rejected", "2024-07-01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RecentDate(tt.input, testNow)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RecentDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestMeasurementIndex(t *testing.T) {
	tests := []struct {
		input   string
		max     int
		want    int
		wantErr bool
	}{
		{"1", 3, 1, false},
		{"3", 3, 3, false},
		{"0", 3, 0, true},
		{"4", 3, 0, true},
		{"-1", 3, 0, true},
		{"two", 3, 0, true},
		{"", 3, 0, true},
	}

	for _, tt := range tests {
		got, err := MeasurementIndex(tt.input, tt.max)
		if (err != nil) != tt.wantErr {
			t.Fatalf("MeasurementIndex(%q, %d) error = %v, wantErr %v", tt.input, tt.max, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("MeasurementIndex(%q, %d) = %d, want %d", tt.input, tt.max, got, tt.want)
		}
	}
}

func TestPlantRegistered(t *testing.T) {
	plants := []string{"Monstera", "Cáctus"}

	// Exact match returns the stored form
	got, err := PlantRegistered("Monstera", plants)
	if err != nil {
		t.Fatalf("PlantRegistered failed for exact match: %v", err)
	}
	if got != "Monstera" {
		t.Errorf("PlantRegistered = %q, want %q", got, "Monstera")
	}

	// Case-insensitive match still returns the canonical stored form
	got, err = PlantRegistered("monstera", plants)
	if err != nil {
		t.Fatalf("PlantRegistered failed for case-insensitive match: %v", err)
	}
	if got != "Monstera" {
		t.Errorf("PlantRegistered = %q, want canonical %q", got, "Monstera")
	}

	// Unknown plant lists the registered ones in the message
	_, err = PlantRegistered("Ficus", plants)
	if err == nil {
		t.Fatal("PlantRegistered accepted an unknown plant")
	}
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if !strings.Contains(vErr.Message, "Monstera") {
		t.Errorf("error message should list registered plants, got %q", vErr.Message)
	}

	// No plants at all produces the registration hint instead
	_, err = PlantRegistered("Ficus", nil)
	if err == nil {
		t.Fatal("PlantRegistered accepted a plant for a user with none")
	}
}

func TestWateringShape(t *testing.T) {
	valid := entities.WateringConfig{FrequencyDays: 7, LastWatered: "2024-06-01"}
	if err := WateringShape("Monstera", valid); err != nil {
		t.Errorf("WateringShape rejected a valid config: %v", err)
	}

	if err := WateringShape("Monstera", entities.WateringConfig{FrequencyDays: 0, LastWatered: "2024-06-01"}); err == nil {
		t.Error("WateringShape accepted a zero frequency")
	}
	if err := WateringShape("Monstera", entities.WateringConfig{FrequencyDays: 7, LastWatered: "not-a-date"}); err == nil {
		t.Error("WateringShape accepted an unparsable date")
	}
}
