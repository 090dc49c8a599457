package api

import (
	"strings"
	"testing"

	"github.com/dmejia/plant-bot/internal/entities"
	"github.com/dmejia/plant-bot/internal/usecases"
)

func TestFormatHours(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{2.5, "2.5"},
		{2, "2"},
		{2.25, "2.25"},
		{120, "120"},
		{0.5, "0.5"},
	}
	for _, tt := range tests {
		if got := formatHours(tt.hours); got != tt.want {
			t.Errorf("formatHours(%v) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}

func TestFormatConsult(t *testing.T) {
	result := usecases.ConsultResult{
		Plant:         "Monstera",
		FrequencyDays: 7,
		LastWatered:   "2024-06-05",
		Status: entities.WateringStatus{
			State:         entities.WateringOverdue,
			DaysSince:     10,
			DaysUntilNext: -3,
		},
		NextDates: []string{"2024-06-12", "2024-06-19", "2024-06-26"},
	}

	text := formatConsult(result)
	if !strings.Contains(text, "overdue by 3 day(s)") {
		t.Errorf("overdue consult missing the days-late count: %q", text)
	}
	if !strings.Contains(text, "• 2024-06-12") || !strings.Contains(text, "• 2024-06-26") {
		t.Errorf("consult missing projected dates: %q", text)
	}

	result.Status = entities.WateringStatus{State: entities.WateringDue, DaysSince: 7, DaysUntilNext: 0}
	if text := formatConsult(result); !strings.Contains(text, "due today") {
		t.Errorf("due consult missing the due-today line: %q", text)
	}

	result.Status = entities.WateringStatus{State: entities.WateringOK, DaysSince: 2, DaysUntilNext: 5}
	if text := formatConsult(result); !strings.Contains(text, "Next watering in 5 day(s)") {
		t.Errorf("ok consult missing the countdown: %q", text)
	}
}

func TestFormatHoursSummary(t *testing.T) {
	summary := usecases.HoursSummary{
		Entries: []entities.HourEntry{
			{Date: "2024-06-01", Hours: 2.5},
			{Date: "2024-06-10", Hours: 3},
		},
		Total:     5.5,
		Goal:      120,
		Remaining: 114.5,
	}

	text := formatHoursSummary(summary)
	if !strings.Contains(text, "2024-06-01: 2.5 hours") {
		t.Errorf("summary missing an entry line: %q", text)
	}
	if !strings.Contains(text, "Total: 5.5 hours") {
		t.Errorf("summary missing the total: %q", text)
	}
	if !strings.Contains(text, "114.5 more hours") {
		t.Errorf("summary missing the remaining hours: %q", text)
	}

	summary.Remaining = 0
	summary.Completed = true
	if text := formatHoursSummary(summary); !strings.Contains(text, "completed the community service") {
		t.Errorf("completed summary missing the celebration: %q", text)
	}
}
