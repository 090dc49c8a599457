// Package entities contains the core domain objects for the plant bot
package entities

// DateLayout is the date format used everywhere in the bot: stored records,
// user-supplied dates and reply messages.
const DateLayout = "2006-01-02"

// Measurement represents a single recorded height for a plant
type Measurement struct {
	Height float64 `json:"height"` // Height in cm
	Date   string  `json:"date"`   // Date the measurement was taken (YYYY-MM-DD)
}

// WateringConfig holds the watering schedule recorded for a plant
type WateringConfig struct {
	FrequencyDays int    `json:"frequency_days"` // How often the plant is watered, in days
	LastWatered   string `json:"last_watered"`   // Date of the last watering (YYYY-MM-DD)
}

// HourEntry records community-service hours accumulated on one date.
// A user has at most one entry per distinct date.
type HourEntry struct {
	Date  string  `json:"date"`  // Date the hours were served (YYYY-MM-DD)
	Hours float64 `json:"hours"` // Accumulated hours for that date
}

// Watering states derived from a plant's frequency and elapsed time
const (
	WateringOK      = "ok"
	WateringDue     = "due"
	WateringOverdue = "overdue"
)

// WateringStatus is the computed watering state of a plant evaluated
// against a reference date
type WateringStatus struct {
	State         string // ok, due or overdue
	DaysSince     int    // Days elapsed since the last watering
	DaysUntilNext int    // Days until the next watering; negative when overdue
}
