// Package validation rejects or normalizes user-supplied command input
// before it reaches storage.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmejia/plant-bot/internal/entities"
)

// ValidationError carries a user-facing message for rejected input.
// Handlers report the message verbatim and never propagate it further.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Errorf builds a ValidationError with a formatted user-facing message
func Errorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

const maxPlantNameLen = 50

var plantNamePattern = regexp.MustCompile(`^[\p{L}\p{N} _-]+$`)

// PlantName validates and trims a plant name. Unicode letters with accents
// are permitted alongside digits, spaces, hyphens and underscores.
func PlantName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", Errorf("The plant name cannot be empty.")
	}
	if utf8.RuneCountInString(name) > maxPlantNameLen {
		return "", Errorf("The plant name cannot be longer than %d characters.", maxPlantNameLen)
	}
	if !plantNamePattern.MatchString(name) {
		return "", Errorf("The plant name can only contain letters, numbers, spaces, hyphens and underscores.")
	}
	return name, nil
}

// Hours validates a community-service hours amount
func Hours(raw string) (float64, error) {
	hours, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, Errorf("Enter a valid number of hours (example: 2.5).")
	}
	if hours <= 0 {
		return 0, Errorf("Hours must be a positive number.")
	}
	if hours > 24 {
		return 0, Errorf("You cannot register more than 24 hours per day.")
	}
	return hours, nil
}

// Measurement validates a plant height measurement in centimeters
func Measurement(raw string) (float64, error) {
	height, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, Errorf("Enter a valid measurement in centimeters (example: 25.5).")
	}
	if height <= 0 {
		return 0, Errorf("The measurement must be a positive number.")
	}
	if height > 1000 {
		return 0, Errorf("The measurement looks too large (maximum 1000 cm).")
	}
	return height, nil
}

// Frequency validates a watering frequency in days
func Frequency(raw string) (int, error) {
	frequency, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, Errorf("Enter a valid number of days (example: 7).")
	}
	if frequency <= 0 {
		return 0, Errorf("The frequency must be a positive number of days.")
	}
	if frequency > 365 {
		return 0, Errorf("The frequency cannot be more than 365 days.")
	}
	return frequency, nil
}

// Date parses a strict YYYY-MM-DD date and rejects dates after the
// reference date.
func Date(raw string, now time.Time) (time.Time, error) {
	parsed, err := time.Parse(entities.DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, Errorf("Invalid date format. Use YYYY-MM-DD (example: 2024-01-15).")
	}
	if parsed.After(dateOnly(now)) {
		return time.Time{}, Errorf("You cannot register data for future dates.")
	}
	return parsed, nil
}

// RecentDate parses a date like Date and additionally rejects dates more
// than two years before the reference date.
func RecentDate(raw string, now time.Time) (time.Time, error) {
	parsed, err := Date(raw, now)
	if err != nil {
		return time.Time{}, err
	}
	if parsed.Before(dateOnly(now).AddDate(-2, 0, 0)) {
		return time.Time{}, Errorf("The date is too old (maximum 2 years back).")
	}
	return parsed, nil
}

// MeasurementIndex validates a 1-based index into a measurement list of
// the given length.
func MeasurementIndex(raw string, max int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, Errorf("The index cannot be empty.")
	}
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, Errorf("The index must be a whole number.")
	}
	if index < 1 {
		return 0, Errorf("The index must be greater than 0.")
	}
	if index > max {
		return 0, Errorf("The index must be %d or less.", max)
	}
	return index, nil
}

// UserHasPlants checks that the user has at least one registered plant
func UserHasPlants(plants []string) error {
	if len(plants) == 0 {
		return Errorf("You don't have any plants registered. Use /register <name> first.")
	}
	return nil
}

// PlantRegistered confirms that the named plant is registered for the
// user, matching case-insensitively, and returns the canonical stored form.
func PlantRegistered(name string, plants []string) (string, error) {
	if err := UserHasPlants(plants); err != nil {
		return "", err
	}
	name = strings.TrimSpace(name)
	for _, plant := range plants {
		if strings.EqualFold(strings.TrimSpace(plant), name) {
			return strings.TrimSpace(plant), nil
		}
	}
	return "", Errorf("You don't have a plant called '%s'.\nYour registered plants: %s", name, strings.Join(plants, ", "))
}

// WateringShape checks that a stored watering config has both required
// fields in a usable form.
func WateringShape(plant string, cfg entities.WateringConfig) error {
	if cfg.FrequencyDays <= 0 {
		return Errorf("Watering data for '%s' is incomplete. Configure it again with /water.", plant)
	}
	if _, err := time.Parse(entities.DateLayout, cfg.LastWatered); err != nil {
		return Errorf("Watering data for '%s' is corrupt. Configure it again with /water.", plant)
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
