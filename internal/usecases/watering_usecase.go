package usecases

import (
	"log"
	"time"

	"github.com/dmejia/plant-bot/internal/entities"
	"github.com/dmejia/plant-bot/internal/repository"
	"github.com/dmejia/plant-bot/internal/validation"
)

// DefaultFrequencyDays is used when /water is issued without a frequency
const DefaultFrequencyDays = 3

// projectedDates is how many upcoming watering dates a consult reports
const projectedDates = 3

// WateringUseCase handles watering schedules and reminders
type WateringUseCase struct {
	repo repository.RecordsRepository
}

// NewWateringUseCase creates a new watering use case
func NewWateringUseCase(repo repository.RecordsRepository) *WateringUseCase {
	return &WateringUseCase{repo: repo}
}

// ConfigureResult describes a created or overwritten watering config
type ConfigureResult struct {
	Plant             string
	FrequencyDays     int
	LastWatered       string
	Reconfigured      bool
	PreviousFrequency int
}

// ConsultResult is the computed watering state of a plant plus its
// next projected watering dates.
type ConsultResult struct {
	Plant         string
	FrequencyDays int
	LastWatered   string
	Status        entities.WateringStatus
	NextDates     []string
}

// NotifyFunc delivers a watering reminder to one user
type NotifyFunc func(userID int64, plant string) error

// ComputeWateringStatus evaluates a watering config against the given
// reference date. It is pure: the same config and date always produce the
// same status.
func ComputeWateringStatus(cfg entities.WateringConfig, today time.Time) (entities.WateringStatus, error) {
	lastWatered, err := time.Parse(entities.DateLayout, cfg.LastWatered)
	if err != nil {
		return entities.WateringStatus{}, validation.Errorf("Watering data is corrupt. Configure it again with /water.")
	}

	daysSince := daysBetween(lastWatered, today)
	daysUntilNext := cfg.FrequencyDays - daysSince

	status := entities.WateringStatus{
		DaysSince:     daysSince,
		DaysUntilNext: daysUntilNext,
	}
	switch {
	case daysUntilNext > 0:
		status.State = entities.WateringOK
	case daysUntilNext == 0:
		status.State = entities.WateringDue
	default:
		status.State = entities.WateringOverdue
	}
	return status, nil
}

// Configure sets or overwrites a plant's watering schedule, recording
// today as the last watering. An empty rawFrequency selects the default.
func (uc *WateringUseCase) Configure(userID int64, rawName, rawFrequency string, today time.Time) (ConfigureResult, error) {
	plant, err := uc.registeredPlant(userID, rawName)
	if err != nil {
		return ConfigureResult{}, err
	}

	frequency := DefaultFrequencyDays
	if rawFrequency != "" {
		if frequency, err = validation.Frequency(rawFrequency); err != nil {
			return ConfigureResult{}, err
		}
	}

	result := ConfigureResult{
		Plant:         plant,
		FrequencyDays: frequency,
		LastWatered:   today.Format(entities.DateLayout),
	}
	if previous, ok := uc.repo.Watering(userID, plant); ok {
		result.Reconfigured = true
		result.PreviousFrequency = previous.FrequencyDays
	}

	uc.repo.SetWatering(userID, plant, entities.WateringConfig{
		FrequencyDays: frequency,
		LastWatered:   result.LastWatered,
	})
	uc.persist()
	return result, nil
}

// Consult reports a plant's watering status and its next projected
// watering dates, spaced frequency days apart from the computed next date.
func (uc *WateringUseCase) Consult(userID int64, rawName string, today time.Time) (ConsultResult, error) {
	plant, cfg, err := uc.configuredPlant(userID, rawName)
	if err != nil {
		return ConsultResult{}, err
	}

	status, err := ComputeWateringStatus(cfg, today)
	if err != nil {
		return ConsultResult{}, err
	}

	lastWatered, _ := time.Parse(entities.DateLayout, cfg.LastWatered)
	next := lastWatered.AddDate(0, 0, cfg.FrequencyDays)
	dates := make([]string, 0, projectedDates)
	for i := 0; i < projectedDates; i++ {
		dates = append(dates, next.Format(entities.DateLayout))
		next = next.AddDate(0, 0, cfg.FrequencyDays)
	}

	return ConsultResult{
		Plant:         plant,
		FrequencyDays: cfg.FrequencyDays,
		LastWatered:   cfg.LastWatered,
		Status:        status,
		NextDates:     dates,
	}, nil
}

// ChangeLastWatered overwrites the recorded last-watering date
func (uc *WateringUseCase) ChangeLastWatered(userID int64, rawName, rawDate string, today time.Time) (string, string, error) {
	plant, cfg, err := uc.configuredPlant(userID, rawName)
	if err != nil {
		return "", "", err
	}

	date, err := validation.RecentDate(rawDate, today)
	if err != nil {
		return "", "", err
	}

	cfg.LastWatered = date.Format(entities.DateLayout)
	uc.repo.SetWatering(userID, plant, cfg)
	uc.persist()
	return plant, cfg.LastWatered, nil
}

// ChangeFrequency overwrites the recorded watering frequency only
func (uc *WateringUseCase) ChangeFrequency(userID int64, rawName, rawFrequency string) (string, int, error) {
	plant, cfg, err := uc.configuredPlant(userID, rawName)
	if err != nil {
		return "", 0, err
	}

	frequency, err := validation.Frequency(rawFrequency)
	if err != nil {
		return "", 0, err
	}

	cfg.FrequencyDays = frequency
	uc.repo.SetWatering(userID, plant, cfg)
	uc.persist()
	return plant, frequency, nil
}

// SweepReminders scans every user's watering configs and notifies each
// plant whose next watering date has arrived, then advances the stored
// date to today so the next tick stays quiet. Malformed entries are
// skipped and a failed delivery never aborts the sweep; the date is only
// advanced after a successful delivery. Returns the number of reminders
// sent.
func (uc *WateringUseCase) SweepReminders(today time.Time, notify NotifyFunc) int {
	notified := 0
	todayStr := today.Format(entities.DateLayout)

	for userID, configs := range uc.repo.AllWatering() {
		for plant, cfg := range configs {
			if cfg.FrequencyDays <= 0 {
				continue
			}
			lastWatered, err := time.Parse(entities.DateLayout, cfg.LastWatered)
			if err != nil {
				continue
			}

			next := lastWatered.AddDate(0, 0, cfg.FrequencyDays)
			if next.After(dateOnly(today)) {
				continue
			}

			if err := notify(userID, plant); err != nil {
				log.Printf("Failed to deliver reminder for '%s' to user %d: %v", plant, userID, err)
				continue
			}

			cfg.LastWatered = todayStr
			uc.repo.SetWatering(userID, plant, cfg)
			uc.persist()
			notified++
		}
	}
	return notified
}

// registeredPlant resolves input to a registered plant name
func (uc *WateringUseCase) registeredPlant(userID int64, rawName string) (string, error) {
	name, err := validation.PlantName(rawName)
	if err != nil {
		return "", err
	}
	return validation.PlantRegistered(name, uc.repo.Plants(userID))
}

// configuredPlant resolves input to a registered plant that also carries a
// well-formed watering config.
func (uc *WateringUseCase) configuredPlant(userID int64, rawName string) (string, entities.WateringConfig, error) {
	plant, err := uc.registeredPlant(userID, rawName)
	if err != nil {
		return "", entities.WateringConfig{}, err
	}

	cfg, ok := uc.repo.Watering(userID, plant)
	if !ok {
		return "", entities.WateringConfig{}, validation.Errorf(
			"No watering schedule recorded for '%s'. Use /water <name> [days] to set one.", plant)
	}
	if err := validation.WateringShape(plant, cfg); err != nil {
		return "", entities.WateringConfig{}, err
	}
	return plant, cfg, nil
}

func (uc *WateringUseCase) persist() {
	if err := uc.repo.Save(); err != nil {
		log.Printf("Failed to persist records: %v", err)
	}
}

func daysBetween(from, to time.Time) int {
	return int(dateOnly(to).Sub(dateOnly(from)).Hours() / 24)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
