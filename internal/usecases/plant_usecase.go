// Package usecases contains the application's business logic
package usecases

import (
	"log"
	"strings"
	"time"

	"github.com/dmejia/plant-bot/internal/entities"
	"github.com/dmejia/plant-bot/internal/repository"
	"github.com/dmejia/plant-bot/internal/validation"
)

// PlantUseCase handles registration, measurements and deletion of plants
type PlantUseCase struct {
	repo repository.RecordsRepository
}

// NewPlantUseCase creates a new plant use case
func NewPlantUseCase(repo repository.RecordsRepository) *PlantUseCase {
	return &PlantUseCase{repo: repo}
}

// MeasurementResult describes a newly recorded measurement
type MeasurementResult struct {
	Plant       string
	Height      float64
	Date        string
	Total       int // Measurements recorded for the plant, including this one
	HasPrevious bool
	Delta       float64 // Height change vs the previous measurement
}

// PlantHeight is the latest recorded height for one plant
type PlantHeight struct {
	Plant          string
	HasMeasurement bool
	Height         float64
	Date           string
}

// Register validates and stores a new plant name for the user.
// Re-registering an existing name, compared case-insensitively, is
// rejected rather than creating a second entry.
func (uc *PlantUseCase) Register(userID int64, rawName string) (string, error) {
	name, err := validation.PlantName(rawName)
	if err != nil {
		return "", err
	}

	plants := uc.repo.Plants(userID)
	for _, plant := range plants {
		if strings.EqualFold(plant, name) {
			return "", validation.Errorf("The plant '%s' is already registered.", plant)
		}
	}

	uc.repo.SetPlants(userID, append(plants, name))
	uc.persist()
	return name, nil
}

// List returns the user's registered plants in insertion order
func (uc *PlantUseCase) List(userID int64) []string {
	return uc.repo.Plants(userID)
}

// SelectPlant resolves user input to a registered plant's canonical name
func (uc *PlantUseCase) SelectPlant(userID int64, input string) (string, error) {
	return validation.PlantRegistered(input, uc.repo.Plants(userID))
}

// Delete removes every plant matching the given name, case-insensitively,
// along with its measurements and watering config. It returns the
// canonical name and the number of plant entries removed.
func (uc *PlantUseCase) Delete(userID int64, rawName string) (string, int, error) {
	name, err := validation.PlantName(rawName)
	if err != nil {
		return "", 0, err
	}

	plants := uc.repo.Plants(userID)
	canonical, err := validation.PlantRegistered(name, plants)
	if err != nil {
		return "", 0, err
	}

	var kept []string
	removed := 0
	for _, plant := range plants {
		if strings.EqualFold(plant, canonical) {
			removed++
			continue
		}
		kept = append(kept, plant)
	}

	uc.repo.SetPlants(userID, kept)
	uc.repo.RemoveMeasurements(userID, canonical)
	uc.repo.RemoveWatering(userID, canonical)
	uc.persist()
	return canonical, removed, nil
}

// Measurements returns the recorded measurements for a plant
func (uc *PlantUseCase) Measurements(userID int64, plant string) []entities.Measurement {
	return uc.repo.Measurements(userID, plant)
}

// RecordMeasurement validates and appends a measurement dated today and
// reports the growth delta against the previous one.
func (uc *PlantUseCase) RecordMeasurement(userID int64, plant, rawHeight string, today time.Time) (MeasurementResult, error) {
	height, err := validation.Measurement(rawHeight)
	if err != nil {
		return MeasurementResult{}, err
	}

	measurements := uc.repo.Measurements(userID, plant)
	result := MeasurementResult{
		Plant:  plant,
		Height: height,
		Date:   today.Format(entities.DateLayout),
		Total:  len(measurements) + 1,
	}
	if len(measurements) > 0 {
		result.HasPrevious = true
		result.Delta = height - measurements[len(measurements)-1].Height
	}

	measurements = append(measurements, entities.Measurement{Height: height, Date: result.Date})
	uc.repo.SetMeasurements(userID, plant, measurements)
	uc.persist()
	return result, nil
}

// LatestHeights reports the most recent measurement for each of the
// user's plants.
func (uc *PlantUseCase) LatestHeights(userID int64) ([]PlantHeight, error) {
	plants := uc.repo.Plants(userID)
	if err := validation.UserHasPlants(plants); err != nil {
		return nil, err
	}

	heights := make([]PlantHeight, 0, len(plants))
	for _, plant := range plants {
		entry := PlantHeight{Plant: plant}
		if measurements := uc.repo.Measurements(userID, plant); len(measurements) > 0 {
			latest := measurements[len(measurements)-1]
			entry.HasMeasurement = true
			entry.Height = latest.Height
			entry.Date = latest.Date
		}
		heights = append(heights, entry)
	}
	return heights, nil
}

// DeleteMeasurement removes one measurement by 1-based index and returns it
func (uc *PlantUseCase) DeleteMeasurement(userID int64, plant, rawIndex string) (entities.Measurement, error) {
	measurements := uc.repo.Measurements(userID, plant)
	if len(measurements) == 0 {
		return entities.Measurement{}, validation.Errorf("The plant '%s' has no measurements recorded.", plant)
	}

	index, err := validation.MeasurementIndex(rawIndex, len(measurements))
	if err != nil {
		return entities.Measurement{}, err
	}

	removed := measurements[index-1]
	measurements = append(measurements[:index-1], measurements[index:]...)
	uc.repo.SetMeasurements(userID, plant, measurements)
	uc.persist()
	return removed, nil
}

// DeleteAllUserData removes every record the user has in the bot
func (uc *PlantUseCase) DeleteAllUserData(userID int64) {
	uc.repo.RemoveUser(userID)
	uc.persist()
}

// persist flushes the records to disk. On failure the in-memory mutation
// is kept; memory and disk may diverge until the next successful save.
func (uc *PlantUseCase) persist() {
	if err := uc.repo.Save(); err != nil {
		log.Printf("Failed to persist records: %v", err)
	}
}
