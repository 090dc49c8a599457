// Package repository provides data access implementations
package repository

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmejia/plant-bot/internal/entities"
)

// RecordsRepository defines persistence for the per-user plant records:
// registered plants, measurements, watering configs and hour entries.
type RecordsRepository interface {
	Plants(userID int64) []string
	SetPlants(userID int64, plants []string)

	Measurements(userID int64, plant string) []entities.Measurement
	SetMeasurements(userID int64, plant string, measurements []entities.Measurement)
	RemoveMeasurements(userID int64, plant string)

	Watering(userID int64, plant string) (entities.WateringConfig, bool)
	SetWatering(userID int64, plant string, cfg entities.WateringConfig)
	RemoveWatering(userID int64, plant string)
	AllWatering() map[int64]map[string]entities.WateringConfig

	Hours(userID int64) []entities.HourEntry
	SetHours(userID int64, entries []entities.HourEntry)

	RemoveUser(userID int64)

	Load() error
	Save() error
}

// JSONRecordsRepository implements RecordsRepository over four JSON
// documents, one per mapping, each keyed by string-encoded user id.
// Saves rewrite whole files; there is no cross-file transactionality.
type JSONRecordsRepository struct {
	DataDir string

	mu           sync.RWMutex
	plants       map[int64][]string
	measurements map[int64]map[string][]entities.Measurement
	watering     map[int64]map[string]entities.WateringConfig
	hours        map[int64][]entities.HourEntry
}

// NewJSONRecordsRepository creates a repository rooted at dataDir and loads
// any existing data files.
func NewJSONRecordsRepository(dataDir string) (*JSONRecordsRepository, error) {
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %v", err)
	}

	r := &JSONRecordsRepository{DataDir: dataDir}
	if err := r.Load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *JSONRecordsRepository) plantsFile() string       { return filepath.Join(r.DataDir, "plants.json") }
func (r *JSONRecordsRepository) measurementsFile() string { return filepath.Join(r.DataDir, "measurements.json") }
func (r *JSONRecordsRepository) wateringFile() string     { return filepath.Join(r.DataDir, "watering.json") }
func (r *JSONRecordsRepository) hoursFile() string        { return filepath.Join(r.DataDir, "hours.json") }

// Load replaces the in-memory content with the persisted snapshot.
// Missing or corrupt files reset the affected mapping to empty.
func (r *JSONRecordsRepository) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	loadFile(r.plantsFile(), &r.plants)
	loadFile(r.measurementsFile(), &r.measurements)
	loadFile(r.wateringFile(), &r.watering)
	loadFile(r.hoursFile(), &r.hours)
	return nil
}

// Save serializes all four mappings to their JSON files
func (r *JSONRecordsRepository) Save() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := saveFile(r.plantsFile(), r.plants); err != nil {
		return err
	}
	if err := saveFile(r.measurementsFile(), r.measurements); err != nil {
		return err
	}
	if err := saveFile(r.wateringFile(), r.watering); err != nil {
		return err
	}
	return saveFile(r.hoursFile(), r.hours)
}

// loadFile reads a JSON object keyed by user id into dst. A missing or
// unreadable file, or one that fails to decode, resets dst to empty.
func loadFile[T any](path string, dst *map[int64]T) {
	*dst = make(map[int64]T)

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Failed to read %s, starting empty: %v", path, err)
		}
		return
	}

	decoded := make(map[int64]T)
	if err := json.Unmarshal(raw, &decoded); err != nil {
		log.Printf("Corrupt data file %s, starting empty: %v", path, err)
		return
	}
	*dst = decoded
}

func saveFile[T any](path string, data map[int64]T) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %v", path, err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %v", path, err)
	}
	return nil
}

// Plants returns the user's registered plant names in insertion order
func (r *JSONRecordsRepository) Plants(userID int64) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.plants[userID]...)
}

func (r *JSONRecordsRepository) SetPlants(userID int64, plants []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(plants) == 0 {
		delete(r.plants, userID)
		return
	}
	r.plants[userID] = append([]string(nil), plants...)
}

// Measurements returns the plant's measurements in insertion order
func (r *JSONRecordsRepository) Measurements(userID int64, plant string) []entities.Measurement {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entities.Measurement(nil), r.measurements[userID][plant]...)
}

func (r *JSONRecordsRepository) SetMeasurements(userID int64, plant string, measurements []entities.Measurement) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.measurements[userID] == nil {
		r.measurements[userID] = make(map[string][]entities.Measurement)
	}
	if len(measurements) == 0 {
		delete(r.measurements[userID], plant)
		return
	}
	r.measurements[userID][plant] = append([]entities.Measurement(nil), measurements...)
}

func (r *JSONRecordsRepository) RemoveMeasurements(userID int64, plant string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.measurements[userID], plant)
}

// Watering returns the plant's watering config, if one is recorded
func (r *JSONRecordsRepository) Watering(userID int64, plant string) (entities.WateringConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.watering[userID][plant]
	return cfg, ok
}

func (r *JSONRecordsRepository) SetWatering(userID int64, plant string, cfg entities.WateringConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.watering[userID] == nil {
		r.watering[userID] = make(map[string]entities.WateringConfig)
	}
	r.watering[userID][plant] = cfg
}

func (r *JSONRecordsRepository) RemoveWatering(userID int64, plant string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.watering[userID], plant)
}

// AllWatering returns a copy of every user's watering configs, used by the
// reminder sweep.
func (r *JSONRecordsRepository) AllWatering() map[int64]map[string]entities.WateringConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make(map[int64]map[string]entities.WateringConfig, len(r.watering))
	for userID, configs := range r.watering {
		userConfigs := make(map[string]entities.WateringConfig, len(configs))
		for plant, cfg := range configs {
			userConfigs[plant] = cfg
		}
		all[userID] = userConfigs
	}
	return all
}

// Hours returns the user's hour entries
func (r *JSONRecordsRepository) Hours(userID int64) []entities.HourEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entities.HourEntry(nil), r.hours[userID]...)
}

func (r *JSONRecordsRepository) SetHours(userID int64, entries []entities.HourEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(entries) == 0 {
		delete(r.hours, userID)
		return
	}
	r.hours[userID] = append([]entities.HourEntry(nil), entries...)
}

// RemoveUser deletes every record the user has in all four mappings
func (r *JSONRecordsRepository) RemoveUser(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.plants, userID)
	delete(r.measurements, userID)
	delete(r.watering, userID)
	delete(r.hours, userID)
}
