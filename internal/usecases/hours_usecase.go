package usecases

import (
	"log"
	"sort"
	"time"

	"github.com/dmejia/plant-bot/internal/entities"
	"github.com/dmejia/plant-bot/internal/repository"
	"github.com/dmejia/plant-bot/internal/validation"
)

// DefaultHoursGoal is the community-service hours target when none is
// configured.
const DefaultHoursGoal = 120

// HoursUseCase handles community-service hour tracking against a fixed goal
type HoursUseCase struct {
	repo repository.RecordsRepository
	goal float64
}

// NewHoursUseCase creates a new hours use case. A non-positive goal falls
// back to the default.
func NewHoursUseCase(repo repository.RecordsRepository, goal float64) *HoursUseCase {
	if goal <= 0 {
		goal = DefaultHoursGoal
	}
	return &HoursUseCase{repo: repo, goal: goal}
}

// Goal returns the configured hours target
func (uc *HoursUseCase) Goal() float64 {
	return uc.goal
}

// HoursSummary reports a user's hour entries against the goal
type HoursSummary struct {
	Entries   []entities.HourEntry // Sorted by date ascending
	Total     float64
	Goal      float64
	Remaining float64 // Zero once the goal is met
	Completed bool
}

// LogResult describes a newly logged amount of hours
type LogResult struct {
	Date    string
	Hours   float64
	Summary HoursSummary
}

// Log validates and records hours for the given date, accumulating into an
// existing entry for that date if one exists. An empty rawDate logs for
// today.
func (uc *HoursUseCase) Log(userID int64, rawHours, rawDate string, today time.Time) (LogResult, error) {
	hours, err := validation.Hours(rawHours)
	if err != nil {
		return LogResult{}, err
	}

	date := today.Format(entities.DateLayout)
	if rawDate != "" {
		parsed, err := validation.RecentDate(rawDate, today)
		if err != nil {
			return LogResult{}, err
		}
		date = parsed.Format(entities.DateLayout)
	}

	entries := uc.repo.Hours(userID)
	found := false
	for i := range entries {
		if entries[i].Date == date {
			entries[i].Hours += hours
			found = true
			break
		}
	}
	if !found {
		entries = append(entries, entities.HourEntry{Date: date, Hours: hours})
	}

	uc.repo.SetHours(userID, entries)
	uc.persist()

	return LogResult{
		Date:    date,
		Hours:   hours,
		Summary: uc.summarize(entries),
	}, nil
}

// Summary lists the user's hour entries sorted by date with the running
// total against the goal.
func (uc *HoursUseCase) Summary(userID int64) (HoursSummary, error) {
	entries := uc.repo.Hours(userID)
	if len(entries) == 0 {
		return HoursSummary{}, validation.Errorf("You haven't registered any hours yet.")
	}
	return uc.summarize(entries), nil
}

// Delete subtracts hours from the entry for the given date, removing the
// entry entirely when the subtraction would zero or underflow it.
func (uc *HoursUseCase) Delete(userID int64, rawHours, rawDate string, today time.Time) (HoursSummary, error) {
	hours, err := validation.Hours(rawHours)
	if err != nil {
		return HoursSummary{}, err
	}
	parsed, err := validation.Date(rawDate, today)
	if err != nil {
		return HoursSummary{}, err
	}
	date := parsed.Format(entities.DateLayout)

	entries := uc.repo.Hours(userID)
	found := false
	for i := range entries {
		if entries[i].Date != date {
			continue
		}
		found = true
		if entries[i].Hours <= hours {
			entries = append(entries[:i], entries[i+1:]...)
		} else {
			entries[i].Hours -= hours
		}
		break
	}
	if !found {
		return HoursSummary{}, validation.Errorf("No hours registered for %s.", date)
	}

	uc.repo.SetHours(userID, entries)
	uc.persist()
	return uc.summarize(entries), nil
}

func (uc *HoursUseCase) summarize(entries []entities.HourEntry) HoursSummary {
	sorted := append([]entities.HourEntry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	total := 0.0
	for _, entry := range sorted {
		total += entry.Hours
	}

	summary := HoursSummary{
		Entries: sorted,
		Total:   total,
		Goal:    uc.goal,
	}
	if total >= uc.goal {
		summary.Completed = true
	} else {
		summary.Remaining = uc.goal - total
	}
	return summary
}

func (uc *HoursUseCase) persist() {
	if err := uc.repo.Save(); err != nil {
		log.Printf("Failed to persist records: %v", err)
	}
}
