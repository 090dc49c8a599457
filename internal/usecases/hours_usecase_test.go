package usecases

import (
	"testing"
)

func TestLogHoursAccumulatesByDate(t *testing.T) {
	uc := NewHoursUseCase(newTestRepo(t), 0)

	result, err := uc.Log(testUserID, "2.5", "", testToday)
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if result.Date != "2024-06-15" {
		t.Errorf("Log dated the entry %q, want today", result.Date)
	}
	if result.Summary.Total != 2.5 {
		t.Errorf("Total = %v, want 2.5", result.Summary.Total)
	}

	// Logging again for the same date merges into one entry
	result, err = uc.Log(testUserID, "1.5", "2024-06-15", testToday)
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if len(result.Summary.Entries) != 1 {
		t.Fatalf("same-date log created %d entries, want 1", len(result.Summary.Entries))
	}
	if result.Summary.Entries[0].Hours != 4 {
		t.Errorf("merged entry = %v hours, want 4", result.Summary.Entries[0].Hours)
	}
	if result.Summary.Remaining != 116 {
		t.Errorf("Remaining = %v, want 116 against the default goal", result.Summary.Remaining)
	}
	if result.Summary.Completed {
		t.Error("4 hours reported the goal as completed")
	}
}

func TestLogHoursValidation(t *testing.T) {
	uc := NewHoursUseCase(newTestRepo(t), 0)

	if _, err := uc.Log(testUserID, "25", "", testToday); err == nil {
		t.Error("Log accepted more than 24 hours")
	}
	if _, err := uc.Log(testUserID, "0", "", testToday); err == nil {
		t.Error("Log accepted zero hours")
	}
	if _, err := uc.Log(testUserID, "2", "2024-07-01", testToday); err == nil {
		t.Error("Log accepted a future date")
	}
	if _, err := uc.Log(testUserID, "2", "2021-01-01", testToday); err == nil {
		t.Error("Log accepted a date older than two years")
	}
}

func TestHoursSummarySortsByDate(t *testing.T) {
	uc := NewHoursUseCase(newTestRepo(t), 0)

	if _, err := uc.Summary(testUserID); err == nil {
		t.Fatal("Summary succeeded for a user with no entries")
	}

	for _, entry := range []struct{ hours, date string }{
		{"3", "2024-06-10"},
		{"2", "2024-06-01"},
		{"4", "2024-06-05"},
	} {
		if _, err := uc.Log(testUserID, entry.hours, entry.date, testToday); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	summary, err := uc.Summary(testUserID)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.Total != 9 {
		t.Errorf("Total = %v, want 9", summary.Total)
	}
	wantDates := []string{"2024-06-01", "2024-06-05", "2024-06-10"}
	for i, want := range wantDates {
		if summary.Entries[i].Date != want {
			t.Errorf("Entries[%d].Date = %q, want %q", i, summary.Entries[i].Date, want)
		}
	}
}

func TestHoursGoalCompletion(t *testing.T) {
	// A small goal so completion is reachable within the 24h/day limit
	uc := NewHoursUseCase(newTestRepo(t), 10)

	result, err := uc.Log(testUserID, "6", "2024-06-10", testToday)
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if result.Summary.Completed || result.Summary.Remaining != 4 {
		t.Errorf("summary = %+v, want 4 remaining", result.Summary)
	}

	result, err = uc.Log(testUserID, "5", "2024-06-11", testToday)
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if !result.Summary.Completed || result.Summary.Remaining != 0 {
		t.Errorf("summary = %+v, want completed with 0 remaining", result.Summary)
	}
}

func TestDeleteHours(t *testing.T) {
	uc := NewHoursUseCase(newTestRepo(t), 0)

	if _, err := uc.Log(testUserID, "5", "2024-06-10", testToday); err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if _, err := uc.Log(testUserID, "3", "2024-06-12", testToday); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	// Partial deletion subtracts
	summary, err := uc.Delete(testUserID, "2", "2024-06-10", testToday)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if summary.Total != 6 {
		t.Errorf("Total after partial delete = %v, want 6", summary.Total)
	}

	// Deleting at least the remaining amount removes the entry
	summary, err = uc.Delete(testUserID, "10", "2024-06-10", testToday)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(summary.Entries) != 1 || summary.Entries[0].Date != "2024-06-12" {
		t.Errorf("entries after full delete = %v, want only 2024-06-12", summary.Entries)
	}

	// Unknown dates are reported, not silently ignored
	if _, err := uc.Delete(testUserID, "1", "2024-06-09", testToday); err == nil {
		t.Error("Delete succeeded for a date with no entry")
	}
}

func TestDeleteHoursAcceptsOldDates(t *testing.T) {
	uc := NewHoursUseCase(newTestRepo(t), 0)

	// Deletion uses the plain date rule, so entries older than the
	// two-year logging window can still be cleaned up.
	if _, err := uc.Delete(testUserID, "1", "2021-01-01", testToday); err == nil {
		t.Fatal("Delete succeeded with nothing registered")
	} else if got := err.Error(); got != "No hours registered for 2021-01-01." {
		t.Errorf("Delete error = %q, want the missing-entry message", got)
	}
}
