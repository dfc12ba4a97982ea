package analytics

import (
	"testing"
	"time"
)

var pipeNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func pipelineFixture() []Reflection {
	mk := func(id, date string, confidence int, created time.Time, learnings string) Reflection {
		return Reflection{
			ID:              id,
			UserID:          "u1",
			BootcampDate:    date,
			KeyLearnings:    learnings,
			ConfidenceLevel: confidence,
			CreatedAt:       created,
		}
	}
	return []Reflection{
		mk("a", "2025-03-14", 9, pipeNow.Add(-1*time.Hour), "docker networking deep dive"),
		mk("b", "2025-03-01", 3, pipeNow.Add(-48*time.Hour), "struggled with kubernetes"),
		mk("c", "2024-11-20", 6, pipeNow.Add(-72*time.Hour), "sql joins and indexes"),
		mk("d", "2025-03-13", 7, pipeNow.Add(-24*time.Hour), "docker compose files"),
	}
}

func TestFilterReflections_SearchCaseInsensitive(t *testing.T) {
	got, total := FilterReflections(pipelineFixture(), ReflectionFilters{Search: "DOCKER"}, Page{}, pipeNow)
	if total != 2 {
		t.Fatalf("total = %d, expected 2", total)
	}
	for _, r := range got {
		if r.ID != "a" && r.ID != "d" {
			t.Errorf("unexpected record %q in search results", r.ID)
		}
	}
}

func TestFilterReflections_EmptySearchMatchesAll(t *testing.T) {
	_, total := FilterReflections(pipelineFixture(), ReflectionFilters{}, Page{}, pipeNow)
	if total != 4 {
		t.Errorf("total = %d, expected 4", total)
	}
}

func TestFilterReflections_DateRangePresets(t *testing.T) {
	tests := []struct {
		preset   DateRange
		expected int
	}{
		{RangeWeek, 2},    // Mar 14, Mar 13
		{RangeMonth, 3},   // + Mar 1
		{RangeQuarter, 3}, // Nov 20 still outside
		{RangeYear, 4},
		{RangeAll, 4},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			_, total := FilterReflections(pipelineFixture(), ReflectionFilters{DateRange: tt.preset}, Page{}, pipeNow)
			if total != tt.expected {
				t.Errorf("total = %d, expected %d", total, tt.expected)
			}
		})
	}
}

func TestFilterReflections_ConfidenceBands(t *testing.T) {
	tests := []struct {
		band     ConfidenceBand
		expected int
	}{
		{BandLow, 1},    // 3
		{BandMedium, 2}, // 6, 7
		{BandHigh, 1},   // 9
		{BandAll, 4},
	}

	for _, tt := range tests {
		t.Run(string(tt.band), func(t *testing.T) {
			_, total := FilterReflections(pipelineFixture(), ReflectionFilters{Confidence: tt.band}, Page{}, pipeNow)
			if total != tt.expected {
				t.Errorf("total = %d, expected %d", total, tt.expected)
			}
		})
	}
}

func TestFilterReflections_SortOrders(t *testing.T) {
	records := pipelineFixture()

	recent, _ := FilterReflections(records, ReflectionFilters{SortBy: SortRecent}, Page{}, pipeNow)
	if recent[0].ID != "a" {
		t.Errorf("recent[0] = %q, expected a", recent[0].ID)
	}

	oldest, _ := FilterReflections(records, ReflectionFilters{SortBy: SortOldest}, Page{}, pipeNow)
	if oldest[0].ID != "c" {
		t.Errorf("oldest[0] = %q, expected c", oldest[0].ID)
	}

	confident, _ := FilterReflections(records, ReflectionFilters{SortBy: SortConfidence}, Page{}, pipeNow)
	if confident[0].ConfidenceLevel != 9 {
		t.Errorf("confidence[0] = %d, expected 9", confident[0].ConfidenceLevel)
	}
}

func TestFilterReflections_Idempotent(t *testing.T) {
	f := ReflectionFilters{Search: "docker", DateRange: RangeWeek, SortBy: SortRecent}

	once, totalOnce := FilterReflections(pipelineFixture(), f, Page{}, pipeNow)
	twice, totalTwice := FilterReflections(once, f, Page{}, pipeNow)

	if totalOnce != totalTwice {
		t.Errorf("totals differ: %d vs %d", totalOnce, totalTwice)
	}
	if len(once) != len(twice) {
		t.Fatalf("lengths differ: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Errorf("position %d differs: %q vs %q", i, once[i].ID, twice[i].ID)
		}
	}
}

func TestFilterReflections_PaginationReconstructsSet(t *testing.T) {
	records := pipelineFixture()
	f := ReflectionFilters{SortBy: SortRecent}

	full, total := FilterReflections(records, f, Page{}, pipeNow)
	if total != 4 {
		t.Fatalf("total = %d, expected 4", total)
	}

	var rebuilt []Reflection
	seen := make(map[string]bool)
	for page := 1; ; page++ {
		slice, sliceTotal := FilterReflections(records, f, Page{Number: page, Size: 3}, pipeNow)
		if sliceTotal != total {
			t.Errorf("page %d total = %d, expected %d", page, sliceTotal, total)
		}
		if len(slice) == 0 {
			break
		}
		for _, r := range slice {
			if seen[r.ID] {
				t.Errorf("record %q appeared on more than one page", r.ID)
			}
			seen[r.ID] = true
		}
		rebuilt = append(rebuilt, slice...)
	}

	if len(rebuilt) != len(full) {
		t.Fatalf("rebuilt %d records, expected %d", len(rebuilt), len(full))
	}
	for i := range full {
		if rebuilt[i].ID != full[i].ID {
			t.Errorf("position %d: %q vs %q", i, rebuilt[i].ID, full[i].ID)
		}
	}
}

func TestFilterReflections_PageBeyondEnd(t *testing.T) {
	got, total := FilterReflections(pipelineFixture(), ReflectionFilters{}, Page{Number: 9, Size: 10}, pipeNow)
	if len(got) != 0 {
		t.Errorf("page beyond end should be empty, got %d records", len(got))
	}
	if total != 4 {
		t.Errorf("total = %d, expected 4 even for an empty page", total)
	}
}

func TestFilterReflections_MalformedDateDroppedWhenRangeActive(t *testing.T) {
	records := append(pipelineFixture(), Reflection{
		ID: "bad", BootcampDate: "not-a-date", ConfidenceLevel: 5, CreatedAt: pipeNow,
	})

	_, totalAll := FilterReflections(records, ReflectionFilters{DateRange: RangeAll}, Page{}, pipeNow)
	if totalAll != 5 {
		t.Errorf("RangeAll total = %d, expected 5 (no date parsing needed)", totalAll)
	}

	_, totalYear := FilterReflections(records, ReflectionFilters{DateRange: RangeYear}, Page{}, pipeNow)
	if totalYear != 4 {
		t.Errorf("RangeYear total = %d, expected 4 (malformed date excluded)", totalYear)
	}
}

func TestFilterEntries(t *testing.T) {
	entries := []Entry{
		{ID: "1", Title: "Standup notes", Content: "sprint planning", CreatedAt: pipeNow.Add(-2 * time.Hour)},
		{ID: "2", Content: "debugging goroutine leak", Tags: []string{"golang", "concurrency"}, CreatedAt: pipeNow.Add(-30 * 24 * time.Hour)},
		{ID: "3", Content: "retro thoughts", CreatedAt: pipeNow.Add(-26 * time.Hour)},
	}

	byTag, total := FilterEntries(entries, EntryFilters{Search: "golang"}, Page{}, pipeNow)
	if total != 1 || byTag[0].ID != "2" {
		t.Errorf("tag search = %v (total %d), expected entry 2", byTag, total)
	}

	_, weekTotal := FilterEntries(entries, EntryFilters{DateRange: RangeWeek}, Page{}, pipeNow)
	if weekTotal != 2 {
		t.Errorf("week total = %d, expected 2", weekTotal)
	}

	sorted, _ := FilterEntries(entries, EntryFilters{SortBy: SortOldest}, Page{}, pipeNow)
	if sorted[0].ID != "2" {
		t.Errorf("oldest first = %q, expected 2", sorted[0].ID)
	}
}
