package analytics

import (
	"sort"
	"strings"
	"time"
)

// DateRange presets, computed relative to the injected now.
type DateRange string

const (
	RangeAll     DateRange = "all"
	RangeWeek    DateRange = "week"    // last 7 days
	RangeMonth   DateRange = "month"   // last calendar month
	RangeQuarter DateRange = "quarter" // last 3 months
	RangeYear    DateRange = "year"    // last year
)

// ConfidenceBand buckets the 1-10 confidence scale.
type ConfidenceBand string

const (
	BandAll    ConfidenceBand = "all"
	BandLow    ConfidenceBand = "low"    // <= 4
	BandMedium ConfidenceBand = "medium" // 5-7
	BandHigh   ConfidenceBand = "high"   // >= 8
)

// SortKey orders a filtered result set.
type SortKey string

const (
	SortRecent     SortKey = "recent"     // created_at descending
	SortOldest     SortKey = "oldest"     // created_at ascending
	SortConfidence SortKey = "confidence" // confidence_level descending
)

// ReflectionFilters is the full filter input for a reflection listing.
type ReflectionFilters struct {
	Search     string
	DateRange  DateRange
	Confidence ConfidenceBand
	SortBy     SortKey
}

// EntryFilters is the filter input for a journal listing. Entries carry no
// confidence score, so there is no numeric band.
type EntryFilters struct {
	Search    string
	DateRange DateRange
	SortBy    SortKey
}

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}

// cutoff returns the inclusive lower bound for a date range preset, and
// whether filtering applies at all.
func (r DateRange) cutoff(now time.Time) (time.Time, bool) {
	switch r {
	case RangeWeek:
		return now.AddDate(0, 0, -7), true
	case RangeMonth:
		return now.AddDate(0, -1, 0), true
	case RangeQuarter:
		return now.AddDate(0, -3, 0), true
	case RangeYear:
		return now.AddDate(-1, 0, 0), true
	}
	return time.Time{}, false
}

func (b ConfidenceBand) matches(confidence int) bool {
	switch b {
	case BandLow:
		return confidence <= 4
	case BandMedium:
		return confidence >= 5 && confidence <= 7
	case BandHigh:
		return confidence >= 8
	}
	return true
}

// FilterReflections applies search, date range, confidence band, sort and
// page slice in that fixed order, returning the page plus the pre-slice
// total. The whole pipeline is recomputed from scratch on every call.
func FilterReflections(records []Reflection, f ReflectionFilters, p Page, now time.Time) ([]Reflection, int) {
	filtered := make([]Reflection, 0, len(records))
	filtered = append(filtered, records...)

	// 1. Search: case-insensitive substring over the free-text fields.
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		kept := filtered[:0]
		for _, r := range filtered {
			if strings.Contains(strings.ToLower(r.KeyLearnings), term) ||
				strings.Contains(strings.ToLower(r.PracticalApplications), term) ||
				strings.Contains(strings.ToLower(r.SuccessMoment), term) ||
				strings.Contains(strings.ToLower(r.BootcampSession), term) {
				kept = append(kept, r)
			}
		}
		filtered = kept
	}

	// 2. Date range against the bootcamp date. Unparseable dates drop out
	// whenever a range is active.
	if cutoff, ok := f.DateRange.cutoff(now); ok {
		kept := filtered[:0]
		for _, r := range filtered {
			day, parsed := parseDay(r.ID, r.BootcampDate, nil)
			if parsed && !day.Before(dayOf(cutoff)) {
				kept = append(kept, r)
			}
		}
		filtered = kept
	}

	// 3. Confidence band.
	if f.Confidence != "" && f.Confidence != BandAll {
		kept := filtered[:0]
		for _, r := range filtered {
			if f.Confidence.matches(r.ConfidenceLevel) {
				kept = append(kept, r)
			}
		}
		filtered = kept
	}

	// 4. Sort.
	switch f.SortBy {
	case SortOldest:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt.Before(filtered[j].CreatedAt)
		})
	case SortConfidence:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].ConfidenceLevel > filtered[j].ConfidenceLevel
		})
	default: // SortRecent
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		})
	}

	// 5. Page slice.
	total := len(filtered)
	return slicePage(filtered, p), total
}

// FilterEntries is the journal variant of the pipeline: search matches
// title, content and tags, and the date range applies to submission time.
func FilterEntries(entries []Entry, f EntryFilters, p Page, now time.Time) ([]Entry, int) {
	filtered := make([]Entry, 0, len(entries))
	filtered = append(filtered, entries...)

	if f.Search != "" {
		term := strings.ToLower(f.Search)
		kept := filtered[:0]
		for _, e := range filtered {
			if entryMatches(e, term) {
				kept = append(kept, e)
			}
		}
		filtered = kept
	}

	if cutoff, ok := f.DateRange.cutoff(now); ok {
		kept := filtered[:0]
		for _, e := range filtered {
			if !dayOf(e.CreatedAt).Before(dayOf(cutoff)) {
				kept = append(kept, e)
			}
		}
		filtered = kept
	}

	switch f.SortBy {
	case SortOldest:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt.Before(filtered[j].CreatedAt)
		})
	default: // SortRecent; entries carry no confidence score
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		})
	}

	total := len(filtered)
	return slicePage(filtered, p), total
}

func entryMatches(e Entry, term string) bool {
	if strings.Contains(strings.ToLower(e.Title), term) ||
		strings.Contains(strings.ToLower(e.Content), term) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func slicePage[T any](items []T, p Page) []T {
	if p.Size <= 0 {
		return items
	}
	if p.Number < 1 {
		p.Number = 1
	}
	start := (p.Number - 1) * p.Size
	if start >= len(items) {
		return []T{}
	}
	end := start + p.Size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
