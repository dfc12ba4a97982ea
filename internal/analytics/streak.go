package analytics

import (
	"sort"
	"time"
)

// Streak returns the number of consecutive days with at least one activity,
// walking backward from today with zero gap: the most recent activity must be
// today itself for the streak to be nonzero. This matches the shipped app's
// behavior (an entry yesterday but none today reads as a streak of 0).
func Streak(dates []time.Time, today time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	// Deduplicate to calendar days, ascending.
	seen := make(map[time.Time]struct{}, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := dayOf(d)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	todayDay := dayOf(today)
	streak := 0
	for i := len(days) - 1; i >= 0; i-- {
		daysDiff := int(todayDay.Sub(days[i]).Hours() / 24)
		if daysDiff != streak {
			break
		}
		streak++
	}
	return streak
}
