// Package streak counts consecutive active calendar days ending today.
package streak

import (
	"sort"
	"time"
)

// FromToday is Count anchored at time.Now().
func FromToday(dates []time.Time, excludeWeekends bool) int {
	return Count(dates, time.Now(), excludeWeekends)
}

// Count returns how many consecutive days up to and including today appear
// in dates. Days are calendar days in today's location; time of day and
// duplicates are ignored. With excludeWeekends, Saturdays and Sundays are
// skipped: they neither extend nor break the streak.
//
// Dates after today are passed over without counting. The walk stops at the
// first expected day that is missing from the input.
func Count(dates []time.Time, today time.Time, excludeWeekends bool) int {
	days := distinctDaysDesc(dates, today.Location())

	streak := 0
	expected := startOfDay(today)
	i := 0
	for i < len(days) {
		if excludeWeekends && isWeekend(expected) {
			expected = expected.AddDate(0, 0, -1)
			continue
		}

		switch {
		case days[i].Equal(expected):
			streak++
			i++
		case days[i].Before(expected):
			return streak
		default:
			// future-dated entry
			i++
			continue
		}
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}

func distinctDaysDesc(dates []time.Time, loc *time.Location) []time.Time {
	seen := make(map[int64]bool, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := startOfDay(d.In(loc))
		if seen[day.Unix()] {
			continue
		}
		seen[day.Unix()] = true
		days = append(days, day)
	}
	sort.Slice(days, func(a, b int) bool { return days[a].After(days[b]) })
	return days
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
