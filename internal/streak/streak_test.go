package streak

import (
	"testing"
	"time"
)

// monday is a fixed Monday afternoon so weekday-sensitive cases are stable.
var monday = time.Date(2026, 10, 12, 15, 30, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return monday.AddDate(0, 0, -n)
}

func TestCount(t *testing.T) {
	cases := []struct {
		name            string
		dates           []time.Time
		excludeWeekends bool
		want            int
	}{
		{"empty", nil, false, 0},
		{"three consecutive days", []time.Time{monday, daysAgo(1), daysAgo(2)}, false, 3},
		{"gap yesterday", []time.Time{monday, daysAgo(2)}, false, 1},
		{"nothing today", []time.Time{daysAgo(1), daysAgo(2)}, false, 0},
		{"unordered with duplicates", []time.Time{daysAgo(2), monday, daysAgo(1), monday.Add(-3 * time.Hour), daysAgo(1)}, false, 3},
		{"weekend gap breaks plain streak", []time.Time{monday, daysAgo(3)}, false, 1},
		{"friday plus monday skipping weekend", []time.Time{monday, daysAgo(3)}, true, 2},
		{"weekend entries ignored when excluded", []time.Time{monday, daysAgo(1), daysAgo(2), daysAgo(3)}, true, 2},
		{"future entry ignored", []time.Time{monday.AddDate(0, 0, 2), monday, daysAgo(1)}, false, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Count(tc.dates, monday, tc.excludeWeekends); got != tc.want {
				t.Errorf("Count = %d, want %d", got, tc.want)
			}
		})
	}
}

// TestCount_WeekendToday checks that a Saturday "today" with weekend
// exclusion starts counting from Friday.
func TestCount_WeekendToday(t *testing.T) {
	saturday := time.Date(2026, 10, 10, 9, 0, 0, 0, time.UTC)
	friday := saturday.AddDate(0, 0, -1)
	thursday := saturday.AddDate(0, 0, -2)

	if got := Count([]time.Time{friday, thursday}, saturday, true); got != 2 {
		t.Errorf("Count = %d, want 2", got)
	}
	if got := Count([]time.Time{friday, thursday}, saturday, false); got != 0 {
		t.Errorf("Count without exclusion = %d, want 0", got)
	}
}

// TestCount_NormalizesToTodayLocation checks that a late-evening UTC timestamp
// lands on the next calendar day in a zone ahead of UTC.
func TestCount_NormalizesToTodayLocation(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	today := time.Date(2026, 10, 13, 10, 0, 0, 0, ist)
	// 2026-10-12 20:00 UTC is 2026-10-13 01:30 IST.
	logged := time.Date(2026, 10, 12, 20, 0, 0, 0, time.UTC)

	if got := Count([]time.Time{logged}, today, false); got != 1 {
		t.Errorf("Count = %d, want 1", got)
	}
}

func TestFromToday(t *testing.T) {
	now := time.Now()
	if got := FromToday([]time.Time{now, now.AddDate(0, 0, -1)}, false); got != 2 {
		t.Errorf("FromToday = %d, want 2", got)
	}
}
