package format

import (
	"fmt"
	"time"
)

// Display layouts for timestamps coming back from the backend.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// Date renders a timestamp as a plain date. Nil renders empty.
func Date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// DateTime renders a timestamp with time of day. Nil renders empty.
func DateTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(DateTimeLayout)
}

// RelativeTime renders how long ago t was: "just now", minutes, hours or
// days; anything a week or older falls back to the plain date.
func RelativeTime(t time.Time, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format(DateLayout)
	}
}

// IsToday reports whether t falls on the same calendar day as now.
func IsToday(t time.Time, now time.Time) bool {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// WeekRange returns the start (Sunday 00:00:00) and end (Saturday
// 23:59:59) of the week containing t.
func WeekRange(t time.Time) (start, end time.Time) {
	year, month, day := t.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	start = midnight.AddDate(0, 0, -int(midnight.Weekday()))
	end = start.AddDate(0, 0, 7).Add(-time.Second)
	return start, end
}

// MonthRange returns the first and last instant of the month containing t.
func MonthRange(t time.Time) (start, end time.Time) {
	year, month, _ := t.Date()
	start = time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
	end = start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}
