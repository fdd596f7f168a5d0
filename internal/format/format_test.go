package format_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/catalogops/console/internal/format"
)

func TestNumberGrouping(t *testing.T) {
	f := format.Default()

	assert.Equal(t, "1,234,567", f.Number(1234567))
	assert.Equal(t, "0", f.Number(0))
}

func TestPrice(t *testing.T) {
	f := format.New(language.English, currency.KRW)

	price := f.Price(1450000)
	assert.Contains(t, price, "1,450,000")
	assert.Contains(t, price, "₩")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		maxLen int
		want   string
	}{
		{"shorter than limit", "hello", 10, "hello"},
		{"exactly at limit", "hello", 5, "hello"},
		{"cut with ellipsis", "hello world", 5, "hello..."},
		{"multibyte runes", "상품설명입니다", 4, "상품설명..."},
		{"zero limit", "hello", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, format.Truncate(tt.text, tt.maxLen))
		})
	}
}

func TestDate(t *testing.T) {
	ts := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-01-15", format.Date(&ts))
	assert.Equal(t, "2024-01-15 10:30:00", format.DateTime(&ts))
	assert.Equal(t, "", format.Date(nil))
	assert.Equal(t, "", format.DateTime(nil))
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"seconds ago", now.Add(-30 * time.Second), "just now"},
		{"minutes ago", now.Add(-5 * time.Minute), "5m ago"},
		{"hours ago", now.Add(-3 * time.Hour), "3h ago"},
		{"days ago", now.Add(-2 * 24 * time.Hour), "2d ago"},
		{"a week or older shows the date", now.Add(-8 * 24 * time.Hour), "2024-06-07"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, format.RelativeTime(tt.t, now))
		})
	}
}

func TestIsToday(t *testing.T) {
	now := time.Date(2024, 6, 15, 23, 0, 0, 0, time.UTC)

	assert.True(t, format.IsToday(time.Date(2024, 6, 15, 0, 30, 0, 0, time.UTC), now))
	assert.False(t, format.IsToday(now.Add(-24*time.Hour), now))
}

func TestWeekRange(t *testing.T) {
	// 2024-06-12 is a Wednesday.
	wed := time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)
	start, end := format.WeekRange(wed)

	assert.Equal(t, time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 6, 15, 23, 59, 59, 0, time.UTC), end)
	assert.Equal(t, time.Sunday, start.Weekday())
}

func TestMonthRange(t *testing.T) {
	mid := time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC)
	start, end := format.MonthRange(mid)

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC), end)
}
