package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestUrgencyColorWindows(t *testing.T) {
	today := date(2024, time.January, 10)

	tests := []struct {
		name     string
		dispatch time.Time
		want     string
	}{
		{"overdue", date(2024, time.January, 5), ColorRed},
		{"same day", date(2024, time.January, 10), ColorRed},
		{"two days out", date(2024, time.January, 12), ColorRed},
		{"three days out", date(2024, time.January, 13), ColorRed},
		{"four days out", date(2024, time.January, 14), ColorYellow},
		{"five days out", date(2024, time.January, 15), ColorYellow},
		{"six days out", date(2024, time.January, 16), ColorYellow},
		{"seven days out", date(2024, time.January, 17), ColorGreen},
		{"ten days out", date(2024, time.January, 20), ColorGreen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Order{DispatchDate: tt.dispatch}
			assert.Equal(t, tt.want, o.UrgencyColor(today))
		})
	}
}

func TestUrgencyColorIgnoresTimeOfDay(t *testing.T) {
	// A dispatch at 23:00 three days out is still red even when "today"
	// is measured at 01:00.
	today := time.Date(2024, time.January, 10, 1, 0, 0, 0, time.UTC)
	o := Order{DispatchDate: time.Date(2024, time.January, 13, 23, 0, 0, 0, time.UTC)}
	assert.Equal(t, ColorRed, o.UrgencyColor(today))
}

func TestDaysUntil(t *testing.T) {
	today := date(2024, time.March, 1)
	assert.Equal(t, 0, DaysUntil(today, today))
	assert.Equal(t, 5, DaysUntil(date(2024, time.March, 6), today))
	assert.Equal(t, -2, DaysUntil(date(2024, time.February, 28), today))
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"admin", "sales", "production"} {
		role, ok := ParseRole(valid)
		assert.True(t, ok)
		assert.Equal(t, Role(valid), role)
	}

	_, ok := ParseRole("superuser")
	assert.False(t, ok)
	_, ok = ParseRole("")
	assert.False(t, ok)
}
