package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var kst = time.FixedZone("KST", 9*60*60)

func testWindow() Window {
	return Window{
		Location:        kst,
		StartHour:       9,
		EndHour:         19,
		IntervalMinutes: 30,
	}
}

// 2025-08-18 is a Monday
func kstTime(day, hour, minute int) time.Time {
	return time.Date(2025, 8, day, hour, minute, 0, 0, kst)
}

func TestIsBusinessDay(t *testing.T) {
	w := testWindow()

	assert.True(t, w.IsBusinessDay(kstTime(18, 12, 0)), "Monday")
	assert.True(t, w.IsBusinessDay(kstTime(22, 12, 0)), "Friday")
	assert.False(t, w.IsBusinessDay(kstTime(23, 12, 0)), "Saturday")
	assert.False(t, w.IsBusinessDay(kstTime(24, 12, 0)), "Sunday")
}

func TestIsBusinessDayUsesWindowZone(t *testing.T) {
	w := testWindow()

	// Saturday 00:30 KST is still Friday in UTC
	saturdayKST := time.Date(2025, 8, 22, 15, 30, 0, 0, time.UTC)
	assert.False(t, w.IsBusinessDay(saturdayKST))
}

func TestInBusinessHours(t *testing.T) {
	w := testWindow()

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"before opening", kstTime(18, 8, 59), false},
		{"opening tick", kstTime(18, 9, 0), true},
		{"midday", kstTime(18, 14, 30), true},
		{"last tick", kstTime(18, 19, 0), true},
		{"past last tick", kstTime(18, 19, 1), false},
		{"evening", kstTime(18, 19, 30), false},
		{"weekend midday", kstTime(23, 12, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.InBusinessHours(tt.t))
		})
	}
}

func TestShouldFire(t *testing.T) {
	w := testWindow()

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"on the hour", kstTime(18, 10, 0), true},
		{"half hour", kstTime(18, 10, 30), true},
		{"off interval", kstTime(18, 10, 15), false},
		{"opening tick", kstTime(18, 9, 0), true},
		{"closing tick", kstTime(18, 19, 0), true},
		{"after closing", kstTime(18, 19, 30), false},
		{"weekend on interval", kstTime(23, 10, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.ShouldFire(tt.t))
		})
	}
}

func TestNextFire(t *testing.T) {
	w := testWindow()

	tests := []struct {
		name string
		from time.Time
		want time.Time
	}{
		{"mid interval", kstTime(18, 10, 15), kstTime(18, 10, 30)},
		{"on a tick moves to the next", kstTime(18, 10, 0), kstTime(18, 10, 30)},
		{"after closing rolls to next morning", kstTime(18, 19, 30), kstTime(19, 9, 0)},
		{"friday evening rolls to monday", kstTime(22, 19, 30), kstTime(25, 9, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(w.NextFire(tt.from)),
				"got %s, want %s", w.NextFire(tt.from), tt.want)
		})
	}
}
