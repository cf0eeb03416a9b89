package scheduler

import "time"

// Window the business-hours firing window
type Window struct {
	Location        *time.Location
	StartHour       int // inclusive
	EndHour         int // inclusive hour boundary, e.g. 19 -> fires up to 19:00
	IntervalMinutes int // fires on minutes divisible by this
}

// IsBusinessDay reports whether t falls on a weekday in the window's zone
func (w Window) IsBusinessDay(t time.Time) bool {
	day := t.In(w.Location).Weekday()
	return day != time.Saturday && day != time.Sunday
}

// InBusinessHours reports whether t is a weekday within the firing hours
func (w Window) InBusinessHours(t time.Time) bool {
	if !w.IsBusinessDay(t) {
		return false
	}

	local := t.In(w.Location)
	hour, minute := local.Hour(), local.Minute()

	if hour < w.StartHour || hour > w.EndHour {
		return false
	}
	// the end hour admits only the :00 tick
	if hour == w.EndHour && minute > 0 {
		return false
	}
	return true
}

// ShouldFire reports whether t is a firing tick: within business hours and
// on an interval boundary (e.g. :00 or :30 for a 30-minute interval).
func (w Window) ShouldFire(t time.Time) bool {
	if !w.InBusinessHours(t) {
		return false
	}
	return t.In(w.Location).Minute()%w.IntervalMinutes == 0
}

// NextFire returns the next firing tick strictly after t
func (w Window) NextFire(t time.Time) time.Time {
	local := t.In(w.Location).Truncate(time.Minute)
	for {
		local = local.Add(time.Minute)
		if w.ShouldFire(local) {
			return local
		}
	}
}
