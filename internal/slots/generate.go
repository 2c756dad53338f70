// Package slots turns weekly availability rules and booked appointments
// into per-day slot lists. Everything here is pure and safe for concurrent
// use.
package slots

import "time"

const LabelLayout = "15:04"

// Generate returns the "HH:MM" labels of one day, stepping durationMinutes
// from start while the slot start is before end. Only the calendar date of
// date is used and its location is kept as is.
func Generate(date time.Time, start, end string, durationMinutes int) []string {
	out := []string{}

	from, err := parseClock(start)
	if err != nil {
		return out
	}
	to, err := parseClock(end)
	if err != nil {
		return out
	}
	if from >= to || durationMinutes <= 0 {
		return out
	}

	y, m, d := date.Date()
	loc := date.Location()

	cur := time.Date(y, m, d, from/60, from%60, 0, 0, loc)
	stop := time.Date(y, m, d, to/60, to%60, 0, 0, loc)
	step := time.Duration(durationMinutes) * time.Minute

	for ; cur.Before(stop); cur = cur.Add(step) {
		out = append(out, cur.Format(LabelLayout))
	}

	return out
}

// Label formats a booked timestamp the same way Generate formats slots.
func Label(t time.Time) string {
	return t.Format(LabelLayout)
}
