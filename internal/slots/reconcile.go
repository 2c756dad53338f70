package slots

import (
	"strings"
	"time"

	"appointment-service/internal/models"
)

type Day struct {
	All   []string
	Taken []string
}

// Available is All minus Taken, in the order of All.
func (d Day) Available() []string {
	taken := make(map[string]struct{}, len(d.Taken))
	for _, t := range d.Taken {
		taken[t] = struct{}{}
	}

	out := make([]string, 0, len(d.All))
	for _, s := range d.All {
		if _, ok := taken[s]; !ok {
			out = append(out, s)
		}
	}

	return out
}

// IsAvailable reports whether label is a free slot of the day.
func (d Day) IsAvailable(label string) bool {
	for _, s := range d.Available() {
		if s == label {
			return true
		}
	}
	return false
}

// Reconcile builds the slot lists of date. A nil or inactive rule means the
// day is closed and both lists are empty, whatever is booked. booked must
// already exclude canceled appointments. Taken keeps every booked label in
// input order, including duplicates and labels outside the rule window.
func Reconcile(date time.Time, rule *models.AvailabilityRule, booked []time.Time) Day {
	if rule == nil || !rule.IsActive {
		return Day{All: []string{}, Taken: []string{}}
	}

	day := Day{
		All:   Generate(date, rule.StartTime, rule.EndTime, rule.SlotDuration),
		Taken: make([]string, 0, len(booked)),
	}

	for _, b := range booked {
		day.Taken = append(day.Taken, Label(b))
	}

	return day
}

// WeekStart returns midnight of the most recent Monday, today included.
func WeekStart(now time.Time) time.Time {
	offset := (int(now.Weekday()) + 6) % 7
	y, m, d := now.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, now.Location())
}

// Week returns the seven dates Monday..Sunday of the week containing now.
func Week(now time.Time) []time.Time {
	start := WeekStart(now)

	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}

	return days
}

// DayKey is the lowercase English weekday name of t.
func DayKey(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}
