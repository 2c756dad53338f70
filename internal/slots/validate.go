package slots

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var ErrInvalidRule = errors.New("invalid availability rule")

var clockRe = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)

// ValidTime reports whether s is a 24-hour "H:MM" or "HH:MM" value.
func ValidTime(s string) bool {
	return clockRe.MatchString(s)
}

// parseClock returns minutes since midnight.
func parseClock(s string) (int, error) {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid time %q", s)
	}

	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])

	return hours*60 + minutes, nil
}

// NormalizeTime pads a valid "H:MM" value to "HH:MM".
func NormalizeTime(s string) (string, error) {
	mins, err := parseClock(s)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidRule, err)
	}

	return fmt.Sprintf("%02d:%02d", mins/60, mins%60), nil
}

// ValidateRule rejects a rule that could not produce at least one slot.
// It never coerces input.
func ValidateRule(dayOfWeek int, start, end string, durationMinutes int) error {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return fmt.Errorf("%w: day_of_week must be in 0..6, got %d", ErrInvalidRule, dayOfWeek)
	}

	if start == "" {
		return fmt.Errorf("%w: start_time is required", ErrInvalidRule)
	}
	if end == "" {
		return fmt.Errorf("%w: end_time is required", ErrInvalidRule)
	}

	from, err := parseClock(start)
	if err != nil {
		return fmt.Errorf("%w: start_time: %w", ErrInvalidRule, err)
	}

	to, err := parseClock(end)
	if err != nil {
		return fmt.Errorf("%w: end_time: %w", ErrInvalidRule, err)
	}

	if from >= to {
		return fmt.Errorf("%w: start_time %s must be before end_time %s", ErrInvalidRule, start, end)
	}

	if durationMinutes <= 0 {
		return fmt.Errorf("%w: slot_duration must be positive, got %d", ErrInvalidRule, durationMinutes)
	}

	if durationMinutes > to-from {
		return fmt.Errorf("%w: slot_duration %d does not fit between %s and %s", ErrInvalidRule, durationMinutes, start, end)
	}

	return nil
}
