// Package duration parses the human-readable retention periods accepted by
// the --expire-days style settings ("7d", "2weeks", "1y").
package duration

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const Day = 24 * time.Hour

type unit struct {
	names []string
	size  time.Duration
}

var units = []unit{
	{names: []string{"h", "hour", "hours"}, size: time.Hour},
	{names: []string{"d", "day", "days"}, size: Day},
	{names: []string{"w", "week", "weeks"}, size: 7 * Day},
	{names: []string{"m", "month", "months"}, size: 30 * Day},
	{names: []string{"y", "year", "years"}, size: 365 * Day},
}

var (
	// ErrInvalidFormat indicates the input duration string contains invalid characters
	ErrInvalidFormat = errors.New("invalid duration format")

	// ErrInvalidNumber indicates the numeric part is invalid or not positive
	ErrInvalidNumber = errors.New("invalid duration number")

	// ErrInvalidUnit indicates the unit part is not recognized
	ErrInvalidUnit = errors.New("invalid duration unit")

	// ErrPartialDay indicates the duration is not a whole number of days
	ErrPartialDay = errors.New("duration is not a whole number of days")
)

func lookupUnit(name string) (time.Duration, bool) {
	for _, u := range units {
		for _, n := range u.names {
			if n == name {
				return u.size, true
			}
		}
	}
	return 0, false
}

// Parse converts strings like "12h", "7d" or "2weeks" into a time.Duration
func Parse(input string) (time.Duration, error) {
	if input = strings.TrimSpace(input); input == "" {
		return 0, fmt.Errorf("%w: empty input", ErrInvalidFormat)
	}

	numStr, unitStr, err := splitNumberAndUnit(strings.ToLower(input))
	if err != nil {
		return 0, fmt.Errorf("%w: invalid characters", ErrInvalidFormat)
	}

	num, err := strconv.Atoi(numStr)
	if err != nil {
		return 0, fmt.Errorf("%w: must be a number", ErrInvalidNumber)
	}

	if unitStr == "" {
		return 0, fmt.Errorf("%w: missing unit", ErrInvalidFormat)
	}

	size, ok := lookupUnit(unitStr)
	if !ok {
		return 0, fmt.Errorf("%w: '%s' (supported: h, d, w, m, y)", ErrInvalidUnit, unitStr)
	}

	return time.Duration(num) * size, nil
}

// ParseDays is like Parse but returns a day count. A bare number is taken
// as days, so "7" and "7d" are equivalent.
func ParseDays(input string) (int, error) {
	trimmed := strings.TrimSpace(input)
	if n, err := strconv.Atoi(trimmed); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("%w: must be positive", ErrInvalidNumber)
		}
		return n, nil
	}

	d, err := Parse(trimmed)
	if err != nil {
		return 0, err
	}
	if d%Day != 0 {
		return 0, fmt.Errorf("%w: %s", ErrPartialDay, input)
	}
	return int(d / Day), nil
}

// Split breaks d into whole days and the remaining whole hours
func Split(d time.Duration) (days, hours int) {
	totalHours := int(d / time.Hour)
	return totalHours / 24, totalHours % 24
}

func splitNumberAndUnit(input string) (string, string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", "", fmt.Errorf("%w: empty input", ErrInvalidFormat)
	}

	numPart := strings.Builder{}
	unitPart := strings.Builder{}

	for _, r := range input {
		switch {
		case unicode.IsDigit(r) && unitPart.Len() == 0:
			numPart.WriteRune(r)
		case unicode.IsLetter(r):
			unitPart.WriteRune(r)
		default:
			return "", "", ErrInvalidFormat
		}
	}
	return numPart.String(), unitPart.String(), nil
}
