// Package dst corrects ShuttleFile record timestamps across daylight-saving
// transitions that the trail-counter hardware clock does not track.
package dst

import (
	"errors"
	"fmt"
	"time"
)

// Direction selects which DST transition of a year to correct for.
type Direction string

const (
	// DirectionBegin is the spring-forward transition (clocks jump ahead).
	DirectionBegin Direction = "begin"

	// DirectionEnd is the fall-back transition (clocks fall behind).
	DirectionEnd Direction = "end"
)

// ErrUnsupportedDirection means a direction outside {begin, end}.
var ErrUnsupportedDirection = errors.New("unsupported DST direction")

// ParseDirection validates a direction string.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionBegin, DirectionEnd:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("%w: %q (use begin or end)", ErrUnsupportedDirection, s)
	}
}

// transitionHour is the local clock time at which DST transitions occur.
const transitionHour = 2

// TransitionInstant returns the wall-clock instant at which daylight-saving
// time begins or ends in the given year, at 02:00:00 local clock time.
//
// The begin date is derived by starting at March 1, advancing to the strictly
// next Sunday (never March 1 itself, even when it falls on a Sunday), then
// adding seven more days. The end date is the first Sunday on or after
// November 1.
//
// The instant is constructed in UTC so the 02:00 wall-clock value survives
// as-is: hardware timestamps are DST-naive, and building 02:00 inside a real
// IANA zone on the spring-forward day would normalize it to 03:00.
func TransitionInstant(year int, dir Direction) (time.Time, error) {
	var d time.Time

	switch dir {
	case DirectionBegin:
		d = time.Date(year, time.March, 1, 0, 0, 0, 0, time.UTC)
		d = d.AddDate(0, 0, 1)
		for d.Weekday() != time.Sunday {
			d = d.AddDate(0, 0, 1)
		}
		d = d.AddDate(0, 0, 7)

	case DirectionEnd:
		d = time.Date(year, time.November, 1, 0, 0, 0, 0, time.UTC)
		for d.Weekday() != time.Sunday {
			d = d.AddDate(0, 0, 1)
		}

	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnsupportedDirection, dir)
	}

	return time.Date(d.Year(), d.Month(), d.Day(), transitionHour, 0, 0, 0, time.UTC), nil
}

// Shift returns the clock adjustment the transition applies to timestamps at
// or after the transition instant.
func (d Direction) Shift() time.Duration {
	if d == DirectionEnd {
		return -time.Hour
	}
	return time.Hour
}
