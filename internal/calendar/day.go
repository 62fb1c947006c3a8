package calendar

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nutrilog/nutrilog/internal/constants"
)

// Day is a timezone-naive calendar date (year, month, day). Two Days compare
// equal when they name the same calendar date, regardless of what timezone the
// surrounding code runs in. Internally the date is pinned to UTC midnight so
// that AddDate arithmetic can never drift across a DST boundary.
type Day struct {
	t time.Time
}

// InvalidDateError reports a date string that does not conform to the
// YYYY-MM-DD contract at the storage boundary.
type InvalidDateError struct {
	Input string
	Err   error
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q (expected YYYY-MM-DD): %v", e.Input, e.Err)
}

func (e *InvalidDateError) Unwrap() error {
	return e.Err
}

// Parse parses a YYYY-MM-DD string into a Day. Malformed input fails fast with
// an *InvalidDateError; it is never coerced to the current date.
func Parse(s string) (Day, error) {
	t, err := time.ParseInLocation(constants.DateFormat, s, time.UTC)
	if err != nil {
		return Day{}, &InvalidDateError{Input: s, Err: err}
	}
	return Day{t: t}, nil
}

// MustParse is Parse for statically known inputs; it panics on malformed input.
func MustParse(s string) Day {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromTime truncates a wall-clock instant to the calendar date it falls on in
// the instant's own location.
func FromTime(t time.Time) Day {
	return Day{t: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date in the given location. Callers
// resolve the location once at the integration boundary; computation code
// receives Today as an explicit parameter and never reads the clock itself.
func Today(loc *time.Location) Day {
	if loc == nil {
		loc = time.Local
	}
	return FromTime(time.Now().In(loc))
}

// String formats the Day as YYYY-MM-DD, the only serialized form dates take at
// the storage boundary.
func (d Day) String() string {
	return d.t.Format(constants.DateFormat)
}

// IsZero reports whether d is the zero Day.
func (d Day) IsZero() bool {
	return d.t.IsZero()
}

// AddDays returns the Day n calendar days after d (n may be negative).
func (d Day) AddDays(n int) Day {
	return Day{t: d.t.AddDate(0, 0, n)}
}

// Next returns the following calendar day.
func (d Day) Next() Day {
	return d.AddDays(1)
}

// Prev returns the preceding calendar day.
func (d Day) Prev() Day {
	return d.AddDays(-1)
}

// Sub returns the number of whole calendar days from other to d; positive when
// d is later.
func (d Day) Sub(other Day) int {
	return int(d.t.Sub(other.t) / (24 * time.Hour))
}

// Weekday returns the day of the week, time.Sunday through time.Saturday.
func (d Day) Weekday() time.Weekday {
	return d.t.Weekday()
}

func (d Day) Before(other Day) bool {
	return d.t.Before(other.t)
}

func (d Day) After(other Day) bool {
	return d.t.After(other.t)
}

func (d Day) Equal(other Day) bool {
	return d.t.Equal(other.t)
}

// MarshalJSON encodes the day as its YYYY-MM-DD string.
func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a YYYY-MM-DD string, failing fast on malformed input.
func (d *Day) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	day, err := Parse(s)
	if err != nil {
		return err
	}
	*d = day
	return nil
}
