package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeFormat layout used for TimeString values (HH:MM)
const TimeFormat = "15:04"

var (
	// ErrInvalidTimeString is returned when a string cannot be parsed as HH:MM
	ErrInvalidTimeString = errors.New("invalid time string format")
)

// TimeString represents a time of day as "HH:MM".
// Used for slot boundaries and booking start times, where only the
// wall-clock time matters and the date is stored separately.
type TimeString string

// NewTimeString creates a TimeString from a time.Time (date part is dropped)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeFormat))
}

// NewTimeStringFromString parses "HH:MM" into a TimeString
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(TimeFormat, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return NewTimeString(t), nil
}

// String returns the "HH:MM" representation
func (ts TimeString) String() string {
	return string(ts)
}

// Minutes returns the number of minutes since midnight
func (ts TimeString) Minutes() (int, error) {
	t, err := time.Parse(TimeFormat, string(ts))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return t.Hour()*60 + t.Minute(), nil
}

// AddMinutes returns a new TimeString shifted forward by the given number of minutes.
// The result wraps around midnight, callers that care about day boundaries
// must check ordering themselves.
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	t, err := time.Parse(TimeFormat, string(ts))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return NewTimeString(t.Add(time.Duration(minutes) * time.Minute)), nil
}

// IsBefore reports whether ts is strictly earlier than other.
// Invalid values compare lexicographically, which matches HH:MM ordering
// for well-formed input.
func (ts TimeString) IsBefore(other TimeString) bool {
	return string(ts) < string(other)
}

// IsAfter reports whether ts is strictly later than other
func (ts TimeString) IsAfter(other TimeString) bool {
	return string(ts) > string(other)
}

// Value implements driver.Valuer, storing the value as "HH:MM"
func (ts TimeString) Value() (driver.Value, error) {
	return string(ts), nil
}

// Scan implements sql.Scanner.
// Postgres TIME columns arrive either as []byte/string "HH:MM:SS" or as time.Time.
func (ts *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*ts = ""
		return nil
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	case []byte:
		return ts.scanString(string(v))
	case string:
		return ts.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidTimeString, src)
	}
}

func (ts *TimeString) scanString(s string) error {
	// TIME columns carry seconds, trim them down to HH:MM
	if len(s) > len(TimeFormat) {
		s = s[:len(TimeFormat)]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
