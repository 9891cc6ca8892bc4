package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// MinutesPerDay is the number of minutes in a wall-clock day.
const MinutesPerDay = 24 * 60

var (
	// ErrInvalidTimeString is returned for anything that is not a zero-padded HH:MM value
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrMinutesOutOfRange is returned when a minute offset does not fit into one day
	ErrMinutesOutOfRange = errors.New("minutes out of day range")
)

// ParseMinutes converts a zero-padded 24-hour "HH:MM" value into minutes since midnight.
// Times are business-local wall-clock values, no timezone is involved.
func ParseMinutes(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	hours, ok := twoDigits(s[0], s[1])
	if !ok || hours > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	minutes, ok := twoDigits(s[3], s[4])
	if !ok || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	return hours*60 + minutes, nil
}

// FormatMinutes is the inverse of ParseMinutes. Values outside [0, 1440) are rejected
// instead of wrapping around midnight.
func FormatMinutes(m int) (string, error) {
	if m < 0 || m >= MinutesPerDay {
		return "", fmt.Errorf("%w: %d", ErrMinutesOutOfRange, m)
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60), nil
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// TimeString is a time of day in "HH:MM" form
type TimeString string

// NewTimeString takes the wall-clock hours and minutes of t
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString validates s and wraps it
func NewTimeStringFromString(s string) (TimeString, error) {
	if _, err := ParseMinutes(s); err != nil {
		return "", err
	}
	return TimeString(s), nil
}

// NewTimeStringFromMinutes builds a TimeString from minutes since midnight
func NewTimeStringFromMinutes(m int) (TimeString, error) {
	s, err := FormatMinutes(m)
	if err != nil {
		return "", err
	}
	return TimeString(s), nil
}

func (t TimeString) String() string {
	return string(t)
}

// IsZero reports whether the value is empty
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate checks the HH:MM format
func (t TimeString) Validate() error {
	_, err := ParseMinutes(string(t))
	return err
}

// Minutes returns minutes since midnight, or -1 for a malformed value.
func (t TimeString) Minutes() int {
	m, err := ParseMinutes(string(t))
	if err != nil {
		return -1
	}
	return m
}

// AddMinutes shifts the time by n minutes. The result must stay inside the same day.
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	m, err := ParseMinutes(string(t))
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(m + n)
}

// IsBefore reports whether t is strictly earlier than other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter reports whether t is strictly later than other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// OnDate returns the instant of t on the calendar day of date, in date's location
func (t TimeString) OnDate(date time.Time) time.Time {
	m := t.Minutes()
	return time.Date(date.Year(), date.Month(), date.Day(), m/60, m%60, 0, 0, date.Location())
}

// Scan implements sql.Scanner. Postgres TIME columns come back as "HH:MM:SS".
func (t *TimeString) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, src)
	}

	if len(raw) > 5 {
		raw = raw[:5]
	}

	parsed, err := NewTimeStringFromString(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}
