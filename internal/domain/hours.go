package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Weekday is an ISO-ordered day of the week, Monday first
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysPerWeek is the size of a WeeklySchedule
const DaysPerWeek = 7

var weekdayNames = [DaysPerWeek]string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// WeekdayOf maps a date onto the schedule weekday
func WeekdayOf(date time.Time) Weekday {
	switch date.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// ParseWeekday accepts the lowercase English day name
func ParseWeekday(s string) (Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range weekdayNames {
		if n == name {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
}

func (w Weekday) String() string {
	if w < Monday || w > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdayNames[w]
}

// TimeRange is a half-open open interval [Start, End) within one day
type TimeRange struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// Validate checks both bounds and start < end
func (r TimeRange) Validate() error {
	start, err := types.ParseMinutes(r.Start.String())
	if err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidTimeRange, err)
	}
	end, err := types.ParseMinutes(r.End.String())
	if err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidTimeRange, err)
	}
	if start >= end {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidTimeRange, r.Start, r.End)
	}
	return nil
}

// DayAvailability is the open/closed flag and the open ranges of one weekday
type DayAvailability struct {
	IsOpen bool        `json:"isOpen"`
	Slots  []TimeRange `json:"slots"`
}

// Validate checks every range of an open day
func (d DayAvailability) Validate() error {
	if !d.IsOpen {
		return nil
	}
	for i, r := range d.Slots {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("range %d: %w", i, err)
		}
	}
	return nil
}

// WeeklySchedule maps every weekday to its availability; indexed by Weekday
type WeeklySchedule [DaysPerWeek]DayAvailability

// MarshalJSON writes the schedule as {"monday": {...}, ...}
func (s WeeklySchedule) MarshalJSON() ([]byte, error) {
	out := make(map[string]DayAvailability, DaysPerWeek)
	for i, day := range s {
		if day.Slots == nil {
			day.Slots = []TimeRange{}
		}
		out[weekdayNames[i]] = day
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the keyed form; missing days are closed
func (s *WeeklySchedule) UnmarshalJSON(data []byte) error {
	var in map[string]DayAvailability
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	var schedule WeeklySchedule
	for name, day := range in {
		w, err := ParseWeekday(name)
		if err != nil {
			return err
		}
		schedule[w] = day
	}
	*s = schedule
	return nil
}

// Value stores the schedule as JSONB
func (s WeeklySchedule) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan reads the schedule from a JSONB column
func (s *WeeklySchedule) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		*s = WeeklySchedule{}
		return nil
	default:
		return fmt.Errorf("weekly schedule: unsupported type %T", src)
	}
}

// OperatingHours is the booking calendar configuration of one business
type OperatingHours struct {
	BusinessID         int64
	Schedule           WeeklySchedule
	AdvanceBookingDays int // 0 = unlimited
	MinAdvanceHours    int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ClosedOperatingHours is used for businesses that never configured their hours
func ClosedOperatingHours(businessID int64) *OperatingHours {
	return &OperatingHours{
		BusinessID:         businessID,
		AdvanceBookingDays: DefaultAdvanceBookingDays,
		MinAdvanceHours:    DefaultMinAdvanceHours,
	}
}

// Day returns the availability for a weekday
func (h *OperatingHours) Day(w Weekday) DayAvailability {
	if w < Monday || w > Sunday {
		return DayAvailability{}
	}
	return h.Schedule[w]
}

// ForDate returns the availability for the weekday of date
func (h *OperatingHours) ForDate(date time.Time) DayAvailability {
	return h.Day(WeekdayOf(date))
}

// HasAdvanceBookingLimit returns true if bookings are limited to a number of days ahead
func (h *OperatingHours) HasAdvanceBookingLimit() bool {
	return h.AdvanceBookingDays > 0
}

// MinAdvance returns the minimum notice as a duration
func (h *OperatingHours) MinAdvance() time.Duration {
	return time.Duration(h.MinAdvanceHours) * time.Hour
}

// Validate checks every day and the booking window scalars
func (h *OperatingHours) Validate() error {
	if h.AdvanceBookingDays < MinAdvanceBookingDays || h.AdvanceBookingDays > MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidOperatingHours, MinAdvanceBookingDays, MaxAdvanceBookingDays)
	}
	if h.MinAdvanceHours < MinAdvanceHours || h.MinAdvanceHours > MaxAdvanceHours {
		return fmt.Errorf("%w: minAdvanceHours must be between %d and %d",
			ErrInvalidOperatingHours, MinAdvanceHours, MaxAdvanceHours)
	}
	for i, day := range h.Schedule {
		if err := day.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidOperatingHours, Weekday(i), err)
		}
	}
	return nil
}
