package scheduling

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BookingWindow is the range of instants a customer may book into:
// no earlier than now + MinAdvanceHours and no later than the end of
// today + AdvanceBookingDays (when limited).
type BookingWindow struct {
	Earliest   time.Time
	LatestDate *time.Time
}

// NewBookingWindow builds the window for the given hours as seen at now
func NewBookingWindow(hours *domain.OperatingHours, now time.Time) BookingWindow {
	w := BookingWindow{Earliest: now.Add(hours.MinAdvance())}
	if hours.HasAdvanceBookingLimit() {
		latest := domain.DateOnly(now).AddDate(0, 0, hours.AdvanceBookingDays)
		w.LatestDate = &latest
	}
	return w
}

// AllowsDate is the whole-day check: the date must not be before the day of
// Earliest and must not be after LatestDate.
func (w BookingWindow) AllowsDate(date time.Time) bool {
	day := w.localDate(date)
	if day.Before(domain.DateOnly(w.Earliest)) {
		return false
	}
	if w.LatestDate != nil && day.After(*w.LatestDate) {
		return false
	}
	return true
}

// AllowsStart is the per-slot check against the minimum notice
func (w BookingWindow) AllowsStart(start time.Time) bool {
	return !start.Before(w.Earliest)
}

// StartInstant returns the absolute instant of wall-clock minute m on date in
// the window's location. DST days are not 24 hours long, so the instant is
// built from the calendar fields and not by adding minutes to midnight.
func (w BookingWindow) StartInstant(date time.Time, m int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), m/60, m%60, 0, 0, w.Earliest.Location())
}

// localDate reinterprets the calendar date of date in the location of Earliest,
// dates are naive business-local values
func (w BookingWindow) localDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, w.Earliest.Location())
}
