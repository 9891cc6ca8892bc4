package scheduling

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Interval is a half-open range [Start, End) in minutes since midnight
type Interval struct {
	Start int
	End   int
}

// Overlaps reports whether two half-open intervals share at least one minute.
// Touching intervals (one ends exactly where the other starts) do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// Conflicts reports whether a candidate starting at candidateStart and occupying
// occupancy minutes on date overlaps any active appointment of the same date.
// Existing appointments occupy Duration + BufferMinutes.
func Conflicts(date time.Time, candidateStart, occupancy int, existing []*domain.Appointment) bool {
	candidate := Interval{Start: candidateStart, End: candidateStart + occupancy}

	for _, appt := range existing {
		if appt == nil || !appt.IsActive() {
			continue
		}
		if !domain.SameDate(appt.ScheduledDate, date) {
			continue
		}

		start := appt.ScheduledTime.Minutes()
		if start < 0 {
			// запись с некорректным временем не участвует в проверке
			continue
		}

		if candidate.Overlaps(Interval{Start: start, End: start + appt.Occupancy()}) {
			return true
		}
	}

	return false
}
