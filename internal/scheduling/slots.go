package scheduling

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var (
	// ErrDayClosed is returned by CheckSlot when the business is closed on the date
	ErrDayClosed = errors.New("scheduling: business is closed on this date")

	// ErrOutsideBookingWindow is returned by CheckSlot when the date or start violates the booking window
	ErrOutsideBookingWindow = errors.New("scheduling: outside booking window")

	// ErrNotBookable is returned by CheckSlot when the time is not a candidate start of any open range
	ErrNotBookable = errors.New("scheduling: time is not a bookable start")

	// ErrSlotTaken is returned by CheckSlot when the slot overlaps an active appointment
	ErrSlotTaken = errors.New("scheduling: slot overlaps an existing appointment")
)

// Step returns the candidate grid for a service occupying occupancy minutes
func Step(occupancy int) int {
	if occupancy < domain.SlotStepMinutes {
		return occupancy
	}
	return domain.SlotStepMinutes
}

// AvailableSlots returns the ordered start times a service can be booked at on date.
//
// Closed days, dates outside the booking window and services longer than every
// open range all yield an empty, non-nil slice. Invalid service or hours
// configuration is an error.
func AvailableSlots(
	date time.Time,
	service *domain.Service,
	hours *domain.OperatingHours,
	existing []*domain.Appointment,
	now time.Time,
) ([]types.TimeString, error) {
	day, err := openDay(date, service, hours)
	if err != nil {
		return nil, err
	}
	if !day.IsOpen {
		return []types.TimeString{}, nil
	}

	window := NewBookingWindow(hours, now)
	if !window.AllowsDate(date) {
		return []types.TimeString{}, nil
	}

	occupancy := service.EffectiveDuration()
	step := Step(occupancy)

	seen := make(map[int]struct{})
	starts := make([]int, 0)

	// ranges are walked independently; overlapping ranges yield the same candidates
	for _, r := range day.Slots {
		rangeEnd := r.End.Minutes()
		for t := r.Start.Minutes(); t+occupancy <= rangeEnd; t += step {
			if _, dup := seen[t]; dup {
				continue
			}
			if Conflicts(date, t, occupancy, existing) {
				continue
			}
			if !window.AllowsStart(window.StartInstant(date, t)) {
				continue
			}
			seen[t] = struct{}{}
			starts = append(starts, t)
		}
	}

	sort.Ints(starts)

	slots := make([]types.TimeString, 0, len(starts))
	for _, m := range starts {
		ts, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			return nil, err
		}
		slots = append(slots, ts)
	}

	return slots, nil
}

// CheckSlot verifies that start on date is one of AvailableSlots and reports
// why it is not otherwise. It never scans the whole day.
func CheckSlot(
	date time.Time,
	start types.TimeString,
	service *domain.Service,
	hours *domain.OperatingHours,
	existing []*domain.Appointment,
	now time.Time,
) error {
	t, err := types.ParseMinutes(start.String())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotBookable, err)
	}

	day, err := openDay(date, service, hours)
	if err != nil {
		return err
	}
	if !day.IsOpen {
		return ErrDayClosed
	}

	window := NewBookingWindow(hours, now)
	if !window.AllowsDate(date) {
		return fmt.Errorf("%w: date %s", ErrOutsideBookingWindow, date.Format(domain.DateFormat))
	}

	occupancy := service.EffectiveDuration()
	if !onGrid(day, t, occupancy, Step(occupancy)) {
		return fmt.Errorf("%w: %s", ErrNotBookable, start)
	}

	if !window.AllowsStart(window.StartInstant(date, t)) {
		return fmt.Errorf("%w: %s starts before %s", ErrOutsideBookingWindow, start, window.Earliest.Format(time.RFC3339))
	}

	if Conflicts(date, t, occupancy, existing) {
		return ErrSlotTaken
	}

	return nil
}

// openDay validates inputs and returns the availability of date's weekday
func openDay(date time.Time, service *domain.Service, hours *domain.OperatingHours) (domain.DayAvailability, error) {
	if service == nil {
		return domain.DayAvailability{}, fmt.Errorf("%w: service is required", domain.ErrInvalidService)
	}
	if err := service.Validate(); err != nil {
		return domain.DayAvailability{}, err
	}
	if hours == nil {
		return domain.DayAvailability{}, nil
	}

	day := hours.ForDate(date)
	if err := day.Validate(); err != nil {
		return domain.DayAvailability{}, fmt.Errorf("%w: %s: %v", domain.ErrInvalidOperatingHours, domain.WeekdayOf(date), err)
	}
	if len(day.Slots) == 0 {
		day.IsOpen = false
	}
	return day, nil
}

func onGrid(day domain.DayAvailability, t, occupancy, step int) bool {
	for _, r := range day.Slots {
		start, end := r.Start.Minutes(), r.End.Minutes()
		if t < start || t+occupancy > end {
			continue
		}
		if (t-start)%step == 0 {
			return true
		}
	}
	return false
}
