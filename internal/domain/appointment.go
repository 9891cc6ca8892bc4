package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// AllStatuses lists every known status in lifecycle order
var AllStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}

// ParseAppointmentStatus converts a raw string into a known status
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(s)
	if !status.IsValid() {
		return "", ErrUnknownStatus
	}
	return status, nil
}

// IsValid returns true for one of the four known statuses
func (s AppointmentStatus) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal returns true for completed and cancelled
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Appointment is a booked service slot shared between a business and a customer.
// BusinessID, ServiceID, ScheduledDate, ScheduledTime, Duration and BufferMinutes
// are written once at creation.
type Appointment struct {
	ID            int64
	BusinessID    int64
	ServiceID     int64
	CustomerID    int64
	ScheduledDate time.Time
	ScheduledTime types.TimeString
	Duration      int // minutes, copied from the service at booking time
	BufferMinutes int // buffer copied from the service at booking time
	Status        AppointmentStatus

	// Denormalized data for history
	ServiceName string

	Notes         *string // customer notes
	BusinessNotes *string // visible to the business only

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies the calendar
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// Occupancy returns the minutes the appointment reserves on the calendar
func (a *Appointment) Occupancy() int {
	return a.Duration + a.BufferMinutes
}

// CanBeCancelled returns true while the appointment is not terminal
func (a *Appointment) CanBeCancelled() bool {
	return !a.Status.IsTerminal()
}

// Apply moves the appointment to the next status if the lifecycle allows it
func (a *Appointment) Apply(to AppointmentStatus, now time.Time) error {
	if err := Transition(a.Status, to); err != nil {
		return err
	}

	a.Status = to
	a.UpdatedAt = now
	if to == StatusCancelled {
		cancelledAt := now
		a.CancelledAt = &cancelledAt
	}
	return nil
}

// AppointmentsFilter фильтр для выборки записей
type AppointmentsFilter struct {
	BusinessID       *int64             // Фильтр по бизнесу
	CustomerID       *int64             // Фильтр по клиенту
	StartDate        *time.Time         // Начало периода (включительно)
	EndDate          *time.Time         // Конец периода (включительно)
	Status           *AppointmentStatus // Фильтр по статусу
	IncludeCancelled bool               // Включать ли отменённые записи
}

// IsSingleDate returns true when the filter targets exactly one calendar date
func (f AppointmentsFilter) IsSingleDate() bool {
	return f.StartDate != nil && f.EndDate != nil && f.StartDate.Equal(*f.EndDate)
}

// DateOnly truncates t to midnight of its calendar day in t's location
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDate reports whether two instants fall on the same calendar day
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
