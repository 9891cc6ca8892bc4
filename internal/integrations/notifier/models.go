package notifier

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// EventType тип события о записи
type EventType string

const (
	EventCreated   EventType = "appointment.created"
	EventConfirmed EventType = "appointment.confirmed"
	EventCompleted EventType = "appointment.completed"
	EventCancelled EventType = "appointment.cancelled"
)

// EventTypeFor возвращает тип события для статуса, в который перешла запись
func EventTypeFor(status domain.AppointmentStatus) EventType {
	switch status {
	case domain.StatusConfirmed:
		return EventConfirmed
	case domain.StatusCompleted:
		return EventCompleted
	case domain.StatusCancelled:
		return EventCancelled
	default:
		return EventCreated
	}
}

// Event событие о записи
type Event struct {
	ID            string    `json:"id"`
	Type          EventType `json:"type"`
	AppointmentID int64     `json:"appointmentId"`
	BusinessID    int64     `json:"businessId"`
	CustomerID    int64     `json:"customerId"`
	Status        string    `json:"status"`
	ScheduledDate string    `json:"scheduledDate"`
	ScheduledTime string    `json:"scheduledTime"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// NewEvent строит событие по текущему состоянию записи
func NewEvent(eventType EventType, appt *domain.Appointment, occurredAt time.Time) Event {
	return Event{
		ID:            uuid.NewString(),
		Type:          eventType,
		AppointmentID: appt.ID,
		BusinessID:    appt.BusinessID,
		CustomerID:    appt.CustomerID,
		Status:        string(appt.Status),
		ScheduledDate: appt.ScheduledDate.Format(domain.DateFormat),
		ScheduledTime: appt.ScheduledTime.String(),
		OccurredAt:    occurredAt.UTC(),
	}
}
