package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модели

// GetCustomerAppointmentsRequest запрос истории записей клиента
type GetCustomerAppointmentsRequest struct {
	UserID     int64   `json:"userId"`
	CustomerID int64   `json:"customerId"`
	Status     *string `json:"status,omitempty"`
}

// GetBusinessAppointmentsRequest запрос записей бизнеса
// Date задает один день, From/To - период (включительно)
type GetBusinessAppointmentsRequest struct {
	BusinessID       int64      `json:"businessId"`
	Date             *time.Time `json:"date,omitempty"`
	From             *time.Time `json:"from,omitempty"`
	To               *time.Time `json:"to,omitempty"`
	Status           *string    `json:"status,omitempty"`
	IncludeCancelled bool       `json:"includeCancelled"`
}

// TransitionRequest запрос на смену статуса со стороны бизнеса
type TransitionRequest struct {
	BusinessID         int64   `json:"businessId"`
	Status             string  `json:"status"`
	BusinessNotes      *string `json:"businessNotes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// CancelRequest запрос на отмену записи клиентом
type CancelRequest struct {
	UserID int64   `json:"userId"`
	Reason *string `json:"reason,omitempty"`
}

// UpdateNotesRequest запрос на обновление заметок бизнеса
type UpdateNotesRequest struct {
	BusinessID int64   `json:"businessId"`
	Notes      *string `json:"notes"`
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID                 int64      `json:"id"`
	BusinessID         int64      `json:"businessId"`
	ServiceID          int64      `json:"serviceId"`
	CustomerID         int64      `json:"customerId"`
	ScheduledDate      string     `json:"scheduledDate"`
	ScheduledTime      string     `json:"scheduledTime"`
	DurationMinutes    int        `json:"durationMinutes"`
	BufferMinutes      int        `json:"bufferMinutes"`
	Status             string     `json:"status"`
	ServiceName        string     `json:"serviceName"`
	Notes              *string    `json:"notes,omitempty"`
	BusinessNotes      *string    `json:"businessNotes,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
// Заметки бизнеса отдаются только самому бизнесу
func FromDomainAppointment(a *domain.Appointment, forBusiness bool) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		BusinessID:         a.BusinessID,
		ServiceID:          a.ServiceID,
		CustomerID:         a.CustomerID,
		ScheduledDate:      a.ScheduledDate.Format(domain.DateFormat),
		ScheduledTime:      a.ScheduledTime.String(),
		DurationMinutes:    a.Duration,
		BufferMinutes:      a.BufferMinutes,
		Status:             string(a.Status),
		ServiceName:        a.ServiceName,
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CancelledAt:        a.CancelledAt,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
	if forBusiness {
		resp.BusinessNotes = a.BusinessNotes
	}

	return resp
}

// FromDomainAppointmentList конвертирует список записей
func FromDomainAppointmentList(list []*domain.Appointment, forBusiness bool) *AppointmentListResponse {
	result := make([]AppointmentResponse, 0, len(list))
	for _, a := range list {
		if a == nil {
			continue
		}
		result = append(result, *FromDomainAppointment(a, forBusiness))
	}

	return &AppointmentListResponse{Appointments: result}
}

// ToDomainStatus конвертирует строковый статус в domain
func ToDomainStatus(s string) (domain.AppointmentStatus, error) {
	return domain.ParseAppointmentStatus(s)
}
