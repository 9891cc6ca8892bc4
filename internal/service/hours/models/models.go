package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// UpsertHoursRequest запрос на сохранение часов работы бизнеса
// Не переданные дни считаются выходными
type UpsertHoursRequest struct {
	Schedule           domain.WeeklySchedule `json:"schedule"`
	AdvanceBookingDays int                   `json:"advanceBookingDays"` // 0 = без ограничений
	MinAdvanceHours    int                   `json:"minAdvanceHours"`
}

// HoursResponse ответ с часами работы бизнеса
type HoursResponse struct {
	BusinessID         int64                 `json:"businessId"`
	Schedule           domain.WeeklySchedule `json:"schedule"`
	AdvanceBookingDays int                   `json:"advanceBookingDays"`
	MinAdvanceHours    int                   `json:"minAdvanceHours"`
	Configured         bool                  `json:"configured"`
	UpdatedAt          *time.Time            `json:"updatedAt,omitempty"`
}

// ToDomain собирает domain модель из запроса
func (r *UpsertHoursRequest) ToDomain(businessID int64) *domain.OperatingHours {
	return &domain.OperatingHours{
		BusinessID:         businessID,
		Schedule:           r.Schedule,
		AdvanceBookingDays: r.AdvanceBookingDays,
		MinAdvanceHours:    r.MinAdvanceHours,
	}
}

// FromDomainHours конвертирует domain модель в DTO
func FromDomainHours(h *domain.OperatingHours, configured bool) *HoursResponse {
	if h == nil {
		return nil
	}

	resp := &HoursResponse{
		BusinessID:         h.BusinessID,
		Schedule:           h.Schedule,
		AdvanceBookingDays: h.AdvanceBookingDays,
		MinAdvanceHours:    h.MinAdvanceHours,
		Configured:         configured,
	}
	if configured && !h.UpdatedAt.IsZero() {
		updatedAt := h.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}
