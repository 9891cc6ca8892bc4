package update_operating_hours

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/hours/models"
)

// UpdateOperatingHoursRequest HTTP request model
// Диапазоны времени проверяет сервис, здесь только границы окна бронирования
type UpdateOperatingHoursRequest struct {
	Schedule           domain.WeeklySchedule `json:"schedule"`
	AdvanceBookingDays int                   `json:"advanceBookingDays" validate:"gte=0,lte=365"`
	MinAdvanceHours    int                   `json:"minAdvanceHours" validate:"gte=0,lte=168"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateOperatingHoursRequest) ToServiceRequest() *models.UpsertHoursRequest {
	return &models.UpsertHoursRequest{
		Schedule:           r.Schedule,
		AdvanceBookingDays: r.AdvanceBookingDays,
		MinAdvanceHours:    r.MinAdvanceHours,
	}
}
