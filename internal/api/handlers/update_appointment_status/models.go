package update_appointment_status

import (
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status             string  `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
	BusinessNotes      *string `json:"businessNotes,omitempty" validate:"omitempty,max=1000"`
	CancellationReason *string `json:"cancellationReason,omitempty" validate:"omitempty,max=500"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(businessID int64) *models.TransitionRequest {
	return &models.TransitionRequest{
		BusinessID:         businessID,
		Status:             r.Status,
		BusinessNotes:      r.BusinessNotes,
		CancellationReason: r.CancellationReason,
	}
}
