package update_business_notes

import (
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// UpdateNotesRequest HTTP request model
// null очищает заметки
type UpdateNotesRequest struct {
	BusinessNotes *string `json:"businessNotes" validate:"omitempty,max=1000"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateNotesRequest) ToServiceRequest(businessID int64) *models.UpdateNotesRequest {
	return &models.UpdateNotesRequest{
		BusinessID: businessID,
		Notes:      r.BusinessNotes,
	}
}
