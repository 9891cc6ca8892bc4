package update_operating_hours

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/hours/models"
)

type HoursService interface {
	Upsert(ctx context.Context, businessID int64, req *models.UpsertHoursRequest) (*models.HoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
