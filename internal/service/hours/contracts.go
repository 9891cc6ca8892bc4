package hours

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// HoursRepository интерфейс репозитория часов работы
type HoursRepository interface {
	GetByBusinessID(ctx context.Context, businessID int64) (*domain.OperatingHours, error)
	Upsert(ctx context.Context, h *domain.OperatingHours) (*domain.OperatingHours, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
