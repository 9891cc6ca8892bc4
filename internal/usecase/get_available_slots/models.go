package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	BusinessID int64     // ID бизнеса
	ServiceID  int64     // ID услуги
	Date       time.Time // Дата без времени
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time
	BusinessID      int64
	ServiceID       int64
	DurationMinutes int                // Длительность услуги
	BufferMinutes   int                // Буфер после услуги
	Slots           []types.TimeString // Время начала, по возрастанию
}
