package create_appointment

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// mapSlotError переводит причину отказа планировщика в ошибку use case
func mapSlotError(err error) error {
	switch {
	case errors.Is(err, scheduling.ErrDayClosed):
		return ErrBusinessClosed
	case errors.Is(err, scheduling.ErrOutsideBookingWindow):
		return fmt.Errorf("%w: %v", ErrOutsideBookingWindow, err)
	case errors.Is(err, scheduling.ErrNotBookable), errors.Is(err, scheduling.ErrSlotTaken):
		return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
	default:
		return fmt.Errorf("%w: invalid service or operating hours: %v", ErrInternal, err)
	}
}
