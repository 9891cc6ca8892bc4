package create_appointment

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена, неактивна или принадлежит другому бизнесу
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrBusinessClosed возвращается, когда бизнес не работает в указанную дату
	ErrBusinessClosed = errors.New("create_appointment: business is closed on this date")

	// ErrOutsideBookingWindow возвращается, когда дата или время нарушают окно бронирования
	ErrOutsideBookingWindow = errors.New("create_appointment: outside booking window")

	// ErrSlotNotAvailable возвращается, когда время занято или не входит в доступные слоты.
	// Клиент может повторить запрос с другим временем.
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
