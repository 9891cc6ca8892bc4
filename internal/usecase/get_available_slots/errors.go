package get_available_slots

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена, неактивна или принадлежит другому бизнесу
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrInvalidConfiguration возвращается при некорректной услуге или часах работы
	ErrInvalidConfiguration = errors.New("get_available_slots: invalid service or operating hours configuration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
