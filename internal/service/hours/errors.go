package hours

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных часах работы
	ErrInvalidInput = errors.New("hours: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("hours: internal error")
)
