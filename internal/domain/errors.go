package domain

import "errors"

var (
	// ErrInvalidTimeRange is returned for a malformed range or one with start >= end
	ErrInvalidTimeRange = errors.New("domain: invalid time range")

	// ErrInvalidOperatingHours is returned when operating hours fail validation
	ErrInvalidOperatingHours = errors.New("domain: invalid operating hours")

	// ErrInvalidService is returned for a service that cannot be scheduled
	ErrInvalidService = errors.New("domain: invalid service")

	// ErrUnknownStatus is returned when a status string is not one of the known states
	ErrUnknownStatus = errors.New("domain: unknown appointment status")

	// ErrInvalidTransition is returned for any status change the lifecycle does not allow
	ErrInvalidTransition = errors.New("domain: invalid status transition")

	// ErrTerminalState is returned when the appointment is already completed or cancelled
	ErrTerminalState = errors.New("domain: appointment is in a terminal state")

	// ErrInvalidWeekday is returned when a weekday name cannot be parsed
	ErrInvalidWeekday = errors.New("domain: invalid weekday")
)
