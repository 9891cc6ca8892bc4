package domain

import "fmt"

// Service is a bookable offering of a business. The catalog owns it; this
// service only reads it.
type Service struct {
	ID         int64
	BusinessID int64
	Name       string
	Duration   int // minutes
	BufferTime int // minutes reserved after the service
	Price      float64
	IsActive   bool
}

// EffectiveDuration is the calendar occupancy of one booking
func (s *Service) EffectiveDuration() int {
	return s.Duration + s.BufferTime
}

// Validate rejects services the slot generator cannot work with
func (s *Service) Validate() error {
	if s.Duration < MinServiceDurationMinutes {
		return fmt.Errorf("%w: duration must be at least %d minutes, got %d",
			ErrInvalidService, MinServiceDurationMinutes, s.Duration)
	}
	// services longer than any open range are valid, they just have no slots
	if s.BufferTime < 0 {
		return fmt.Errorf("%w: buffer must not be negative, got %d", ErrInvalidService, s.BufferTime)
	}
	return nil
}
