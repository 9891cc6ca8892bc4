package domain

import (
	"errors"
	"fmt"
)

// allowedTransitions is the whole appointment state machine.
// Terminal states have no outgoing edges.
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: nil,
	StatusCancelled: nil,
}

// InvalidTransitionError describes a rejected status change
type InvalidTransitionError struct {
	From AppointmentStatus
	To   AppointmentStatus
}

func (e *InvalidTransitionError) Error() string {
	if e.From.IsTerminal() {
		return fmt.Sprintf("%s: appointment is already %s, cannot move to %s", ErrInvalidTransition, e.From, e.To)
	}
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

// Is lets errors.Is match ErrInvalidTransition, and ErrTerminalState when From is terminal
func (e *InvalidTransitionError) Is(target error) bool {
	if target == ErrInvalidTransition {
		return true
	}
	return target == ErrTerminalState && e.From.IsTerminal()
}

// Transition validates a status change without mutating anything
func Transition(from, to AppointmentStatus) error {
	if !from.IsValid() {
		return fmt.Errorf("%w: current status %q", ErrUnknownStatus, from)
	}
	if !to.IsValid() {
		return fmt.Errorf("%w: target status %q", ErrUnknownStatus, to)
	}

	for _, next := range allowedTransitions[from] {
		if next == to {
			return nil
		}
	}

	return &InvalidTransitionError{From: from, To: to}
}

// CurrentStatus extracts the state an appointment was in from a transition error
func CurrentStatus(err error) (AppointmentStatus, bool) {
	var transitionErr *InvalidTransitionError
	if errors.As(err, &transitionErr) {
		return transitionErr.From, true
	}
	return "", false
}
