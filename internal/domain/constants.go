package domain

// Slot generation
const (
	// SlotStepMinutes is the candidate start-time grid, capped by the service occupancy
	SlotStepMinutes = 15
)

// Business validation constants
const (
	MinServiceDurationMinutes   = 1
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365 // 1 year
	MinAdvanceHours             = 0
	MaxAdvanceHours             = 168 // 1 week
	MaxNotesLength              = 500
	MaxBusinessNotesLength      = 1000
	MaxCancellationReasonLength = 500
)

// Default operating hours values
const (
	DefaultAdvanceBookingDays = 0 // 0 = unlimited
	DefaultMinAdvanceHours    = 0
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
