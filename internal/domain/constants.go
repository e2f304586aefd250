package domain

// Penalty ladder thresholds
const (
	WarningStrikeThreshold = 3
	BadStrikeThreshold     = 5
)

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Hourly grid defaults (business hours) used when the config omits them
const (
	DefaultDayStartHour = 8
	DefaultDayEndHour   = 18
)

// TerminalStatuses lists the statuses that retire a reservation
var TerminalStatuses = []ReservationStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// ActiveStatuses lists the statuses that can still occupy a slot
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}
