package domain

import "errors"

// Expected, recoverable conditions. Callers branch on these with errors.Is;
// nothing in the core panics or aborts for them.
var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomTypeNotFound = errors.New("room type not found")
	ErrBookingNotFound  = errors.New("booking not found")

	// Invalid-state conditions: the entity exists but its current status
	// forbids the operation.
	ErrRoomUnavailable = errors.New("room not available")
	ErrRoomBooked      = errors.New("room is booked")
	ErrBookingClosed   = errors.New("booking already cancelled or checked out")
)
