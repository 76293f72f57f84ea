package booking

import "errors"

// Failure taxonomy for booking attempts. The first six are deterministic
// validation failures; ErrSlotUnavailable means somebody else booked first;
// ErrTransientStorage is the only one a caller may retry with the same input.
var (
	ErrUnauthenticated    = errors.New("caller is not authenticated")
	ErrListingNotFound    = errors.New("listing not found")
	ErrInvalidInterval    = errors.New("check-in must be before check-out")
	ErrContactInfoMissing = errors.New("contact name and phone are required")
	ErrGuestCountInvalid  = errors.New("guest count must be at least 1")
	ErrGuestCountExceeded = errors.New("guest count exceeds listing capacity")
	ErrSlotUnavailable    = errors.New("dates are no longer available")
	ErrTransientStorage   = errors.New("temporary storage failure")
)
