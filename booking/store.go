package booking

import (
	"context"
	"time"
)

// BookingStatus values. Cancellation is not modeled, so confirmed is the only
// terminal state a committed booking can hold.
const StatusConfirmed = "confirmed"

// Listing is the slice of listing metadata the engine needs: enough to price a
// stay and validate a request. The full listing record (photos, description,
// address) belongs to the HTTP layer.
type Listing struct {
	ID           uint
	OwnerID      uint
	NightlyPrice int64 // smallest currency unit
	MaxGuests    int
	Archived     bool
}

// Booking is a confirmed reservation. Immutable once created.
type Booking struct {
	ID           uint      `json:"id"`
	ListingID    uint      `json:"listingID"`
	GuestID      uint      `json:"guestID"`
	Interval     Interval  `json:"interval"`
	NumGuests    int       `json:"numGuests"`
	TotalPrice   int64     `json:"totalPrice"`
	ContactName  string    `json:"contactName"`
	ContactPhone string    `json:"contactPhone"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Directory is the read path to listing metadata.
type Directory interface {
	// GetListing returns ErrListingNotFound when the id is unknown or the
	// listing has been archived.
	GetListing(ctx context.Context, id uint) (Listing, error)
}

// Store persists bookings. The availability index is a materialized view over
// confirmed bookings and must be rebuildable from ConfirmedIntervals alone.
type Store interface {
	// ConfirmedIntervals returns the intervals of every confirmed booking
	// for the listing, in any order.
	ConfirmedIntervals(ctx context.Context, listingID uint) ([]Interval, error)

	// CreateBooking inserts the record and fills in its ID and CreatedAt.
	CreateBooking(ctx context.Context, b *Booking) error

	// BookingsForGuest returns only bookings owned by that guest.
	BookingsForGuest(ctx context.Context, guestID uint) ([]Booking, error)
}
