package booking

import (
	"context"
	"strings"
	"time"
)

// Clock lets tests pin "today" for the no-retroactive-bookings check.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// CreateBookingRequest carries everything a booking attempt needs. GuestID 0
// means the caller is anonymous; credential verification happened upstream.
type CreateBookingRequest struct {
	ListingID    uint
	GuestID      uint
	CheckIn      time.Time
	CheckOut     time.Time
	NumGuests    int
	ContactName  string
	ContactPhone string
}

// Coordinator is the only entry point that creates bookings. It validates the
// request, prices the stay, and commits through the availability index so the
// pairwise non-overlapping invariant holds under concurrent requests.
type Coordinator struct {
	directory Directory
	store     Store
	index     *Index
	clock     Clock
}

func NewCoordinator(directory Directory, store Store) *Coordinator {
	return &Coordinator{
		directory: directory,
		store:     store,
		index:     NewIndex(store),
		clock:     realClock{},
	}
}

// SetClock replaces the wall clock, for tests.
func (c *Coordinator) SetClock(clock Clock) {
	if clock != nil {
		c.clock = clock
	}
}

// Index exposes the availability index for advisory reads.
func (c *Coordinator) Index() *Index {
	return c.index
}

// CreateBooking runs the full pipeline. Exactly one booking record and one
// index entry are created, or none at all.
func (c *Coordinator) CreateBooking(ctx context.Context, req CreateBookingRequest) (*Booking, error) {
	if req.GuestID == 0 {
		return nil, ErrUnauthenticated
	}

	listing, err := c.directory.GetListing(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}
	if listing.Archived {
		return nil, ErrListingNotFound
	}

	iv, err := NewInterval(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	today := NormalizeDate(c.clock.Now())
	if iv.CheckIn.Before(today) {
		return nil, ErrInvalidInterval
	}

	if strings.TrimSpace(req.ContactName) == "" || strings.TrimSpace(req.ContactPhone) == "" {
		return nil, ErrContactInfoMissing
	}

	total, err := ComputePrice(listing, iv, req.NumGuests)
	if err != nil {
		return nil, err
	}

	b := &Booking{
		ListingID:    req.ListingID,
		GuestID:      req.GuestID,
		Interval:     iv,
		NumGuests:    req.NumGuests,
		TotalPrice:   total,
		ContactName:  strings.TrimSpace(req.ContactName),
		ContactPhone: strings.TrimSpace(req.ContactPhone),
		Status:       StatusConfirmed,
	}

	err = c.index.Reserve(ctx, req.ListingID, iv, func(ctx context.Context) error {
		return c.store.CreateBooking(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListBookingsForGuest returns the caller's own bookings, newest first per the
// store's ordering. Read-only.
func (c *Coordinator) ListBookingsForGuest(ctx context.Context, guestID uint) ([]Booking, error) {
	if guestID == 0 {
		return nil, ErrUnauthenticated
	}
	return c.store.BookingsForGuest(ctx, guestID)
}
