package booking

import (
	"context"
	"errors"
	"sync"
	"time"
)

// memStore is an in-memory Store + Directory used across the engine tests.
type memStore struct {
	mu       sync.Mutex
	listings map[uint]Listing
	bookings []Booking
	nextID   uint

	failCreate error // when set, CreateBooking returns it
	loads      int   // ConfirmedIntervals call count
}

func newMemStore(listings ...Listing) *memStore {
	s := &memStore{listings: make(map[uint]Listing), nextID: 1}
	for _, l := range listings {
		s.listings[l.ID] = l
	}
	return s
}

func (s *memStore) GetListing(ctx context.Context, id uint) (Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.listings[id]
	if !ok {
		return Listing{}, ErrListingNotFound
	}
	return l, nil
}

func (s *memStore) ConfirmedIntervals(ctx context.Context, listingID uint) ([]Interval, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	var out []Interval
	for _, b := range s.bookings {
		if b.ListingID == listingID && b.Status == StatusConfirmed {
			out = append(out, b.Interval)
		}
	}
	return out, nil
}

func (s *memStore) CreateBooking(ctx context.Context, b *Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreate != nil {
		return s.failCreate
	}
	b.ID = s.nextID
	s.nextID++
	b.CreatedAt = time.Now()
	s.bookings = append(s.bookings, *b)
	return nil
}

func (s *memStore) BookingsForGuest(ctx context.Context, guestID uint) ([]Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Booking
	for _, b := range s.bookings {
		if b.GuestID == guestID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *memStore) bookingCount(listingID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.bookings {
		if b.ListingID == listingID {
			n++
		}
	}
	return n
}

var errStoreDown = errors.New("store down")

// fixedClock pins "today" for coordinator tests.
type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }
