package storage

import (
	"context"
	"errors"
	"fmt"

	"airbnb-clone-server/booking"
	"airbnb-clone-server/models"

	"gorm.io/gorm"
)

// BookingStore adapts the gorm models to the booking engine's Directory and
// Store interfaces. Database failures surface as ErrTransientStorage so
// callers know a retry with the same input is safe.
type BookingStore struct {
	db *gorm.DB
}

func NewBookingStore(db *gorm.DB) *BookingStore {
	return &BookingStore{db: db}
}

func (s *BookingStore) GetListing(ctx context.Context, id uint) (booking.Listing, error) {
	var place models.Place
	err := s.db.WithContext(ctx).First(&place, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return booking.Listing{}, booking.ErrListingNotFound
	}
	if err != nil {
		return booking.Listing{}, fmt.Errorf("%w: %v", booking.ErrTransientStorage, err)
	}
	return booking.Listing{
		ID:           place.ID,
		OwnerID:      place.OwnerID,
		NightlyPrice: place.NightlyPrice,
		MaxGuests:    place.MaxGuests,
		Archived:     place.Archived,
	}, nil
}

func (s *BookingStore) ConfirmedIntervals(ctx context.Context, listingID uint) ([]booking.Interval, error) {
	var rows []models.Booking
	err := s.db.WithContext(ctx).
		Select("check_in, check_out").
		Where("place_id = ? AND status = ?", listingID, booking.StatusConfirmed).
		Order("check_in ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", booking.ErrTransientStorage, err)
	}

	intervals := make([]booking.Interval, 0, len(rows))
	for _, row := range rows {
		intervals = append(intervals, booking.Interval{
			CheckIn:  booking.NormalizeDate(row.CheckIn),
			CheckOut: booking.NormalizeDate(row.CheckOut),
		})
	}
	return intervals, nil
}

func (s *BookingStore) CreateBooking(ctx context.Context, b *booking.Booking) error {
	row := models.Booking{
		PlaceID:      b.ListingID,
		GuestID:      b.GuestID,
		CheckIn:      b.Interval.CheckIn,
		CheckOut:     b.Interval.CheckOut,
		NumGuests:    b.NumGuests,
		TotalPrice:   b.TotalPrice,
		ContactName:  b.ContactName,
		ContactPhone: b.ContactPhone,
		Status:       b.Status,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("%w: %v", booking.ErrTransientStorage, err)
	}
	b.ID = row.ID
	b.CreatedAt = row.CreatedAt
	return nil
}

func (s *BookingStore) BookingsForGuest(ctx context.Context, guestID uint) ([]booking.Booking, error) {
	var rows []models.Booking
	err := s.db.WithContext(ctx).
		Where("guest_id = ?", guestID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", booking.ErrTransientStorage, err)
	}

	out := make([]booking.Booking, 0, len(rows))
	for _, row := range rows {
		out = append(out, booking.Booking{
			ID:        row.ID,
			ListingID: row.PlaceID,
			GuestID:   row.GuestID,
			Interval: booking.Interval{
				CheckIn:  booking.NormalizeDate(row.CheckIn),
				CheckOut: booking.NormalizeDate(row.CheckOut),
			},
			NumGuests:    row.NumGuests,
			TotalPrice:   row.TotalPrice,
			ContactName:  row.ContactName,
			ContactPhone: row.ContactPhone,
			Status:       row.Status,
			CreatedAt:    row.CreatedAt,
		})
	}
	return out, nil
}
