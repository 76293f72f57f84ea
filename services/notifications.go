package services

import (
	"fmt"
	"log"

	"airbnb-clone-server/booking"
	"airbnb-clone-server/models"
	"airbnb-clone-server/storage"
)

// NotificationService writes in-app inbox entries for hosts.
type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyHostOfBooking records a booking-confirmed notification for the owner
// of the booked place. Failures are logged, never surfaced: the booking is
// already committed and a lost notification must not fail the request.
func (ns *NotificationService) NotifyHostOfBooking(b *booking.Booking) {
	var place models.Place
	if err := storage.DB.First(&place, b.ListingID).Error; err != nil {
		log.Printf("booking notification: place %d not found: %v", b.ListingID, err)
		return
	}

	notification := models.Notification{
		UserID: place.OwnerID,
		Title:  "New Booking",
		Message: fmt.Sprintf("%s booked %s from %s to %s",
			b.ContactName,
			place.Title,
			b.Interval.CheckIn.Format("Jan 2, 2006"),
			b.Interval.CheckOut.Format("Jan 2, 2006")),
		Type:    "booking_confirmed",
		RefID:   b.ID,
		RefType: "booking",
	}

	if err := storage.DB.Create(&notification).Error; err != nil {
		log.Printf("failed to create booking notification for host %d: %v", place.OwnerID, err)
	}
}
