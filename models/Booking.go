package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking is a confirmed stay. The composite index on (place_id, check_in)
// backs the overlap queries that rebuild a listing's availability view.
type Booking struct {
	gorm.Model
	PlaceID      uint      `json:"placeID" gorm:"not null;index:idx_bookings_place_checkin,priority:1"`
	GuestID      uint      `json:"guestID" gorm:"not null;index"`
	CheckIn      time.Time `json:"checkIn" gorm:"not null;index:idx_bookings_place_checkin,priority:2"`
	CheckOut     time.Time `json:"checkOut" gorm:"not null"`
	NumGuests    int       `json:"numGuests" gorm:"not null"`
	TotalPrice   int64     `json:"totalPrice" gorm:"not null"` // smallest currency unit
	ContactName  string    `json:"contactName"`
	ContactPhone string    `json:"contactPhone"`
	Status       string    `json:"status" gorm:"type:varchar(20);default:'confirmed';index"`

	Place *Place `json:"place,omitempty" gorm:"foreignKey:PlaceID"`
	Guest *User  `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
}
