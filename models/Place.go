package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Place is a rentable listing. It is never hard-deleted while bookings
// reference it; owners archive it instead, which hides it from browse and
// blocks new bookings while committed bookings keep their stored prices.
type Place struct {
	gorm.Model
	OwnerID      uint           `json:"ownerID" gorm:"not null;index"`
	Title        string         `json:"title"`
	Address      string         `json:"address"`
	Description  string         `json:"description"`
	ExtraInfo    string         `json:"extraInfo"`
	Photos       datatypes.JSON `json:"photos"`
	Perks        datatypes.JSON `json:"perks"`
	MaxGuests    int            `json:"maxGuests" gorm:"not null"`
	NightlyPrice int64          `json:"nightlyPrice" gorm:"not null"` // smallest currency unit
	Archived     bool           `json:"archived" gorm:"default:false;index"`
	Bookings     []Booking      `json:"bookings,omitempty"`
	Owner        *User          `json:"owner,omitempty" gorm:"foreignKey:OwnerID;references:ID"`
}
