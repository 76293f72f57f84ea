package models

import "gorm.io/gorm"

// Notification is an in-app inbox entry, e.g. telling a host about a new
// booking on one of their places.
type Notification struct {
	gorm.Model
	UserID  uint   `json:"userID" gorm:"not null;index"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"` // booking_confirmed
	RefID   uint   `json:"refID"`
	RefType string `json:"refType"` // booking
	IsRead  bool   `json:"isRead" gorm:"default:false"`
}
