package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName   string         `json:"firstName"`
	LastName    string         `json:"lastName"`
	Email       string         `json:"email" gorm:"uniqueIndex"`
	PhoneNumber string         `json:"phoneNumber"`
	Password    string         `json:"-"`
	AvatarURL   string         `json:"avatarURL"`
	SavedPlaces datatypes.JSON `json:"savedPlaces"`
	Places      []Place        `json:"places,omitempty" gorm:"foreignKey:OwnerID;references:ID"`
}
