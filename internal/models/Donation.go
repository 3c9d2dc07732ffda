// internal/models/Donation.go
package models

import (
	"gorm.io/gorm"
)

// Donation represents a donor's offer of one or more food items at a location.
// The owner never changes after creation; food items live in their own table.
type Donation struct {
	gorm.Model

	UserID uint `json:"user_id" gorm:"index;not null"` // Foreign key to User (the donor)
	User   User `gorm:"foreignKey:UserID" json:"-"`

	Foods []FoodItem `gorm:"foreignKey:DonationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"foods"`

	Location Location `gorm:"embedded;embeddedPrefix:location_" json:"location"`

	// "Pending", "Accepted", "Collected", "Distributed"
	// Only Pending is ever written today; the rest are valid targets for
	// future transitions.
	Status string `json:"status" gorm:"default:Pending"`

	// Volunteer/receiver who accepted the donation, once someone does.
	AcceptedByID *uint `json:"accepted_by_id,omitempty"`
	AcceptedBy   *User `gorm:"foreignKey:AcceptedByID" json:"-"`
}
