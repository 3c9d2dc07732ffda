// internal/models/Receive.go
package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Receive is a receiver's request against a donation.
// RequestedFoods is a snapshot of the donation's food list at request time,
// stored as JSON so later edits to the donation never leak into the request.
type Receive struct {
	gorm.Model

	UserID uint `json:"user_id" gorm:"index;not null"` // Foreign key to User (the receiver)
	User   User `gorm:"foreignKey:UserID" json:"-"`

	RequestedFoods datatypes.JSON `gorm:"type:jsonb" json:"requested_foods"`

	Location Location `gorm:"embedded;embeddedPrefix:location_" json:"location"`

	// "Pending", "Confirmed", "Completed"; only Pending is written today
	Status string `json:"status" gorm:"default:Pending"`

	LinkedDonationID *uint     `json:"linked_donation_id,omitempty" gorm:"index"`
	LinkedDonation   *Donation `gorm:"foreignKey:LinkedDonationID" json:"-"`

	// Volunteer support fields; carried in the schema, driven by no flow yet
	NeedsSupport        bool  `json:"needs_support" gorm:"default:false"`
	AssignedVolunteerID *uint `json:"assigned_volunteer_id,omitempty"`
	AssignedVolunteer   *User `gorm:"foreignKey:AssignedVolunteerID" json:"-"`
}
