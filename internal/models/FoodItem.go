package models

import (
	"gorm.io/gorm"
)

// FoodItem is a single food entry within a donation.
// ExpiryDuration counts from the owning donation's CreatedAt, not from the
// item's own row timestamp.
type FoodItem struct {
	gorm.Model

	DonationID uint `json:"donation_id" gorm:"index"`

	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"` // kg or persons
	Unit     string  `json:"unit"`     // "kg" or "persons"

	// Relative path of the uploaded photo under /uploads, empty when none
	Photo string `json:"photo,omitempty"`

	// Hours until the item expires, counted from donation creation
	ExpiryDuration float64 `json:"expiry_duration"`

	Status string `json:"status" gorm:"default:Pending"`
}
