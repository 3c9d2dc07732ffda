package models

import "gorm.io/gorm"

// VolunteerInfo holds the extra fields captured for volunteer accounts.
type VolunteerInfo struct {
	VehicleNo  string `json:"vehicle_no"`
	LicenseNo  string `json:"license_no"`
	WhoTheyAre string `json:"who_they_are"`
}

type User struct {
	gorm.Model
	Username    string `json:"username" gorm:"uniqueIndex;not null"`
	Email       string `json:"email" gorm:"uniqueIndex;not null"`
	Mobile      string `json:"mobile"`
	Password    string `json:"-"`
	Role        string `json:"role"`         // "general", "volunteer", "admin", "public"
	AccessLevel string `json:"access_level"` // "super", "support", "general", derived from Role at signup

	// Sub-type only for general users (ngo, hostel, school, ...)
	GeneralType string `json:"general_type,omitempty"`

	// Extra fields only for volunteers
	VolunteerInfo VolunteerInfo `gorm:"embedded;embeddedPrefix:volunteer_" json:"volunteer_info"`

	// Relative path of the uploaded proof document under /uploads
	ProofDocument string `json:"proof_document"`

	// Actor-specific relations
	Donations []Donation `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"donations,omitempty"`
	Receives  []Receive  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"receives,omitempty"`
}
