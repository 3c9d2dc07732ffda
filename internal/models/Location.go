package models

// Location is a point where food is offered or wanted.
// Embedded into Donation and Receive rather than shared between them.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}
