// Package controllers holds the HTTP handlers for accounts, donations and
// receive requests. Handlers talk to the global config.DB handle, the shared
// upload store and a swappable clock.
package controllers

import (
	"rescue_connect/internal/expiry"
	"rescue_connect/internal/storage"
)

var (
	uploads *storage.Store
	clk     expiry.Clock = expiry.RealClock{}
)

// SetUploads wires the upload store used for photos and proof documents.
func SetUploads(s *storage.Store) {
	uploads = s
}

// SetClock swaps the clock used for expiry filtering. Tests use this to
// simulate time advancing.
func SetClock(c expiry.Clock) {
	clk = c
}
