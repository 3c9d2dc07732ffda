package expiry

import (
	"time"

	"rescue_connect/internal/models"
)

// Clock abstracts time retrieval so listing logic is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// ExpiresAt returns the moment a food item stops being available.
// The duration counts from the owning donation's creation time.
func ExpiresAt(createdAt time.Time, durationHours float64) time.Time {
	return createdAt.Add(time.Duration(durationHours * float64(time.Hour)))
}

// IsExpired reports whether the item is past its expiry at the given instant.
// A zero duration expires the item the moment the donation is created.
func IsExpired(createdAt time.Time, durationHours float64, now time.Time) bool {
	return !now.Before(ExpiresAt(createdAt, durationHours))
}

// Remaining returns the time left before expiry, decomposed into whole hours
// and whole minutes for display. ok is false once the item has expired.
// Recomputed on every call; a previous result goes stale as now advances.
func Remaining(createdAt time.Time, durationHours float64, now time.Time) (hours int, minutes int, ok bool) {
	left := ExpiresAt(createdAt, durationHours).Sub(now)
	if left <= 0 {
		return 0, 0, false
	}
	hours = int(left / time.Hour)
	minutes = int((left % time.Hour) / time.Minute)
	return hours, minutes, true
}

// FreshFoods returns the subset of a donation's food items that are still
// unexpired at the given instant, in their original order.
func FreshFoods(d models.Donation, now time.Time) []models.FoodItem {
	var fresh []models.FoodItem
	for _, f := range d.Foods {
		if !IsExpired(d.CreatedAt, f.ExpiryDuration, now) {
			fresh = append(fresh, f)
		}
	}
	return fresh
}

// FilterAvailable trims each donation to its unexpired food items and drops
// donations left with none. A donation stays visible while at least one item
// is still fresh.
func FilterAvailable(donations []models.Donation, now time.Time) []models.Donation {
	available := make([]models.Donation, 0, len(donations))
	for _, d := range donations {
		fresh := FreshFoods(d, now)
		if len(fresh) == 0 {
			continue
		}
		d.Foods = fresh
		available = append(available, d)
	}
	return available
}
