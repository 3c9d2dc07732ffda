package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"rescue_connect/internal/config"
	"rescue_connect/internal/expiry"
	"rescue_connect/internal/models"
)

// foodInput mirrors one entry of the client's foods array. Quantity and
// expiry come in as numbers; photos arrive as separate multipart files
// paired with foods by index.
type foodInput struct {
	Name           string   `json:"name"`
	Quantity       *float64 `json:"quantity"`
	Unit           string   `json:"unit"`
	ExpiryDuration *float64 `json:"expiryDuration"`
	Status         string   `json:"status"`
}

// locationInput keeps lat/lng as pointers so a missing coordinate is
// distinguishable from 0.
type locationInput struct {
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
	Address string   `json:"address"`
}

// parseFoods accepts either a JSON array or a single JSON object, wrapping
// the latter, matching what the donation form submits.
func parseFoods(raw string) ([]foodInput, error) {
	var foods []foodInput
	if err := json.Unmarshal([]byte(raw), &foods); err == nil {
		return foods, nil
	}
	var single foodInput
	if err := json.Unmarshal([]byte(raw), &single); err != nil {
		return nil, errors.New("Invalid foods format")
	}
	return []foodInput{single}, nil
}

func validateFood(f foodInput) error {
	if strings.TrimSpace(f.Name) == "" {
		return errors.New("every food needs a name")
	}
	if f.Quantity == nil || *f.Quantity <= 0 {
		return errors.New("every food needs a positive quantity")
	}
	if f.Unit != "kg" && f.Unit != "persons" {
		return errors.New("food unit must be kg or persons")
	}
	if f.ExpiryDuration == nil || *f.ExpiryDuration < 0 {
		return errors.New("every food needs an expiry duration in hours")
	}
	return nil
}

// CreateDonation persists a new donation for the authenticated donor.
// Multipart form: "foods" (JSON), "location" (JSON), optional "photos" files
// paired with foods by position.
func CreateDonation(c *gin.Context) {
	userID := uint(c.MustGet("user_id").(float64))

	foodsRaw := c.PostForm("foods")
	locationRaw := c.PostForm("location")
	if foodsRaw == "" || locationRaw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	foods, err := parseFoods(foodsRaw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(foods) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one food item is required"})
		return
	}
	for _, f := range foods {
		if err := validateFood(f); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	var loc locationInput
	if err := json.Unmarshal([]byte(locationRaw), &loc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location format"})
		return
	}
	if loc.Lat == nil || loc.Lng == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location lat and lng are required"})
		return
	}

	items := make([]models.FoodItem, len(foods))
	for i, f := range foods {
		status := f.Status
		if status == "" {
			status = "Pending"
		}
		items[i] = models.FoodItem{
			Name:           f.Name,
			Quantity:       *f.Quantity,
			Unit:           f.Unit,
			ExpiryDuration: *f.ExpiryDuration,
			Status:         status,
		}
	}

	// Attach uploaded photos by position; a food without one keeps an
	// empty reference.
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for i, fh := range form.File["photos"] {
			if i >= len(items) {
				break
			}
			ref, err := uploads.Save(fh)
			if err != nil {
				logrus.WithError(err).Error("failed to store food photo")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store photo"})
				return
			}
			items[i].Photo = ref
		}
	}

	donation := models.Donation{
		UserID: userID,
		Foods:  items,
		Location: models.Location{
			Lat:     *loc.Lat,
			Lng:     *loc.Lng,
			Address: loc.Address,
		},
		Status: "Pending",
	}

	if err := config.DB.Create(&donation).Error; err != nil {
		logrus.WithError(err).Error("failed to create donation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create donation"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Donation added successfully",
		"donation": donation,
	})
}

// ListPendingDonations returns Pending donations trimmed to their unexpired
// food items, newest first. Donations whose foods have all expired are
// dropped entirely; the rows themselves are never deleted.
func ListPendingDonations(c *gin.Context) {
	var donations []models.Donation
	if err := config.DB.Preload("Foods").
		Where("status = ?", "Pending").
		Order("created_at DESC").
		Find(&donations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching donations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"donations": expiry.FilterAvailable(donations, clk.Now())})
}

// ListUserDonations returns a donor's full donation history, newest first.
// No expiry filtering: the owner sees expired and completed items too.
func ListUserDonations(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	var donations []models.Donation
	if err := config.DB.Preload("Foods").
		Where("user_id = ?", uint(userID)).
		Order("created_at DESC").
		Find(&donations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching donations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"donations": donations})
}
