package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"rescue_connect/internal/config"
	"rescue_connect/internal/models"
)

// RequestDonation creates a Receive record against a donation for the
// authenticated receiver. The donation's food list and location are copied
// into the request; the donation itself is not touched, so several receivers
// can request the same donation.
func RequestDonation(c *gin.Context) {
	receiverID := uint(c.MustGet("user_id").(float64))

	donationID, err := strconv.ParseUint(c.Param("donationId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid donation ID format"})
		return
	}

	var donation models.Donation
	if err := config.DB.Preload("Foods").First(&donation, uint(donationID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error: " + err.Error()})
		}
		return
	}

	if len(donation.Foods) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Donation has no available foods"})
		return
	}

	snapshot, err := json.Marshal(donation.Foods)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not snapshot foods"})
		return
	}

	linkedID := donation.ID
	receive := models.Receive{
		UserID:           receiverID,
		RequestedFoods:   datatypes.JSON(snapshot),
		Location:         donation.Location,
		Status:           "Pending",
		LinkedDonationID: &linkedID,
	}

	if err := config.DB.Create(&receive).Error; err != nil {
		logrus.WithError(err).Error("failed to create receive request")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Donation requested successfully",
		"receive": receive,
	})
}

// ListDonorRequests returns every request made against the donor's
// donations, enriched with the requester's display info and the linked
// donation's identity. A donor with no donations gets an empty list.
func ListDonorRequests(c *gin.Context) {
	donorID, err := strconv.ParseUint(c.Param("donorId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid donor ID format"})
		return
	}

	var donationIDs []uint
	if err := config.DB.Model(&models.Donation{}).
		Where("user_id = ?", uint(donorID)).
		Pluck("id", &donationIDs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching donations"})
		return
	}
	if len(donationIDs) == 0 {
		c.JSON(http.StatusOK, gin.H{"requests": []gin.H{}})
		return
	}

	var receives []models.Receive
	if err := config.DB.Preload("User").
		Where("linked_donation_id IN ?", donationIDs).
		Order("created_at DESC").
		Find(&receives).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching requests"})
		return
	}

	requests := make([]gin.H, 0, len(receives))
	for _, r := range receives {
		entry := gin.H{
			"requestId":      r.ID,
			"createdAt":      r.CreatedAt,
			"status":         r.Status,
			"requestedFoods": r.RequestedFoods,
			"location":       r.Location,
			"requester": gin.H{
				"userId":   r.User.ID,
				"username": r.User.Username,
				"email":    r.User.Email,
			},
		}
		if r.LinkedDonationID != nil {
			entry["donationId"] = *r.LinkedDonationID
		}
		requests = append(requests, entry)
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}
