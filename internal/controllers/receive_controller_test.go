package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"rescue_connect/internal/config"
	"rescue_connect/internal/models"
)

func seedDonation(t *testing.T, donor models.User, foods ...models.FoodItem) models.Donation {
	t.Helper()

	donation := models.Donation{
		UserID: donor.ID,
		Foods:  foods,
		Location: models.Location{
			Lat:     10,
			Lng:     20,
			Address: "market street",
		},
		Status: "Pending",
	}
	if err := config.DB.Create(&donation).Error; err != nil {
		t.Fatalf("seeding donation: %v", err)
	}
	return donation
}

func TestRequestDonation(t *testing.T) {
	bread := models.FoodItem{Name: "Bread", Quantity: 5, Unit: "kg", ExpiryDuration: 2}

	t.Run("snapshots foods and links the donation", func(t *testing.T) {
		router := setupTest(t)
		donor, _ := seedUser(t, "donor", "general")
		_, token := seedUser(t, "receiver", "general")
		donation := seedDonation(t, donor, bread)

		w := do(router, jsonRequest(t, "POST", fmt.Sprintf("/api/recievers/donations/request/%d", donation.ID), nil, token))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
		}

		var resp struct {
			Receive models.Receive `json:"receive"`
		}
		decodeBody(t, w, &resp)
		if resp.Receive.Status != "Pending" {
			t.Errorf("status = %q, want Pending", resp.Receive.Status)
		}
		if resp.Receive.LinkedDonationID == nil || *resp.Receive.LinkedDonationID != donation.ID {
			t.Errorf("linked donation = %v, want %d", resp.Receive.LinkedDonationID, donation.ID)
		}
		if resp.Receive.Location != donation.Location {
			t.Errorf("location = %+v, want copied %+v", resp.Receive.Location, donation.Location)
		}

		var snapshot []models.FoodItem
		if err := json.Unmarshal(resp.Receive.RequestedFoods, &snapshot); err != nil {
			t.Fatalf("decoding requested foods: %v", err)
		}
		if len(snapshot) != 1 || snapshot[0].Name != "Bread" {
			t.Errorf("snapshot = %+v, want one Bread item", snapshot)
		}
	})

	t.Run("snapshot survives later donation edits", func(t *testing.T) {
		router := setupTest(t)
		donor, _ := seedUser(t, "donor", "general")
		_, token := seedUser(t, "receiver", "general")
		donation := seedDonation(t, donor, bread)

		w := do(router, jsonRequest(t, "POST", fmt.Sprintf("/api/recievers/donations/request/%d", donation.ID), nil, token))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}

		// Rename the donation's food after the request was made
		if err := config.DB.Model(&models.FoodItem{}).
			Where("donation_id = ?", donation.ID).
			Update("name", "Renamed").Error; err != nil {
			t.Fatalf("updating food: %v", err)
		}

		var stored models.Receive
		if err := config.DB.First(&stored).Error; err != nil {
			t.Fatalf("loading receive: %v", err)
		}
		var snapshot []models.FoodItem
		if err := json.Unmarshal(stored.RequestedFoods, &snapshot); err != nil {
			t.Fatalf("decoding requested foods: %v", err)
		}
		if snapshot[0].Name != "Bread" {
			t.Errorf("snapshot name = %q, want Bread (unaffected by the edit)", snapshot[0].Name)
		}
	})

	t.Run("unknown donation is 404", func(t *testing.T) {
		router := setupTest(t)
		_, token := seedUser(t, "receiver", "general")

		w := do(router, jsonRequest(t, "POST", "/api/recievers/donations/request/9999", nil, token))
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})

	t.Run("donation without foods is 400", func(t *testing.T) {
		router := setupTest(t)
		donor, _ := seedUser(t, "donor", "general")
		_, token := seedUser(t, "receiver", "general")
		donation := seedDonation(t, donor)

		w := do(router, jsonRequest(t, "POST", fmt.Sprintf("/api/recievers/donations/request/%d", donation.ID), nil, token))
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("requires a token", func(t *testing.T) {
		router := setupTest(t)
		donor, _ := seedUser(t, "donor", "general")
		donation := seedDonation(t, donor, bread)

		w := do(router, jsonRequest(t, "POST", fmt.Sprintf("/api/recievers/donations/request/%d", donation.ID), nil, ""))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("two receivers can request the same donation", func(t *testing.T) {
		router := setupTest(t)
		donor, _ := seedUser(t, "donor", "general")
		_, token1 := seedUser(t, "receiver1", "general")
		_, token2 := seedUser(t, "receiver2", "general")
		donation := seedDonation(t, donor, bread)

		target := fmt.Sprintf("/api/recievers/donations/request/%d", donation.ID)
		w1 := do(router, jsonRequest(t, "POST", target, nil, token1))
		w2 := do(router, jsonRequest(t, "POST", target, nil, token2))
		if w1.Code != http.StatusOK || w2.Code != http.StatusOK {
			t.Fatalf("statuses = %d, %d, want both 200", w1.Code, w2.Code)
		}

		var r1, r2 struct {
			Receive models.Receive `json:"receive"`
		}
		decodeBody(t, w1, &r1)
		decodeBody(t, w2, &r2)
		if r1.Receive.ID == r2.Receive.ID {
			t.Error("both requests share one record, want two distinct rows")
		}
		if *r1.Receive.LinkedDonationID != *r2.Receive.LinkedDonationID {
			t.Error("requests link different donations, want the same one")
		}

		var n int64
		if err := config.DB.Model(&models.Receive{}).Count(&n).Error; err != nil {
			t.Fatalf("counting receives: %v", err)
		}
		if n != 2 {
			t.Errorf("receive rows = %d, want 2", n)
		}
	})
}

func TestListDonorRequests(t *testing.T) {
	bread := models.FoodItem{Name: "Bread", Quantity: 5, Unit: "kg", ExpiryDuration: 2}

	t.Run("requests come back enriched with requester info", func(t *testing.T) {
		router := setupTest(t)
		donor, _ := seedUser(t, "donor", "general")
		receiver, token := seedUser(t, "receiver", "general")
		donation := seedDonation(t, donor, bread)

		w := do(router, jsonRequest(t, "POST", fmt.Sprintf("/api/recievers/donations/request/%d", donation.ID), nil, token))
		if w.Code != http.StatusOK {
			t.Fatalf("request status = %d, want 200", w.Code)
		}

		var resp struct {
			Requests []struct {
				DonationID uint   `json:"donationId"`
				Status     string `json:"status"`
				Requester  struct {
					Username string `json:"username"`
					Email    string `json:"email"`
				} `json:"requester"`
			} `json:"requests"`
		}
		w = do(router, jsonRequest(t, "GET", fmt.Sprintf("/api/donations/requests/%d", donor.ID), nil, ""))
		if w.Code != http.StatusOK {
			t.Fatalf("list status = %d, want 200: %s", w.Code, w.Body.String())
		}
		decodeBody(t, w, &resp)
		if len(resp.Requests) != 1 {
			t.Fatalf("listed %d requests, want 1", len(resp.Requests))
		}
		got := resp.Requests[0]
		if got.DonationID != donation.ID {
			t.Errorf("donationId = %d, want %d", got.DonationID, donation.ID)
		}
		if got.Requester.Username != receiver.Username || got.Requester.Email != receiver.Email {
			t.Errorf("requester = %+v, want %s/%s", got.Requester, receiver.Username, receiver.Email)
		}
		if got.Status != "Pending" {
			t.Errorf("status = %q, want Pending", got.Status)
		}
	})

	t.Run("donor with no donations gets an empty list", func(t *testing.T) {
		router := setupTest(t)
		donor, _ := seedUser(t, "donor", "general")

		var resp struct {
			Requests []json.RawMessage `json:"requests"`
		}
		w := do(router, jsonRequest(t, "GET", fmt.Sprintf("/api/donations/requests/%d", donor.ID), nil, ""))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		decodeBody(t, w, &resp)
		if len(resp.Requests) != 0 {
			t.Errorf("listed %d requests, want 0", len(resp.Requests))
		}
	})

	t.Run("requests against other donors excluded", func(t *testing.T) {
		router := setupTest(t)
		donor, _ := seedUser(t, "donor", "general")
		other, _ := seedUser(t, "other", "general")
		_, token := seedUser(t, "receiver", "general")
		donation := seedDonation(t, donor, bread)

		w := do(router, jsonRequest(t, "POST", fmt.Sprintf("/api/recievers/donations/request/%d", donation.ID), nil, token))
		if w.Code != http.StatusOK {
			t.Fatalf("request status = %d, want 200", w.Code)
		}

		var resp struct {
			Requests []json.RawMessage `json:"requests"`
		}
		w = do(router, jsonRequest(t, "GET", fmt.Sprintf("/api/donations/requests/%d", other.ID), nil, ""))
		decodeBody(t, w, &resp)
		if len(resp.Requests) != 0 {
			t.Errorf("listed %d requests for the wrong donor, want 0", len(resp.Requests))
		}
	})
}
