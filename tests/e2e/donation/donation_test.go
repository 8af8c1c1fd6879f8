//go:build e2e

package donation_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	nethttptest "net/http/httptest"
	"sync"
	"testing"
	"time"

	"foodshare/internal/domain/user"
	"foodshare/internal/handler/dto/request"
	"foodshare/internal/handler/dto/response"
	"foodshare/tests/common/authtest"
	"foodshare/tests/common/dbtest"
	"foodshare/tests/common/httptest"
	"foodshare/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	donationsURL      = "/api/donations"
	donationStatusURL = "/api/donations/%s/status"
	listingsURL       = "/api/listings"
	listingURL        = "/api/listings/%s"
)

type DonationSuite struct {
	e2e.SharedSuite
}

func TestDonationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(DonationSuite))
}

func (s *DonationSuite) createListing(t *testing.T, donorToken string, quantity float64) response.ListingResponse {
	now := time.Now()
	reqBody := request.CreateListingRequest{
		Title:          "Surplus produce boxes",
		Category:       "produce",
		Quantity:       quantity,
		Unit:           "boxes",
		ExpirationDate: now.Add(72 * time.Hour),
		AvailableFrom:  now.Add(-time.Hour),
		AvailableUntil: now.Add(48 * time.Hour),
	}

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, listingsURL, reqBody, donorToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created response.ListingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	return created
}

func (s *DonationSuite) getListing(t *testing.T, token string, id uuid.UUID) response.ListingResponse {
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(listingURL, id), nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var listing response.ListingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	return listing
}

func (s *DonationSuite) updateStatus(t *testing.T, token string, donationID uuid.UUID, body request.UpdateDonationStatusRequest) *nethttptest.ResponseRecorder {
	url := fmt.Sprintf(donationStatusURL, donationID)
	return httptest.PerformRequest(t, s.Router, http.MethodPatch, url, body, token)
}

func (s *DonationSuite) TestDonationLifecycle() {
	s.Run("Normal case: request, confirm, pick up and complete a donation", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "donor@example.com", string(user.RoleFoodDonor))
		dbtest.CreateTestUser(t, s.DB, "foodbank@example.com", string(user.RoleRecipientOrg))
		donorToken := authtest.LoginUser(t, s.Router, "donor@example.com", dbtest.TestUserPassword)
		recipientToken := authtest.LoginUser(t, s.Router, "foodbank@example.com", dbtest.TestUserPassword)

		listing := s.createListing(t, donorToken, 20)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, donationsURL, request.CreateDonationRequest{
			ListingID:         listing.ID,
			RequestedQuantity: 8,
			Notes:             "We can pick up any weekday morning",
		}, recipientToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.DonationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		require.Equal(t, "pending", created.Status)
		require.Equal(t, float64(8), created.RequestedQuantity)

		// The hold is visible on the listing immediately.
		held := s.getListing(t, recipientToken, listing.ID)
		require.Equal(t, float64(8), held.ReservedQuantity)
		require.Equal(t, float64(12), held.AvailableQuantity)
		require.Equal(t, "available", held.Status)

		w = s.updateStatus(t, donorToken, created.ID, request.UpdateDonationStatusRequest{Status: "confirmed"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var confirmed response.DonationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &confirmed))
		require.Equal(t, "confirmed", confirmed.Status)
		require.NotNil(t, confirmed.ConfirmedQuantity)
		require.Equal(t, float64(8), *confirmed.ConfirmedQuantity)

		w = s.updateStatus(t, recipientToken, created.ID, request.UpdateDonationStatusRequest{Status: "in_transit"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		peopleServed := int32(40)
		wasteReduced := 8.0
		w = s.updateStatus(t, recipientToken, created.ID, request.UpdateDonationStatusRequest{
			Status:       "completed",
			PeopleServed: &peopleServed,
			WasteReduced: &wasteReduced,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var completed response.DonationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &completed))
		require.Equal(t, "completed", completed.Status)
		require.NotNil(t, completed.CompletionDate)
		require.Equal(t, peopleServed, completed.PeopleServed)
		require.Equal(t, wasteReduced, completed.WasteReduced)

		// Completion releases the hold and reopens the listing.
		after := s.getListing(t, recipientToken, listing.ID)
		require.Equal(t, float64(0), after.ReservedQuantity)
		require.Equal(t, "available", after.Status)

		diff := cmp.Diff(created, completed,
			cmpopts.IgnoreFields(response.DonationResponse{},
				"Status", "ConfirmedQuantity", "PickupDate", "CompletionDate",
				"PeopleServed", "WasteReduced", "UpdatedAt"))
		require.Empty(t, diff, "lifecycle must not rewrite the original request fields")
	})

	s.Run("Normal case: cancellation releases the reserved quantity", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "donor@example.com", string(user.RoleFoodDonor))
		recipientToken := authtest.CreateAndLogin(t, s.DB, s.Router, "foodbank@example.com", string(user.RoleRecipientOrg))
		donorToken := authtest.LoginUser(t, s.Router, "donor@example.com", dbtest.TestUserPassword)

		listing := s.createListing(t, donorToken, 10)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, donationsURL, request.CreateDonationRequest{
			ListingID:         listing.ID,
			RequestedQuantity: 10,
		}, recipientToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.DonationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

		// Fully reserved listings stop accepting requests.
		reserved := s.getListing(t, recipientToken, listing.ID)
		require.Equal(t, "reserved", reserved.Status)

		w = s.updateStatus(t, recipientToken, created.ID, request.UpdateDonationStatusRequest{Status: "cancelled"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		after := s.getListing(t, recipientToken, listing.ID)
		require.Equal(t, float64(0), after.ReservedQuantity)
		require.Equal(t, "available", after.Status)
	})

	s.Run("Error case: request exceeding the available quantity is rejected", func() {
		t := s.T()

		donorID := dbtest.CreateTestUser(t, s.DB, "donor@example.com", string(user.RoleFoodDonor))
		recipientToken := authtest.CreateAndLogin(t, s.DB, s.Router, "foodbank@example.com", string(user.RoleRecipientOrg))
		listingID := dbtest.CreateTestListing(t, s.DB, donorID, 12)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, donationsURL, request.CreateDonationRequest{
			ListingID:         listingID,
			RequestedQuantity: 8,
		}, recipientToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, donationsURL, request.CreateDonationRequest{
			ListingID:         listingID,
			RequestedQuantity: 5,
		}, recipientToken)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Only 4 boxes available. 8 already reserved.")
	})

	s.Run("Error case: donors cannot request donations", func() {
		t := s.T()

		donorToken := authtest.CreateAndLogin(t, s.DB, s.Router, "donor@example.com", string(user.RoleFoodDonor))
		donorID := dbtest.CreateTestUser(t, s.DB, "other-donor@example.com", string(user.RoleFoodDonor))
		listingID := dbtest.CreateTestListing(t, s.DB, donorID, 12)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, donationsURL, request.CreateDonationRequest{
			ListingID:         listingID,
			RequestedQuantity: 2,
		}, donorToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("Error case: admins cannot request donations for themselves", func() {
		t := s.T()

		adminToken := authtest.CreateAndLogin(t, s.DB, s.Router, "admin@example.com", string(user.RoleAdmin))
		donorID := dbtest.CreateTestUser(t, s.DB, "donor@example.com", string(user.RoleFoodDonor))
		listingID := dbtest.CreateTestListing(t, s.DB, donorID, 12)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, donationsURL, request.CreateDonationRequest{
			ListingID:         listingID,
			RequestedQuantity: 2,
		}, adminToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})
}

func (s *DonationSuite) TestStatusTransitionRules() {
	s.Run("Error case: recipient cannot confirm their own request", func() {
		t := s.T()

		donorID := dbtest.CreateTestUser(t, s.DB, "donor@example.com", string(user.RoleFoodDonor))
		recipientToken := authtest.CreateAndLogin(t, s.DB, s.Router, "foodbank@example.com", string(user.RoleRecipientOrg))
		listingID := dbtest.CreateTestListing(t, s.DB, donorID, 12)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, donationsURL, request.CreateDonationRequest{
			ListingID:         listingID,
			RequestedQuantity: 4,
		}, recipientToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.DonationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

		w = s.updateStatus(t, recipientToken, created.ID, request.UpdateDonationStatusRequest{Status: "confirmed"})
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("Error case: completed donations cannot be reopened", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "donor@example.com", string(user.RoleFoodDonor))
		recipientToken := authtest.CreateAndLogin(t, s.DB, s.Router, "foodbank@example.com", string(user.RoleRecipientOrg))
		donorToken := authtest.LoginUser(t, s.Router, "donor@example.com", dbtest.TestUserPassword)

		listing := s.createListing(t, donorToken, 6)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, donationsURL, request.CreateDonationRequest{
			ListingID:         listing.ID,
			RequestedQuantity: 6,
		}, recipientToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.DonationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

		w = s.updateStatus(t, donorToken, created.ID, request.UpdateDonationStatusRequest{Status: "confirmed"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		w = s.updateStatus(t, recipientToken, created.ID, request.UpdateDonationStatusRequest{Status: "completed"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = s.updateStatus(t, donorToken, created.ID, request.UpdateDonationStatusRequest{Status: "cancelled"})
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Error case: strangers cannot see or modify the donation", func() {
		t := s.T()

		donorID := dbtest.CreateTestUser(t, s.DB, "donor@example.com", string(user.RoleFoodDonor))
		recipientToken := authtest.CreateAndLogin(t, s.DB, s.Router, "foodbank@example.com", string(user.RoleRecipientOrg))
		strangerToken := authtest.CreateAndLogin(t, s.DB, s.Router, "other-org@example.com", string(user.RoleRecipientOrg))
		listingID := dbtest.CreateTestListing(t, s.DB, donorID, 12)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, donationsURL, request.CreateDonationRequest{
			ListingID:         listingID,
			RequestedQuantity: 4,
		}, recipientToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.DonationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, donationsURL+"/"+created.ID.String(), nil, strangerToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

		w = s.updateStatus(t, strangerToken, created.ID, request.UpdateDonationStatusRequest{Status: "cancelled"})
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})
}

// TestConcurrentRequests hammers one listing with parallel donation requests
// and checks that the reserved quantity never exceeds the listing quantity.
func (s *DonationSuite) TestConcurrentRequests() {
	s.Run("Concurrency: parallel requests cannot overbook a listing", func() {
		t := s.T()

		const (
			workers     = 10
			perRequest  = 5.0
			listingQty  = 20.0
			maxAccepted = 4 // listingQty / perRequest
		)

		donorID := dbtest.CreateTestUser(t, s.DB, "donor@example.com", string(user.RoleFoodDonor))
		listingID := dbtest.CreateTestListing(t, s.DB, donorID, listingQty)

		tokens := make([]string, workers)
		for i := range workers {
			email := fmt.Sprintf("org%d@example.com", i)
			tokens[i] = authtest.CreateAndLogin(t, s.DB, s.Router, email, string(user.RoleRecipientOrg))
		}

		body, err := json.Marshal(request.CreateDonationRequest{
			ListingID:         listingID,
			RequestedQuantity: perRequest,
		})
		require.NoError(t, err)

		codes := make([]int, workers)
		var wg sync.WaitGroup
		for i := range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				req := nethttptest.NewRequest(http.MethodPost, donationsURL, bytes.NewReader(body))
				req.Header.Set("Content-Type", "application/json")
				req.Header.Set("Authorization", "Bearer "+tokens[i])
				w := nethttptest.NewRecorder()
				s.Router.ServeHTTP(w, req)
				codes[i] = w.Code
			}()
		}
		wg.Wait()

		accepted := 0
		for _, code := range codes {
			switch code {
			case http.StatusCreated:
				accepted++
			case http.StatusBadRequest:
				// insufficient quantity once the listing filled up
			default:
				t.Fatalf("unexpected status code %d", code)
			}
		}
		require.Equal(t, maxAccepted, accepted, "exactly the capacity's worth of requests should win")

		var reserved float64
		var status string
		err = s.DB.QueryRow(context.Background(),
			`SELECT reserved_quantity, status FROM food_listings WHERE id = $1`, listingID).
			Scan(&reserved, &status)
		require.NoError(t, err)
		require.Equal(t, listingQty, reserved)
		require.Equal(t, "reserved", status)

		var pendingCount int
		err = s.DB.QueryRow(context.Background(),
			`SELECT COUNT(*) FROM donations WHERE listing_id = $1 AND status = 'pending'`, listingID).
			Scan(&pendingCount)
		require.NoError(t, err)
		require.Equal(t, maxAccepted, pendingCount)
	})
}
