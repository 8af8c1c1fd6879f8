//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"

	"foodshare/internal/domain/donation"
	"foodshare/internal/domain/listing"
	"foodshare/internal/domain/user"
	"foodshare/internal/handler/api"
	resdto "foodshare/internal/handler/dto/response"
	"foodshare/internal/usecase"
	"foodshare/internal/usecase/readmodel"
	"foodshare/tests/common/builder"
	"foodshare/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type mockDonationUseCase struct {
	mock.Mock
}

func (m *mockDonationUseCase) RequestDonation(ctx context.Context, actor user.Principal, listingID uuid.UUID, requestedQuantity float64, notes string) (*readmodel.DonationRM, error) {
	args := m.Called(ctx, actor, listingID, requestedQuantity, notes)
	if rm, ok := args.Get(0).(*readmodel.DonationRM); ok {
		return rm, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDonationUseCase) UpdateStatus(ctx context.Context, donationID uuid.UUID, actor user.Principal, params usecase.UpdateDonationStatusParams) (*readmodel.DonationRM, error) {
	args := m.Called(ctx, donationID, actor, params)
	if rm, ok := args.Get(0).(*readmodel.DonationRM); ok {
		return rm, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDonationUseCase) GetDonation(ctx context.Context, id uuid.UUID, actor user.Principal) (*readmodel.DonationRM, error) {
	args := m.Called(ctx, id, actor)
	if rm, ok := args.Get(0).(*readmodel.DonationRM); ok {
		return rm, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDonationUseCase) ListAll(ctx context.Context) ([]*readmodel.DonationRM, error) {
	args := m.Called(ctx)
	if rms, ok := args.Get(0).([]*readmodel.DonationRM); ok {
		return rms, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDonationUseCase) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]*readmodel.DonationRM, error) {
	args := m.Called(ctx, donorID)
	if rms, ok := args.Get(0).([]*readmodel.DonationRM); ok {
		return rms, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDonationUseCase) ListByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*readmodel.DonationRM, error) {
	args := m.Called(ctx, recipientID)
	if rms, ok := args.Get(0).([]*readmodel.DonationRM); ok {
		return rms, args.Error(1)
	}
	return nil, args.Error(1)
}

type DonationHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockUseCase *mockDonationUseCase
	handler     *api.DonationHandler

	// principal injected by the stand-in middleware
	actorID   uuid.UUID
	actorRole user.Role
}

func (s *DonationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockUseCase = &mockDonationUseCase{}
	s.handler = api.NewDonationHandler(s.mockUseCase)
	s.actorID = uuid.New()
	s.actorRole = user.RoleRecipientOrg

	authStub := func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", s.actorID)
			c.Set("user_role", s.actorRole)
		}
		c.Next()
	}

	donations := s.router.Group("/donations", authStub)
	donations.POST("", s.handler.RequestDonation)
	donations.GET("", s.handler.ListDonations)
	donations.GET("/:id", s.handler.GetDonation)
	donations.PATCH("/:id/status", s.handler.UpdateStatus)
}

func TestDonationHandlerSuite(t *testing.T) {
	suite.Run(t, new(DonationHandlerTestSuite))
}

func (s *DonationHandlerTestSuite) TestRequestDonation() {
	url := "/donations"

	b := builder.NewDonationBuilder()
	reqBody := b.BuildCreateRequestDTO()
	actor := user.Principal{ID: s.actorID, Role: s.actorRole}

	s.Run("success: returns 201 Created", func() {
		rm := b.BuildRM()
		s.mockUseCase.On("RequestDonation", mock.Anything, actor, reqBody.ListingID, reqBody.RequestedQuantity, reqBody.Notes).
			Return(rm, nil).Once()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")

		var response resdto.DonationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(rm.ID, response.ID)
		s.Equal("pending", response.Status)
		s.Equal(rm.RequestedQuantity, response.RequestedQuantity)
	})

	s.Run("error: 400 Bad Request with the exact remainder on insufficient capacity", func() {
		s.mockUseCase.On("RequestDonation", mock.Anything, actor, reqBody.ListingID, reqBody.RequestedQuantity, reqBody.Notes).
			Return(nil, &listing.InsufficientQuantityError{Available: 12, Reserved: 8, Unit: listing.UnitBoxes}).Once()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Only 12 boxes available. 8 already reserved.")
	})

	s.Run("error: 404 Not Found for unknown listing", func() {
		s.mockUseCase.On("RequestDonation", mock.Anything, actor, reqBody.ListingID, reqBody.RequestedQuantity, reqBody.Notes).
			Return(nil, usecase.ErrListingNotFound).Once()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})

	s.Run("error: 400 Bad Request for unavailable listing", func() {
		s.mockUseCase.On("RequestDonation", mock.Anything, actor, reqBody.ListingID, reqBody.RequestedQuantity, reqBody.Notes).
			Return(nil, listing.ErrNotAvailable).Once()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 400 Bad Request for non-positive quantity", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"listingId": reqBody.ListingID, "requestedQuantity": 0}, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 401 Unauthorized without principal", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})
}

func (s *DonationHandlerTestSuite) TestUpdateStatus() {
	b := builder.NewDonationBuilder()
	url := "/donations/" + b.ID.String() + "/status"
	reqBody := map[string]any{"status": "confirmed"}
	actor := user.Principal{ID: s.actorID, Role: s.actorRole}

	s.Run("success: returns 200 OK", func() {
		rm := b.WithStatus(donation.StatusConfirmed).BuildRM()
		s.mockUseCase.On("UpdateStatus", mock.Anything, b.ID, actor, usecase.UpdateDonationStatusParams{Status: "confirmed"}).
			Return(rm, nil).Once()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "token")

		var response resdto.DonationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("confirmed", response.Status)
	})

	s.Run("error: 409 Conflict on invalid transition", func() {
		s.mockUseCase.On("UpdateStatus", mock.Anything, b.ID, actor, mock.Anything).
			Return(nil, usecase.ErrInvalidTransition).Once()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("error: 403 Forbidden for non-parties", func() {
		s.mockUseCase.On("UpdateStatus", mock.Anything, b.ID, actor, mock.Anything).
			Return(nil, usecase.ErrNotAuthorized).Once()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: 404 Not Found for unknown donation", func() {
		s.mockUseCase.On("UpdateStatus", mock.Anything, b.ID, actor, mock.Anything).
			Return(nil, usecase.ErrDonationNotFound).Once()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})

	s.Run("error: 400 Bad Request for malformed donation id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/donations/not-a-uuid/status", reqBody, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *DonationHandlerTestSuite) TestListDonations() {
	url := "/donations"

	s.Run("recipients see their own donations", func() {
		s.actorRole = user.RoleRecipientOrg
		s.mockUseCase.On("ListByRecipient", mock.Anything, s.actorID).
			Return([]*readmodel.DonationRM{builder.NewDonationBuilder().BuildRM()}, nil).Once()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")

		var response []resdto.DonationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})

	s.Run("donors see donations against their listings", func() {
		s.actorRole = user.RoleFoodDonor
		s.mockUseCase.On("ListByDonor", mock.Anything, s.actorID).
			Return([]*readmodel.DonationRM{}, nil).Once()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("admins and analysts see everything", func() {
		for _, role := range []user.Role{user.RoleAdmin, user.RoleDataAnalyst} {
			s.actorRole = role
			s.mockUseCase.On("ListAll", mock.Anything).
				Return([]*readmodel.DonationRM{}, nil).Once()

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")
			httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		}
	})
}

func (s *DonationHandlerTestSuite) TestGetDonation() {
	b := builder.NewDonationBuilder()
	url := "/donations/" + b.ID.String()
	actor := user.Principal{ID: s.actorID, Role: s.actorRole}

	s.Run("success: returns 200 OK", func() {
		s.mockUseCase.On("GetDonation", mock.Anything, b.ID, actor).
			Return(b.BuildRM(), nil).Once()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 403 Forbidden for unrelated users", func() {
		s.mockUseCase.On("GetDonation", mock.Anything, b.ID, actor).
			Return(nil, usecase.ErrNotAuthorized).Once()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})
}
