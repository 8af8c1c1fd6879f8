package api

import (
	"errors"
	"net/http"

	"foodshare/internal/domain/donation"
	"foodshare/internal/domain/listing"
	"foodshare/internal/domain/user"
	reqdto "foodshare/internal/handler/dto/request"
	resdto "foodshare/internal/handler/dto/response"
	"foodshare/internal/handler/middleware"
	"foodshare/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DonationHandler struct {
	donationUseCase usecase.DonationUseCase
}

func NewDonationHandler(donationUseCase usecase.DonationUseCase) *DonationHandler {
	return &DonationHandler{
		donationUseCase: donationUseCase,
	}
}

// @Summary Request a donation
// @Description Request a quantity from an available listing, reserving it
// @Tags donations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateDonationRequest true "Create donation request"
// @Success 201 {object} resdto.DonationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /donations [post]
func (h *DonationHandler) RequestDonation(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req reqdto.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	rm, err := h.donationUseCase.RequestDonation(c.Request.Context(), principal, req.ListingID, req.RequestedQuantity, req.Notes)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromDonationRM(rm))
}

// @Summary Update donation status
// @Description Move a donation through its workflow (confirm, pickup, complete, cancel)
// @Tags donations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Donation ID"
// @Param request body reqdto.UpdateDonationStatusRequest true "Status update request"
// @Success 200 {object} resdto.DonationResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /donations/{id}/status [patch]
func (h *DonationHandler) UpdateStatus(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	donationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid donation ID"})
		return
	}

	var req reqdto.UpdateDonationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	rm, err := h.donationUseCase.UpdateStatus(c.Request.Context(), donationID, principal, req.ToParams())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromDonationRM(rm))
}

// @Summary Get a donation
// @Description Get a donation visible to the acting user
// @Tags donations
// @Security BearerAuth
// @Produce json
// @Param id path string true "Donation ID"
// @Success 200 {object} resdto.DonationResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /donations/{id} [get]
func (h *DonationHandler) GetDonation(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	donationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid donation ID"})
		return
	}

	rm, err := h.donationUseCase.GetDonation(c.Request.Context(), donationID, principal)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromDonationRM(rm))
}

// @Summary List donations
// @Description List the donations visible to the acting user's role
// @Tags donations
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.DonationResponse
// @Router /donations [get]
func (h *DonationHandler) ListDonations(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var (
		rms []*resdto.DonationResponse
		err error
	)
	switch principal.Role {
	case user.RoleAdmin, user.RoleDataAnalyst:
		list, e := h.donationUseCase.ListAll(c.Request.Context())
		rms, err = resdto.FromDonationRMs(list), e
	case user.RoleFoodDonor:
		list, e := h.donationUseCase.ListByDonor(c.Request.Context(), principal.ID)
		rms, err = resdto.FromDonationRMs(list), e
	default:
		list, e := h.donationUseCase.ListByRecipient(c.Request.Context(), principal.ID)
		rms, err = resdto.FromDonationRMs(list), e
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rms)
}

func (h *DonationHandler) respondError(c *gin.Context, err error) {
	var insufficientErr *listing.InsufficientQuantityError

	switch {
	case errors.Is(err, usecase.ErrDonationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
	case errors.Is(err, usecase.ErrListingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Food listing not found"})
	case errors.Is(err, usecase.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized for this donation"})
	case errors.Is(err, usecase.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &insufficientErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": insufficientErr.Error()})
	case errors.Is(err, listing.ErrNotAvailable),
		errors.Is(err, listing.ErrNonPositiveQuantity),
		errors.Is(err, donation.ErrNonPositiveQuantity),
		errors.Is(err, donation.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
