package api

import (
	"errors"
	"net/http"

	"foodshare/internal/domain/listing"
	reqdto "foodshare/internal/handler/dto/request"
	resdto "foodshare/internal/handler/dto/response"
	"foodshare/internal/handler/middleware"
	"foodshare/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ListingHandler struct {
	listingUseCase usecase.ListingUseCase
}

func NewListingHandler(listingUseCase usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
	}
}

// @Summary Create a food listing
// @Description Publish a surplus food listing
// @Tags listings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateListingRequest true "Create listing request"
// @Success 201 {object} resdto.ListingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /listings [post]
func (h *ListingHandler) CreateListing(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req reqdto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	rm, err := h.listingUseCase.CreateListing(c.Request.Context(), userID, req.ToParams())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromListingRM(rm))
}

// @Summary Update a food listing
// @Description Update an owned listing's details
// @Tags listings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Listing ID"
// @Param request body reqdto.UpdateListingRequest true "Update listing request"
// @Success 200 {object} resdto.ListingResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /listings/{id} [put]
func (h *ListingHandler) UpdateListing(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing ID"})
		return
	}

	var req reqdto.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	rm, err := h.listingUseCase.UpdateListing(c.Request.Context(), listingID, userID, req.ToParams())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromListingRM(rm))
}

// @Summary Delete a food listing
// @Description Delete an owned listing
// @Tags listings
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /listings/{id} [delete]
func (h *ListingHandler) DeleteListing(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing ID"})
		return
	}

	if err := h.listingUseCase.DeleteListing(c.Request.Context(), listingID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get a food listing
// @Description Get a listing by ID
// @Tags listings
// @Security BearerAuth
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} resdto.ListingResponse
// @Failure 404 {object} map[string]string
// @Router /listings/{id} [get]
func (h *ListingHandler) GetListing(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing ID"})
		return
	}

	rm, err := h.listingUseCase.GetListing(c.Request.Context(), listingID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromListingRM(rm))
}

// @Summary List food listings
// @Description List listings, optionally filtered by status and category
// @Tags listings
// @Security BearerAuth
// @Produce json
// @Param status query string false "Listing status"
// @Param category query string false "Listing category"
// @Success 200 {array} resdto.ListingResponse
// @Router /listings [get]
func (h *ListingHandler) ListListings(c *gin.Context) {
	var filter usecase.ListingFilter
	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}
	if category := c.Query("category"); category != "" {
		filter.Category = &category
	}

	rms, err := h.listingUseCase.ListListings(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromListingRMs(rms))
}

// @Summary List available listings
// @Description List listings currently open for donation requests
// @Tags listings
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.ListingResponse
// @Router /listings/available [get]
func (h *ListingHandler) ListAvailable(c *gin.Context) {
	rms, err := h.listingUseCase.ListAvailable(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromListingRMs(rms))
}

// @Summary List own listings
// @Description List the authenticated donor's listings
// @Tags listings
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.ListingResponse
// @Router /listings/my [get]
func (h *ListingHandler) ListMyListings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	rms, err := h.listingUseCase.ListByDonor(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromListingRMs(rms))
}

func (h *ListingHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrListingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Food listing not found"})
	case errors.Is(err, usecase.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to modify this listing"})
	case errors.Is(err, listing.ErrEmptyTitle),
		errors.Is(err, listing.ErrNonPositiveQuantity),
		errors.Is(err, listing.ErrQuantityBelowReserved),
		errors.Is(err, listing.ErrInvalidAvailabilityWindow),
		errors.Is(err, listing.ErrInvalidCategory),
		errors.Is(err, listing.ErrInvalidUnit),
		errors.Is(err, listing.ErrInvalidStorageRequirement),
		errors.Is(err, listing.ErrInvalidListingStatus),
		errors.Is(err, listing.ErrDerivedStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
