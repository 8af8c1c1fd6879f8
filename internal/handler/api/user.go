package api

import (
	"errors"
	"net/http"

	"foodshare/internal/domain/user"
	reqdto "foodshare/internal/handler/dto/request"
	resdto "foodshare/internal/handler/dto/response"
	"foodshare/internal/handler/middleware"
	"foodshare/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	userUseCase usecase.UserUseCase
}

func NewUserHandler(userUseCase usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

// @Summary Get own profile
// @Description Get the authenticated user's full profile
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.UserResponse
// @Failure 404 {object} map[string]string
// @Router /users/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	rm, err := h.userUseCase.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromUserRM(rm))
}

// @Summary Update own profile
// @Description Update the authenticated user's profile
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.UpdateProfileRequest true "Update profile request"
// @Success 200 {object} resdto.UserResponse
// @Failure 400 {object} map[string]string
// @Router /users/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req reqdto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	rm, err := h.userUseCase.UpdateProfile(c.Request.Context(), userID, req.ToParams())
	if err != nil {
		if errors.Is(err, user.ErrPasswordTooWeak) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromUserRM(rm))
}

// @Summary List users
// @Description List all users (admin only)
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.UserResponse
// @Failure 403 {object} map[string]string
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	rms, err := h.userUseCase.ListUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromUserRMs(rms))
}

// @Summary List donors
// @Description List active food donors
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.UserResponse
// @Router /users/donors [get]
func (h *UserHandler) ListDonors(c *gin.Context) {
	rms, err := h.userUseCase.ListDonors(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromUserRMs(rms))
}

// @Summary List recipients
// @Description List active recipient organizations
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.UserResponse
// @Router /users/recipients [get]
func (h *UserHandler) ListRecipients(c *gin.Context) {
	rms, err := h.userUseCase.ListRecipients(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromUserRMs(rms))
}

// @Summary Set user verification
// @Description Mark a user as verified or unverified (admin only)
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body reqdto.SetVerifiedRequest true "Verification request"
// @Success 200 {object} resdto.UserResponse
// @Failure 404 {object} map[string]string
// @Router /users/{id}/verify [patch]
func (h *UserHandler) SetVerified(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req reqdto.SetVerifiedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	rm, err := h.userUseCase.SetVerified(c.Request.Context(), targetID, *req.IsVerified)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromUserRM(rm))
}

// @Summary Set user active flag
// @Description Activate or deactivate a user account (admin only)
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body reqdto.SetActiveRequest true "Activation request"
// @Success 200 {object} resdto.UserResponse
// @Failure 404 {object} map[string]string
// @Router /users/{id}/activate [patch]
func (h *UserHandler) SetActive(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req reqdto.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	rm, err := h.userUseCase.SetActive(c.Request.Context(), targetID, *req.IsActive)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromUserRM(rm))
}

func (h *UserHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
