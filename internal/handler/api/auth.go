package api

import (
	"errors"
	"net/http"

	reqdto "foodshare/internal/handler/dto/request"
	resdto "foodshare/internal/handler/dto/response"
	"foodshare/internal/handler/middleware"
	"foodshare/internal/pkg/cookie"
	"foodshare/internal/pkg/jwt"
	"foodshare/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	jwtService  *jwt.Service
}

func NewAuthHandler(authUseCase usecase.AuthUseCase, jwtService *jwt.Service) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		jwtService:  jwtService,
	}
}

// @Summary Register a new user
// @Description Register a donor, recipient organization or data analyst account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterRequest true "Register request"
// @Success 201 {object} resdto.AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req reqdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	user, token, err := h.authUseCase.Register(c.Request.Context(), req.ToParams())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{
				"error": "User already exists with this email",
			})
		case errors.Is(err, usecase.ErrAdminRoleForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Admin accounts cannot be self-registered",
			})
		case errors.Is(err, usecase.ErrTokenGeneration):
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		default:
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
		}
		return
	}

	cookie.SetAccessToken(c, token, h.jwtService.TokenDuration())
	c.JSON(http.StatusCreated, resdto.AuthResponse{
		AccessToken: token,
		User:        user,
	})
}

// @Summary Register an admin user
// @Description Provision an admin account using the out-of-band admin secret
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterAdminRequest true "Register admin request"
// @Success 201 {object} resdto.AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/register-admin [post]
func (h *AuthHandler) RegisterAdmin(c *gin.Context) {
	var req reqdto.RegisterAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	user, token, err := h.authUseCase.RegisterAdmin(c.Request.Context(), req.ToParams(), req.AdminSecret)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidAdminSecret):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid admin secret",
			})
		case errors.Is(err, usecase.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{
				"error": "User already exists with this email",
			})
		case errors.Is(err, usecase.ErrTokenGeneration):
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		default:
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
		}
		return
	}

	cookie.SetAccessToken(c, token, h.jwtService.TokenDuration())
	c.JSON(http.StatusCreated, resdto.AuthResponse{
		AccessToken: token,
		User:        user,
	})
}

// @Summary User login
// @Description Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	credentials, err := req.ToDomain()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data",
		})
		return
	}

	token, user, err := h.authUseCase.Login(c.Request.Context(), credentials)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials), errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid email or password",
			})
		case errors.Is(err, usecase.ErrUserInactive):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Account is inactive",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	cookie.SetAccessToken(c, token, h.jwtService.TokenDuration())
	c.JSON(http.StatusOK, resdto.AuthResponse{
		AccessToken: token,
		User:        user,
	})
}

// @Summary User logout
// @Description Logout current user session
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	// JWTs are stateless; clearing the cookie is all the server can do.
	cookie.ClearAccessToken(c)
	c.Status(http.StatusNoContent)
}

// @Summary Get current user
// @Description Get current authenticated user information
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} readmodel.AuthorizedUserRM
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	user, err := h.authUseCase.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		case errors.Is(err, usecase.ErrUserInactive):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Account is inactive",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}
