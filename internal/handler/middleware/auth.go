package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"foodshare/internal/domain/user"
	"foodshare/internal/handler/httperr"
	"foodshare/internal/pkg/cookie"
	"foodshare/internal/pkg/errs"
	"foodshare/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxUserIDKey   = "user_id"
	ctxUserRoleKey = "user_role"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookie.GetAccessToken(c)

		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimSpace(authHeader[len("Bearer "):])
			}
		}

		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized,
				errs.New("no access token in cookie or header"), "Access token required")
			return
		}

		userID, role, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token")
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Set(ctxUserRoleKey, role)
		c.Set("jwt_claims", map[string]any{
			"user_id": userID.String(),
			"role":    string(role),
		})
		c.Next()
	}
}

// RequireRole allows only the listed roles through. Admins always pass:
// every role gate in the API is at most as strict as admin.
func (m *AuthMiddleware) RequireRole(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			// Must run after RequireAuth().
			httperr.AbortWithError(c, http.StatusInternalServerError,
				errs.New("role gate reached without principal"), "Internal server error")
			return
		}

		if role != user.RoleAdmin && !roleAllowed(role, roles) {
			httperr.AbortWithError(c, http.StatusForbidden,
				errs.New("role not allowed for route"), "Insufficient permissions")
			return
		}

		c.Next()
	}
}

// RequireAdmin allows only admins through.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return m.RequireRole()
}

func roleAllowed(role user.Role, allowed []user.Role) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

func GetUserRole(c *gin.Context) (user.Role, bool) {
	userRole, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}

	role, ok := userRole.(user.Role)
	return role, ok
}

// GetPrincipal assembles the acting user from the request context.
func GetPrincipal(c *gin.Context) (user.Principal, bool) {
	id, ok := GetUserID(c)
	if !ok {
		return user.Principal{}, false
	}
	role, ok := GetUserRole(c)
	if !ok {
		return user.Principal{}, false
	}
	return user.Principal{ID: id, Role: role}, true
}
