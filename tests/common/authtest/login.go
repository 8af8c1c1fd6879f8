//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"foodshare/internal/handler/dto/request"
	"foodshare/tests/common/dbtest"
	"foodshare/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func LoginUser(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	accessCookie := httptest.ExtractCookie(w, "access_token")
	require.NotNil(t, accessCookie, "access token cookie not set")
	require.NotEmpty(t, accessCookie.Value, "access token cookie is empty")

	return accessCookie.Value
}

// CreateAndLogin seeds a user row directly and logs in through the real
// endpoint, returning the issued token.
func CreateAndLogin(t *testing.T, pool *pgxpool.Pool, router *gin.Engine, email, role string) string {
	t.Helper()
	dbtest.CreateTestUser(t, pool, email, role)
	return LoginUser(t, router, email, dbtest.TestUserPassword)
}
