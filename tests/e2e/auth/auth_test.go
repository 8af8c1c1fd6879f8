//go:build e2e

package auth_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"foodshare/internal/domain/user"
	"foodshare/internal/handler/dto/request"
	"foodshare/internal/handler/dto/response"
	"foodshare/tests/common/authtest"
	"foodshare/tests/common/dbtest"
	"foodshare/tests/common/httptest"
	"foodshare/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	registerURL      = "/api/auth/register"
	registerAdminURL = "/api/auth/register-admin"
	loginURL         = "/api/auth/login"
	logoutURL        = "/api/auth/logout"
	meURL            = "/api/auth/me"
)

type authSuite struct {
	e2e.SharedSuite
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func registerRequest(email, role string) request.RegisterRequest {
	var recipientType *string
	if role == string(user.RoleRecipientOrg) {
		rt := "food_bank"
		recipientType = &rt
	}
	return request.RegisterRequest{
		Name:             "Jordan Reyes",
		Email:            email,
		Password:         "correct-horse-battery",
		Role:             role,
		OrganizationName: "Springfield Food Bank",
		RecipientType:    recipientType,
	}
}

func (s *authSuite) TestRegister() {
	s.Run("Normal case: recipient can sign up and use the issued token", func() {
		t := s.T()

		reqBody := registerRequest("signup@example.com", string(user.RoleRecipientOrg))
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, reqBody, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var authResp response.AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &authResp))
		require.NotEmpty(t, authResp.AccessToken)
		require.Equal(t, "signup@example.com", authResp.User.Email)
		require.NotNil(t, httptest.ExtractCookie(w, "access_token"))

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, authResp.AccessToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("Error case: duplicate email is rejected", func() {
		t := s.T()

		reqBody := registerRequest("dup@example.com", string(user.RoleFoodDonor))
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, reqBody, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, reqBody, "")
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "already exists")
	})

	s.Run("Error case: admin role cannot be self-assigned", func() {
		t := s.T()

		reqBody := registerRequest("sneaky@example.com", string(user.RoleAdmin))
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, reqBody, "")
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("Error case: recipient organizations must declare a type", func() {
		t := s.T()

		reqBody := registerRequest("typeless@example.com", string(user.RoleRecipientOrg))
		reqBody.RecipientType = nil
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, reqBody, "")
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})
}

func (s *authSuite) TestRegisterAdmin() {
	s.Run("Normal case: correct secret mints an admin", func() {
		t := s.T()

		reqBody := request.RegisterAdminRequest{
			Name:             "Site Operator",
			Email:            "ops@example.com",
			Password:         "correct-horse-battery",
			OrganizationName: "FoodShare",
			AdminSecret:      s.Config.Admin.Secret,
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerAdminURL, reqBody, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var authResp response.AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &authResp))
		require.Equal(t, "admin", authResp.User.Role)
	})

	s.Run("Error case: wrong secret is rejected", func() {
		t := s.T()

		reqBody := request.RegisterAdminRequest{
			Name:             "Impostor",
			Email:            "impostor@example.com",
			Password:         "correct-horse-battery",
			OrganizationName: "FoodShare",
			AdminSecret:      "not-the-secret",
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerAdminURL, reqBody, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "admin secret")
	})
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
	}{
		{
			name:           "Normal case: valid credentials",
			email:          "login@example.com",
			password:       dbtest.TestUserPassword,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Error case: unknown user",
			email:          "nobody@example.com",
			password:       dbtest.TestUserPassword,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Error case: wrong password",
			email:          "login@example.com",
			password:       "wrong-password",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Error case: deactivated account",
			email:          "inactive@example.com",
			password:       dbtest.TestUserPassword,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "Error case: missing email",
			email:          "",
			password:       dbtest.TestUserPassword,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			dbtest.CreateTestUser(t, s.DB, "login@example.com", string(user.RoleFoodDonor))
			dbtest.CreateTestUser(t, s.DB, "inactive@example.com", string(user.RoleFoodDonor))
			_, err := s.DB.Exec(t.Context(), "UPDATE users SET is_active = false WHERE email = 'inactive@example.com'")
			require.NoError(t, err)

			reqBody := request.LoginRequest{Email: tt.email, Password: tt.password}
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, reqBody, "")
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			if tt.expectedStatus == http.StatusOK {
				require.NotNil(t, httptest.ExtractCookie(w, "access_token"))
			}
		})
	}
}

func (s *authSuite) TestMeAndLogout() {
	s.Run("Normal case: token round-trips through /me and logout clears the cookie", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "whoami@example.com", string(user.RoleDataAnalyst))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var me struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
		require.Equal(t, "whoami@example.com", me.Email)
		require.Equal(t, string(user.RoleDataAnalyst), me.Role)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, logoutURL, nil, token)
		require.Equal(t, http.StatusNoContent, w.Code)

		cookie := httptest.ExtractCookie(w, "access_token")
		require.NotNil(t, cookie)
		require.Negative(t, cookie.MaxAge)
	})

	s.Run("Error case: no token means no identity", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
	})
}
