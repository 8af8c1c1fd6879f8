package response

import "foodshare/internal/usecase/readmodel"

type AuthResponse struct {
	AccessToken string                      `json:"access_token"`
	User        *readmodel.AuthorizedUserRM `json:"user"`
}
