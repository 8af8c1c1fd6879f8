package response

import (
	"time"

	"foodshare/internal/domain/user"
	"foodshare/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID               uuid.UUID    `json:"id"`
	Name             string       `json:"name"`
	Email            string       `json:"email"`
	Role             string       `json:"role"`
	OrganizationName string       `json:"organizationName"`
	RecipientType    *string      `json:"recipientType,omitempty"`
	Phone            string       `json:"phone,omitempty"`
	Address          user.Address `json:"address"`
	IsActive         bool         `json:"isActive"`
	IsVerified       bool         `json:"isVerified"`
	LastLogin        *time.Time   `json:"lastLogin,omitempty"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

func FromUserRM(rm *readmodel.UserRM) *UserResponse {
	return &UserResponse{
		ID:               rm.ID,
		Name:             rm.Name,
		Email:            rm.Email,
		Role:             rm.Role,
		OrganizationName: rm.OrganizationName,
		RecipientType:    rm.RecipientType,
		Phone:            rm.Phone,
		Address:          rm.Address,
		IsActive:         rm.IsActive,
		IsVerified:       rm.IsVerified,
		LastLogin:        rm.LastLogin,
		CreatedAt:        rm.CreatedAt,
		UpdatedAt:        rm.UpdatedAt,
	}
}

func FromUserRMs(rms []*readmodel.UserRM) []*UserResponse {
	users := make([]*UserResponse, 0, len(rms))
	for _, rm := range rms {
		users = append(users, FromUserRM(rm))
	}
	return users
}
