package request

import (
	"foodshare/internal/domain/user"
	"foodshare/internal/usecase"
)

type UpdateProfileRequest struct {
	Name             *string       `json:"name,omitempty"`
	OrganizationName *string       `json:"organizationName,omitempty"`
	Phone            *string       `json:"phone,omitempty"`
	Address          *user.Address `json:"address,omitempty"`
	Password         *string       `json:"password,omitempty"`
}

func (r *UpdateProfileRequest) ToParams() usecase.UpdateProfileParams {
	return usecase.UpdateProfileParams{
		Name:             r.Name,
		OrganizationName: r.OrganizationName,
		Phone:            r.Phone,
		Address:          r.Address,
		Password:         r.Password,
	}
}

type SetVerifiedRequest struct {
	IsVerified *bool `json:"isVerified" binding:"required"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}
