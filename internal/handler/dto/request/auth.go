package request

import (
	"foodshare/internal/domain/user"
	"foodshare/internal/usecase"
)

type RegisterRequest struct {
	Name             string       `json:"name" binding:"required"`
	Email            string       `json:"email" binding:"required,email"`
	Password         string       `json:"password" binding:"required,min=8"`
	Role             string       `json:"role" binding:"required"`
	OrganizationName string       `json:"organizationName" binding:"required"`
	RecipientType    *string      `json:"recipientType,omitempty"`
	Phone            string       `json:"phone,omitempty"`
	Address          user.Address `json:"address"`
}

func (r *RegisterRequest) ToParams() usecase.RegisterParams {
	return usecase.RegisterParams{
		Name:             r.Name,
		Email:            r.Email,
		Password:         r.Password,
		Role:             r.Role,
		OrganizationName: r.OrganizationName,
		RecipientType:    r.RecipientType,
		Phone:            r.Phone,
		Address:          r.Address,
	}
}

type RegisterAdminRequest struct {
	Name             string       `json:"name" binding:"required"`
	Email            string       `json:"email" binding:"required,email"`
	Password         string       `json:"password" binding:"required,min=8"`
	OrganizationName string       `json:"organizationName" binding:"required"`
	Phone            string       `json:"phone,omitempty"`
	Address          user.Address `json:"address"`
	AdminSecret      string       `json:"adminSecret" binding:"required"`
}

func (r *RegisterAdminRequest) ToParams() usecase.RegisterParams {
	return usecase.RegisterParams{
		Name:             r.Name,
		Email:            r.Email,
		Password:         r.Password,
		OrganizationName: r.OrganizationName,
		Phone:            r.Phone,
		Address:          r.Address,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (r *LoginRequest) ToDomain() (user.Credentials, error) {
	return user.NewCredentials(r.Email, r.Password)
}
