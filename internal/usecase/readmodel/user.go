package readmodel

import (
	"time"

	"foodshare/internal/domain/user"

	"github.com/google/uuid"
)

// AuthorizedUserRM is the minimal user shape needed by auth checks.
type AuthorizedUserRM struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	OrganizationName string    `json:"organizationName"`
	IsActive         bool      `json:"isActive"`
}

// UserRM is the full profile shape, never carrying the password hash.
type UserRM struct {
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
