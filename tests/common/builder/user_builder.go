//go:build unit || e2e

package builder

import (
	"time"

	domuser "foodshare/internal/domain/user"
	reqdto "foodshare/internal/handler/dto/request"
	"foodshare/internal/usecase"
	"foodshare/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID               uuid.UUID
	Name             string
	Email            string
	Password         string
	Role             domuser.Role
	OrganizationName string
	RecipientType    *string
	Phone            string
	Address          domuser.Address
	IsActive         bool
	IsVerified       bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func NewUserBuilder() *UserBuilder {
	now := time.Now()
	return &UserBuilder{
		ID:               uuid.New(),
		Name:             "Jordan Reyes",
		Email:            "jordan@springfieldfoodbank.example.com",
		Password:         "correct-horse-battery",
		Role:             domuser.RoleRecipientOrg,
		OrganizationName: "Springfield Food Bank",
		RecipientType:    ptr("food_bank"),
		Phone:            "+1-555-0142",
		Address: domuser.Address{
			Street:  "88 Grand Ave",
			City:    "Springfield",
			State:   "IL",
			ZipCode: "62702",
			Country: "US",
		},
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (b *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *UserBuilder) BuildRegisterParams() usecase.RegisterParams {
	return usecase.RegisterParams{
		Name:             b.Name,
		Email:            b.Email,
		Password:         b.Password,
		Role:             b.Role.String(),
		OrganizationName: b.OrganizationName,
		RecipientType:    b.RecipientType,
		Phone:            b.Phone,
		Address:          b.Address,
	}
}

func (b *UserBuilder) BuildRegisterRequestDTO() reqdto.RegisterRequest {
	return reqdto.RegisterRequest{
		Name:             b.Name,
		Email:            b.Email,
		Password:         b.Password,
		Role:             b.Role.String(),
		OrganizationName: b.OrganizationName,
		RecipientType:    b.RecipientType,
		Phone:            b.Phone,
		Address:          b.Address,
	}
}

func (b *UserBuilder) BuildAuthorizedRM() *readmodel.AuthorizedUserRM {
	return &readmodel.AuthorizedUserRM{
		ID:               b.ID,
		Name:             b.Name,
		Email:            b.Email,
		Role:             b.Role.String(),
		OrganizationName: b.OrganizationName,
		IsActive:         b.IsActive,
	}
}

func (b *UserBuilder) BuildRM() *readmodel.UserRM {
	return &readmodel.UserRM{
		ID:               b.ID,
		Name:             b.Name,
		Email:            b.Email,
		Role:             b.Role.String(),
		OrganizationName: b.OrganizationName,
		RecipientType:    b.RecipientType,
		Phone:            b.Phone,
		Address:          b.Address,
		IsActive:         b.IsActive,
		IsVerified:       b.IsVerified,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

func (b *UserBuilder) BuildPrincipal() domuser.Principal {
	return domuser.Principal{ID: b.ID, Role: b.Role}
}

// Fluent builder methods
func (b *UserBuilder) WithID(id uuid.UUID) *UserBuilder {
	b.ID = id
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.Email = email
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.Password = password
	return b
}

func (b *UserBuilder) WithRole(role domuser.Role) *UserBuilder {
	b.Role = role
	return b
}

func (b *UserBuilder) WithRecipientType(t *string) *UserBuilder {
	b.RecipientType = t
	return b
}

func (b *UserBuilder) AsDonor() *UserBuilder {
	b.Role = domuser.RoleFoodDonor
	b.Name = "Casey Tran"
	b.Email = "casey@freshfields.example.com"
	b.OrganizationName = "Fresh Fields Market"
	b.RecipientType = nil
	return b
}

func (b *UserBuilder) AsAnalyst() *UserBuilder {
	b.Role = domuser.RoleDataAnalyst
	b.RecipientType = nil
	return b
}

func (b *UserBuilder) AsAdmin() *UserBuilder {
	b.Role = domuser.RoleAdmin
	b.RecipientType = nil
	return b
}

func (b *UserBuilder) Inactive() *UserBuilder {
	b.IsActive = false
	return b
}

func ptr[T any](v T) *T {
	return &v
}
