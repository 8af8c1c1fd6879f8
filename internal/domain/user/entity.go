package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	id               uuid.UUID
	name             string
	email            Email
	passwordHash     string
	role             Role
	organizationName string
	recipientType    *RecipientType
	phone            string
	address          Address
	isActive         bool
	isVerified       bool
	lastLogin        *time.Time
	createdAt        time.Time
	updatedAt        time.Time
}

func NewUser(name string, email Email, passwordHash string, role Role, organizationName string, recipientType *RecipientType, phone string, address Address) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if recipientType != nil && !recipientType.IsValid() {
		return nil, ErrInvalidRecipientType
	}

	return &User{
		id:               uuid.New(),
		name:             name,
		email:            email,
		passwordHash:     passwordHash,
		role:             role,
		organizationName: strings.TrimSpace(organizationName),
		recipientType:    recipientType,
		phone:            strings.TrimSpace(phone),
		address:          address,
		isActive:         true,
		isVerified:       false,
	}, nil
}

func (u *User) ID() uuid.UUID                  { return u.id }
func (u *User) Name() string                   { return u.name }
func (u *User) Email() Email                   { return u.email }
func (u *User) PasswordHash() string           { return u.passwordHash }
func (u *User) Role() Role                     { return u.role }
func (u *User) OrganizationName() string       { return u.organizationName }
func (u *User) RecipientType() *RecipientType  { return u.recipientType }
func (u *User) Phone() string                  { return u.phone }
func (u *User) Address() Address               { return u.address }
func (u *User) IsActive() bool                 { return u.isActive }
func (u *User) IsVerified() bool               { return u.isVerified }
func (u *User) LastLogin() *time.Time          { return u.lastLogin }
func (u *User) CreatedAt() time.Time           { return u.createdAt }
func (u *User) UpdatedAt() time.Time           { return u.updatedAt }

// Principal is the authenticated actor performing an operation. The workflow
// layer trusts it completely; only ownership and role checks happen there.
type Principal struct {
	ID   uuid.UUID
	Role Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) Is(id uuid.UUID) bool {
	return p.ID == id
}
