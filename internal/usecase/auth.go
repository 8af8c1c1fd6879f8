package usecase

import (
	"context"
	"crypto/subtle"
	"errors"

	"foodshare/internal/domain/user"
	"foodshare/internal/infra"
	"foodshare/internal/pkg/config"
	"foodshare/internal/pkg/jwt"
	"foodshare/internal/pkg/password"
	"foodshare/internal/usecase/readmodel"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailTaken           = errors.New("user already exists with this email")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserInactive         = errors.New("user account is inactive")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrTokenGeneration      = errors.New("token generation failed")
	ErrTokenValidation      = errors.New("token validation failed")
	ErrInvalidAdminSecret   = errors.New("invalid admin secret")
	ErrAdminRoleForbidden   = errors.New("admin accounts are provisioned separately")
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByEmail(ctx context.Context, email user.Email) (*readmodel.AuthorizedUserRM, string, error)
	FindByID(ctx context.Context, id uuid.UUID) (*readmodel.AuthorizedUserRM, error)
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error
}

type RegisterParams struct {
	Name             string
	Email            string
	Password         string
	Role             string
	OrganizationName string
	RecipientType    *string
	Phone            string
	Address          user.Address
}

type AuthUseCase interface {
	Register(ctx context.Context, params RegisterParams) (*readmodel.AuthorizedUserRM, string, error)
	RegisterAdmin(ctx context.Context, params RegisterParams, adminSecret string) (*readmodel.AuthorizedUserRM, string, error)
	Login(ctx context.Context, credentials user.Credentials) (string, *readmodel.AuthorizedUserRM, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*readmodel.AuthorizedUserRM, error)
}

type authUseCaseImpl struct {
	userRepo   UserRepository
	jwtService *jwt.Service
	adminCfg   config.AdminConfig
}

func NewAuthUseCase(userRepo UserRepository, jwtService *jwt.Service, adminCfg config.AdminConfig) AuthUseCase {
	return &authUseCaseImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		adminCfg:   adminCfg,
	}
}

func (a *authUseCaseImpl) Register(ctx context.Context, params RegisterParams) (*readmodel.AuthorizedUserRM, string, error) {
	role, err := user.NewRole(params.Role)
	if err != nil {
		return nil, "", err
	}
	// The first admin comes from RegisterAdmin with the out-of-band secret;
	// the public endpoint never mints one.
	if role == user.RoleAdmin {
		return nil, "", ErrAdminRoleForbidden
	}

	return a.createUser(ctx, params, role)
}

func (a *authUseCaseImpl) RegisterAdmin(ctx context.Context, params RegisterParams, adminSecret string) (*readmodel.AuthorizedUserRM, string, error) {
	if subtle.ConstantTimeCompare([]byte(adminSecret), []byte(a.adminCfg.Secret)) != 1 {
		return nil, "", ErrInvalidAdminSecret
	}

	return a.createUser(ctx, params, user.RoleAdmin)
}

func (a *authUseCaseImpl) createUser(ctx context.Context, params RegisterParams, role user.Role) (*readmodel.AuthorizedUserRM, string, error) {
	email, err := user.NewEmail(params.Email)
	if err != nil {
		return nil, "", err
	}
	if _, err := user.NewPassword(params.Password); err != nil {
		return nil, "", err
	}

	var recipientType *user.RecipientType
	if params.RecipientType != nil && *params.RecipientType != "" {
		rt, err := user.NewRecipientType(*params.RecipientType)
		if err != nil {
			return nil, "", err
		}
		recipientType = &rt
	}

	hash, err := password.HashPassword(params.Password)
	if err != nil {
		return nil, "", err
	}

	entity, err := user.NewUser(params.Name, email, hash, role, params.OrganizationName, recipientType, params.Phone, params.Address)
	if err != nil {
		return nil, "", err
	}

	if err := a.userRepo.Create(ctx, entity); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := a.jwtService.GenerateToken(entity.ID(), role)
	if err != nil {
		return nil, "", ErrTokenGeneration
	}

	return &readmodel.AuthorizedUserRM{
		ID:               entity.ID(),
		Name:             entity.Name(),
		Email:            email.Value(),
		Role:             role.String(),
		OrganizationName: entity.OrganizationName(),
		IsActive:         true,
	}, token, nil
}

func (a *authUseCaseImpl) Login(ctx context.Context, credentials user.Credentials) (string, *readmodel.AuthorizedUserRM, error) {
	userRM, err := a.validateUser(ctx, credentials)
	if err != nil {
		return "", nil, err
	}

	role, err := user.NewRole(userRM.Role)
	if err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	token, err := a.jwtService.GenerateToken(userRM.ID, role)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	if err := a.userRepo.UpdateLastLogin(ctx, userRM.ID); err != nil {
		return "", nil, err
	}

	return token, userRM, nil
}

func (a *authUseCaseImpl) validateUser(ctx context.Context, credentials user.Credentials) (*readmodel.AuthorizedUserRM, error) {
	userRM, hashedPassword, err := a.userRepo.FindByEmail(ctx, credentials.Email())
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !userRM.IsActive {
		return nil, ErrUserInactive
	}

	if err := password.ComparePassword(hashedPassword, credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}

	return userRM, nil
}

func (a *authUseCaseImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*readmodel.AuthorizedUserRM, error) {
	userRM, err := a.userRepo.FindByID(ctx, userID)
	if err != nil || userRM == nil {
		return nil, ErrUserNotFound
	}

	if !userRM.IsActive {
		return nil, ErrUserInactive
	}

	return userRM, nil
}
