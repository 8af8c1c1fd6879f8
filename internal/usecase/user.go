package usecase

import (
	"context"

	"foodshare/internal/domain/user"
	"foodshare/internal/infra"
	"foodshare/internal/pkg/errs"
	"foodshare/internal/pkg/password"
	"foodshare/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type UserQueryRepository interface {
	FindProfileByID(ctx context.Context, id uuid.UUID) (*readmodel.UserRM, error)
	FindAll(ctx context.Context) ([]*readmodel.UserRM, error)
	FindByRole(ctx context.Context, role user.Role) ([]*readmodel.UserRM, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, update UserProfileUpdate) error
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// UserProfileUpdate carries the self-service editable fields. Email and role
// are immutable after registration; password arrives pre-hashed.
type UserProfileUpdate struct {
	Name             *string
	OrganizationName *string
	Phone            *string
	Address          *user.Address
	PasswordHash     *string
}

type UpdateProfileParams struct {
	Name             *string
	OrganizationName *string
	Phone            *string
	Address          *user.Address
	Password         *string
}

type UserUseCase interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*readmodel.UserRM, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, params UpdateProfileParams) (*readmodel.UserRM, error)
	ListUsers(ctx context.Context) ([]*readmodel.UserRM, error)
	ListDonors(ctx context.Context) ([]*readmodel.UserRM, error)
	ListRecipients(ctx context.Context) ([]*readmodel.UserRM, error)
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) (*readmodel.UserRM, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*readmodel.UserRM, error)
}

type userUseCaseImpl struct {
	userQueryRepo UserQueryRepository
}

func NewUserUseCase(userQueryRepo UserQueryRepository) UserUseCase {
	return &userUseCaseImpl{
		userQueryRepo: userQueryRepo,
	}
}

func (u *userUseCaseImpl) GetProfile(ctx context.Context, id uuid.UUID) (*readmodel.UserRM, error) {
	profile, err := u.userQueryRepo.FindProfileByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Wrap(err, "failed to find user")
	}
	return profile, nil
}

func (u *userUseCaseImpl) UpdateProfile(ctx context.Context, id uuid.UUID, params UpdateProfileParams) (*readmodel.UserRM, error) {
	update := UserProfileUpdate{
		Name:             params.Name,
		OrganizationName: params.OrganizationName,
		Phone:            params.Phone,
		Address:          params.Address,
	}

	if params.Password != nil {
		if _, err := user.NewPassword(*params.Password); err != nil {
			return nil, err
		}
		hash, err := password.HashPassword(*params.Password)
		if err != nil {
			return nil, err
		}
		update.PasswordHash = &hash
	}

	if err := u.userQueryRepo.UpdateProfile(ctx, id, update); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Wrap(err, "failed to update profile")
	}

	return u.userQueryRepo.FindProfileByID(ctx, id)
}

func (u *userUseCaseImpl) ListUsers(ctx context.Context) ([]*readmodel.UserRM, error) {
	users, err := u.userQueryRepo.FindAll(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list users")
	}
	return users, nil
}

func (u *userUseCaseImpl) ListDonors(ctx context.Context) ([]*readmodel.UserRM, error) {
	users, err := u.userQueryRepo.FindByRole(ctx, user.RoleFoodDonor)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list donors")
	}
	return users, nil
}

func (u *userUseCaseImpl) ListRecipients(ctx context.Context) ([]*readmodel.UserRM, error) {
	users, err := u.userQueryRepo.FindByRole(ctx, user.RoleRecipientOrg)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list recipients")
	}
	return users, nil
}

func (u *userUseCaseImpl) SetVerified(ctx context.Context, id uuid.UUID, verified bool) (*readmodel.UserRM, error) {
	if err := u.userQueryRepo.SetVerified(ctx, id, verified); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Wrap(err, "failed to update verification")
	}
	return u.userQueryRepo.FindProfileByID(ctx, id)
}

func (u *userUseCaseImpl) SetActive(ctx context.Context, id uuid.UUID, active bool) (*readmodel.UserRM, error) {
	if err := u.userQueryRepo.SetActive(ctx, id, active); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Wrap(err, "failed to update active flag")
	}
	return u.userQueryRepo.FindProfileByID(ctx, id)
}
