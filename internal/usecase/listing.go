package usecase

import (
	"context"
	"errors"
	"time"

	"foodshare/internal/domain/listing"
	"foodshare/internal/domain/user"
	"foodshare/internal/infra"
	"foodshare/internal/infra/db"
	"foodshare/internal/pkg/clock"
	"foodshare/internal/pkg/errs"
	"foodshare/internal/usecase/readmodel"
	"foodshare/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrListingNotFound = errors.New("food listing not found")
	ErrNotAuthorized   = errors.New("not authorized")
)

type ListingRepository interface {
	Create(ctx context.Context, tx db.DBTX, l *listing.Listing) error
	Save(ctx context.Context, tx db.DBTX, l *listing.Listing) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*listing.Listing, error)
	FindByID(ctx context.Context, id uuid.UUID) (*readmodel.ListingRM, error)
	FindAll(ctx context.Context, filter ListingFilter) ([]*readmodel.ListingRM, error)
	FindAvailable(ctx context.Context, until time.Time) ([]*readmodel.ListingRM, error)
	FindByDonorID(ctx context.Context, donorID uuid.UUID) ([]*readmodel.ListingRM, error)
}

type ListingFilter struct {
	Status   *string
	Category *string
}

type CreateListingParams struct {
	Title          string
	Description    string
	Category       string
	Quantity       float64
	Unit           string
	ExpirationDate time.Time
	PickupLocation user.Address
	AvailableFrom  time.Time
	AvailableUntil time.Time
	Storage        string
}

type UpdateListingParams struct {
	Title          *string
	Description    *string
	Category       *string
	Quantity       *float64
	Unit           *string
	ExpirationDate *time.Time
	PickupLocation *user.Address
	AvailableFrom  *time.Time
	AvailableUntil *time.Time
	Status         *string
	Storage        *string
}

type ListingUseCase interface {
	CreateListing(ctx context.Context, donorID uuid.UUID, params CreateListingParams) (*readmodel.ListingRM, error)
	UpdateListing(ctx context.Context, id, donorID uuid.UUID, params UpdateListingParams) (*readmodel.ListingRM, error)
	DeleteListing(ctx context.Context, id, donorID uuid.UUID) error
	GetListing(ctx context.Context, id uuid.UUID) (*readmodel.ListingRM, error)
	ListListings(ctx context.Context, filter ListingFilter) ([]*readmodel.ListingRM, error)
	ListAvailable(ctx context.Context) ([]*readmodel.ListingRM, error)
	ListByDonor(ctx context.Context, donorID uuid.UUID) ([]*readmodel.ListingRM, error)
}

type listingUseCaseImpl struct {
	listingRepo ListingRepository
	pool        db.Pool
	clock       clock.Clock
}

func NewListingUseCase(listingRepo ListingRepository, pool db.Pool, clock clock.Clock) ListingUseCase {
	return &listingUseCaseImpl{
		listingRepo: listingRepo,
		pool:        pool,
		clock:       clock,
	}
}

func (u *listingUseCaseImpl) CreateListing(ctx context.Context, donorID uuid.UUID, params CreateListingParams) (*readmodel.ListingRM, error) {
	category, err := listing.NewCategory(params.Category)
	if err != nil {
		return nil, err
	}
	unit, err := listing.NewUnit(params.Unit)
	if err != nil {
		return nil, err
	}
	storage := listing.StorageRoomTemperature
	if params.Storage != "" {
		storage, err = listing.NewStorageRequirement(params.Storage)
		if err != nil {
			return nil, err
		}
	}

	lst, err := listing.NewListing(
		donorID,
		params.Title,
		params.Description,
		category,
		params.Quantity,
		unit,
		params.ExpirationDate,
		params.PickupLocation,
		params.AvailableFrom,
		params.AvailableUntil,
		storage,
	)
	if err != nil {
		return nil, err
	}

	_, err = shared.RunInTx(ctx, u.pool, func(tx db.DBTX) (struct{}, error) {
		return struct{}{}, u.listingRepo.Create(ctx, tx, lst)
	})
	if err != nil {
		return nil, errs.Wrap(err, "failed to create listing")
	}

	return u.listingRepo.FindByID(ctx, lst.ID())
}

func (u *listingUseCaseImpl) UpdateListing(ctx context.Context, id, donorID uuid.UUID, params UpdateListingParams) (*readmodel.ListingRM, error) {
	update, err := toDomainUpdate(params)
	if err != nil {
		return nil, err
	}

	_, err = shared.WithDefaultRetry(ctx, u.pool, func(tx db.DBTX) (struct{}, error) {
		var zero struct{}

		lst, err := u.listingRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return zero, ErrListingNotFound
			}
			return zero, errs.Wrap(err, "failed to lock listing")
		}

		if !lst.IsOwnedBy(donorID) {
			return zero, ErrNotAuthorized
		}

		if err := lst.Apply(update); err != nil {
			return zero, err
		}

		return zero, u.listingRepo.Save(ctx, tx, lst)
	})
	if err != nil {
		return nil, err
	}

	return u.listingRepo.FindByID(ctx, id)
}

func (u *listingUseCaseImpl) DeleteListing(ctx context.Context, id, donorID uuid.UUID) error {
	lst, err := u.listingRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrListingNotFound
		}
		return errs.Wrap(err, "failed to find listing")
	}

	if lst.DonorID != donorID {
		return ErrNotAuthorized
	}

	return u.listingRepo.Delete(ctx, id)
}

func (u *listingUseCaseImpl) GetListing(ctx context.Context, id uuid.UUID) (*readmodel.ListingRM, error) {
	lst, err := u.listingRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, errs.Wrap(err, "failed to find listing")
	}
	return lst, nil
}

func (u *listingUseCaseImpl) ListListings(ctx context.Context, filter ListingFilter) ([]*readmodel.ListingRM, error) {
	listings, err := u.listingRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list listings")
	}
	return listings, nil
}

func (u *listingUseCaseImpl) ListAvailable(ctx context.Context) ([]*readmodel.ListingRM, error) {
	listings, err := u.listingRepo.FindAvailable(ctx, u.clock.Now())
	if err != nil {
		return nil, errs.Wrap(err, "failed to list available listings")
	}
	return listings, nil
}

func (u *listingUseCaseImpl) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]*readmodel.ListingRM, error) {
	listings, err := u.listingRepo.FindByDonorID(ctx, donorID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list donor listings")
	}
	return listings, nil
}

func toDomainUpdate(params UpdateListingParams) (listing.Update, error) {
	update := listing.Update{
		Title:          params.Title,
		Description:    params.Description,
		Quantity:       params.Quantity,
		ExpirationDate: params.ExpirationDate,
		PickupLocation: params.PickupLocation,
		AvailableFrom:  params.AvailableFrom,
		AvailableUntil: params.AvailableUntil,
	}

	if params.Category != nil {
		category, err := listing.NewCategory(*params.Category)
		if err != nil {
			return listing.Update{}, err
		}
		update.Category = &category
	}
	if params.Unit != nil {
		unit, err := listing.NewUnit(*params.Unit)
		if err != nil {
			return listing.Update{}, err
		}
		update.Unit = &unit
	}
	if params.Status != nil {
		status := listing.Status(*params.Status)
		if !status.IsValid() {
			return listing.Update{}, listing.ErrInvalidListingStatus
		}
		update.Status = &status
	}
	if params.Storage != nil {
		storage, err := listing.NewStorageRequirement(*params.Storage)
		if err != nil {
			return listing.Update{}, err
		}
		update.Storage = &storage
	}

	return update, nil
}
