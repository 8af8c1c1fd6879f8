package usecase

import (
	"context"
	"errors"
	"time"

	"foodshare/internal/domain/donation"
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
	ErrDonationNotFound  = errors.New("donation not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type DonationRepository interface {
	Create(ctx context.Context, tx db.DBTX, d *donation.Donation) error
	Save(ctx context.Context, tx db.DBTX, d *donation.Donation) error
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*donation.Donation, error)
	FindByID(ctx context.Context, id uuid.UUID) (*readmodel.DonationRM, error)
	FindAll(ctx context.Context) ([]*readmodel.DonationRM, error)
	FindByDonorID(ctx context.Context, donorID uuid.UUID) ([]*readmodel.DonationRM, error)
	FindByRecipientID(ctx context.Context, recipientID uuid.UUID) ([]*readmodel.DonationRM, error)
}

// ListingLockRepository is the write-side listing access the workflow needs:
// a FOR UPDATE read and a quantity/status writeback inside the same
// transaction.
type ListingLockRepository interface {
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*listing.Listing, error)
	SaveQuantities(ctx context.Context, tx db.DBTX, l *listing.Listing) error
}

type UpdateDonationStatusParams struct {
	Status            string
	ConfirmedQuantity *float64
	PickupDate        *time.Time
	CompletionDate    *time.Time
	PeopleServed      *int32
	WasteReduced      *float64
	Notes             *string
}

type DonationUseCase interface {
	RequestDonation(ctx context.Context, actor user.Principal, listingID uuid.UUID, requestedQuantity float64, notes string) (*readmodel.DonationRM, error)
	UpdateStatus(ctx context.Context, donationID uuid.UUID, actor user.Principal, params UpdateDonationStatusParams) (*readmodel.DonationRM, error)
	GetDonation(ctx context.Context, id uuid.UUID, actor user.Principal) (*readmodel.DonationRM, error)
	ListAll(ctx context.Context) ([]*readmodel.DonationRM, error)
	ListByDonor(ctx context.Context, donorID uuid.UUID) ([]*readmodel.DonationRM, error)
	ListByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*readmodel.DonationRM, error)
}

type donationUseCaseImpl struct {
	donationRepo DonationRepository
	listingRepo  ListingLockRepository
	pool         db.Pool
	clock        clock.Clock
}

func NewDonationUseCase(
	donationRepo DonationRepository,
	listingRepo ListingLockRepository,
	pool db.Pool,
	clock clock.Clock,
) DonationUseCase {
	return &donationUseCaseImpl{
		donationRepo: donationRepo,
		listingRepo:  listingRepo,
		pool:         pool,
		clock:        clock,
	}
}

// RequestDonation reserves capacity at request time. The listing row is
// locked for the duration of the transaction, so two competing requests
// serialize and the second one sees the first one's reservation: the
// invariant reservedQuantity <= quantity cannot be violated.
//
// Only recipient organizations may request; admins manage donations but do
// not receive them, so there is no admin override here.
func (u *donationUseCaseImpl) RequestDonation(
	ctx context.Context,
	actor user.Principal,
	listingID uuid.UUID,
	requestedQuantity float64,
	notes string,
) (*readmodel.DonationRM, error) {
	if actor.Role != user.RoleRecipientOrg {
		return nil, ErrNotAuthorized
	}

	donationID, err := shared.WithDefaultRetry(ctx, u.pool, func(tx db.DBTX) (uuid.UUID, error) {
		lst, err := u.listingRepo.FindByIDForUpdate(ctx, tx, listingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return uuid.Nil, ErrListingNotFound
			}
			return uuid.Nil, errs.Wrap(err, "failed to lock listing")
		}

		if err := lst.Reserve(requestedQuantity); err != nil {
			return uuid.Nil, err
		}

		dn, err := donation.NewDonation(listingID, lst.DonorID(), actor.ID, requestedQuantity, notes)
		if err != nil {
			return uuid.Nil, err
		}

		if err := u.donationRepo.Create(ctx, tx, dn); err != nil {
			return uuid.Nil, errs.Wrap(err, "failed to create donation")
		}
		if err := u.listingRepo.SaveQuantities(ctx, tx, lst); err != nil {
			return uuid.Nil, errs.Wrap(err, "failed to update listing reservation")
		}

		return dn.ID(), nil
	})
	if err != nil {
		return nil, err
	}

	return u.donationRepo.FindByID(ctx, donationID)
}

// UpdateStatus drives the donation state machine. Terminal transitions
// release the donation's hold on the listing inside the same transaction.
func (u *donationUseCaseImpl) UpdateStatus(
	ctx context.Context,
	donationID uuid.UUID,
	actor user.Principal,
	params UpdateDonationStatusParams,
) (*readmodel.DonationRM, error) {
	newStatus, err := donation.NewStatus(params.Status)
	if err != nil {
		return nil, err
	}

	_, err = shared.WithDefaultRetry(ctx, u.pool, func(tx db.DBTX) (struct{}, error) {
		var zero struct{}

		dn, err := u.donationRepo.FindByIDForUpdate(ctx, tx, donationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return zero, ErrDonationNotFound
			}
			return zero, errs.Wrap(err, "failed to lock donation")
		}

		if !dn.IsParty(actor) {
			return zero, ErrNotAuthorized
		}

		lst, err := u.listingRepo.FindByIDForUpdate(ctx, tx, dn.ListingID())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return zero, ErrListingNotFound
			}
			return zero, errs.Wrap(err, "failed to lock listing")
		}

		update := donation.StatusUpdate{
			ConfirmedQuantity: params.ConfirmedQuantity,
			PickupDate:        params.PickupDate,
			CompletionDate:    params.CompletionDate,
			PeopleServed:      params.PeopleServed,
			WasteReduced:      params.WasteReduced,
			Notes:             params.Notes,
		}
		if err := dn.Transition(actor, newStatus, update, u.clock.Now()); err != nil {
			switch {
			case errors.Is(err, donation.ErrActorNotAllowed):
				return zero, ErrNotAuthorized
			case errors.Is(err, donation.ErrInvalidTransition):
				return zero, errs.Mark(err, ErrInvalidTransition)
			default:
				return zero, err
			}
		}

		switch newStatus {
		case donation.StatusCompleted:
			lst.ReleaseOnCompletion(dn.RequestedQuantity())
			if err := u.listingRepo.SaveQuantities(ctx, tx, lst); err != nil {
				return zero, errs.Wrap(err, "failed to release listing reservation")
			}
		case donation.StatusCancelled:
			lst.ReleaseOnCancellation(dn.RequestedQuantity())
			if err := u.listingRepo.SaveQuantities(ctx, tx, lst); err != nil {
				return zero, errs.Wrap(err, "failed to release listing reservation")
			}
		}

		if err := u.donationRepo.Save(ctx, tx, dn); err != nil {
			return zero, errs.Wrap(err, "failed to save donation")
		}

		return zero, nil
	})
	if err != nil {
		return nil, err
	}

	return u.donationRepo.FindByID(ctx, donationID)
}

func (u *donationUseCaseImpl) GetDonation(ctx context.Context, id uuid.UUID, actor user.Principal) (*readmodel.DonationRM, error) {
	dn, err := u.donationRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, errs.Wrap(err, "failed to find donation")
	}

	canView := actor.IsAdmin() ||
		actor.Role == user.RoleDataAnalyst ||
		actor.Is(dn.DonorID) ||
		actor.Is(dn.RecipientID)
	if !canView {
		return nil, ErrNotAuthorized
	}

	return dn, nil
}

func (u *donationUseCaseImpl) ListAll(ctx context.Context) ([]*readmodel.DonationRM, error) {
	donations, err := u.donationRepo.FindAll(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list donations")
	}
	return donations, nil
}

func (u *donationUseCaseImpl) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]*readmodel.DonationRM, error) {
	donations, err := u.donationRepo.FindByDonorID(ctx, donorID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list donations by donor")
	}
	return donations, nil
}

func (u *donationUseCaseImpl) ListByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*readmodel.DonationRM, error) {
	donations, err := u.donationRepo.FindByRecipientID(ctx, recipientID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list donations by recipient")
	}
	return donations, nil
}
