//go:build unit

package usecase_test

import (
	"context"
	"testing"
	"time"

	"foodshare/internal/domain/donation"
	"foodshare/internal/domain/listing"
	"foodshare/internal/domain/user"
	"foodshare/internal/infra"
	"foodshare/internal/infra/db"
	"foodshare/internal/pkg/clock"
	"foodshare/internal/usecase"
	"foodshare/internal/usecase/readmodel"
	"foodshare/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeTx satisfies pgx.Tx for transaction plumbing; repositories are mocked
// so none of the embedded methods are ever reached.
type fakeTx struct {
	pgx.Tx
}

func (fakeTx) Commit(_ context.Context) error   { return nil }
func (fakeTx) Rollback(_ context.Context) error { return pgx.ErrTxClosed }

type fakePool struct{}

func (fakePool) Begin(_ context.Context) (pgx.Tx, error) { return fakeTx{}, nil }

type mockDonationRepo struct {
	mock.Mock
}

func (m *mockDonationRepo) Create(ctx context.Context, tx db.DBTX, d *donation.Donation) error {
	return m.Called(ctx, tx, d).Error(0)
}

func (m *mockDonationRepo) Save(ctx context.Context, tx db.DBTX, d *donation.Donation) error {
	return m.Called(ctx, tx, d).Error(0)
}

func (m *mockDonationRepo) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*donation.Donation, error) {
	args := m.Called(ctx, tx, id)
	if d, ok := args.Get(0).(*donation.Donation); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDonationRepo) FindByID(ctx context.Context, id uuid.UUID) (*readmodel.DonationRM, error) {
	args := m.Called(ctx, id)
	if rm, ok := args.Get(0).(*readmodel.DonationRM); ok {
		return rm, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDonationRepo) FindAll(ctx context.Context) ([]*readmodel.DonationRM, error) {
	args := m.Called(ctx)
	if rms, ok := args.Get(0).([]*readmodel.DonationRM); ok {
		return rms, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDonationRepo) FindByDonorID(ctx context.Context, donorID uuid.UUID) ([]*readmodel.DonationRM, error) {
	args := m.Called(ctx, donorID)
	if rms, ok := args.Get(0).([]*readmodel.DonationRM); ok {
		return rms, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDonationRepo) FindByRecipientID(ctx context.Context, recipientID uuid.UUID) ([]*readmodel.DonationRM, error) {
	args := m.Called(ctx, recipientID)
	if rms, ok := args.Get(0).([]*readmodel.DonationRM); ok {
		return rms, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockListingLockRepo struct {
	mock.Mock
}

func (m *mockListingLockRepo) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*listing.Listing, error) {
	args := m.Called(ctx, tx, id)
	if l, ok := args.Get(0).(*listing.Listing); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockListingLockRepo) SaveQuantities(ctx context.Context, tx db.DBTX, l *listing.Listing) error {
	return m.Called(ctx, tx, l).Error(0)
}

func newDonationUseCase(t *testing.T) (usecase.DonationUseCase, *mockDonationRepo, *mockListingLockRepo, *clock.MockClock) {
	t.Helper()
	donationRepo := &mockDonationRepo{}
	listingRepo := &mockListingLockRepo{}
	mockClock := clock.NewMockClock(time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC))
	uc := usecase.NewDonationUseCase(donationRepo, listingRepo, fakePool{}, mockClock)
	return uc, donationRepo, listingRepo, mockClock
}

func TestRequestDonation(t *testing.T) {
	ctx := context.Background()
	recipientID := uuid.New()
	recipient := user.Principal{ID: recipientID, Role: user.RoleRecipientOrg}

	t.Run("reserves capacity and creates a pending donation", func(t *testing.T) {
		uc, donationRepo, listingRepo, _ := newDonationUseCase(t)

		lb := builder.NewListingBuilder().WithQuantity(20)
		lst := lb.BuildReconstructed()
		rm := builder.NewDonationBuilder().BuildRM()

		listingRepo.On("FindByIDForUpdate", mock.Anything, mock.Anything, lst.ID()).Return(lst, nil)
		donationRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(d *donation.Donation) bool {
			return d.ListingID() == lst.ID() &&
				d.DonorID() == lst.DonorID() &&
				d.RecipientID() == recipientID &&
				d.Status() == donation.StatusPending &&
				d.RequestedQuantity() == 8
		})).Return(nil)
		listingRepo.On("SaveQuantities", mock.Anything, mock.Anything, lst).Return(nil)
		donationRepo.On("FindByID", mock.Anything, mock.Anything).Return(rm, nil)

		actual, err := uc.RequestDonation(ctx, recipient, lst.ID(), 8, "weekday mornings work")
		require.NoError(t, err)
		assert.Equal(t, rm, actual)

		assert.Equal(t, float64(8), lst.ReservedQuantity())
		assert.Equal(t, listing.StatusAvailable, lst.Status())
		donationRepo.AssertExpectations(t)
		listingRepo.AssertExpectations(t)
	})

	t.Run("request exhausting capacity flips the listing to reserved", func(t *testing.T) {
		uc, donationRepo, listingRepo, _ := newDonationUseCase(t)

		lst := builder.NewListingBuilder().
			WithQuantity(20).
			WithReservedQuantity(8).
			BuildReconstructed()

		listingRepo.On("FindByIDForUpdate", mock.Anything, mock.Anything, lst.ID()).Return(lst, nil)
		donationRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		listingRepo.On("SaveQuantities", mock.Anything, mock.Anything, lst).Return(nil)
		donationRepo.On("FindByID", mock.Anything, mock.Anything).Return(builder.NewDonationBuilder().BuildRM(), nil)

		_, err := uc.RequestDonation(ctx, recipient, lst.ID(), 12, "")
		require.NoError(t, err)

		assert.Equal(t, float64(20), lst.ReservedQuantity())
		assert.Equal(t, listing.StatusReserved, lst.Status())
	})

	t.Run("insufficient capacity surfaces the exact remainder", func(t *testing.T) {
		uc, donationRepo, listingRepo, _ := newDonationUseCase(t)

		lst := builder.NewListingBuilder().
			WithQuantity(20).
			WithReservedQuantity(8).
			WithUnit(listing.UnitBoxes).
			BuildReconstructed()

		listingRepo.On("FindByIDForUpdate", mock.Anything, mock.Anything, lst.ID()).Return(lst, nil)

		_, err := uc.RequestDonation(ctx, recipient, lst.ID(), 15, "")
		require.Error(t, err)

		var insufficientErr *listing.InsufficientQuantityError
		require.ErrorAs(t, err, &insufficientErr)
		assert.Equal(t, "Only 12 boxes available. 8 already reserved.", insufficientErr.Error())

		donationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		listingRepo.AssertNotCalled(t, "SaveQuantities", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown listing", func(t *testing.T) {
		uc, _, listingRepo, _ := newDonationUseCase(t)
		listingID := uuid.New()

		listingRepo.On("FindByIDForUpdate", mock.Anything, mock.Anything, listingID).
			Return(nil, infra.WrapRepoErr("listing not found", nil, infra.KindNotFound))

		_, err := uc.RequestDonation(ctx, recipient, listingID, 5, "")
		assert.ErrorIs(t, err, usecase.ErrListingNotFound)
	})

	t.Run("cancelled listing rejects requests", func(t *testing.T) {
		uc, donationRepo, listingRepo, _ := newDonationUseCase(t)

		lst := builder.NewListingBuilder().
			WithStatus(listing.StatusCancelled).
			BuildReconstructed()
		listingRepo.On("FindByIDForUpdate", mock.Anything, mock.Anything, lst.ID()).Return(lst, nil)

		_, err := uc.RequestDonation(ctx, recipient, lst.ID(), 5, "")
		assert.ErrorIs(t, err, listing.ErrNotAvailable)
		donationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("only recipient organizations may request", func(t *testing.T) {
		for _, role := range []user.Role{user.RoleAdmin, user.RoleFoodDonor, user.RoleDataAnalyst} {
			uc, donationRepo, listingRepo, _ := newDonationUseCase(t)

			actor := user.Principal{ID: uuid.New(), Role: role}
			_, err := uc.RequestDonation(ctx, actor, uuid.New(), 5, "")
			assert.ErrorIs(t, err, usecase.ErrNotAuthorized, role.String())

			listingRepo.AssertNotCalled(t, "FindByIDForUpdate", mock.Anything, mock.Anything, mock.Anything)
			donationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		}
	})
}

func TestUpdateDonationStatus(t *testing.T) {
	ctx := context.Background()
	donorID := uuid.New()
	recipientID := uuid.New()
	donor := user.Principal{ID: donorID, Role: user.RoleFoodDonor}
	recipient := user.Principal{ID: recipientID, Role: user.RoleRecipientOrg}

	newParties := func(status donation.Status, requested float64) (*donation.Donation, *builder.DonationBuilder) {
		b := builder.NewDonationBuilder().
			WithDonorID(donorID).
			WithRecipientID(recipientID).
			WithStatus(status).
			WithRequestedQuantity(requested)
		return b.BuildReconstructed(), b
	}

	t.Run("donor confirms without touching the reservation", func(t *testing.T) {
		uc, donationRepo, listingRepo, _ := newDonationUseCase(t)

		dn, b := newParties(donation.StatusPending, 8)
		lst := builder.NewListingBuilder().
			WithQuantity(20).
			WithReservedQuantity(8).
			BuildReconstructed()

		donationRepo.On("FindByIDForUpdate", mock.Anything, mock.Anything, dn.ID()).Return(dn, nil)
		listingRepo.On("FindByIDForUpdate", mock.Anything, mock.Anything, dn.ListingID()).Return(lst, nil)
		donationRepo.On("Save", mock.Anything, mock.Anything, dn).Return(nil)
		donationRepo.On("FindByID", mock.Anything, dn.ID()).Return(b.BuildRM(), nil)

		_, err := uc.UpdateStatus(ctx, dn.ID(), donor, usecase.UpdateDonationStatusParams{Status: "confirmed"})
		require.NoError(t, err)

		assert.Equal(t, donation.StatusConfirmed, dn.Status())
		assert.Equal(t, float64(8), lst.ReservedQuantity())
		listingRepo.AssertNotCalled(t, "SaveQuantities", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("completion releases the hold inside the same transaction", func(t *testing.T) {
		uc, donationRepo, listingRepo, _ := newDonationUseCase(t)

		dn, b := newParties(donation.StatusInTransit, 8)
		lst := builder.NewListingBuilder().
			WithQuantity(20).
			WithReservedQuantity(20).
			WithStatus(listing.StatusReserved).
			BuildReconstructed()

		donationRepo.On("FindByIDForUpdate", mock.Anything, mock.Anything, dn.ID()).Return(dn, nil)
		listingRepo.On("FindByIDForUpdate", mock.Anything, mock.Anything, dn.ListingID()).Return(lst, nil)
		listingRepo.On("SaveQuantities", mock.Anything, mock.Anything, lst).Return(nil)
		donationRepo.On("Save", mock.Anything, mock.Anything, dn).Return(nil)
		donationRepo.On("FindByID", mock.Anything, dn.ID()).Return(b.BuildRM(), nil)

		_, err := uc.UpdateStatus(ctx, dn.ID(), recipient, usecase.UpdateDonationStatusParams{Status: "completed"})
		require.NoError(t, err)

		assert.Equal(t, donation.StatusCompleted, dn.Status())
		assert.NotNil(t, dn.CompletionDate())
		assert.Equal(t, float64(12), lst.ReservedQuantity())
		assert.Equal(t, listing.StatusAvailable, lst.Status())
		listingRepo.AssertExpectations(t)
	})

	t.Run("cancellation returns the hold", func(t *testing.T) {
		uc, donationRepo, listingRepo, _ := newDonationUseCase(t)

		dn, b := newParties(donation.StatusPending, 5)
		lst := builder.NewListingBuilder().
			WithQuantity(20).
			WithReservedQuantity(5).
			BuildReconstructed()

		donationRepo.On("FindByIDForUpdate", mock.Anything, mock.Anything, dn.ID()).Return(dn, nil)
		listingRepo.On("FindByIDForUpdate", mock.Anything, mock.Anything, dn.ListingID()).Return(lst, nil)
		listingRepo.On("SaveQuantities", mock.Anything, mock.Anything, lst).Return(nil)
		donationRepo.On("Save", mock.Anything, mock.Anything, dn).Return(nil)
		donationRepo.On("FindByID", mock.Anything, dn.ID()).Return(b.BuildRM(), nil)

		_, err := uc.UpdateStatus(ctx, dn.ID(), recipient, usecase.UpdateDonationStatusParams{Status: "cancelled"})
		require.NoError(t, err)

		assert.Equal(t, donation.StatusCancelled, dn.Status())
		assert.Equal(t, float64(0), lst.ReservedQuantity())
		assert.Equal(t, listing.StatusAvailable, lst.Status())
	})

	t.Run("outsiders are rejected", func(t *testing.T) {
		uc, donationRepo, listingRepo, _ := newDonationUseCase(t)

		dn, _ := newParties(donation.StatusPending, 5)
		donationRepo.On("FindByIDForUpdate", mock.Anything, mock.Anything, dn.ID()).Return(dn, nil)

		stranger := user.Principal{ID: uuid.New(), Role: user.RoleRecipientOrg}
		_, err := uc.UpdateStatus(ctx, dn.ID(), stranger, usecase.UpdateDonationStatusParams{Status: "cancelled"})
		assert.ErrorIs(t, err, usecase.ErrNotAuthorized)

		listingRepo.AssertNotCalled(t, "FindByIDForUpdate", mock.Anything, mock.Anything, mock.Anything)
		donationRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("recipient cannot confirm", func(t *testing.T) {
		uc, donationRepo, listingRepo, _ := newDonationUseCase(t)

		dn, _ := newParties(donation.StatusPending, 5)
		lst := builder.NewListingBuilder().WithQuantity(20).WithReservedQuantity(5).BuildReconstructed()

		donationRepo.On("FindByIDForUpdate", mock.Anything, mock.Anything, dn.ID()).Return(dn, nil)
		listingRepo.On("FindByIDForUpdate", mock.Anything, mock.Anything, dn.ListingID()).Return(lst, nil)

		_, err := uc.UpdateStatus(ctx, dn.ID(), recipient, usecase.UpdateDonationStatusParams{Status: "confirmed"})
		assert.ErrorIs(t, err, usecase.ErrNotAuthorized)
		assert.Equal(t, donation.StatusPending, dn.Status())
	})

	t.Run("terminal donations reject further transitions", func(t *testing.T) {
		uc, donationRepo, listingRepo, _ := newDonationUseCase(t)

		dn, _ := newParties(donation.StatusCancelled, 5)
		lst := builder.NewListingBuilder().WithQuantity(20).BuildReconstructed()

		donationRepo.On("FindByIDForUpdate", mock.Anything, mock.Anything, dn.ID()).Return(dn, nil)
		listingRepo.On("FindByIDForUpdate", mock.Anything, mock.Anything, dn.ListingID()).Return(lst, nil)

		_, err := uc.UpdateStatus(ctx, dn.ID(), recipient, usecase.UpdateDonationStatusParams{Status: "cancelled"})
		assert.ErrorIs(t, err, usecase.ErrInvalidTransition)

		// a double cancellation must not release the hold twice
		listingRepo.AssertNotCalled(t, "SaveQuantities", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown status string", func(t *testing.T) {
		uc, donationRepo, _, _ := newDonationUseCase(t)

		_, err := uc.UpdateStatus(ctx, uuid.New(), donor, usecase.UpdateDonationStatusParams{Status: "archived"})
		assert.ErrorIs(t, err, donation.ErrInvalidStatus)
		donationRepo.AssertNotCalled(t, "FindByIDForUpdate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown donation", func(t *testing.T) {
		uc, donationRepo, _, _ := newDonationUseCase(t)
		id := uuid.New()

		donationRepo.On("FindByIDForUpdate", mock.Anything, mock.Anything, id).
			Return(nil, infra.WrapRepoErr("donation not found", nil, infra.KindNotFound))

		_, err := uc.UpdateStatus(ctx, id, donor, usecase.UpdateDonationStatusParams{Status: "confirmed"})
		assert.ErrorIs(t, err, usecase.ErrDonationNotFound)
	})
}

func TestGetDonation(t *testing.T) {
	ctx := context.Background()

	rm := builder.NewDonationBuilder().BuildRM()

	cases := []struct {
		name  string
		actor user.Principal
		errIs error
	}{
		{name: "donor party", actor: user.Principal{ID: rm.DonorID, Role: user.RoleFoodDonor}},
		{name: "recipient party", actor: user.Principal{ID: rm.RecipientID, Role: user.RoleRecipientOrg}},
		{name: "admin", actor: user.Principal{ID: uuid.New(), Role: user.RoleAdmin}},
		{name: "analyst", actor: user.Principal{ID: uuid.New(), Role: user.RoleDataAnalyst}},
		{name: "unrelated recipient", actor: user.Principal{ID: uuid.New(), Role: user.RoleRecipientOrg}, errIs: usecase.ErrNotAuthorized},
		{name: "unrelated donor", actor: user.Principal{ID: uuid.New(), Role: user.RoleFoodDonor}, errIs: usecase.ErrNotAuthorized},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			uc, donationRepo, _, _ := newDonationUseCase(t)
			donationRepo.On("FindByID", mock.Anything, rm.ID).Return(rm, nil)

			actual, err := uc.GetDonation(ctx, rm.ID, c.actor)
			if c.errIs == nil {
				require.NoError(t, err)
				assert.Equal(t, rm, actual)
			} else {
				assert.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
