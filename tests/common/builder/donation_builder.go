//go:build unit || e2e

package builder

import (
	"time"

	domdonation "foodshare/internal/domain/donation"
	reqdto "foodshare/internal/handler/dto/request"
	"foodshare/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type DonationBuilder struct {
	ID                uuid.UUID
	ListingID         uuid.UUID
	ListingTitle      string
	DonorID           uuid.UUID
	DonorName         string
	RecipientID       uuid.UUID
	RecipientName     string
	Status            domdonation.Status
	RequestedQuantity float64
	ConfirmedQuantity *float64
	PickupDate        *time.Time
	CompletionDate    *time.Time
	PeopleServed      int32
	WasteReduced      float64
	DonorNotes        string
	RecipientNotes    string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func NewDonationBuilder() *DonationBuilder {
	now := time.Now()
	return &DonationBuilder{
		ID:                uuid.New(),
		ListingID:         uuid.New(),
		ListingTitle:      "Surplus produce boxes",
		DonorID:           uuid.New(),
		DonorName:         "Fresh Fields Market",
		RecipientID:       uuid.New(),
		RecipientName:     "Springfield Food Bank",
		Status:            domdonation.StatusPending,
		RequestedQuantity: 5,
		RecipientNotes:    "We can pick up any weekday morning",
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func (b *DonationBuilder) With(mutate func(*DonationBuilder)) *DonationBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *DonationBuilder) BuildDomain() (*domdonation.Donation, error) {
	return domdonation.NewDonation(b.ListingID, b.DonorID, b.RecipientID, b.RequestedQuantity, b.RecipientNotes)
}

// BuildReconstructed bypasses constructor validation so tests can start the
// state machine from any persisted status.
func (b *DonationBuilder) BuildReconstructed() *domdonation.Donation {
	return domdonation.Reconstruct(
		b.ID,
		b.ListingID,
		b.DonorID,
		b.RecipientID,
		b.Status,
		b.RequestedQuantity,
		b.ConfirmedQuantity,
		b.PickupDate,
		b.CompletionDate,
		b.PeopleServed,
		b.WasteReduced,
		b.DonorNotes,
		b.RecipientNotes,
		b.CreatedAt,
		b.UpdatedAt,
	)
}

func (b *DonationBuilder) BuildRM() *readmodel.DonationRM {
	return &readmodel.DonationRM{
		ID:                b.ID,
		ListingID:         b.ListingID,
		ListingTitle:      b.ListingTitle,
		ListingCategory:   "produce",
		ListingUnit:       "boxes",
		DonorID:           b.DonorID,
		DonorName:         b.DonorName,
		RecipientID:       b.RecipientID,
		RecipientName:     b.RecipientName,
		Status:            b.Status.String(),
		RequestedQuantity: b.RequestedQuantity,
		ConfirmedQuantity: b.ConfirmedQuantity,
		PickupDate:        b.PickupDate,
		CompletionDate:    b.CompletionDate,
		PeopleServed:      b.PeopleServed,
		WasteReduced:      b.WasteReduced,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

func (b *DonationBuilder) BuildCreateRequestDTO() reqdto.CreateDonationRequest {
	return reqdto.CreateDonationRequest{
		ListingID:         b.ListingID,
		RequestedQuantity: b.RequestedQuantity,
		Notes:             b.RecipientNotes,
	}
}

// Fluent builder methods
func (b *DonationBuilder) WithListingID(listingID uuid.UUID) *DonationBuilder {
	b.ListingID = listingID
	return b
}

func (b *DonationBuilder) WithDonorID(donorID uuid.UUID) *DonationBuilder {
	b.DonorID = donorID
	return b
}

func (b *DonationBuilder) WithRecipientID(recipientID uuid.UUID) *DonationBuilder {
	b.RecipientID = recipientID
	return b
}

func (b *DonationBuilder) WithStatus(status domdonation.Status) *DonationBuilder {
	b.Status = status
	return b
}

func (b *DonationBuilder) WithRequestedQuantity(quantity float64) *DonationBuilder {
	b.RequestedQuantity = quantity
	return b
}
