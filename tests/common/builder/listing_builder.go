//go:build unit || e2e

package builder

import (
	"time"

	domlisting "foodshare/internal/domain/listing"
	domuser "foodshare/internal/domain/user"
	reqdto "foodshare/internal/handler/dto/request"
	"foodshare/internal/usecase"
	"foodshare/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type ListingBuilder struct {
	ID               uuid.UUID
	DonorID          uuid.UUID
	DonorName        string
	DonorEmail       string
	Title            string
	Description      string
	Category         domlisting.Category
	Quantity         float64
	ReservedQuantity float64
	Unit             domlisting.Unit
	ExpirationDate   time.Time
	PickupLocation   domuser.Address
	AvailableFrom    time.Time
	AvailableUntil   time.Time
	Status           domlisting.Status
	Storage          domlisting.StorageRequirement
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func NewListingBuilder() *ListingBuilder {
	now := time.Now()
	return &ListingBuilder{
		ID:             uuid.New(),
		DonorID:        uuid.New(),
		DonorName:      "Fresh Fields Market",
		DonorEmail:     "donations@freshfields.example.com",
		Title:          "Surplus produce boxes",
		Description:    "Mixed seasonal vegetables from this week's overstock",
		Category:       domlisting.CategoryProduce,
		Quantity:       20,
		Unit:           domlisting.UnitBoxes,
		ExpirationDate: now.Add(72 * time.Hour),
		PickupLocation: domuser.Address{
			Street:  "12 Market St",
			City:    "Springfield",
			State:   "IL",
			ZipCode: "62701",
			Country: "US",
		},
		AvailableFrom:  now,
		AvailableUntil: now.Add(48 * time.Hour),
		Status:         domlisting.StatusAvailable,
		Storage:        domlisting.StorageRefrigerated,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (b *ListingBuilder) With(mutate func(*ListingBuilder)) *ListingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *ListingBuilder) BuildDomain() (*domlisting.Listing, error) {
	return domlisting.NewListing(
		b.DonorID,
		b.Title,
		b.Description,
		b.Category,
		b.Quantity,
		b.Unit,
		b.ExpirationDate,
		b.PickupLocation,
		b.AvailableFrom,
		b.AvailableUntil,
		b.Storage,
	)
}

// BuildReconstructed bypasses constructor validation so tests can start from
// any persisted state, including ones with reservations already held.
func (b *ListingBuilder) BuildReconstructed() *domlisting.Listing {
	return domlisting.Reconstruct(
		b.ID,
		b.DonorID,
		b.Title,
		b.Description,
		b.Category,
		b.Quantity,
		b.ReservedQuantity,
		b.Unit,
		b.ExpirationDate,
		b.PickupLocation,
		b.AvailableFrom,
		b.AvailableUntil,
		b.Status,
		b.Storage,
		b.CreatedAt,
		b.UpdatedAt,
	)
}

func (b *ListingBuilder) BuildRM() *readmodel.ListingRM {
	return &readmodel.ListingRM{
		ID:               b.ID,
		DonorID:          b.DonorID,
		DonorName:        b.DonorName,
		DonorEmail:       b.DonorEmail,
		Title:            b.Title,
		Description:      b.Description,
		Category:         b.Category.String(),
		Quantity:         b.Quantity,
		ReservedQuantity: b.ReservedQuantity,
		Unit:             b.Unit.String(),
		ExpirationDate:   b.ExpirationDate,
		PickupLocation:   b.PickupLocation,
		AvailableFrom:    b.AvailableFrom,
		AvailableUntil:   b.AvailableUntil,
		Status:           b.Status.String(),
		Storage:          b.Storage.String(),
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

func (b *ListingBuilder) BuildCreateParams() usecase.CreateListingParams {
	return usecase.CreateListingParams{
		Title:          b.Title,
		Description:    b.Description,
		Category:       b.Category.String(),
		Quantity:       b.Quantity,
		Unit:           b.Unit.String(),
		ExpirationDate: b.ExpirationDate,
		PickupLocation: b.PickupLocation,
		AvailableFrom:  b.AvailableFrom,
		AvailableUntil: b.AvailableUntil,
		Storage:        b.Storage.String(),
	}
}

func (b *ListingBuilder) BuildCreateRequestDTO() reqdto.CreateListingRequest {
	return reqdto.CreateListingRequest{
		Title:          b.Title,
		Description:    b.Description,
		Category:       b.Category.String(),
		Quantity:       b.Quantity,
		Unit:           b.Unit.String(),
		ExpirationDate: b.ExpirationDate,
		PickupLocation: b.PickupLocation,
		AvailableFrom:  b.AvailableFrom,
		AvailableUntil: b.AvailableUntil,
		Storage:        b.Storage.String(),
	}
}

// Fluent builder methods
func (b *ListingBuilder) WithDonorID(donorID uuid.UUID) *ListingBuilder {
	b.DonorID = donorID
	return b
}

func (b *ListingBuilder) WithTitle(title string) *ListingBuilder {
	b.Title = title
	return b
}

func (b *ListingBuilder) WithCategory(category domlisting.Category) *ListingBuilder {
	b.Category = category
	return b
}

func (b *ListingBuilder) WithQuantity(quantity float64) *ListingBuilder {
	b.Quantity = quantity
	return b
}

func (b *ListingBuilder) WithReservedQuantity(reserved float64) *ListingBuilder {
	b.ReservedQuantity = reserved
	return b
}

func (b *ListingBuilder) WithUnit(unit domlisting.Unit) *ListingBuilder {
	b.Unit = unit
	return b
}

func (b *ListingBuilder) WithStatus(status domlisting.Status) *ListingBuilder {
	b.Status = status
	return b
}

func (b *ListingBuilder) WithAvailabilityWindow(from, until time.Time) *ListingBuilder {
	b.AvailableFrom = from
	b.AvailableUntil = until
	return b
}

func (b *ListingBuilder) WithStorage(storage domlisting.StorageRequirement) *ListingBuilder {
	b.Storage = storage
	return b
}
