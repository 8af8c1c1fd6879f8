package response

import (
	"time"

	"foodshare/internal/domain/user"
	"foodshare/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type DonorSummary struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	OrganizationName string    `json:"organizationName"`
}

type ListingResponse struct {
	ID                uuid.UUID    `json:"id"`
	Donor             DonorSummary `json:"donor"`
	Title             string       `json:"title"`
	Description       string       `json:"description,omitempty"`
	Category          string       `json:"category"`
	Quantity          float64      `json:"quantity"`
	ReservedQuantity  float64      `json:"reservedQuantity"`
	AvailableQuantity float64      `json:"availableQuantity"`
	Unit              string       `json:"unit"`
	ExpirationDate    time.Time    `json:"expirationDate"`
	PickupLocation    user.Address `json:"pickupLocation"`
	AvailableFrom     time.Time    `json:"availableFrom"`
	AvailableUntil    time.Time    `json:"availableUntil"`
	Status            string       `json:"status"`
	Storage           string       `json:"storageRequirements"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

func FromListingRM(rm *readmodel.ListingRM) *ListingResponse {
	return &ListingResponse{
		ID: rm.ID,
		Donor: DonorSummary{
			ID:               rm.DonorID,
			Name:             rm.DonorName,
			Email:            rm.DonorEmail,
			OrganizationName: rm.DonorOrganization,
		},
		Title:             rm.Title,
		Description:       rm.Description,
		Category:          rm.Category,
		Quantity:          rm.Quantity,
		ReservedQuantity:  rm.ReservedQuantity,
		AvailableQuantity: rm.Quantity - rm.ReservedQuantity,
		Unit:              rm.Unit,
		ExpirationDate:    rm.ExpirationDate,
		PickupLocation:    rm.PickupLocation,
		AvailableFrom:     rm.AvailableFrom,
		AvailableUntil:    rm.AvailableUntil,
		Status:            rm.Status,
		Storage:           rm.Storage,
		CreatedAt:         rm.CreatedAt,
		UpdatedAt:         rm.UpdatedAt,
	}
}

func FromListingRMs(rms []*readmodel.ListingRM) []*ListingResponse {
	listings := make([]*ListingResponse, 0, len(rms))
	for _, rm := range rms {
		listings = append(listings, FromListingRM(rm))
	}
	return listings
}
