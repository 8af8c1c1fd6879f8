package response

import (
	"time"

	"foodshare/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type ListingSummary struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Category string    `json:"category"`
	Unit     string    `json:"unit"`
}

type PartySummary struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	OrganizationName string    `json:"organizationName"`
}

type DonationResponse struct {
	ID                uuid.UUID      `json:"id"`
	Listing           ListingSummary `json:"listing"`
	Donor             PartySummary   `json:"donor"`
	Recipient         PartySummary   `json:"recipient"`
	Status            string         `json:"status"`
	RequestedQuantity float64        `json:"requestedQuantity"`
	ConfirmedQuantity *float64       `json:"confirmedQuantity,omitempty"`
	PickupDate        *time.Time     `json:"pickupDate,omitempty"`
	CompletionDate    *time.Time     `json:"completionDate,omitempty"`
	PeopleServed      int32          `json:"peopleServed"`
	WasteReduced      float64        `json:"wasteReduced"`
	DonorNotes        *string        `json:"donorNotes,omitempty"`
	RecipientNotes    *string        `json:"recipientNotes,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

func FromDonationRM(rm *readmodel.DonationRM) *DonationResponse {
	return &DonationResponse{
		ID: rm.ID,
		Listing: ListingSummary{
			ID:       rm.ListingID,
			Title:    rm.ListingTitle,
			Category: rm.ListingCategory,
			Unit:     rm.ListingUnit,
		},
		Donor: PartySummary{
			ID:               rm.DonorID,
			Name:             rm.DonorName,
			OrganizationName: rm.DonorOrganization,
		},
		Recipient: PartySummary{
			ID:               rm.RecipientID,
			Name:             rm.RecipientName,
			OrganizationName: rm.RecipientOrganization,
		},
		Status:            rm.Status,
		RequestedQuantity: rm.RequestedQuantity,
		ConfirmedQuantity: rm.ConfirmedQuantity,
		PickupDate:        rm.PickupDate,
		CompletionDate:    rm.CompletionDate,
		PeopleServed:      rm.PeopleServed,
		WasteReduced:      rm.WasteReduced,
		DonorNotes:        rm.DonorNotes,
		RecipientNotes:    rm.RecipientNotes,
		CreatedAt:         rm.CreatedAt,
		UpdatedAt:         rm.UpdatedAt,
	}
}

func FromDonationRMs(rms []*readmodel.DonationRM) []*DonationResponse {
	donations := make([]*DonationResponse, 0, len(rms))
	for _, rm := range rms {
		donations = append(donations, FromDonationRM(rm))
	}
	return donations
}
