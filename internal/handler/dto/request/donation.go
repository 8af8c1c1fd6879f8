package request

import (
	"time"

	"foodshare/internal/usecase"

	"github.com/google/uuid"
)

type CreateDonationRequest struct {
	ListingID         uuid.UUID `json:"listingId" binding:"required"`
	RequestedQuantity float64   `json:"requestedQuantity" binding:"required,gt=0"`
	Notes             string    `json:"notes,omitempty"`
}

type UpdateDonationStatusRequest struct {
	Status            string     `json:"status" binding:"required"`
	ConfirmedQuantity *float64   `json:"confirmedQuantity,omitempty"`
	PickupDate        *time.Time `json:"pickupDate,omitempty"`
	CompletionDate    *time.Time `json:"completionDate,omitempty"`
	PeopleServed      *int32     `json:"peopleServed,omitempty"`
	WasteReduced      *float64   `json:"wasteReduced,omitempty"`
	Notes             *string    `json:"notes,omitempty"`
}

func (r *UpdateDonationStatusRequest) ToParams() usecase.UpdateDonationStatusParams {
	return usecase.UpdateDonationStatusParams{
		Status:            r.Status,
		ConfirmedQuantity: r.ConfirmedQuantity,
		PickupDate:        r.PickupDate,
		CompletionDate:    r.CompletionDate,
		PeopleServed:      r.PeopleServed,
		WasteReduced:      r.WasteReduced,
		Notes:             r.Notes,
	}
}
