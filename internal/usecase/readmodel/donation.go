package readmodel

import (
	"time"

	"github.com/google/uuid"
)

// DonationRM joins the listing summary and both parties for display.
type DonationRM struct {
	ID                    uuid.UUID  `json:"id"`
	ListingID             uuid.UUID  `json:"listingId"`
	ListingTitle          string     `json:"listingTitle"`
	ListingCategory       string     `json:"listingCategory"`
	ListingUnit           string     `json:"listingUnit"`
	DonorID               uuid.UUID  `json:"donorId"`
	DonorName             string     `json:"donorName"`
	DonorOrganization     string     `json:"donorOrganization"`
	RecipientID           uuid.UUID  `json:"recipientId"`
	RecipientName         string     `json:"recipientName"`
	RecipientOrganization string     `json:"recipientOrganization"`
	Status                string     `json:"status"`
	RequestedQuantity     float64    `json:"requestedQuantity"`
	ConfirmedQuantity     *float64   `json:"confirmedQuantity,omitempty"`
	PickupDate            *time.Time `json:"pickupDate,omitempty"`
	CompletionDate        *time.Time `json:"completionDate,omitempty"`
	PeopleServed          int32      `json:"peopleServed"`
	WasteReduced          float64    `json:"wasteReduced"`
	DonorNotes            *string    `json:"donorNotes,omitempty"`
	RecipientNotes        *string    `json:"recipientNotes,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}
