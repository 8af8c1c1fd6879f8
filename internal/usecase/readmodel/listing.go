package readmodel

import (
	"time"

	"foodshare/internal/domain/user"

	"github.com/google/uuid"
)

// ListingRM joins the donor's public identity for display.
type ListingRM struct {
	ID                uuid.UUID    `json:"id"`
	DonorID           uuid.UUID    `json:"donorId"`
	DonorName         string       `json:"donorName"`
	DonorEmail        string       `json:"donorEmail"`
	DonorOrganization string       `json:"donorOrganization"`
	Title             string       `json:"title"`
	Description       string       `json:"description,omitempty"`
	Category          string       `json:"category"`
	Quantity          float64      `json:"quantity"`
	ReservedQuantity  float64      `json:"reservedQuantity"`
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
