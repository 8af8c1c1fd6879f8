package request

import (
	"time"

	"foodshare/internal/domain/user"
	"foodshare/internal/usecase"
)

type CreateListingRequest struct {
	Title          string       `json:"title" binding:"required"`
	Description    string       `json:"description,omitempty"`
	Category       string       `json:"category" binding:"required"`
	Quantity       float64      `json:"quantity" binding:"required,gt=0"`
	Unit           string       `json:"unit" binding:"required"`
	ExpirationDate time.Time    `json:"expirationDate" binding:"required"`
	PickupLocation user.Address `json:"pickupLocation"`
	AvailableFrom  time.Time    `json:"availableFrom" binding:"required"`
	AvailableUntil time.Time    `json:"availableUntil" binding:"required"`
	Storage        string       `json:"storageRequirements,omitempty"`
}

func (r *CreateListingRequest) ToParams() usecase.CreateListingParams {
	return usecase.CreateListingParams{
		Title:          r.Title,
		Description:    r.Description,
		Category:       r.Category,
		Quantity:       r.Quantity,
		Unit:           r.Unit,
		ExpirationDate: r.ExpirationDate,
		PickupLocation: r.PickupLocation,
		AvailableFrom:  r.AvailableFrom,
		AvailableUntil: r.AvailableUntil,
		Storage:        r.Storage,
	}
}

type UpdateListingRequest struct {
	Title          *string       `json:"title,omitempty"`
	Description    *string       `json:"description,omitempty"`
	Category       *string       `json:"category,omitempty"`
	Quantity       *float64      `json:"quantity,omitempty"`
	Unit           *string       `json:"unit,omitempty"`
	ExpirationDate *time.Time    `json:"expirationDate,omitempty"`
	PickupLocation *user.Address `json:"pickupLocation,omitempty"`
	AvailableFrom  *time.Time    `json:"availableFrom,omitempty"`
	AvailableUntil *time.Time    `json:"availableUntil,omitempty"`
	Status         *string       `json:"status,omitempty"`
	Storage        *string       `json:"storageRequirements,omitempty"`
}

func (r *UpdateListingRequest) ToParams() usecase.UpdateListingParams {
	return usecase.UpdateListingParams{
		Title:          r.Title,
		Description:    r.Description,
		Category:       r.Category,
		Quantity:       r.Quantity,
		Unit:           r.Unit,
		ExpirationDate: r.ExpirationDate,
		PickupLocation: r.PickupLocation,
		AvailableFrom:  r.AvailableFrom,
		AvailableUntil: r.AvailableUntil,
		Status:         r.Status,
		Storage:        r.Storage,
	}
}
