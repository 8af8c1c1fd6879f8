package listing

import (
	"errors"
	"strings"
	"time"

	"foodshare/internal/domain/user"
)

var (
	ErrInvalidListingStatus  = errors.New("invalid listing status")
	ErrQuantityBelowReserved = errors.New("quantity cannot drop below reserved quantity")
	ErrDerivedStatus         = errors.New("reserved and completed statuses are derived from reservations")
)

// Update carries the optional fields a donor may change on an existing
// listing. Reserved quantity is never writable; it only moves through the
// donation workflow.
type Update struct {
	Title          *string
	Description    *string
	Category       *Category
	Quantity       *float64
	Unit           *Unit
	ExpirationDate *time.Time
	PickupLocation *user.Address
	AvailableFrom  *time.Time
	AvailableUntil *time.Time
	Status         *Status
	Storage        *StorageRequirement
}

func (l *Listing) Apply(update Update) error {
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return ErrEmptyTitle
		}
		l.title = title
	}
	if update.Description != nil {
		l.description = *update.Description
	}
	if update.Category != nil {
		l.category = *update.Category
	}
	if update.Quantity != nil {
		if *update.Quantity <= 0 {
			return ErrNonPositiveQuantity
		}
		if *update.Quantity < l.reservedQuantity {
			return ErrQuantityBelowReserved
		}
		l.quantity = *update.Quantity
	}
	if update.Unit != nil {
		l.unit = *update.Unit
	}
	if update.ExpirationDate != nil {
		l.expirationDate = *update.ExpirationDate
	}
	if update.PickupLocation != nil {
		l.pickupLocation = *update.PickupLocation
	}

	availableFrom := l.availableFrom
	availableUntil := l.availableUntil
	if update.AvailableFrom != nil {
		availableFrom = *update.AvailableFrom
	}
	if update.AvailableUntil != nil {
		availableUntil = *update.AvailableUntil
	}
	if !availableFrom.Before(availableUntil) {
		return ErrInvalidAvailabilityWindow
	}
	l.availableFrom = availableFrom
	l.availableUntil = availableUntil

	if update.Status != nil {
		if err := l.setStatus(*update.Status); err != nil {
			return err
		}
	}
	if update.Storage != nil {
		l.storage = *update.Storage
	}

	// Quantity changes can reopen or close out the listing.
	if l.status == StatusAvailable && l.reservedQuantity >= l.quantity {
		l.status = StatusReserved
	} else if l.status == StatusReserved && l.reservedQuantity < l.quantity {
		l.status = StatusAvailable
	}

	return nil
}

// setStatus lets a donor cancel, expire, or reopen a listing. Reserved and
// completed are outcomes of the donation workflow, never set directly.
func (l *Listing) setStatus(status Status) error {
	switch status {
	case StatusAvailable, StatusExpired, StatusCancelled:
		l.status = status
		return nil
	case StatusReserved, StatusCompleted:
		return ErrDerivedStatus
	default:
		return ErrInvalidListingStatus
	}
}
