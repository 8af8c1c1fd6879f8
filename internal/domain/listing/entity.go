package listing

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"foodshare/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrInvalidCategory           = errors.New("invalid category")
	ErrInvalidUnit               = errors.New("invalid unit")
	ErrInvalidStorageRequirement = errors.New("invalid storage requirement")
	ErrEmptyTitle                = errors.New("title cannot be empty")
	ErrNonPositiveQuantity       = errors.New("quantity must be positive")
	ErrInvalidAvailabilityWindow = errors.New("availableFrom must be before availableUntil")
	ErrNotAvailable              = errors.New("listing is not available")
)

// InsufficientQuantityError reports exactly how much of a listing is still
// unreserved, mirrored verbatim into the API response.
type InsufficientQuantityError struct {
	Available float64
	Reserved  float64
	Unit      Unit
}

func (e *InsufficientQuantityError) Error() string {
	return fmt.Sprintf("Only %s %s available. %s already reserved.",
		formatQuantity(e.Available), e.Unit, formatQuantity(e.Reserved))
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// Listing is a donor's offer of a quantity of food. reservedQuantity is the
// portion currently held by pending/confirmed/in-transit donations; the
// invariant 0 <= reservedQuantity <= quantity holds at all times.
type Listing struct {
	id               uuid.UUID
	donorID          uuid.UUID
	title            string
	description      string
	category         Category
	quantity         float64
	reservedQuantity float64
	unit             Unit
	expirationDate   time.Time
	pickupLocation   user.Address
	availableFrom    time.Time
	availableUntil   time.Time
	status           Status
	storage          StorageRequirement
	createdAt        time.Time
	updatedAt        time.Time
}

func NewListing(
	donorID uuid.UUID,
	title, description string,
	category Category,
	quantity float64,
	unit Unit,
	expirationDate time.Time,
	pickupLocation user.Address,
	availableFrom, availableUntil time.Time,
	storage StorageRequirement,
) (*Listing, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if quantity <= 0 {
		return nil, ErrNonPositiveQuantity
	}
	if !availableFrom.Before(availableUntil) {
		return nil, ErrInvalidAvailabilityWindow
	}
	if storage == "" {
		storage = StorageRoomTemperature
	}

	return &Listing{
		id:             uuid.New(),
		donorID:        donorID,
		title:          title,
		description:    description,
		category:       category,
		quantity:       quantity,
		unit:           unit,
		expirationDate: expirationDate,
		pickupLocation: pickupLocation,
		availableFrom:  availableFrom,
		availableUntil: availableUntil,
		status:         StatusAvailable,
		storage:        storage,
	}, nil
}

func Reconstruct(
	id, donorID uuid.UUID,
	title, description string,
	category Category,
	quantity, reservedQuantity float64,
	unit Unit,
	expirationDate time.Time,
	pickupLocation user.Address,
	availableFrom, availableUntil time.Time,
	status Status,
	storage StorageRequirement,
	createdAt, updatedAt time.Time,
) *Listing {
	return &Listing{
		id:               id,
		donorID:          donorID,
		title:            title,
		description:      description,
		category:         category,
		quantity:         quantity,
		reservedQuantity: reservedQuantity,
		unit:             unit,
		expirationDate:   expirationDate,
		pickupLocation:   pickupLocation,
		availableFrom:    availableFrom,
		availableUntil:   availableUntil,
		status:           status,
		storage:          storage,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (l *Listing) ID() uuid.UUID               { return l.id }
func (l *Listing) DonorID() uuid.UUID          { return l.donorID }
func (l *Listing) Title() string               { return l.title }
func (l *Listing) Description() string         { return l.description }
func (l *Listing) Category() Category          { return l.category }
func (l *Listing) Quantity() float64           { return l.quantity }
func (l *Listing) ReservedQuantity() float64   { return l.reservedQuantity }
func (l *Listing) Unit() Unit                  { return l.unit }
func (l *Listing) ExpirationDate() time.Time   { return l.expirationDate }
func (l *Listing) PickupLocation() user.Address { return l.pickupLocation }
func (l *Listing) AvailableFrom() time.Time    { return l.availableFrom }
func (l *Listing) AvailableUntil() time.Time   { return l.availableUntil }
func (l *Listing) Status() Status              { return l.status }
func (l *Listing) Storage() StorageRequirement { return l.storage }
func (l *Listing) CreatedAt() time.Time        { return l.createdAt }
func (l *Listing) UpdatedAt() time.Time        { return l.updatedAt }

func (l *Listing) IsOwnedBy(donorID uuid.UUID) bool {
	return l.donorID == donorID
}

func (l *Listing) AvailableQuantity() float64 {
	return l.quantity - l.reservedQuantity
}

// Reserve holds quantity for a new donation request. The caller must run it
// inside the same transaction that persists the updated quantities.
func (l *Listing) Reserve(quantity float64) error {
	if l.status != StatusAvailable {
		return ErrNotAvailable
	}
	if quantity <= 0 {
		return ErrNonPositiveQuantity
	}
	if quantity > l.AvailableQuantity() {
		return &InsufficientQuantityError{
			Available: l.AvailableQuantity(),
			Reserved:  l.reservedQuantity,
			Unit:      l.unit,
		}
	}

	l.reservedQuantity += quantity
	if l.reservedQuantity >= l.quantity {
		l.status = StatusReserved
	}
	return nil
}

// ReleaseOnCompletion returns a completed donation's hold. Partial fulfillment
// reopens the listing for its remaining capacity.
func (l *Listing) ReleaseOnCompletion(quantity float64) {
	l.release(quantity)
	if l.reservedQuantity >= l.quantity {
		l.status = StatusCompleted
	} else {
		l.status = StatusAvailable
	}
}

// ReleaseOnCancellation returns a cancelled donation's hold without touching
// terminal listing states beyond reopening unreserved capacity.
func (l *Listing) ReleaseOnCancellation(quantity float64) {
	l.release(quantity)
	if l.reservedQuantity < l.quantity {
		l.status = StatusAvailable
	}
}

func (l *Listing) release(quantity float64) {
	l.reservedQuantity -= quantity
	if l.reservedQuantity < 0 {
		l.reservedQuantity = 0
	}
}
