package donation

import (
	"errors"
	"time"

	"foodshare/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus       = errors.New("invalid donation status")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrActorNotAllowed     = errors.New("actor not allowed for this transition")
	ErrNonPositiveQuantity = errors.New("requested quantity must be positive")
)

// Donation is a recipient's claim against a listing's quantity. Its
// requestedQuantity stays reserved on the listing until the donation reaches
// a terminal status.
type Donation struct {
	id                uuid.UUID
	listingID         uuid.UUID
	donorID           uuid.UUID
	recipientID       uuid.UUID
	status            Status
	requestedQuantity float64
	confirmedQuantity *float64
	pickupDate        *time.Time
	completionDate    *time.Time
	peopleServed      int32
	wasteReduced      float64
	donorNotes        string
	recipientNotes    string
	createdAt         time.Time
	updatedAt         time.Time
}

func NewDonation(listingID, donorID, recipientID uuid.UUID, requestedQuantity float64, recipientNotes string) (*Donation, error) {
	if requestedQuantity <= 0 {
		return nil, ErrNonPositiveQuantity
	}

	return &Donation{
		id:                uuid.New(),
		listingID:         listingID,
		donorID:           donorID,
		recipientID:       recipientID,
		status:            StatusPending,
		requestedQuantity: requestedQuantity,
		recipientNotes:    recipientNotes,
	}, nil
}

func Reconstruct(
	id, listingID, donorID, recipientID uuid.UUID,
	status Status,
	requestedQuantity float64,
	confirmedQuantity *float64,
	pickupDate, completionDate *time.Time,
	peopleServed int32,
	wasteReduced float64,
	donorNotes, recipientNotes string,
	createdAt, updatedAt time.Time,
) *Donation {
	return &Donation{
		id:                id,
		listingID:         listingID,
		donorID:           donorID,
		recipientID:       recipientID,
		status:            status,
		requestedQuantity: requestedQuantity,
		confirmedQuantity: confirmedQuantity,
		pickupDate:        pickupDate,
		completionDate:    completionDate,
		peopleServed:      peopleServed,
		wasteReduced:      wasteReduced,
		donorNotes:        donorNotes,
		recipientNotes:    recipientNotes,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

func (d *Donation) ID() uuid.UUID               { return d.id }
func (d *Donation) ListingID() uuid.UUID        { return d.listingID }
func (d *Donation) DonorID() uuid.UUID          { return d.donorID }
func (d *Donation) RecipientID() uuid.UUID      { return d.recipientID }
func (d *Donation) Status() Status              { return d.status }
func (d *Donation) RequestedQuantity() float64  { return d.requestedQuantity }
func (d *Donation) ConfirmedQuantity() *float64 { return d.confirmedQuantity }
func (d *Donation) PickupDate() *time.Time      { return d.pickupDate }
func (d *Donation) CompletionDate() *time.Time  { return d.completionDate }
func (d *Donation) PeopleServed() int32         { return d.peopleServed }
func (d *Donation) WasteReduced() float64       { return d.wasteReduced }
func (d *Donation) DonorNotes() string          { return d.donorNotes }
func (d *Donation) RecipientNotes() string      { return d.recipientNotes }
func (d *Donation) CreatedAt() time.Time        { return d.createdAt }
func (d *Donation) UpdatedAt() time.Time        { return d.updatedAt }

// IsParty reports whether the principal may touch this donation at all:
// the listing's donor, the requesting recipient, or an admin.
func (d *Donation) IsParty(p user.Principal) bool {
	return p.IsAdmin() || p.Is(d.donorID) || p.Is(d.recipientID)
}

// StatusUpdate carries the optional fields a caller may set alongside a
// transition. Notes land on the side matching the acting party.
type StatusUpdate struct {
	ConfirmedQuantity *float64
	PickupDate        *time.Time
	CompletionDate    *time.Time
	PeopleServed      *int32
	WasteReduced      *float64
	Notes             *string
}

// Transition moves the donation to next, enforcing both the status graph and
// the per-edge actor rules. It only mutates donation fields; the caller
// settles the listing's reserved quantity for terminal transitions.
func (d *Donation) Transition(actor user.Principal, next Status, update StatusUpdate, now time.Time) error {
	if !d.IsParty(actor) {
		return ErrActorNotAllowed
	}
	if !d.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	if !d.edgeAllowed(actor, next) {
		return ErrActorNotAllowed
	}

	switch next {
	case StatusConfirmed:
		if update.ConfirmedQuantity != nil {
			d.confirmedQuantity = update.ConfirmedQuantity
		} else {
			qty := d.requestedQuantity
			d.confirmedQuantity = &qty
		}
	case StatusInTransit:
		if update.PickupDate != nil {
			d.pickupDate = update.PickupDate
		} else {
			d.pickupDate = &now
		}
	case StatusCompleted:
		if update.CompletionDate != nil {
			d.completionDate = update.CompletionDate
		} else {
			d.completionDate = &now
		}
		if update.PeopleServed != nil {
			d.peopleServed = *update.PeopleServed
		}
		if update.WasteReduced != nil {
			d.wasteReduced = *update.WasteReduced
		}
	}

	if update.Notes != nil {
		switch {
		case actor.Is(d.donorID):
			d.donorNotes = *update.Notes
		case actor.Is(d.recipientID):
			d.recipientNotes = *update.Notes
		}
	}

	d.status = next
	return nil
}

// edgeAllowed encodes who may trigger each edge: confirming is the donor's
// call, marking pickup is the recipient's, completion and cancellation belong
// to either party. Admins may trigger anything.
func (d *Donation) edgeAllowed(actor user.Principal, next Status) bool {
	if actor.IsAdmin() {
		return true
	}
	switch next {
	case StatusConfirmed:
		return actor.Is(d.donorID)
	case StatusInTransit:
		return actor.Is(d.recipientID)
	case StatusCompleted, StatusCancelled:
		return actor.Is(d.donorID) || actor.Is(d.recipientID)
	default:
		return false
	}
}
