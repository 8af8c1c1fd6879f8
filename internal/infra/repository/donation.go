package repository

import (
	"context"
	"time"

	"foodshare/internal/domain/donation"
	"foodshare/internal/infra"
	"foodshare/internal/infra/db"
	"foodshare/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DonationRepository struct {
	pool *pgxpool.Pool
}

func NewDonationRepository(pool *pgxpool.Pool) *DonationRepository {
	return &DonationRepository{pool: pool}
}

func (r *DonationRepository) Create(ctx context.Context, tx db.DBTX, d *donation.Donation) error {
	query := `
		INSERT INTO donations (
			id, listing_id, donor_id, recipient_id, status,
			requested_quantity, confirmed_quantity, pickup_date, completion_date,
			people_served, waste_reduced, donor_notes, recipient_notes,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9,
			$10, $11, NULLIF($12, ''), NULLIF($13, ''),
			now(), now()
		)`

	_, err := tx.Exec(ctx, query,
		d.ID(), d.ListingID(), d.DonorID(), d.RecipientID(), d.Status().String(),
		d.RequestedQuantity(), d.ConfirmedQuantity(), d.PickupDate(), d.CompletionDate(),
		d.PeopleServed(), d.WasteReduced(), d.DonorNotes(), d.RecipientNotes(),
	)
	if err != nil {
		return wrapQueryErr("failed to insert donation", err)
	}
	return nil
}

func (r *DonationRepository) Save(ctx context.Context, tx db.DBTX, d *donation.Donation) error {
	query := `
		UPDATE donations SET
			status             = $2,
			confirmed_quantity = $3,
			pickup_date        = $4,
			completion_date    = $5,
			people_served      = $6,
			waste_reduced      = $7,
			donor_notes        = NULLIF($8, ''),
			recipient_notes    = NULLIF($9, ''),
			updated_at         = now()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query,
		d.ID(), d.Status().String(),
		d.ConfirmedQuantity(), d.PickupDate(), d.CompletionDate(),
		d.PeopleServed(), d.WasteReduced(), d.DonorNotes(), d.RecipientNotes(),
	)
	if err != nil {
		return wrapQueryErr("failed to update donation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("donation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *DonationRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*donation.Donation, error) {
	query := `
		SELECT id, listing_id, donor_id, recipient_id, status,
		       requested_quantity, confirmed_quantity, pickup_date, completion_date,
		       people_served, waste_reduced,
		       COALESCE(donor_notes, ''), COALESCE(recipient_notes, ''),
		       created_at, updated_at
		FROM donations
		WHERE id = $1
		FOR UPDATE`

	var (
		did, listingID, donorID, recipientID uuid.UUID
		status                               string
		requestedQuantity                    float64
		confirmedQuantity                    *float64
		pickupDate, completionDate           *time.Time
		peopleServed                         int32
		wasteReduced                         float64
		donorNotes, recipientNotes           string
		createdAt, updatedAt                 time.Time
	)
	err := tx.QueryRow(ctx, query, id).Scan(
		&did, &listingID, &donorID, &recipientID, &status,
		&requestedQuantity, &confirmedQuantity, &pickupDate, &completionDate,
		&peopleServed, &wasteReduced, &donorNotes, &recipientNotes,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, wrapQueryErr("failed to lock donation", err)
	}

	return donation.Reconstruct(
		did, listingID, donorID, recipientID,
		donation.Status(status), requestedQuantity, confirmedQuantity,
		pickupDate, completionDate, peopleServed, wasteReduced,
		donorNotes, recipientNotes, createdAt, updatedAt,
	), nil
}

const donationRMQuery = `
	SELECT d.id, d.listing_id, l.title, l.category, l.unit,
	       d.donor_id, donor.name, donor.organization_name,
	       d.recipient_id, recipient.name, recipient.organization_name,
	       d.status, d.requested_quantity, d.confirmed_quantity,
	       d.pickup_date, d.completion_date, d.people_served, d.waste_reduced,
	       d.donor_notes, d.recipient_notes, d.created_at, d.updated_at
	FROM donations d
	JOIN food_listings l ON l.id = d.listing_id
	JOIN users donor ON donor.id = d.donor_id
	JOIN users recipient ON recipient.id = d.recipient_id`

func (r *DonationRepository) FindByID(ctx context.Context, id uuid.UUID) (*readmodel.DonationRM, error) {
	query := donationRMQuery + ` WHERE d.id = $1`

	rm, err := scanDonationRM(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, wrapQueryErr("failed to find donation", err)
	}
	return rm, nil
}

func (r *DonationRepository) FindAll(ctx context.Context) ([]*readmodel.DonationRM, error) {
	query := donationRMQuery + ` ORDER BY d.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, wrapQueryErr("failed to list donations", err)
	}
	return collectDonationRMs(rows)
}

func (r *DonationRepository) FindByDonorID(ctx context.Context, donorID uuid.UUID) ([]*readmodel.DonationRM, error) {
	query := donationRMQuery + ` WHERE d.donor_id = $1 ORDER BY d.created_at DESC`

	rows, err := r.pool.Query(ctx, query, donorID)
	if err != nil {
		return nil, wrapQueryErr("failed to list donations by donor", err)
	}
	return collectDonationRMs(rows)
}

func (r *DonationRepository) FindByRecipientID(ctx context.Context, recipientID uuid.UUID) ([]*readmodel.DonationRM, error) {
	query := donationRMQuery + ` WHERE d.recipient_id = $1 ORDER BY d.created_at DESC`

	rows, err := r.pool.Query(ctx, query, recipientID)
	if err != nil {
		return nil, wrapQueryErr("failed to list donations by recipient", err)
	}
	return collectDonationRMs(rows)
}

func scanDonationRM(row pgx.Row) (*readmodel.DonationRM, error) {
	var rm readmodel.DonationRM
	err := row.Scan(
		&rm.ID, &rm.ListingID, &rm.ListingTitle, &rm.ListingCategory, &rm.ListingUnit,
		&rm.DonorID, &rm.DonorName, &rm.DonorOrganization,
		&rm.RecipientID, &rm.RecipientName, &rm.RecipientOrganization,
		&rm.Status, &rm.RequestedQuantity, &rm.ConfirmedQuantity,
		&rm.PickupDate, &rm.CompletionDate, &rm.PeopleServed, &rm.WasteReduced,
		&rm.DonorNotes, &rm.RecipientNotes, &rm.CreatedAt, &rm.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rm, nil
}

func collectDonationRMs(rows pgx.Rows) ([]*readmodel.DonationRM, error) {
	defer rows.Close()

	var donations []*readmodel.DonationRM
	for rows.Next() {
		rm, err := scanDonationRM(rows)
		if err != nil {
			return nil, wrapQueryErr("failed to scan donation row", err)
		}
		donations = append(donations, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryErr("failed to read donation rows", err)
	}
	return donations, nil
}
