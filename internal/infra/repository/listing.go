package repository

import (
	"context"
	"time"

	"foodshare/internal/domain/listing"
	"foodshare/internal/domain/user"
	"foodshare/internal/infra"
	"foodshare/internal/infra/db"
	"foodshare/internal/usecase"
	"foodshare/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ListingRepository struct {
	pool *pgxpool.Pool
}

func NewListingRepository(pool *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{pool: pool}
}

func (r *ListingRepository) Create(ctx context.Context, tx db.DBTX, l *listing.Listing) error {
	query := `
		INSERT INTO food_listings (
			id, donor_id, title, description, category,
			quantity, reserved_quantity, unit, expiration_date,
			street, city, state, zip_code, country,
			available_from, available_until, status, storage,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9,
			$10, $11, $12, $13, $14,
			$15, $16, $17, $18,
			now(), now()
		)`

	loc := l.PickupLocation()
	_, err := tx.Exec(ctx, query,
		l.ID(), l.DonorID(), l.Title(), l.Description(), l.Category().String(),
		l.Quantity(), l.ReservedQuantity(), l.Unit().String(), l.ExpirationDate(),
		loc.Street, loc.City, loc.State, loc.ZipCode, loc.Country,
		l.AvailableFrom(), l.AvailableUntil(), l.Status().String(), l.Storage().String(),
	)
	if err != nil {
		return wrapQueryErr("failed to insert listing", err)
	}
	return nil
}

func (r *ListingRepository) Save(ctx context.Context, tx db.DBTX, l *listing.Listing) error {
	query := `
		UPDATE food_listings SET
			title             = $2,
			description       = $3,
			category          = $4,
			quantity          = $5,
			reserved_quantity = $6,
			unit              = $7,
			expiration_date   = $8,
			street            = $9,
			city              = $10,
			state             = $11,
			zip_code          = $12,
			country           = $13,
			available_from    = $14,
			available_until   = $15,
			status            = $16,
			storage           = $17,
			updated_at        = now()
		WHERE id = $1`

	loc := l.PickupLocation()
	tag, err := tx.Exec(ctx, query,
		l.ID(), l.Title(), l.Description(), l.Category().String(),
		l.Quantity(), l.ReservedQuantity(), l.Unit().String(), l.ExpirationDate(),
		loc.Street, loc.City, loc.State, loc.ZipCode, loc.Country,
		l.AvailableFrom(), l.AvailableUntil(), l.Status().String(), l.Storage().String(),
	)
	if err != nil {
		return wrapQueryErr("failed to update listing", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("listing not found", nil, infra.KindNotFound)
	}
	return nil
}

// SaveQuantities writes back only what the donation workflow touches.
func (r *ListingRepository) SaveQuantities(ctx context.Context, tx db.DBTX, l *listing.Listing) error {
	query := `
		UPDATE food_listings SET
			reserved_quantity = $2,
			status            = $3,
			updated_at        = now()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query, l.ID(), l.ReservedQuantity(), l.Status().String())
	if err != nil {
		return wrapQueryErr("failed to update listing quantities", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("listing not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM food_listings WHERE id = $1`, id)
	if err != nil {
		return wrapQueryErr("failed to delete listing", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("listing not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ListingRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*listing.Listing, error) {
	query := `
		SELECT id, donor_id, title, description, category,
		       quantity, reserved_quantity, unit, expiration_date,
		       street, city, state, zip_code, country,
		       available_from, available_until, status, storage,
		       created_at, updated_at
		FROM food_listings
		WHERE id = $1
		FOR UPDATE`

	var (
		lid, donorID               uuid.UUID
		title, description         string
		category, unit             string
		quantity, reservedQuantity float64
		expirationDate             time.Time
		location                   user.Address
		availableFrom              time.Time
		availableUntil             time.Time
		status, storage            string
		createdAt, updatedAt       time.Time
	)
	err := tx.QueryRow(ctx, query, id).Scan(
		&lid, &donorID, &title, &description, &category,
		&quantity, &reservedQuantity, &unit, &expirationDate,
		&location.Street, &location.City, &location.State, &location.ZipCode, &location.Country,
		&availableFrom, &availableUntil, &status, &storage,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, wrapQueryErr("failed to lock listing", err)
	}

	return listing.Reconstruct(
		lid, donorID, title, description,
		listing.Category(category), quantity, reservedQuantity, listing.Unit(unit),
		expirationDate, location, availableFrom, availableUntil,
		listing.Status(status), listing.StorageRequirement(storage),
		createdAt, updatedAt,
	), nil
}

const listingRMQuery = `
	SELECT l.id, l.donor_id, u.name, u.email, u.organization_name,
	       l.title, l.description, l.category,
	       l.quantity, l.reserved_quantity, l.unit, l.expiration_date,
	       l.street, l.city, l.state, l.zip_code, l.country,
	       l.available_from, l.available_until, l.status, l.storage,
	       l.created_at, l.updated_at
	FROM food_listings l
	JOIN users u ON u.id = l.donor_id`

func (r *ListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*readmodel.ListingRM, error) {
	query := listingRMQuery + ` WHERE l.id = $1`

	rm, err := scanListingRM(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, wrapQueryErr("failed to find listing", err)
	}
	return rm, nil
}

func (r *ListingRepository) FindAll(ctx context.Context, filter usecase.ListingFilter) ([]*readmodel.ListingRM, error) {
	query := listingRMQuery + `
		WHERE ($1::text IS NULL OR l.status = $1)
		  AND ($2::text IS NULL OR l.category = $2)
		ORDER BY l.created_at DESC`

	rows, err := r.pool.Query(ctx, query, filter.Status, filter.Category)
	if err != nil {
		return nil, wrapQueryErr("failed to list listings", err)
	}
	return collectListingRMs(rows)
}

func (r *ListingRepository) FindAvailable(ctx context.Context, until time.Time) ([]*readmodel.ListingRM, error) {
	query := listingRMQuery + `
		WHERE l.status = 'available'
		  AND l.available_until > $1
		  AND l.expiration_date > $1
		ORDER BY l.expiration_date`

	rows, err := r.pool.Query(ctx, query, until)
	if err != nil {
		return nil, wrapQueryErr("failed to list available listings", err)
	}
	return collectListingRMs(rows)
}

func (r *ListingRepository) FindByDonorID(ctx context.Context, donorID uuid.UUID) ([]*readmodel.ListingRM, error) {
	query := listingRMQuery + ` WHERE l.donor_id = $1 ORDER BY l.created_at DESC`

	rows, err := r.pool.Query(ctx, query, donorID)
	if err != nil {
		return nil, wrapQueryErr("failed to list donor listings", err)
	}
	return collectListingRMs(rows)
}

func scanListingRM(row pgx.Row) (*readmodel.ListingRM, error) {
	var rm readmodel.ListingRM
	err := row.Scan(
		&rm.ID, &rm.DonorID, &rm.DonorName, &rm.DonorEmail, &rm.DonorOrganization,
		&rm.Title, &rm.Description, &rm.Category,
		&rm.Quantity, &rm.ReservedQuantity, &rm.Unit, &rm.ExpirationDate,
		&rm.PickupLocation.Street, &rm.PickupLocation.City, &rm.PickupLocation.State,
		&rm.PickupLocation.ZipCode, &rm.PickupLocation.Country,
		&rm.AvailableFrom, &rm.AvailableUntil, &rm.Status, &rm.Storage,
		&rm.CreatedAt, &rm.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rm, nil
}

func collectListingRMs(rows pgx.Rows) ([]*readmodel.ListingRM, error) {
	defer rows.Close()

	var listings []*readmodel.ListingRM
	for rows.Next() {
		rm, err := scanListingRM(rows)
		if err != nil {
			return nil, wrapQueryErr("failed to scan listing row", err)
		}
		listings = append(listings, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryErr("failed to read listing rows", err)
	}
	return listings, nil
}
