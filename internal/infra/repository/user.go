package repository

import (
	"context"

	"foodshare/internal/domain/user"
	"foodshare/internal/infra"
	"foodshare/internal/usecase"
	"foodshare/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (
			id, name, email, password_hash, role,
			organization_name, recipient_type, phone,
			street, city, state, zip_code, country,
			is_active, is_verified, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8,
			$9, $10, $11, $12, $13,
			$14, $15, now(), now()
		)`

	var recipientType *string
	if rt := u.RecipientType(); rt != nil {
		s := rt.String()
		recipientType = &s
	}
	addr := u.Address()

	_, err := r.pool.Exec(ctx, query,
		u.ID(), u.Name(), u.Email().Value(), u.PasswordHash(), u.Role().String(),
		u.OrganizationName(), recipientType, u.Phone(),
		addr.Street, addr.City, addr.State, addr.ZipCode, addr.Country,
		u.IsActive(), u.IsVerified(),
	)
	if err != nil {
		return wrapQueryErr("failed to insert user", err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email user.Email) (*readmodel.AuthorizedUserRM, string, error) {
	query := `
		SELECT id, name, email, role, organization_name, is_active, password_hash
		FROM users
		WHERE email = $1`

	var rm readmodel.AuthorizedUserRM
	var passwordHash string
	err := r.pool.QueryRow(ctx, query, email.Value()).Scan(
		&rm.ID, &rm.Name, &rm.Email, &rm.Role, &rm.OrganizationName, &rm.IsActive, &passwordHash,
	)
	if err != nil {
		return nil, "", wrapQueryErr("failed to find user by email", err)
	}
	return &rm, passwordHash, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*readmodel.AuthorizedUserRM, error) {
	query := `
		SELECT id, name, email, role, organization_name, is_active
		FROM users
		WHERE id = $1`

	var rm readmodel.AuthorizedUserRM
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rm.ID, &rm.Name, &rm.Email, &rm.Role, &rm.OrganizationName, &rm.IsActive,
	)
	if err != nil {
		return nil, wrapQueryErr("failed to find user by id", err)
	}
	return &rm, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE users SET last_login = now(), updated_at = now() WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, userID)
	if err != nil {
		return wrapQueryErr("failed to update last login", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

const userProfileColumns = `
	id, name, email, role, organization_name, recipient_type, phone,
	street, city, state, zip_code, country,
	is_active, is_verified, last_login, created_at, updated_at`

func (r *UserRepository) FindProfileByID(ctx context.Context, id uuid.UUID) (*readmodel.UserRM, error) {
	query := `SELECT ` + userProfileColumns + ` FROM users WHERE id = $1`

	rm, err := scanUserRM(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, wrapQueryErr("failed to find user profile", err)
	}
	return rm, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*readmodel.UserRM, error) {
	query := `SELECT ` + userProfileColumns + ` FROM users ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, wrapQueryErr("failed to list users", err)
	}
	return collectUserRMs(rows)
}

func (r *UserRepository) FindByRole(ctx context.Context, role user.Role) ([]*readmodel.UserRM, error) {
	query := `SELECT ` + userProfileColumns + ` FROM users WHERE role = $1 AND is_active ORDER BY name`

	rows, err := r.pool.Query(ctx, query, role.String())
	if err != nil {
		return nil, wrapQueryErr("failed to list users by role", err)
	}
	return collectUserRMs(rows)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, update usecase.UserProfileUpdate) error {
	query := `
		UPDATE users SET
			name              = COALESCE($2, name),
			organization_name = COALESCE($3, organization_name),
			phone             = COALESCE($4, phone),
			street            = COALESCE($5, street),
			city              = COALESCE($6, city),
			state             = COALESCE($7, state),
			zip_code          = COALESCE($8, zip_code),
			country           = COALESCE($9, country),
			password_hash     = COALESCE($10, password_hash),
			updated_at        = now()
		WHERE id = $1`

	var street, city, state, zipCode, country *string
	if a := update.Address; a != nil {
		street, city, state, zipCode, country = &a.Street, &a.City, &a.State, &a.ZipCode, &a.Country
	}

	tag, err := r.pool.Exec(ctx, query, id,
		update.Name, update.OrganizationName, update.Phone,
		street, city, state, zipCode, country,
		update.PasswordHash,
	)
	if err != nil {
		return wrapQueryErr("failed to update profile", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	return r.setFlag(ctx, `UPDATE users SET is_verified = $2, updated_at = now() WHERE id = $1`, id, verified)
}

func (r *UserRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.setFlag(ctx, `UPDATE users SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
}

func (r *UserRepository) setFlag(ctx context.Context, query string, id uuid.UUID, value bool) error {
	tag, err := r.pool.Exec(ctx, query, id, value)
	if err != nil {
		return wrapQueryErr("failed to update user flag", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func scanUserRM(row pgx.Row) (*readmodel.UserRM, error) {
	var rm readmodel.UserRM
	err := row.Scan(
		&rm.ID, &rm.Name, &rm.Email, &rm.Role, &rm.OrganizationName, &rm.RecipientType, &rm.Phone,
		&rm.Address.Street, &rm.Address.City, &rm.Address.State, &rm.Address.ZipCode, &rm.Address.Country,
		&rm.IsActive, &rm.IsVerified, &rm.LastLogin, &rm.CreatedAt, &rm.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rm, nil
}

func collectUserRMs(rows pgx.Rows) ([]*readmodel.UserRM, error) {
	defer rows.Close()

	var users []*readmodel.UserRM
	for rows.Next() {
		rm, err := scanUserRM(rows)
		if err != nil {
			return nil, wrapQueryErr("failed to scan user row", err)
		}
		users = append(users, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryErr("failed to read user rows", err)
	}
	return users, nil
}
