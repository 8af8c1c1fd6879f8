//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"foodshare/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// TestUserPassword is the plaintext for every fixture user, so tests can log
// in through the real endpoint.
const TestUserPassword = "password-123"

var (
	hashOnce     sync.Once
	passwordHash string
)

func testPasswordHash(t *testing.T) string {
	t.Helper()
	hashOnce.Do(func() {
		hash, err := password.HashPassword(TestUserPassword)
		require.NoError(t, err)
		passwordHash = hash
	})
	return passwordHash
}

func CreateTestUser(t *testing.T, pool *pgxpool.Pool, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	var recipientType *string
	if role == "recipient_org" {
		rt := "food_bank"
		recipientType = &rt
	}

	_, err := pool.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, organization_name, recipient_type, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, true)`,
		userID, "Fixture "+role, email, testPasswordHash(t), role, "Fixture Org", recipientType)
	require.NoError(t, err)

	return userID
}

func CreateTestListing(t *testing.T, pool *pgxpool.Pool, donorID uuid.UUID, quantity float64) uuid.UUID {
	t.Helper()

	listingID := uuid.New()
	ctx := context.Background()
	now := time.Now()

	_, err := pool.Exec(ctx, `
		INSERT INTO food_listings (id, donor_id, title, category, quantity, reserved_quantity, unit,
		                           expiration_date, available_from, available_until, status, storage)
		VALUES ($1, $2, $3, 'produce', $4, 0, 'boxes', $5, $6, $7, 'available', 'room_temperature')`,
		listingID, donorID, "Fixture listing", quantity,
		now.Add(72*time.Hour), now.Add(-time.Hour), now.Add(48*time.Hour))
	require.NoError(t, err)

	return listingID
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates all tables between subtests.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var tbl string
			if err := rows.Scan(&tbl); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, tbl)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
