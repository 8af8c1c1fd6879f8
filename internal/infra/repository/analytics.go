package repository

import (
	"context"
	"time"

	"foodshare/internal/usecase"
	"foodshare/internal/usecase/readmodel"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AnalyticsRepository struct {
	pool *pgxpool.Pool
}

func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{pool: pool}
}

func (r *AnalyticsRepository) Overview(ctx context.Context) (*readmodel.OverviewRM, error) {
	query := `
		SELECT
			(SELECT count(*) FROM donations WHERE status = 'completed'),
			COALESCE((SELECT sum(waste_reduced) FROM donations WHERE status = 'completed'), 0),
			COALESCE((SELECT sum(people_served) FROM donations WHERE status = 'completed'), 0),
			(SELECT count(*) FROM users WHERE role = 'food_donor' AND is_active),
			(SELECT count(*) FROM users WHERE role = 'recipient_org' AND is_active),
			(SELECT count(*) FROM food_listings WHERE status = 'available')`

	var rm readmodel.OverviewRM
	err := r.pool.QueryRow(ctx, query).Scan(
		&rm.TotalDonations, &rm.TotalWasteReduced, &rm.TotalPeopleServed,
		&rm.ActiveDonors, &rm.ActiveRecipients, &rm.AvailableListings,
	)
	if err != nil {
		return nil, wrapQueryErr("failed to build overview", err)
	}
	return &rm, nil
}

func (r *AnalyticsRepository) Trends(ctx context.Context, period usecase.TrendPeriod, year int) ([]*readmodel.TrendPointRM, error) {
	var query string
	switch period {
	case usecase.TrendPeriodDaily:
		query = `
			SELECT extract(year FROM completion_date)::int,
			       extract(month FROM completion_date)::int,
			       0,
			       extract(day FROM completion_date)::int,
			       count(*), COALESCE(sum(waste_reduced), 0), COALESCE(sum(people_served), 0)
			FROM donations
			WHERE status = 'completed' AND extract(year FROM completion_date) = $1
			GROUP BY 1, 2, 4
			ORDER BY 1, 2, 4`
	case usecase.TrendPeriodWeekly:
		query = `
			SELECT extract(isoyear FROM completion_date)::int,
			       0,
			       extract(week FROM completion_date)::int,
			       0,
			       count(*), COALESCE(sum(waste_reduced), 0), COALESCE(sum(people_served), 0)
			FROM donations
			WHERE status = 'completed' AND extract(year FROM completion_date) = $1
			GROUP BY 1, 3
			ORDER BY 1, 3`
	default:
		query = `
			SELECT extract(year FROM completion_date)::int,
			       extract(month FROM completion_date)::int,
			       0,
			       0,
			       count(*), COALESCE(sum(waste_reduced), 0), COALESCE(sum(people_served), 0)
			FROM donations
			WHERE status = 'completed' AND extract(year FROM completion_date) = $1
			GROUP BY 1, 2
			ORDER BY 1, 2`
	}

	rows, err := r.pool.Query(ctx, query, year)
	if err != nil {
		return nil, wrapQueryErr("failed to query trends", err)
	}
	return collectTrendPoints(rows)
}

func (r *AnalyticsRepository) CategoryBreakdown(ctx context.Context) ([]*readmodel.CategoryBreakdownRM, error) {
	query := `
		SELECT l.category, count(*),
		       COALESCE(sum(d.waste_reduced), 0), COALESCE(sum(d.people_served), 0)
		FROM donations d
		JOIN food_listings l ON l.id = d.listing_id
		WHERE d.status = 'completed'
		GROUP BY l.category
		ORDER BY count(*) DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, wrapQueryErr("failed to query category breakdown", err)
	}
	defer rows.Close()

	var breakdown []*readmodel.CategoryBreakdownRM
	for rows.Next() {
		var rm readmodel.CategoryBreakdownRM
		if err := rows.Scan(&rm.Category, &rm.Count, &rm.WasteReduced, &rm.PeopleServed); err != nil {
			return nil, wrapQueryErr("failed to scan category row", err)
		}
		breakdown = append(breakdown, &rm)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryErr("failed to read category rows", err)
	}
	return breakdown, nil
}

func (r *AnalyticsRepository) TopDonors(ctx context.Context, limit int) ([]*readmodel.TopDonorRM, error) {
	query := `
		SELECT d.donor_id, u.name, u.organization_name, count(*),
		       COALESCE(sum(d.waste_reduced), 0), COALESCE(sum(d.people_served), 0)
		FROM donations d
		JOIN users u ON u.id = d.donor_id
		WHERE d.status = 'completed'
		GROUP BY d.donor_id, u.name, u.organization_name
		ORDER BY count(*) DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, wrapQueryErr("failed to query top donors", err)
	}
	defer rows.Close()

	var donors []*readmodel.TopDonorRM
	for rows.Next() {
		var rm readmodel.TopDonorRM
		err := rows.Scan(&rm.DonorID, &rm.DonorName, &rm.OrganizationName,
			&rm.DonationCount, &rm.WasteReduced, &rm.PeopleServed)
		if err != nil {
			return nil, wrapQueryErr("failed to scan donor row", err)
		}
		donors = append(donors, &rm)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryErr("failed to read donor rows", err)
	}
	return donors, nil
}

func (r *AnalyticsRepository) TopRecipients(ctx context.Context, limit int) ([]*readmodel.TopRecipientRM, error) {
	query := `
		SELECT d.recipient_id, u.name, u.organization_name, count(*),
		       COALESCE(sum(d.waste_reduced), 0), COALESCE(sum(d.people_served), 0)
		FROM donations d
		JOIN users u ON u.id = d.recipient_id
		WHERE d.status = 'completed'
		GROUP BY d.recipient_id, u.name, u.organization_name
		ORDER BY count(*) DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, wrapQueryErr("failed to query top recipients", err)
	}
	defer rows.Close()

	var recipients []*readmodel.TopRecipientRM
	for rows.Next() {
		var rm readmodel.TopRecipientRM
		err := rows.Scan(&rm.RecipientID, &rm.RecipientName, &rm.OrganizationName,
			&rm.DonationsReceived, &rm.WasteReduced, &rm.PeopleServed)
		if err != nil {
			return nil, wrapQueryErr("failed to scan recipient row", err)
		}
		recipients = append(recipients, &rm)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryErr("failed to read recipient rows", err)
	}
	return recipients, nil
}

func (r *AnalyticsRepository) ImpactSummary(ctx context.Context, start, end time.Time) (*readmodel.ImpactSummaryRM, error) {
	query := `
		SELECT count(*),
		       COALESCE(sum(waste_reduced), 0),
		       COALESCE(sum(people_served), 0),
		       COALESCE(avg(waste_reduced), 0),
		       COALESCE(avg(people_served), 0)
		FROM donations
		WHERE status = 'completed' AND completion_date >= $1 AND completion_date <= $2`

	var rm readmodel.ImpactSummaryRM
	err := r.pool.QueryRow(ctx, query, start, end).Scan(
		&rm.TotalDonations, &rm.TotalWasteReduced, &rm.TotalPeopleServed,
		&rm.AvgWastePerDonation, &rm.AvgPeoplePerDonation,
	)
	if err != nil {
		return nil, wrapQueryErr("failed to build impact summary", err)
	}
	return &rm, nil
}

func (r *AnalyticsRepository) MonthlyTrends(ctx context.Context, start, end time.Time) ([]*readmodel.TrendPointRM, error) {
	query := `
		SELECT extract(year FROM completion_date)::int,
		       extract(month FROM completion_date)::int,
		       0,
		       0,
		       count(*), COALESCE(sum(waste_reduced), 0), COALESCE(sum(people_served), 0)
		FROM donations
		WHERE status = 'completed' AND completion_date >= $1 AND completion_date <= $2
		GROUP BY 1, 2
		ORDER BY 1, 2`

	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, wrapQueryErr("failed to query monthly trends", err)
	}
	return collectTrendPoints(rows)
}

func collectTrendPoints(rows pgx.Rows) ([]*readmodel.TrendPointRM, error) {
	defer rows.Close()

	var points []*readmodel.TrendPointRM
	for rows.Next() {
		var rm readmodel.TrendPointRM
		err := rows.Scan(&rm.Year, &rm.Month, &rm.Week, &rm.Day,
			&rm.Count, &rm.WasteReduced, &rm.PeopleServed)
		if err != nil {
			return nil, wrapQueryErr("failed to scan trend row", err)
		}
		points = append(points, &rm)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryErr("failed to read trend rows", err)
	}
	return points, nil
}
