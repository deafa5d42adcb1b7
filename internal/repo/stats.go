package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/xxayder/NFC-Check/internal/domain"
)

// bucketLayouts maps each granularity to its date_trunc unit and to_char
// layout. Buckets are computed on UTC timestamps.
var bucketLayouts = map[domain.Granularity]struct{ unit, layout string }{
	domain.GranularityDay:     {"day", "YYYY-MM-DD"},
	domain.GranularityWeek:    {"week", "YYYY-MM-DD"},
	domain.GranularityMonth:   {"month", "YYYY-MM-01"},
	domain.GranularityQuarter: {"quarter", `YYYY-"Q"Q`},
	domain.GranularityYear:    {"year", "YYYY"},
}

// StatsRepo defines the read-only rollups over the transaction log.
type StatsRepo interface {
	// Summary returns whole-history totals for a business together with the
	// trailing 30-day spend and number of distinct active days.
	Summary(ctx context.Context, businessID string) (domain.Summary, error)

	// Series returns the business's transactions grouped into buckets of the
	// given granularity, oldest bucket first.
	Series(ctx context.Context, businessID string, g domain.Granularity) ([]domain.Bucket, error)
}

// pgStatsRepo is the Postgres implementation of StatsRepo.
type pgStatsRepo struct {
	db db
}

// NewStatsRepo constructs a StatsRepo backed by the provided db connection.
func NewStatsRepo(db db) StatsRepo {
	return &pgStatsRepo{db: db}
}

// Summary computes all summary figures in one pass over the business's rows.
func (r *pgStatsRepo) Summary(ctx context.Context, businessID string) (domain.Summary, error) {
	const q = `
		SELECT
			COUNT(*),
			COALESCE(SUM(amount_cents), 0)::bigint,
			COALESCE(AVG(amount_cents), 0)::float8,
			COALESCE(SUM(amount_cents) FILTER (WHERE occurred_at >= now() - INTERVAL '30 days'), 0)::bigint,
			COUNT(DISTINCT (occurred_at AT TIME ZONE 'UTC')::date)
				FILTER (WHERE occurred_at >= now() - INTERVAL '30 days')
		FROM nfc_transactions
		WHERE business_id = @business_id`

	var s domain.Summary
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"business_id": businessID}).Scan(
		&s.TotalTransactions, &s.TotalCents, &s.AvgCents, &s.Last30dCents, &s.ActiveDaysLast30d,
	)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("repo.StatsRepo.Summary: %w", err)
	}
	return s, nil
}

// Series groups by the formatted bucket label; the label sorts chronologically
// for every supported layout.
func (r *pgStatsRepo) Series(ctx context.Context, businessID string, g domain.Granularity) ([]domain.Bucket, error) {
	layout, ok := bucketLayouts[g]
	if !ok {
		return nil, fmt.Errorf("repo.StatsRepo.Series: %w: unknown granularity %q", domain.ErrValidation, g)
	}

	const q = `
		SELECT
			TO_CHAR(DATE_TRUNC(@unit, occurred_at AT TIME ZONE 'UTC'), @layout) AS period,
			SUM(amount_cents)::bigint,
			COUNT(*),
			AVG(amount_cents)::float8
		FROM nfc_transactions
		WHERE business_id = @business_id
		GROUP BY period
		ORDER BY period`

	args := pgx.NamedArgs{"business_id": businessID, "unit": layout.unit, "layout": layout.layout}
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.StatsRepo.Series: %w", err)
	}
	defer rows.Close()

	buckets := []domain.Bucket{}
	for rows.Next() {
		var b domain.Bucket
		if err := rows.Scan(&b.Period, &b.TotalCents, &b.Count, &b.AvgCents); err != nil {
			return nil, fmt.Errorf("repo.StatsRepo.Series: scan: %w", err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.StatsRepo.Series: rows: %w", err)
	}
	return buckets, nil
}
