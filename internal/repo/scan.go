package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/xxayder/NFC-Check/internal/domain"
)

// ScanRepo defines the two narrow statements behind daily scan deduplication.
// The (tag_id, scan_date) primary key on nfc_scans is the only coordination
// point between concurrent scans; no read-then-write sequence is used.
type ScanRepo interface {
	// ClaimDay inserts the scan-day record for the active tag matching tagID
	// (case-insensitive) on the UTC calendar day containing at. A zero at
	// means the store's current time. It returns the canonical tag ID and
	// claimed=true only when this call created the record. Unknown and
	// inactive tags never claim.
	ClaimDay(ctx context.Context, tagID string, at time.Time) (canonicalID string, claimed bool, err error)

	// IncrementIfClaimed adds one to the visit count of the active tag with
	// the given canonical ID and stamps last_visit_at with at (zero means the
	// store's current time). Call it only after a successful ClaimDay.
	// Returns domain.ErrNotFound if the tag is no longer active.
	IncrementIfClaimed(ctx context.Context, canonicalID string, at time.Time) error

	// InTx runs fn with a ScanRepo bound to a single store transaction.
	// The transaction commits if fn returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(ScanRepo) error) error
}

// pgScanRepo is the Postgres implementation of ScanRepo.
type pgScanRepo struct {
	db db
}

// NewScanRepo constructs a ScanRepo backed by the provided db connection.
func NewScanRepo(db db) ScanRepo {
	return &pgScanRepo{db: db}
}

// ClaimDay is a single INSERT ... SELECT ... ON CONFLICT DO NOTHING. When two
// transactions race for the same key, the loser blocks until the winner
// finishes and then inserts nothing, so RETURNING yields no row.
func (r *pgScanRepo) ClaimDay(ctx context.Context, tagID string, at time.Time) (string, bool, error) {
	const q = `
		INSERT INTO nfc_scans (tag_id, scan_date)
		SELECT t.tag_id, (COALESCE(@at::timestamptz, now()) AT TIME ZONE 'UTC')::date
		FROM nfc_tags t
		WHERE lower(t.tag_id) = lower(@tag_id)
		  AND t.status = 'active'
		ON CONFLICT (tag_id, scan_date) DO NOTHING
		RETURNING tag_id`

	var canonical string
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"tag_id": tagID, "at": nullableTime(at)}).Scan(&canonical)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("repo.ScanRepo.ClaimDay: %w", err)
	}
	return canonical, true, nil
}

// IncrementIfClaimed is a single conditional UPDATE; the increment happens in
// the store, never as a read-modify-write in Go.
func (r *pgScanRepo) IncrementIfClaimed(ctx context.Context, canonicalID string, at time.Time) error {
	const q = `
		UPDATE nfc_tags
		SET visit_count   = visit_count + 1,
		    last_visit_at = COALESCE(@at::timestamptz, now())
		WHERE tag_id = @tag_id
		  AND status = 'active'`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"tag_id": canonicalID, "at": nullableTime(at)})
	if err != nil {
		return fmt.Errorf("repo.ScanRepo.IncrementIfClaimed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ScanRepo.IncrementIfClaimed: %w", domain.ErrNotFound)
	}
	return nil
}

// InTx begins a transaction (or a savepoint when r is already bound to one).
func (r *pgScanRepo) InTx(ctx context.Context, fn func(ScanRepo) error) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		return fn(NewScanRepo(tx))
	})
	if err != nil {
		return fmt.Errorf("repo.ScanRepo.InTx: %w", err)
	}
	return nil
}
