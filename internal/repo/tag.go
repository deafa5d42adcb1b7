package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/xxayder/NFC-Check/internal/domain"
)

// TagRepo defines the persistence operations for NFC tags.
type TagRepo interface {
	// Upsert inserts a tag, or overwrites owner, status and redirect target of
	// the existing tag whose ID matches case-insensitively. The casing of the
	// first registration is preserved on conflict.
	Upsert(ctx context.Context, reg domain.Registration) (domain.RegistrationResult, error)

	// FindActive returns the active tag whose ID matches tagID case-insensitively.
	// Returns domain.ErrNotFound if no such tag exists or it is not active.
	FindActive(ctx context.Context, tagID string) (domain.Tag, error)

	// GetByID returns the tag whose ID matches tagID case-insensitively,
	// regardless of status. Returns domain.ErrNotFound if it does not exist.
	GetByID(ctx context.Context, tagID string) (domain.Tag, error)
}

// pgTagRepo is the Postgres implementation of TagRepo.
type pgTagRepo struct {
	db db
}

// NewTagRepo constructs a TagRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTagRepo(db db) TagRepo {
	return &pgTagRepo{db: db}
}

const tagColumns = `tag_id, COALESCE(business_id, ''), status, redirect_target,
		visit_count, last_visit_at, created_at, updated_at`

// Upsert conflicts on the lower(tag_id) unique index. xmax is zero only for
// a freshly inserted row version, which tells insert and update apart.
func (r *pgTagRepo) Upsert(ctx context.Context, reg domain.Registration) (domain.RegistrationResult, error) {
	const q = `
		INSERT INTO nfc_tags (tag_id, business_id, status, redirect_target)
		VALUES (@tag_id, NULLIF(@business_id, ''), @status, @redirect_target)
		ON CONFLICT (lower(tag_id)) DO UPDATE
		SET business_id     = EXCLUDED.business_id,
		    status          = EXCLUDED.status,
		    redirect_target = EXCLUDED.redirect_target,
		    updated_at      = now()
		RETURNING ` + tagColumns + `, (xmax = 0) AS inserted`

	args := pgx.NamedArgs{
		"tag_id":          reg.TagID,
		"business_id":     reg.BusinessID,
		"status":          string(reg.Status),
		"redirect_target": reg.RedirectTarget,
	}

	var inserted bool
	tag, err := scanTag(r.db.QueryRow(ctx, q, args), &inserted)
	if err != nil {
		return domain.RegistrationResult{}, fmt.Errorf("repo.TagRepo.Upsert: %w", err)
	}
	return domain.RegistrationResult{Tag: tag, Created: inserted}, nil
}

// FindActive looks a tag up by case-insensitive ID, active tags only.
func (r *pgTagRepo) FindActive(ctx context.Context, tagID string) (domain.Tag, error) {
	const q = `
		SELECT ` + tagColumns + `
		FROM nfc_tags
		WHERE lower(tag_id) = lower(@tag_id)
		  AND status = 'active'`

	tag, err := scanTag(r.db.QueryRow(ctx, q, pgx.NamedArgs{"tag_id": tagID}))
	if err != nil {
		return domain.Tag{}, fmt.Errorf("repo.TagRepo.FindActive: %w", err)
	}
	return tag, nil
}

// GetByID looks a tag up by case-insensitive ID, any status.
func (r *pgTagRepo) GetByID(ctx context.Context, tagID string) (domain.Tag, error) {
	const q = `
		SELECT ` + tagColumns + `
		FROM nfc_tags
		WHERE lower(tag_id) = lower(@tag_id)`

	tag, err := scanTag(r.db.QueryRow(ctx, q, pgx.NamedArgs{"tag_id": tagID}))
	if err != nil {
		return domain.Tag{}, fmt.Errorf("repo.TagRepo.GetByID: %w", err)
	}
	return tag, nil
}

// scanTag maps a single database row into a domain.Tag. Any extra destinations
// are scanned after the tag columns.
func scanTag(s scanner, extra ...any) (domain.Tag, error) {
	var (
		t         domain.Tag
		status    string
		lastVisit pgtype.Timestamptz
	)
	dest := append([]any{
		&t.ID, &t.BusinessID, &status, &t.RedirectTarget,
		&t.VisitCount, &lastVisit, &t.CreatedAt, &t.UpdatedAt,
	}, extra...)

	if err := s.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Tag{}, domain.ErrNotFound
		}
		return domain.Tag{}, err
	}

	t.Status = domain.TagStatus(status)
	if lastVisit.Valid {
		lv := lastVisit.Time
		t.LastVisitAt = &lv
	}
	return t, nil
}
