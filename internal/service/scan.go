package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xxayder/NFC-Check/internal/domain"
	"github.com/xxayder/NFC-Check/internal/repo"
)

// ScanService records physical scans. The first scan of a tag on a calendar
// day increments its visit count; every scan of an active tag is redirected.
type ScanService struct {
	scans    repo.ScanRepo
	resolver *Resolver
}

// NewScanService constructs a ScanService.
func NewScanService(scans repo.ScanRepo, resolver *Resolver) *ScanService {
	return &ScanService{scans: scans, resolver: resolver}
}

// RecordScanAndResolve claims the (tag, day) pair and, if this call won the
// claim, increments the tag's visit count in the same store transaction.
// It then resolves the tag regardless of the claim outcome. A zero now
// means the store's current time decides the calendar day.
//
// Unknown and inactive tags return domain.ErrNotFound without touching any
// row.
func (s *ScanService) RecordScanAndResolve(ctx context.Context, tagID string, now time.Time) (domain.ScanResult, error) {
	id := domain.CleanTagID(tagID)
	if id == "" {
		return domain.ScanResult{}, fmt.Errorf("%w: tag_id is required", domain.ErrValidation)
	}

	var counted bool
	err := s.scans.InTx(ctx, func(scans repo.ScanRepo) error {
		canonicalID, claimed, err := scans.ClaimDay(ctx, id, now)
		if err != nil || !claimed {
			return err
		}
		if err := scans.IncrementIfClaimed(ctx, canonicalID, now); err != nil {
			return err
		}
		counted = true
		return nil
	})
	// A tag deactivated between claim and increment rolls the claim back;
	// Resolve below reports it as not found.
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return domain.ScanResult{}, fmt.Errorf("service.ScanService.RecordScanAndResolve: %w", err)
	}

	res, err := s.resolver.Resolve(ctx, id)
	if err != nil {
		return domain.ScanResult{}, err
	}
	return domain.ScanResult{Resolution: res, Counted: counted}, nil
}
