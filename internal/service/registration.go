package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/xxayder/NFC-Check/internal/domain"
	"github.com/xxayder/NFC-Check/internal/repo"
)

// RegistrationService performs the administrative tag upsert.
type RegistrationService struct {
	tags     repo.TagRepo
	validate Validator
	adminKey []byte
}

// NewRegistrationService constructs a RegistrationService guarded by adminKey.
func NewRegistrationService(tags repo.TagRepo, v Validator, adminKey string) *RegistrationService {
	return &RegistrationService{tags: tags, validate: v, adminKey: []byte(adminKey)}
}

// Register creates the tag or overwrites its owner, status and redirect
// target (last write wins). The admin key is checked before anything else:
// a mismatch returns domain.ErrUnauthorized and nothing is validated or
// written. An empty status defaults to active.
func (s *RegistrationService) Register(ctx context.Context, adminKey string, reg domain.Registration) (domain.RegistrationResult, error) {
	if len(s.adminKey) == 0 || subtle.ConstantTimeCompare([]byte(adminKey), s.adminKey) != 1 {
		return domain.RegistrationResult{}, domain.ErrUnauthorized
	}

	reg.TagID = domain.CleanTagID(reg.TagID)
	reg.BusinessID = strings.TrimSpace(reg.BusinessID)
	reg.RedirectTarget = strings.TrimSpace(reg.RedirectTarget)
	if reg.Status == "" {
		reg.Status = domain.TagStatusActive
	}
	if err := s.validate.Validate(reg); err != nil {
		return domain.RegistrationResult{}, err
	}

	res, err := s.tags.Upsert(ctx, reg)
	if err != nil {
		return domain.RegistrationResult{}, fmt.Errorf("service.RegistrationService.Register: %w", err)
	}
	return res, nil
}
