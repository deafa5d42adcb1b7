package service

import (
	"context"
	"fmt"

	"github.com/xxayder/NFC-Check/internal/domain"
	"github.com/xxayder/NFC-Check/internal/repo"
)

// Resolver maps a tag identifier to its redirect target. It never writes.
type Resolver struct {
	tags             repo.TagRepo
	deepLinkTemplate string
}

// NewResolver constructs a Resolver. deepLinkTemplate must already have been
// checked with domain.ValidateTemplate; it is used when a tag has no stored
// redirect target of its own.
func NewResolver(tags repo.TagRepo, deepLinkTemplate string) *Resolver {
	return &Resolver{tags: tags, deepLinkTemplate: deepLinkTemplate}
}

// Resolve returns the redirect for the active tag matching tagID
// case-insensitively. Unknown and inactive tags both yield domain.ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, tagID string) (domain.Resolution, error) {
	id := domain.CleanTagID(tagID)
	if id == "" {
		return domain.Resolution{}, fmt.Errorf("%w: tag_id is required", domain.ErrValidation)
	}

	tag, err := r.tags.FindActive(ctx, id)
	if err != nil {
		return domain.Resolution{}, fmt.Errorf("service.Resolver.Resolve: %w", err)
	}

	deepLink := domain.RenderTemplate(r.deepLinkTemplate, tag.ID)
	target := deepLink
	if tag.RedirectTarget != "" {
		target = domain.RenderTemplate(tag.RedirectTarget, tag.ID)
	}

	return domain.Resolution{
		TagID:          tag.ID,
		BusinessID:     tag.BusinessID,
		RedirectTarget: target,
		DeepLink:       deepLink,
	}, nil
}
