package domain

import (
	"fmt"
	"strings"
)

// RedirectPlaceholder is replaced by the canonical tag ID when a redirect
// target or deep-link template is rendered.
const RedirectPlaceholder = "{ROWID}"

// RenderTemplate substitutes every occurrence of RedirectPlaceholder in tmpl
// with canonicalID. A template without the placeholder is returned unchanged.
func RenderTemplate(tmpl, canonicalID string) string {
	return strings.ReplaceAll(tmpl, RedirectPlaceholder, canonicalID)
}

// ValidateTemplate returns ErrValidation if tmpl is empty or does not contain
// RedirectPlaceholder.
func ValidateTemplate(tmpl string) error {
	if strings.TrimSpace(tmpl) == "" {
		return fmt.Errorf("%w: redirect template is empty", ErrValidation)
	}
	if !strings.Contains(tmpl, RedirectPlaceholder) {
		return fmt.Errorf("%w: redirect template must include %s", ErrValidation, RedirectPlaceholder)
	}
	return nil
}
