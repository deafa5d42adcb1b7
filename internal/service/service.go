// Package service contains the business logic for the NFC-Check API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import "github.com/xxayder/NFC-Check/internal/validation"

// Validator checks a struct against its `validate` tags and returns an error
// wrapping domain.ErrValidation on failure.
type Validator interface {
	Validate(s any) error
}

var _ Validator = (*validation.Validator)(nil)
