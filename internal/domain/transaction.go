package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Transaction is a single purchase recorded against a tag and a business.
// The transaction log is append-only.
type Transaction struct {
	ID          uuid.UUID
	BusinessID  string
	TagID       string
	AmountCents int64
	OccurredAt  time.Time
}

// NewTransaction is the unvalidated input to transaction ingestion.
// AmountCents arrives as a JSON number and may be fractional; it is rounded
// to whole minor units before it is stored.
type NewTransaction struct {
	BusinessID  string  `field:"business_id" validate:"required,max=256"`
	TagID       string  `field:"tag_id" validate:"required,max=256"`
	AmountCents float64 `field:"amount_cents"`
}

// NormalizeTransactionTagID trims and lowercases the tag reference stored on a
// transaction.
func NormalizeTransactionTagID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// FormatCents renders an amount in minor units as a decimal string with two
// places, e.g. 1234 → "12.34".
func FormatCents(cents int64) string {
	return FormatAmount(float64(cents))
}

// FormatAmount renders a (possibly fractional) amount in minor units as a
// decimal string with two places.
func FormatAmount(cents float64) string {
	return strconv.FormatFloat(cents/100, 'f', 2, 64)
}
