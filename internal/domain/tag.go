// Package domain contains the core data types for the NFC-Check service.
// This package has no dependencies on the store or transport layers and is
// imported by every other internal package (repo, service, handler).
package domain

import (
	"strings"
	"time"
)

// TagStatus is the lifecycle state of a tag. Tags are never deleted;
// they are deactivated instead.
type TagStatus string

const (
	TagStatusActive   TagStatus = "active"
	TagStatusInactive TagStatus = "inactive"
)

// Valid reports whether s is a known status.
func (s TagStatus) Valid() bool {
	return s == TagStatusActive || s == TagStatusInactive
}

// Tag is a registered physical identifier (an NFC chip) mapped to a redirect.
// ID keeps the casing it was first registered with; lookups compare it
// case-insensitively.
type Tag struct {
	ID             string
	BusinessID     string // empty when the tag has no owner yet
	Status         TagStatus
	RedirectTarget string // literal URL or template containing RedirectPlaceholder
	VisitCount     int64
	LastVisitAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Registration is the input to the idempotent tag upsert.
type Registration struct {
	TagID          string    `field:"tag_id" validate:"required,max=256"`
	BusinessID     string    `field:"business_id" validate:"max=256"`
	Status         TagStatus `field:"status" validate:"oneof=active inactive"`
	RedirectTarget string    `field:"redirect_target" validate:"max=2048"`
}

// RegistrationResult reports the stored tag and whether the upsert inserted
// a new row (Created) or overwrote an existing one.
type RegistrationResult struct {
	Tag     Tag
	Created bool
}

// Resolution is the outcome of resolving an active tag.
// RedirectTarget is what a scan redirects to; DeepLink is the configured
// deep-link template rendered for the same tag. Both embed the canonical ID.
type Resolution struct {
	TagID          string
	BusinessID     string
	RedirectTarget string
	DeepLink       string
}

// ScanResult is the outcome of a recorded scan. Counted is true only for the
// scan that claimed the tag's day and incremented its visit count.
type ScanResult struct {
	Resolution
	Counted bool
}

// CleanTagID trims surrounding whitespace from a tag identifier supplied by a
// client. Case is preserved: the store compares case-insensitively.
func CleanTagID(id string) string {
	return strings.TrimSpace(id)
}
