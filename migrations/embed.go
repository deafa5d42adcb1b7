// Package migrations embeds the SQL schema for the tag, scan-day and
// transaction tables so the goose programmatic API can apply it to
// integration-test databases without a filesystem path.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
