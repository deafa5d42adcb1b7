// Package spec embeds the OpenAPI description of the NFC-Check API.
// The server serves it at GET /openapi.yaml.
package spec

import _ "embed"

// OpenAPI contains the raw bytes of openapi.yaml, embedded at compile time.
//
//go:embed openapi.yaml
var OpenAPI []byte
