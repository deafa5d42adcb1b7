package handler

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// JSON wire types. Field names and shapes match spec/openapi.yaml.

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse is returned by /healthz and /readyz.
type HealthResponse struct {
	Status string `json:"status"`
}

// RouteResponse is returned by GET /tags/route.
type RouteResponse struct {
	TagID          string `json:"tag_id"`
	BusinessID     string `json:"business_id"`
	RedirectTarget string `json:"redirect_target"`
	DeepLink       string `json:"deep_link"`
}

// RegisterTagRequest is the body of POST /tags.
type RegisterTagRequest struct {
	AdminKey       string `json:"admin_key"`
	TagID          string `json:"tag_id"`
	BusinessID     string `json:"business_id"`
	Status         string `json:"status"`
	RedirectTarget string `json:"redirect_target"`
}

// TagResponse is the stored state of a tag.
type TagResponse struct {
	TagID          string     `json:"tag_id"`
	BusinessID     string     `json:"business_id"`
	Status         string     `json:"status"`
	RedirectTarget string     `json:"redirect_target"`
	VisitCount     int64      `json:"visit_count"`
	LastVisitAt    *time.Time `json:"last_visit_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// RegisterTagResponse is returned by POST /tags.
type RegisterTagResponse struct {
	Created bool        `json:"created"`
	Tag     TagResponse `json:"tag"`
}

// CreateTransactionRequest is the body of POST /transactions. AmountCents is
// a float so fractional input can be rounded rather than rejected.
type CreateTransactionRequest struct {
	BusinessID  string  `json:"business_id"`
	TagID       string  `json:"tag_id"`
	AmountCents float64 `json:"amount_cents"`
}

// TransactionResponse is one stored transaction.
type TransactionResponse struct {
	ID          openapi_types.UUID `json:"id"`
	BusinessID  string             `json:"business_id"`
	TagID       string             `json:"tag_id"`
	AmountCents int64              `json:"amount_cents"`
	Amount      string             `json:"amount"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

// StatsResponse is returned by GET /stats. Summary fields are omitted in
// series mode and the series lists in summary mode.
type StatsResponse struct {
	BusinessID string `json:"business_id"`
	Mode       string `json:"mode"`

	*SummaryResponse
	*SeriesResponse
}

// SeriesResponse holds one bucket list per granularity.
type SeriesResponse struct {
	Daily     []BucketResponse `json:"daily"`
	Weekly    []BucketResponse `json:"weekly"`
	Monthly   []BucketResponse `json:"monthly"`
	Quarterly []BucketResponse `json:"quarterly"`
	Yearly    []BucketResponse `json:"yearly"`
}

// SummaryResponse holds the summary statistics. Money is a decimal string.
type SummaryResponse struct {
	TotalTransactions int64  `json:"total_transactions"`
	TotalSpent        string `json:"total_spent"`
	AvgTransaction    string `json:"avg_transaction"`
	AvgDailyLast30d   string `json:"avg_daily_last_30d"`
	ProjectionNext30d string `json:"projection_next_30d"`
	ActiveDaysLast30d int64  `json:"active_days_last_30d"`
}

// BucketResponse is one period of a statistics series.
type BucketResponse struct {
	Period     string `json:"period"`
	TotalSpent string `json:"total_spent"`
	TxCount    int64  `json:"tx_count"`
	AvgTx      string `json:"avg_tx"`
}
