package domain

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// ListParams carries the optional limit for transaction listings from the
// HTTP layer to the repo layer.
type ListParams struct {
	// Limit is the maximum number of items to return.
	Limit int
}

// NewListParams builds ListParams from an optional HTTP query value.
// A nil or non-positive limit falls back to 50; the limit is capped at 200
// to prevent runaway queries.
func NewListParams(limit *int) ListParams {
	p := ListParams{Limit: defaultListLimit}
	if limit != nil && *limit >= 1 {
		p.Limit = *limit
		if p.Limit > maxListLimit {
			p.Limit = maxListLimit
		}
	}
	return p
}
