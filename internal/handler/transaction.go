package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/xxayder/NFC-Check/internal/domain"
)

// csvHeaders defines the column names written as the first row of a CSV listing.
var csvHeaders = []string{"id", "occurred_at", "business_id", "tag_id", "amount_cents", "amount"}

// CreateTransaction handles POST /transactions.
func (s *Server) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx, cancel := s.storeContext(r)
	defer cancel()

	created, err := s.svc.Transactions.Add(ctx, domain.NewTransaction{
		BusinessID:  req.BusinessID,
		TagID:       req.TagID,
		AmountCents: req.AmountCents,
	})
	if err != nil {
		s.writeError(w, r, err, "transaction not found")
		return
	}

	writeJSON(w, http.StatusCreated, transactionToResponse(created))
}

// ListTransactions handles GET /transactions?business_id=...&limit=...&format=...
// Returns the newest transactions first. Use ?format=csv to receive CSV;
// default is JSON.
func (s *Server) ListTransactions(w http.ResponseWriter, r *http.Request) {
	var (
		businessID string
		limit      *int
		format     *string
	)
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, true, "business_id", q, &businessID); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("missing business_id"))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limit); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("limit must be an integer"))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "format", q, &format); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid format"))
		return
	}

	ctx, cancel := s.storeContext(r)
	defer cancel()

	txs, err := s.svc.Transactions.List(ctx, businessID, domain.NewListParams(limit))
	if err != nil {
		s.writeError(w, r, err, "business not found")
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	if format != nil && *format == "csv" {
		writeCSV(w, txs)
		return
	}

	out := make([]TransactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, transactionToResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV encodes transactions as CSV with a header row.
func writeCSV(w http.ResponseWriter, txs []domain.Transaction) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, t := range txs {
		//nolint:errcheck
		cw.Write(transactionToCSVRecord(t))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	buf.WriteTo(w)
}

func transactionToResponse(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          openapi_types.UUID(t.ID),
		BusinessID:  t.BusinessID,
		TagID:       t.TagID,
		AmountCents: t.AmountCents,
		Amount:      domain.FormatCents(t.AmountCents),
		OccurredAt:  t.OccurredAt.UTC(),
	}
}

func transactionToCSVRecord(t domain.Transaction) []string {
	return []string{
		t.ID.String(),
		t.OccurredAt.UTC().Format(time.RFC3339),
		t.BusinessID,
		t.TagID,
		strconv.FormatInt(t.AmountCents, 10),
		domain.FormatCents(t.AmountCents),
	}
}
