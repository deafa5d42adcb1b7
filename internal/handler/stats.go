package handler

import (
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/xxayder/NFC-Check/internal/domain"
)

// GetStats handles GET /stats?business_id=...&mode=all|summary|series.
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	var (
		businessID string
		mode       *string
	)
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, true, "business_id", q, &businessID); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("missing business_id"))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "mode", q, &mode); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid mode"))
		return
	}

	parsed := domain.StatsModeAll
	if mode != nil {
		parsed = domain.ParseStatsMode(*mode)
	}

	ctx, cancel := s.storeContext(r)
	defer cancel()

	stats, err := s.svc.Stats.BusinessStats(ctx, businessID, parsed)
	if err != nil {
		s.writeError(w, r, err, "business not found")
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, statsToResponse(stats))
}

func statsToResponse(st domain.BusinessStats) StatsResponse {
	out := StatsResponse{BusinessID: st.BusinessID, Mode: string(st.Mode)}

	if sum := st.Summary; sum != nil {
		out.SummaryResponse = &SummaryResponse{
			TotalTransactions: sum.TotalTransactions,
			TotalSpent:        domain.FormatCents(sum.TotalCents),
			AvgTransaction:    domain.FormatAmount(sum.AvgCents),
			AvgDailyLast30d:   domain.FormatAmount(sum.AvgDailyLast30dCents()),
			ProjectionNext30d: domain.FormatAmount(sum.ProjectionNext30dCents()),
			ActiveDaysLast30d: sum.ActiveDaysLast30d,
		}
	}

	if st.Series != nil {
		out.SeriesResponse = &SeriesResponse{
			Daily:     bucketsToResponse(st.Series[domain.GranularityDay]),
			Weekly:    bucketsToResponse(st.Series[domain.GranularityWeek]),
			Monthly:   bucketsToResponse(st.Series[domain.GranularityMonth]),
			Quarterly: bucketsToResponse(st.Series[domain.GranularityQuarter]),
			Yearly:    bucketsToResponse(st.Series[domain.GranularityYear]),
		}
	}
	return out
}

// bucketsToResponse never returns nil so empty series render as [].
func bucketsToResponse(in []domain.Bucket) []BucketResponse {
	out := make([]BucketResponse, 0, len(in))
	for _, b := range in {
		out = append(out, BucketResponse{
			Period:     b.Period,
			TotalSpent: domain.FormatCents(b.TotalCents),
			TxCount:    b.Count,
			AvgTx:      domain.FormatAmount(b.AvgCents),
		})
	}
	return out
}
