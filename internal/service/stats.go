package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/xxayder/NFC-Check/internal/domain"
	"github.com/xxayder/NFC-Check/internal/repo"
)

// StatsService aggregates a business's transaction log.
type StatsService struct {
	stats repo.StatsRepo
}

// NewStatsService constructs a StatsService.
func NewStatsService(stats repo.StatsRepo) *StatsService {
	return &StatsService{stats: stats}
}

// BusinessStats returns the parts of the statistics selected by mode.
// Only the queries the mode needs are run.
func (s *StatsService) BusinessStats(ctx context.Context, businessID string, mode domain.StatsMode) (domain.BusinessStats, error) {
	businessID = strings.TrimSpace(businessID)
	if businessID == "" {
		return domain.BusinessStats{}, fmt.Errorf("%w: business_id is required", domain.ErrValidation)
	}

	out := domain.BusinessStats{BusinessID: businessID, Mode: mode}

	if mode != domain.StatsModeSeries {
		sum, err := s.stats.Summary(ctx, businessID)
		if err != nil {
			return domain.BusinessStats{}, fmt.Errorf("service.StatsService.BusinessStats: %w", err)
		}
		out.Summary = &sum
	}

	if mode != domain.StatsModeSummary {
		out.Series = make(domain.Series, len(domain.Granularities))
		for _, g := range domain.Granularities {
			buckets, err := s.stats.Series(ctx, businessID, g)
			if err != nil {
				return domain.BusinessStats{}, fmt.Errorf("service.StatsService.BusinessStats: %s: %w", g, err)
			}
			out.Series[g] = buckets
		}
	}

	return out, nil
}
