package domain

// StatsMode selects which parts of the statistics payload are returned.
type StatsMode string

const (
	StatsModeAll     StatsMode = "all"
	StatsModeSummary StatsMode = "summary"
	StatsModeSeries  StatsMode = "series"
)

// ParseStatsMode maps a query value to a StatsMode. Unknown or empty values
// select StatsModeAll.
func ParseStatsMode(s string) StatsMode {
	switch StatsMode(s) {
	case StatsModeSummary:
		return StatsModeSummary
	case StatsModeSeries:
		return StatsModeSeries
	default:
		return StatsModeAll
	}
}

// Granularity is the bucket width of a statistics series.
type Granularity string

const (
	GranularityDay     Granularity = "day"
	GranularityWeek    Granularity = "week"
	GranularityMonth   Granularity = "month"
	GranularityQuarter Granularity = "quarter"
	GranularityYear    Granularity = "year"
)

// Granularities lists every series bucket width, finest first.
var Granularities = []Granularity{
	GranularityDay, GranularityWeek, GranularityMonth, GranularityQuarter, GranularityYear,
}

// Bucket is one row of a grouped statistics series.
// Period is the formatted bucket label, e.g. "2025-03-01" or "2025-Q1".
type Bucket struct {
	Period     string
	TotalCents int64
	Count      int64
	AvgCents   float64
}

// Summary holds the whole-history totals for a business plus the trailing
// 30-day figures used for projections.
type Summary struct {
	TotalTransactions int64
	TotalCents        int64
	AvgCents          float64
	Last30dCents      int64
	ActiveDaysLast30d int64
}

// AvgDailyLast30dCents is the average spend per active day over the last
// 30 days. Zero active days are treated as one.
func (s Summary) AvgDailyLast30dCents() float64 {
	days := s.ActiveDaysLast30d
	if days < 1 {
		days = 1
	}
	return float64(s.Last30dCents) / float64(days)
}

// ProjectionNext30dCents extrapolates the trailing daily average over the
// next 30 days.
func (s Summary) ProjectionNext30dCents() float64 {
	return s.AvgDailyLast30dCents() * 30
}

// Series holds one bucket list per granularity.
type Series map[Granularity][]Bucket

// BusinessStats is the aggregate returned for one business.
// Summary is nil in series mode and Series is nil in summary mode.
type BusinessStats struct {
	BusinessID string
	Mode       StatsMode
	Summary    *Summary
	Series     Series
}
