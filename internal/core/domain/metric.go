package domain

import "github.com/shopspring/decimal"

// MetricKind enumerates the metrics the engine can compute.
type MetricKind string

const (
	MetricRevenueVsBudget  MetricKind = "REVENUE_VS_BUDGET"
	MetricGrossMarginTrend MetricKind = "GROSS_MARGIN_TREND"
	MetricOpexBreakdown    MetricKind = "OPEX_BREAKDOWN"
	MetricEBITDATrend      MetricKind = "EBITDA_TREND"
	MetricEBITDAVsBudget   MetricKind = "EBITDA_VS_BUDGET"
	MetricCashRunway       MetricKind = "CASH_RUNWAY"
	MetricUnknown          MetricKind = "UNKNOWN"
)

// NeedsPeriod reports whether the metric answers for a single month and is
// meaningless without one. Trend metrics and cash runway span all available
// periods instead.
func (k MetricKind) NeedsPeriod() bool {
	switch k {
	case MetricRevenueVsBudget, MetricOpexBreakdown, MetricEBITDAVsBudget:
		return true
	}
	return false
}

// DisplayName is the human-readable metric name used in answer text.
func (k MetricKind) DisplayName() string {
	switch k {
	case MetricRevenueVsBudget:
		return "Revenue vs Budget"
	case MetricGrossMarginTrend:
		return "Gross Margin % trend"
	case MetricOpexBreakdown:
		return "Opex breakdown"
	case MetricEBITDATrend:
		return "EBITDA trend"
	case MetricEBITDAVsBudget:
		return "EBITDA vs Budget"
	case MetricCashRunway:
		return "Cash Runway"
	}
	return "Unknown"
}

// QueryIntent is the router's reading of a free-text question.
type QueryIntent struct {
	Metric MetricKind `json:"metric"`
	Period YearMonth  `json:"period"` // zero when the question names no month
	Entity string     `json:"entity"` // empty when the question names no known entity
}

// SeriesPoint is one chartable observation of a metric. Trend points carry
// their period; categorical points (e.g. "Actual" vs "Budget" bars) leave it
// zero and identify themselves by Label alone.
type SeriesPoint struct {
	Period YearMonth       `json:"period"`
	Label  string          `json:"label"`
	Value  decimal.Decimal `json:"value"`
}

// MetricResult is the engine's answer to one question: prose plus an
// optional chart series. Degraded marks results computed from an incomplete
// currency join (rows excluded for missing fx rates). Results are transient,
// produced per query and never persisted.
type MetricResult struct {
	Text     string        `json:"text"`
	Series   []SeriesPoint `json:"series"`
	Degraded bool          `json:"degraded"`
}
