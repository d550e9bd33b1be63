package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/HamzaWajid1/cfo_copilot_app/internal/core/domain"
	portsrepo "github.com/HamzaWajid1/cfo_copilot_app/internal/core/ports/repositories"
	portssvc "github.com/HamzaWajid1/cfo_copilot_app/internal/core/ports/services"
)

// periodPatterns are tried in order; the first match that parses into a
// valid month wins. Month names, then ISO "2025-06", then "6/2025".
var periodPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{4}\b`),
	regexp.MustCompile(`\b\d{4}-\d{2}\b`),
	regexp.MustCompile(`\b\d{1,2}/\d{4}\b`),
}

// intentService maps free-text questions onto the fixed metric vocabulary
// with keyword rules. No scoring, no fuzziness: the same question always
// yields the same intent.
type intentService struct {
	BaseService
	records portsrepo.LedgerReader
}

// NewIntentService creates a new intent classification service
func NewIntentService(records portsrepo.LedgerReader) portssvc.IntentSvcFacade {
	return &intentService{records: records}
}

// Ensure intentService implements the facade
var _ portssvc.IntentSvcFacade = (*intentService)(nil)

// Classify resolves the question into {metric, period, entity}. Unknown
// metrics short-circuit: no period or entity extraction is attempted for
// them. A period mention that does not parse into a real month is treated
// as absent.
func (s *intentService) Classify(ctx context.Context, question string) domain.QueryIntent {
	q := strings.ToLower(question)

	metric := classifyMetric(q)
	if metric == domain.MetricUnknown {
		return domain.QueryIntent{Metric: domain.MetricUnknown}
	}

	return domain.QueryIntent{
		Metric: metric,
		Period: extractPeriod(question),
		Entity: s.matchEntity(ctx, q),
	}
}

// classifyMetric applies the keyword rules in priority order. Earlier rules
// win when a question mentions several metric words, so "revenue vs budget"
// never falls through to the margin or opex buckets.
func classifyMetric(q string) domain.MetricKind {
	switch {
	case strings.Contains(q, "revenue") && strings.Contains(q, "budget"):
		return domain.MetricRevenueVsBudget
	case strings.Contains(q, "gross margin") || strings.Contains(q, "margin"):
		return domain.MetricGrossMarginTrend
	case strings.Contains(q, "opex") || strings.Contains(q, "expense"):
		return domain.MetricOpexBreakdown
	case strings.Contains(q, "ebitda") && strings.Contains(q, "budget"):
		return domain.MetricEBITDAVsBudget
	case strings.Contains(q, "ebitda"):
		return domain.MetricEBITDATrend
	case strings.Contains(q, "runway"):
		return domain.MetricCashRunway
	default:
		return domain.MetricUnknown
	}
}

func extractPeriod(question string) domain.YearMonth {
	for _, pattern := range periodPatterns {
		match := pattern.FindString(question)
		if match == "" {
			continue
		}
		if period, err := domain.ParseYearMonth(match); err == nil {
			return period
		}
	}
	return domain.YearMonth{}
}

// matchEntity returns the first known entity mentioned in the question.
// Entities come back sorted from the store, so ties resolve the same way
// every time.
func (s *intentService) matchEntity(ctx context.Context, q string) string {
	for _, entity := range s.records.Entities(ctx) {
		if strings.Contains(q, strings.ToLower(entity)) {
			return entity
		}
	}
	return ""
}
