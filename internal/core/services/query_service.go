package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/HamzaWajid1/cfo_copilot_app/internal/core/domain"
	portsrepo "github.com/HamzaWajid1/cfo_copilot_app/internal/core/ports/repositories"
	portssvc "github.com/HamzaWajid1/cfo_copilot_app/internal/core/ports/services"
)

const msgNotUnderstood = "Sorry, I could not understand the question."

// queryService is the question entrypoint: classify, fill in defaults, ask
// for a month when one is required, then dispatch to the metric calculators.
type queryService struct {
	BaseService
	intent        portssvc.IntentSvcFacade
	metrics       portssvc.MetricsSvcFacade
	records       portsrepo.LedgerReader
	defaultEntity string
}

// QueryServiceOption defines functional options for the query service
type QueryServiceOption func(*queryService)

// WithDefaultEntity sets the entity assumed when a question names none.
func WithDefaultEntity(entity string) QueryServiceOption {
	return func(s *queryService) {
		s.defaultEntity = entity
	}
}

// NewQueryService creates a new query answering service
func NewQueryService(records portsrepo.LedgerReader, intent portssvc.IntentSvcFacade, metrics portssvc.MetricsSvcFacade, options ...QueryServiceOption) portssvc.QuerySvcFacade {
	svc := &queryService{
		intent:  intent,
		metrics: metrics,
		records: records,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure queryService implements the facade
var _ portssvc.QuerySvcFacade = (*queryService)(nil)

// Answer resolves a question end to end. Unresolvable intents and missing
// periods come back as guidance text with no series, never as errors; errors
// are reserved for internal failures.
func (s *queryService) Answer(ctx context.Context, question string) (*domain.MetricResult, error) {
	intent := s.intent.Classify(ctx, question)
	s.LogDebug(ctx, "Classified question",
		slog.String("metric", string(intent.Metric)),
		slog.String("period", intent.Period.String()),
		slog.String("entity", intent.Entity))

	if intent.Metric == domain.MetricUnknown {
		return &domain.MetricResult{Text: msgNotUnderstood}, nil
	}

	if intent.Entity == "" {
		entity, ok := s.resolveDefaultEntity(ctx)
		if !ok {
			return &domain.MetricResult{Text: "No financial data is loaded yet."}, nil
		}
		intent.Entity = entity
	}

	if intent.Metric.NeedsPeriod() && intent.Period.IsZero() {
		return &domain.MetricResult{
			Text: fmt.Sprintf("Please specify the month (e.g., June 2025) for %s.", intent.Metric.DisplayName()),
		}, nil
	}

	switch intent.Metric {
	case domain.MetricRevenueVsBudget:
		return s.metrics.RevenueVsBudget(ctx, intent.Period, intent.Entity)
	case domain.MetricGrossMarginTrend:
		return s.metrics.GrossMarginTrend(ctx, intent.Entity)
	case domain.MetricOpexBreakdown:
		return s.metrics.OpexBreakdown(ctx, intent.Period, intent.Entity)
	case domain.MetricEBITDATrend:
		return s.metrics.EBITDATrend(ctx, intent.Entity)
	case domain.MetricEBITDAVsBudget:
		return s.metrics.EBITDAVsBudget(ctx, intent.Period, intent.Entity)
	case domain.MetricCashRunway:
		return s.metrics.CashRunway(ctx, intent.Entity)
	default:
		return nil, fmt.Errorf("no calculator for metric %q", intent.Metric)
	}
}

// resolveDefaultEntity prefers the configured default when it matches a
// known entity, otherwise the first known entity. Metrics are never
// aggregated across entities.
func (s *queryService) resolveDefaultEntity(ctx context.Context) (string, bool) {
	entities := s.records.Entities(ctx)
	if len(entities) == 0 {
		return "", false
	}
	if s.defaultEntity != "" {
		for _, entity := range entities {
			if strings.EqualFold(entity, s.defaultEntity) {
				return entity, true
			}
		}
		s.LogWarn(ctx, "Configured default entity not present in data, falling back to first entity",
			slog.String("default_entity", s.defaultEntity),
			slog.String("fallback", entities[0]))
	}
	return entities[0], true
}
