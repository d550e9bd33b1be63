package services

import (
	"context"

	"github.com/HamzaWajid1/cfo_copilot_app/internal/core/domain"
)

// MetricsSvcFacade defines the metric calculators. Every calculator resolves
// data-quality situations (no data, missing fx rates, zero denominators)
// into the returned MetricResult; a non-nil error signals a broken invariant
// rather than a bad question or bad data.
type MetricsSvcFacade interface {
	// RevenueVsBudget compares actual and budget revenue for one month.
	RevenueVsBudget(ctx context.Context, period domain.YearMonth, entity string) (*domain.MetricResult, error)

	// GrossMarginTrend computes (Revenue-COGS)/Revenue per month over all
	// available months. Months without revenue are omitted from the series.
	GrossMarginTrend(ctx context.Context, entity string) (*domain.MetricResult, error)

	// OpexBreakdown totals operating expenses by category for one month.
	OpexBreakdown(ctx context.Context, period domain.YearMonth, entity string) (*domain.MetricResult, error)

	// EBITDATrend computes Revenue-COGS-Opex per month over all months.
	EBITDATrend(ctx context.Context, entity string) (*domain.MetricResult, error)

	// EBITDAVsBudget compares actual and budget EBITDA for one month.
	EBITDAVsBudget(ctx context.Context, period domain.YearMonth, entity string) (*domain.MetricResult, error)

	// CashRunway divides the latest cash balance by the average net burn
	// over the trailing months of actuals.
	CashRunway(ctx context.Context, entity string) (*domain.MetricResult, error)
}
