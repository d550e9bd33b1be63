package repositories

import (
	"context"

	"github.com/HamzaWajid1/cfo_copilot_app/internal/core/domain"
)

// LedgerReader defines read operations over the actuals and budget tables.
// A zero from/to in ActualsInRange means unbounded on that side.
type LedgerReader interface {
	// ActualsForPeriod returns actuals rows for one (period, entity).
	ActualsForPeriod(ctx context.Context, period domain.YearMonth, entity string) []domain.LedgerRow

	// ActualsInRange returns actuals rows for the entity ordered by period.
	ActualsInRange(ctx context.Context, from, to domain.YearMonth, entity string) []domain.LedgerRow

	// BudgetForPeriod returns budget rows for one (period, entity).
	BudgetForPeriod(ctx context.Context, period domain.YearMonth, entity string) []domain.LedgerRow

	// Entities returns the distinct entity names present, sorted.
	Entities(ctx context.Context) []string

	// Periods returns the distinct actuals periods for the entity, sorted.
	Periods(ctx context.Context, entity string) []domain.YearMonth
}

// FxRateReader defines read operations over the fx table.
type FxRateReader interface {
	// FxRateFor returns the rate for the exact (period, currency) key.
	FxRateFor(ctx context.Context, period domain.YearMonth, currency string) (domain.FxRate, bool)
}

// CashReader defines read operations over the cash table.
type CashReader interface {
	// LatestCashForEntity returns the entity's most recent balance by period.
	LatestCashForEntity(ctx context.Context, entity string) (domain.CashBalance, bool)

	// LatestCashOverall returns the most recent balance across all entities.
	LatestCashOverall(ctx context.Context) (domain.CashBalance, bool)
}

// RecordStoreFacade combines all record store read interfaces. The store is
// loaded once per session and held read-only, so there is no writer side.
type RecordStoreFacade interface {
	LedgerReader
	FxRateReader
	CashReader

	// Stats reports how many source rows were dropped while loading.
	Stats(ctx context.Context) domain.LoadStats
}
