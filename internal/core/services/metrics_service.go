package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/HamzaWajid1/cfo_copilot_app/internal/apperrors"
	"github.com/HamzaWajid1/cfo_copilot_app/internal/core/domain"
	portsrepo "github.com/HamzaWajid1/cfo_copilot_app/internal/core/ports/repositories"
	portssvc "github.com/HamzaWajid1/cfo_copilot_app/internal/core/ports/services"
	"github.com/HamzaWajid1/cfo_copilot_app/internal/utils"
)

// defaultBurnWindow is how many trailing months of net burn feed the runway
// average when the caller does not override it.
const defaultBurnWindow = 3

var hundred = decimal.NewFromInt(100)

// metricsService computes the metric vocabulary over USD-normalized actuals,
// budget and cash. Rows whose currency has no rate for their period are
// skipped and surface as a degraded result, never as an error.
type metricsService struct {
	BaseService
	records    portsrepo.RecordStoreFacade
	fx         portssvc.CurrencyConverterSvc
	burnWindow int
}

// MetricsServiceOption defines functional options for the metrics service
type MetricsServiceOption func(*metricsService)

// WithBurnWindow overrides the trailing window used for the runway burn
// average. Non-positive values are ignored.
func WithBurnWindow(months int) MetricsServiceOption {
	return func(s *metricsService) {
		if months > 0 {
			s.burnWindow = months
		}
	}
}

// NewMetricsService creates a new metrics calculation service
func NewMetricsService(records portsrepo.RecordStoreFacade, fx portssvc.CurrencyConverterSvc, options ...MetricsServiceOption) portssvc.MetricsSvcFacade {
	svc := &metricsService{
		records:    records,
		fx:         fx,
		burnWindow: defaultBurnWindow,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure metricsService implements the facade
var _ portssvc.MetricsSvcFacade = (*metricsService)(nil)

// periodSums accumulates one period's USD amounts by account category.
type periodSums struct {
	revenue decimal.Decimal
	cogs    decimal.Decimal
	opex    map[string]decimal.Decimal
}

func newPeriodSums() *periodSums {
	return &periodSums{opex: make(map[string]decimal.Decimal)}
}

func (p *periodSums) opexTotal() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range p.opex {
		total = total.Add(amount)
	}
	return total
}

func (p *periodSums) ebitda() decimal.Decimal {
	return p.revenue.Sub(p.cogs).Sub(p.opexTotal())
}

// netBurn is the cash consumed in a period; negative when the period was
// cash-flow positive.
func (p *periodSums) netBurn() decimal.Decimal {
	return p.cogs.Add(p.opexTotal()).Sub(p.revenue)
}

// sumByPeriod converts each row to USD and accumulates it under its period.
// Rows with no fx rate are skipped and reported through the degraded flag.
func (s *metricsService) sumByPeriod(ctx context.Context, rows []domain.LedgerRow) (map[domain.YearMonth]*periodSums, bool, error) {
	sums := make(map[domain.YearMonth]*periodSums)
	degraded := false

	for _, row := range rows {
		amount, err := s.fx.ToUSD(ctx, row.Amount, row.Currency, row.Period)
		if err != nil {
			if errors.Is(err, apperrors.ErrMissingRate) {
				degraded = true
				s.LogDebug(ctx, "Skipping row with no fx rate for its period",
					slog.String("currency", row.Currency),
					slog.String("period", row.Period.String()),
					slog.String("entity", row.Entity))
				continue
			}
			return nil, degraded, err
		}

		ps, ok := sums[row.Period]
		if !ok {
			ps = newPeriodSums()
			sums[row.Period] = ps
		}
		switch {
		case row.AccountCategory == domain.CategoryRevenue:
			ps.revenue = ps.revenue.Add(amount)
		case row.AccountCategory == domain.CategoryCOGS:
			ps.cogs = ps.cogs.Add(amount)
		case row.IsOpex():
			ps.opex[row.AccountCategory] = ps.opex[row.AccountCategory].Add(amount)
		}
	}

	return sums, degraded, nil
}

func sortedPeriods(sums map[domain.YearMonth]*periodSums) []domain.YearMonth {
	periods := make([]domain.YearMonth, 0, len(sums))
	for period := range sums {
		periods = append(periods, period)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Before(periods[j]) })
	return periods
}

func revenueAt(sums map[domain.YearMonth]*periodSums, period domain.YearMonth) decimal.Decimal {
	if ps, ok := sums[period]; ok {
		return ps.revenue
	}
	return decimal.Zero
}

func ebitdaAt(sums map[domain.YearMonth]*periodSums, period domain.YearMonth) decimal.Decimal {
	if ps, ok := sums[period]; ok {
		return ps.ebitda()
	}
	return decimal.Zero
}

// signedPercent renders a variance with an explicit sign, "+4.2%" / "-1.3%".
func signedPercent(value decimal.Decimal) string {
	if value.IsPositive() {
		return "+" + utils.FormatPercent(value)
	}
	return utils.FormatPercent(value)
}

// varianceText states actual-vs-budget variance in percent, or "n/a" when
// the budget is zero and the ratio is undefined.
func varianceText(actual, budget decimal.Decimal) string {
	if budget.IsZero() {
		return "n/a"
	}
	variance := actual.Sub(budget).Div(budget).Mul(hundred)
	return signedPercent(variance)
}

// RevenueVsBudget compares one month's USD revenue against its budget.
func (s *metricsService) RevenueVsBudget(ctx context.Context, period domain.YearMonth, entity string) (*domain.MetricResult, error) {
	actualRows := s.records.ActualsForPeriod(ctx, period, entity)
	budgetRows := s.records.BudgetForPeriod(ctx, period, entity)
	if len(actualRows) == 0 && len(budgetRows) == 0 {
		return &domain.MetricResult{
			Text: fmt.Sprintf("No actuals or budget recorded for %s in %s.", entity, period.Human()),
		}, nil
	}

	actualSums, actualDegraded, err := s.sumByPeriod(ctx, actualRows)
	if err != nil {
		s.LogError(ctx, err, "Failed to normalize actuals", slog.String("entity", entity))
		return nil, err
	}
	budgetSums, budgetDegraded, err := s.sumByPeriod(ctx, budgetRows)
	if err != nil {
		s.LogError(ctx, err, "Failed to normalize budget", slog.String("entity", entity))
		return nil, err
	}
	if len(actualSums) == 0 && len(budgetSums) == 0 {
		return &domain.MetricResult{
			Text:     fmt.Sprintf("No usable actuals or budget for %s in %s: every row is missing an fx rate.", entity, period.Human()),
			Degraded: actualDegraded || budgetDegraded,
		}, nil
	}

	actual := revenueAt(actualSums, period)
	budget := revenueAt(budgetSums, period)

	return &domain.MetricResult{
		Text: fmt.Sprintf("%s revenue for %s: actual %s vs budget %s (%s vs budget).",
			period.Human(), entity, utils.FormatUSD(actual), utils.FormatUSD(budget), varianceText(actual, budget)),
		Series: []domain.SeriesPoint{
			{Period: period, Label: "Actual", Value: actual},
			{Period: period, Label: "Budget", Value: budget},
		},
		Degraded: actualDegraded || budgetDegraded,
	}, nil
}

// GrossMarginTrend computes (revenue - COGS) / revenue per month across the
// entity's whole history. Months with zero revenue are omitted from the
// series and named in the text instead of producing an undefined ratio.
func (s *metricsService) GrossMarginTrend(ctx context.Context, entity string) (*domain.MetricResult, error) {
	rows := s.records.ActualsInRange(ctx, domain.YearMonth{}, domain.YearMonth{}, entity)
	if len(rows) == 0 {
		return &domain.MetricResult{
			Text: fmt.Sprintf("No actuals recorded for %s.", entity),
		}, nil
	}

	sums, degraded, err := s.sumByPeriod(ctx, rows)
	if err != nil {
		s.LogError(ctx, err, "Failed to normalize actuals", slog.String("entity", entity))
		return nil, err
	}
	if len(sums) == 0 {
		return &domain.MetricResult{
			Text:     fmt.Sprintf("No usable actuals for %s: every row is missing an fx rate.", entity),
			Degraded: degraded,
		}, nil
	}

	var series []domain.SeriesPoint
	var skipped []string
	for _, period := range sortedPeriods(sums) {
		ps := sums[period]
		if ps.revenue.IsZero() {
			skipped = append(skipped, period.Human())
			continue
		}
		margin := ps.revenue.Sub(ps.cogs).Div(ps.revenue).Mul(hundred)
		series = append(series, domain.SeriesPoint{Period: period, Label: period.Human(), Value: margin})
	}

	if len(series) == 0 {
		return &domain.MetricResult{
			Text:     fmt.Sprintf("Gross margin is not computable for %s: no month has revenue.", entity),
			Degraded: degraded,
		}, nil
	}

	latest := series[len(series)-1]
	text := fmt.Sprintf("Gross margin %% for %s over %d months: latest %s in %s.",
		entity, len(series), utils.FormatPercent(latest.Value), latest.Period.Human())
	if len(skipped) > 0 {
		text += fmt.Sprintf(" Months with no revenue omitted: %s.", strings.Join(skipped, ", "))
	}

	return &domain.MetricResult{Text: text, Series: series, Degraded: degraded}, nil
}

// OpexBreakdown totals one month's operating expenses per category.
func (s *metricsService) OpexBreakdown(ctx context.Context, period domain.YearMonth, entity string) (*domain.MetricResult, error) {
	rows := s.records.ActualsForPeriod(ctx, period, entity)
	sums, degraded, err := s.sumByPeriod(ctx, rows)
	if err != nil {
		s.LogError(ctx, err, "Failed to normalize actuals", slog.String("entity", entity))
		return nil, err
	}

	ps := sums[period]
	if ps == nil || len(ps.opex) == 0 {
		return &domain.MetricResult{
			Text:     fmt.Sprintf("No operating expenses recorded for %s in %s.", entity, period.Human()),
			Degraded: degraded,
		}, nil
	}

	categories := make([]string, 0, len(ps.opex))
	for category := range ps.opex {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	series := make([]domain.SeriesPoint, 0, len(categories))
	parts := make([]string, 0, len(categories))
	for _, category := range categories {
		amount := ps.opex[category]
		series = append(series, domain.SeriesPoint{Period: period, Label: category, Value: amount})
		parts = append(parts, fmt.Sprintf("%s %s", category, utils.FormatUSD(amount)))
	}

	return &domain.MetricResult{
		Text: fmt.Sprintf("Opex for %s in %s: %s. Total %s.",
			entity, period.Human(), strings.Join(parts, ", "), utils.FormatUSD(ps.opexTotal())),
		Series:   series,
		Degraded: degraded,
	}, nil
}

// EBITDATrend computes revenue - COGS - total opex per month across the
// entity's whole history.
func (s *metricsService) EBITDATrend(ctx context.Context, entity string) (*domain.MetricResult, error) {
	rows := s.records.ActualsInRange(ctx, domain.YearMonth{}, domain.YearMonth{}, entity)
	if len(rows) == 0 {
		return &domain.MetricResult{
			Text: fmt.Sprintf("No actuals recorded for %s.", entity),
		}, nil
	}

	sums, degraded, err := s.sumByPeriod(ctx, rows)
	if err != nil {
		s.LogError(ctx, err, "Failed to normalize actuals", slog.String("entity", entity))
		return nil, err
	}
	if len(sums) == 0 {
		return &domain.MetricResult{
			Text:     fmt.Sprintf("No usable actuals for %s: every row is missing an fx rate.", entity),
			Degraded: degraded,
		}, nil
	}

	periods := sortedPeriods(sums)
	series := make([]domain.SeriesPoint, 0, len(periods))
	for _, period := range periods {
		series = append(series, domain.SeriesPoint{Period: period, Label: period.Human(), Value: sums[period].ebitda()})
	}

	latest := series[len(series)-1]
	return &domain.MetricResult{
		Text: fmt.Sprintf("EBITDA for %s over %d months: latest %s in %s.",
			entity, len(series), utils.FormatUSD(latest.Value), latest.Period.Human()),
		Series:   series,
		Degraded: degraded,
	}, nil
}

// EBITDAVsBudget compares one month's EBITDA against the budgeted figure.
func (s *metricsService) EBITDAVsBudget(ctx context.Context, period domain.YearMonth, entity string) (*domain.MetricResult, error) {
	actualRows := s.records.ActualsForPeriod(ctx, period, entity)
	budgetRows := s.records.BudgetForPeriod(ctx, period, entity)
	if len(actualRows) == 0 && len(budgetRows) == 0 {
		return &domain.MetricResult{
			Text: fmt.Sprintf("No actuals or budget recorded for %s in %s.", entity, period.Human()),
		}, nil
	}

	actualSums, actualDegraded, err := s.sumByPeriod(ctx, actualRows)
	if err != nil {
		s.LogError(ctx, err, "Failed to normalize actuals", slog.String("entity", entity))
		return nil, err
	}
	budgetSums, budgetDegraded, err := s.sumByPeriod(ctx, budgetRows)
	if err != nil {
		s.LogError(ctx, err, "Failed to normalize budget", slog.String("entity", entity))
		return nil, err
	}
	if len(actualSums) == 0 && len(budgetSums) == 0 {
		return &domain.MetricResult{
			Text:     fmt.Sprintf("No usable actuals or budget for %s in %s: every row is missing an fx rate.", entity, period.Human()),
			Degraded: actualDegraded || budgetDegraded,
		}, nil
	}

	actual := ebitdaAt(actualSums, period)
	budget := ebitdaAt(budgetSums, period)

	return &domain.MetricResult{
		Text: fmt.Sprintf("%s EBITDA for %s: actual %s vs budget %s (%s vs budget).",
			period.Human(), entity, utils.FormatUSD(actual), utils.FormatUSD(budget), varianceText(actual, budget)),
		Series: []domain.SeriesPoint{
			{Period: period, Label: "Actual", Value: actual},
			{Period: period, Label: "Budget", Value: budget},
		},
		Degraded: actualDegraded || budgetDegraded,
	}, nil
}

// CashRunway divides the latest cash balance by the average net burn over
// the trailing months. When the entity holds no cash balances the latest
// balance across all entities stands in. A zero or negative burn makes the
// ratio meaningless, so the answer says that instead of a number.
func (s *metricsService) CashRunway(ctx context.Context, entity string) (*domain.MetricResult, error) {
	balance, ok := s.records.LatestCashForEntity(ctx, entity)
	if !ok {
		balance, ok = s.records.LatestCashOverall(ctx)
	}
	if !ok {
		return &domain.MetricResult{
			Text: "No cash balances recorded; cannot compute runway.",
		}, nil
	}

	rows := s.records.ActualsInRange(ctx, domain.YearMonth{}, domain.YearMonth{}, entity)
	if len(rows) == 0 {
		return &domain.MetricResult{
			Text: fmt.Sprintf("No actuals recorded for %s; cannot compute net burn.", entity),
		}, nil
	}

	sums, degraded, err := s.sumByPeriod(ctx, rows)
	if err != nil {
		s.LogError(ctx, err, "Failed to normalize actuals", slog.String("entity", entity))
		return nil, err
	}
	if len(sums) == 0 {
		return &domain.MetricResult{
			Text:     fmt.Sprintf("No usable actuals for %s: every row is missing an fx rate.", entity),
			Degraded: degraded,
		}, nil
	}

	periods := sortedPeriods(sums)
	series := make([]domain.SeriesPoint, 0, len(periods))
	for _, period := range periods {
		series = append(series, domain.SeriesPoint{Period: period, Label: period.Human(), Value: sums[period].netBurn()})
	}

	window := s.burnWindow
	if window > len(periods) {
		window = len(periods)
	}
	totalBurn := decimal.Zero
	for _, period := range periods[len(periods)-window:] {
		totalBurn = totalBurn.Add(sums[period].netBurn())
	}
	avgBurn := totalBurn.Div(decimal.NewFromInt(int64(window)))

	if !avgBurn.IsPositive() {
		return &domain.MetricResult{
			Text: fmt.Sprintf("Cash runway for %s: not applicable, average net burn over the last %d months is zero or negative (cash-flow positive).",
				entity, window),
			Series:   series,
			Degraded: degraded,
		}, nil
	}

	runway := balance.CashUSD.Div(avgBurn)
	return &domain.MetricResult{
		Text: fmt.Sprintf("Cash runway for %s: %s months (cash %s as of %s, average net burn %s over the last %d months).",
			entity, runway.StringFixed(1), utils.FormatUSD(balance.CashUSD), balance.Period.Human(), utils.FormatUSD(avgBurn), window),
		Series:   series,
		Degraded: degraded,
	}, nil
}
