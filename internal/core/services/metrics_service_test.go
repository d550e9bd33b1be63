package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/HamzaWajid1/cfo_copilot_app/internal/core/domain"
	portssvc "github.com/HamzaWajid1/cfo_copilot_app/internal/core/ports/services"
	"github.com/HamzaWajid1/cfo_copilot_app/internal/core/services"
	"github.com/HamzaWajid1/cfo_copilot_app/internal/repositories/memory"
)

func row(period domain.YearMonth, entity, category string, amount int64, currency string) domain.LedgerRow {
	return domain.LedgerRow{
		Period:          period,
		Entity:          entity,
		AccountCategory: category,
		Amount:          decimal.NewFromInt(amount),
		Currency:        currency,
	}
}

type MetricsServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	service portssvc.MetricsSvcFacade

	april domain.YearMonth
	may   domain.YearMonth
	june  domain.YearMonth
	july  domain.YearMonth
}

func (s *MetricsServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.april = domain.YearMonth{Year: 2025, Month: time.April}
	s.may = domain.YearMonth{Year: 2025, Month: time.May}
	s.june = domain.YearMonth{Year: 2025, Month: time.June}
	s.july = domain.YearMonth{Year: 2025, Month: time.July}

	store := memory.NewRecordStore(memory.SourceRows{
		Actuals: []domain.LedgerRow{
			row(s.april, "ParentCo", domain.CategoryRevenue, 100000, "USD"),
			row(s.april, "ParentCo", domain.CategoryCOGS, 40000, "USD"),
			row(s.april, "ParentCo", "Opex:Sales", 50000, "USD"),
			row(s.april, "ParentCo", "Opex:R&D", 30000, "USD"),

			row(s.may, "ParentCo", domain.CategoryRevenue, 120000, "USD"),
			row(s.may, "ParentCo", domain.CategoryCOGS, 48000, "USD"),
			row(s.may, "ParentCo", "Opex:Sales", 55000, "USD"),
			row(s.may, "ParentCo", "Opex:R&D", 35000, "USD"),

			row(s.june, "ParentCo", domain.CategoryRevenue, 150000, "USD"),
			row(s.june, "ParentCo", domain.CategoryCOGS, 45000, "USD"),
			row(s.june, "ParentCo", "Opex:Sales", 60000, "USD"),
			row(s.june, "ParentCo", "Opex:R&D", 30000, "USD"),
			row(s.june, "ParentCo", "Opex:Admin", 15000, "USD"),

			// EMEA books in EUR; May has no published rate
			row(s.may, "EMEA", domain.CategoryRevenue, 9000, "EUR"),
			row(s.june, "EMEA", domain.CategoryRevenue, 10000, "EUR"),

			row(s.june, "APAC", domain.CategoryRevenue, 5000, "USD"),
			row(s.june, "APAC", domain.CategoryCOGS, 6000, "USD"),

			row(s.june, "ZeroRev", domain.CategoryCOGS, 5000, "USD"),

			row(s.june, "Profitable", domain.CategoryRevenue, 50000, "USD"),
			row(s.june, "Profitable", domain.CategoryCOGS, 10000, "USD"),
		},
		Budget: []domain.LedgerRow{
			row(s.june, "ParentCo", domain.CategoryRevenue, 140000, "USD"),
			row(s.june, "ParentCo", domain.CategoryCOGS, 40000, "USD"),
			row(s.june, "ParentCo", "Opex:Sales", 55000, "USD"),
			row(s.june, "ParentCo", "Opex:R&D", 28000, "USD"),
			row(s.june, "ParentCo", "Opex:Admin", 15000, "USD"),
		},
		FxRates: []domain.FxRate{
			{Period: s.june, Currency: "EUR", RateToUSD: decimal.NewFromFloat(1.10)},
		},
		Cash: []domain.CashBalance{
			{Period: s.may, Entity: "ParentCo", CashUSD: decimal.NewFromInt(210000)},
			{Period: s.june, Entity: "ParentCo", CashUSD: decimal.NewFromInt(200000)},
			{Period: s.june, Entity: "EMEA", CashUSD: decimal.NewFromInt(50000)},
		},
	})

	s.service = services.NewMetricsService(store, services.NewFxService(store))
}

func (s *MetricsServiceTestSuite) TestRevenueVsBudget() {
	result, err := s.service.RevenueVsBudget(s.ctx, s.june, "ParentCo")
	s.Require().NoError(err)

	s.Contains(result.Text, "June 2025 revenue for ParentCo")
	s.Contains(result.Text, "$150,000")
	s.Contains(result.Text, "$140,000")
	s.Contains(result.Text, "+7.1%")
	s.False(result.Degraded)

	s.Require().Len(result.Series, 2)
	s.Equal("Actual", result.Series[0].Label)
	s.True(result.Series[0].Value.Equal(decimal.NewFromInt(150000)))
	s.Equal("Budget", result.Series[1].Label)
	s.True(result.Series[1].Value.Equal(decimal.NewFromInt(140000)))
}

func (s *MetricsServiceTestSuite) TestRevenueVsBudgetNoData() {
	result, err := s.service.RevenueVsBudget(s.ctx, s.july, "ParentCo")
	s.Require().NoError(err)

	s.Equal("No actuals or budget recorded for ParentCo in July 2025.", result.Text)
	s.Empty(result.Series)
	s.False(result.Degraded)
}

func (s *MetricsServiceTestSuite) TestRevenueVsBudgetZeroBudgetReportsNA() {
	result, err := s.service.RevenueVsBudget(s.ctx, s.april, "ParentCo")
	s.Require().NoError(err)

	s.Contains(result.Text, "(n/a vs budget)")
	s.Require().Len(result.Series, 2)
	s.True(result.Series[1].Value.IsZero())
}

func (s *MetricsServiceTestSuite) TestRevenueVsBudgetAllRowsMissingRates() {
	result, err := s.service.RevenueVsBudget(s.ctx, s.may, "EMEA")
	s.Require().NoError(err)

	s.Equal("No usable actuals or budget for EMEA in May 2025: every row is missing an fx rate.", result.Text)
	s.Empty(result.Series)
	s.True(result.Degraded)
}

func (s *MetricsServiceTestSuite) TestGrossMarginTrend() {
	result, err := s.service.GrossMarginTrend(s.ctx, "ParentCo")
	s.Require().NoError(err)
	s.False(result.Degraded)

	s.Require().Len(result.Series, 3)
	s.Equal(s.april, result.Series[0].Period)
	s.True(result.Series[0].Value.Equal(decimal.NewFromInt(60)), "april margin, got %s", result.Series[0].Value)
	s.True(result.Series[1].Value.Equal(decimal.NewFromInt(60)), "may margin, got %s", result.Series[1].Value)
	s.True(result.Series[2].Value.Equal(decimal.NewFromInt(70)), "june margin, got %s", result.Series[2].Value)
	s.Contains(result.Text, "latest 70.0% in June 2025")
}

func (s *MetricsServiceTestSuite) TestGrossMarginTrendNoRevenueMonths() {
	result, err := s.service.GrossMarginTrend(s.ctx, "ZeroRev")
	s.Require().NoError(err)

	s.Contains(result.Text, "no month has revenue")
	s.Empty(result.Series)
}

func (s *MetricsServiceTestSuite) TestOpexBreakdown() {
	result, err := s.service.OpexBreakdown(s.ctx, s.june, "ParentCo")
	s.Require().NoError(err)
	s.False(result.Degraded)

	s.Require().Len(result.Series, 3)
	s.Equal("Opex:Admin", result.Series[0].Label)
	s.Equal("Opex:R&D", result.Series[1].Label)
	s.Equal("Opex:Sales", result.Series[2].Label)
	s.True(result.Series[2].Value.Equal(decimal.NewFromInt(60000)))
	s.Contains(result.Text, "Total $105,000.")

	sum := decimal.Zero
	for _, point := range result.Series {
		sum = sum.Add(point.Value)
	}
	s.True(sum.Equal(decimal.NewFromInt(105000)), "category points must sum to the stated total, got %s", sum)
}

func (s *MetricsServiceTestSuite) TestOpexBreakdownNothingRecorded() {
	result, err := s.service.OpexBreakdown(s.ctx, s.june, "EMEA")
	s.Require().NoError(err)

	s.Equal("No operating expenses recorded for EMEA in June 2025.", result.Text)
	s.Empty(result.Series)
	s.False(result.Degraded)
}

func (s *MetricsServiceTestSuite) TestOpexBreakdownDegradesOnMissingRate() {
	result, err := s.service.OpexBreakdown(s.ctx, s.may, "EMEA")
	s.Require().NoError(err)

	s.True(result.Degraded, "the May EUR row has no rate and must be skipped, not fatal")
	s.Contains(result.Text, "No operating expenses recorded")
}

func (s *MetricsServiceTestSuite) TestEBITDATrend() {
	result, err := s.service.EBITDATrend(s.ctx, "ParentCo")
	s.Require().NoError(err)

	s.Require().Len(result.Series, 3)
	s.True(result.Series[0].Value.Equal(decimal.NewFromInt(-20000)), "april ebitda, got %s", result.Series[0].Value)
	s.True(result.Series[1].Value.Equal(decimal.NewFromInt(-18000)), "may ebitda, got %s", result.Series[1].Value)
	s.True(result.Series[2].Value.Equal(decimal.NewFromInt(0)), "june ebitda, got %s", result.Series[2].Value)
	s.Contains(result.Text, "latest $0 in June 2025")
}

func (s *MetricsServiceTestSuite) TestEBITDAVsBudget() {
	result, err := s.service.EBITDAVsBudget(s.ctx, s.june, "ParentCo")
	s.Require().NoError(err)

	s.Contains(result.Text, "June 2025 EBITDA for ParentCo")
	s.Contains(result.Text, "actual $0 vs budget $2,000")
	s.Contains(result.Text, "-100.0%")
	s.Require().Len(result.Series, 2)
	s.True(result.Series[1].Value.Equal(decimal.NewFromInt(2000)))
}

func (s *MetricsServiceTestSuite) TestCashRunway() {
	result, err := s.service.CashRunway(s.ctx, "ParentCo")
	s.Require().NoError(err)
	s.False(result.Degraded)

	s.Contains(result.Text, "Cash runway for ParentCo: 15.8 months")
	s.Contains(result.Text, "cash $200,000 as of June 2025")
	s.Contains(result.Text, "average net burn $12,667")

	s.Require().Len(result.Series, 3)
	s.True(result.Series[0].Value.Equal(decimal.NewFromInt(20000)), "april burn, got %s", result.Series[0].Value)
	s.True(result.Series[1].Value.Equal(decimal.NewFromInt(18000)), "may burn, got %s", result.Series[1].Value)
	s.True(result.Series[2].Value.Equal(decimal.NewFromInt(0)), "june burn, got %s", result.Series[2].Value)
}

func (s *MetricsServiceTestSuite) TestCashRunwayFallsBackToLatestOverallCash() {
	result, err := s.service.CashRunway(s.ctx, "APAC")
	s.Require().NoError(err)

	// APAC holds no cash rows, so the latest balance overall stands in
	s.Contains(result.Text, "Cash runway for APAC: 200.0 months")
	s.Contains(result.Text, "cash $200,000")
}

func (s *MetricsServiceTestSuite) TestCashRunwayCashFlowPositive() {
	result, err := s.service.CashRunway(s.ctx, "Profitable")
	s.Require().NoError(err)

	s.Contains(result.Text, "not applicable")
	s.NotContains(result.Text, "months (cash")
	s.Require().Len(result.Series, 1)
	s.True(result.Series[0].Value.IsNegative())
}

func (s *MetricsServiceTestSuite) TestCashRunwayNoCashRecorded() {
	store := memory.NewRecordStore(memory.SourceRows{
		Actuals: []domain.LedgerRow{
			row(s.june, "ParentCo", domain.CategoryRevenue, 1000, "USD"),
		},
	})
	service := services.NewMetricsService(store, services.NewFxService(store))

	result, err := service.CashRunway(s.ctx, "ParentCo")
	s.Require().NoError(err)
	s.Equal("No cash balances recorded; cannot compute runway.", result.Text)
}

func (s *MetricsServiceTestSuite) TestMissingRateDegradesTrend() {
	result, err := s.service.GrossMarginTrend(s.ctx, "EMEA")
	s.Require().NoError(err)

	s.True(result.Degraded)
	s.Require().Len(result.Series, 1, "the May row has no rate and drops out")
	s.Equal(s.june, result.Series[0].Period)
	s.True(result.Series[0].Value.Equal(decimal.NewFromInt(100)), "all-revenue month margin, got %s", result.Series[0].Value)
}

func (s *MetricsServiceTestSuite) TestGarbageRowsDoNotAlterTotals() {
	clean := []domain.LedgerRow{
		row(s.june, "ParentCo", domain.CategoryRevenue, 150000, "USD"),
		row(s.june, "ParentCo", domain.CategoryCOGS, 45000, "USD"),
		row(s.june, "ParentCo", "Opex:Sales", 60000, "USD"),
	}
	garbage := []domain.LedgerRow{
		{Period: s.june, Entity: "ParentCo", AccountCategory: "Depreciation", Amount: decimal.NewFromInt(99999), Currency: "USD"},
		{Period: s.june, Entity: "", AccountCategory: domain.CategoryRevenue, Amount: decimal.NewFromInt(99999), Currency: "USD"},
		{Entity: "ParentCo", AccountCategory: domain.CategoryRevenue, Amount: decimal.NewFromInt(99999), Currency: "USD"},
	}

	cleanStore := memory.NewRecordStore(memory.SourceRows{Actuals: clean})
	dirtyStore := memory.NewRecordStore(memory.SourceRows{Actuals: append(append([]domain.LedgerRow{}, clean...), garbage...)})

	cleanService := services.NewMetricsService(cleanStore, services.NewFxService(cleanStore))
	dirtyService := services.NewMetricsService(dirtyStore, services.NewFxService(dirtyStore))

	want, err := cleanService.EBITDATrend(s.ctx, "ParentCo")
	s.Require().NoError(err)
	got, err := dirtyService.EBITDATrend(s.ctx, "ParentCo")
	s.Require().NoError(err)

	s.Equal(want, got, "dropped rows must not leak into any total")
	s.Equal(3, dirtyStore.Stats(s.ctx).ActualsDropped)
}

func (s *MetricsServiceTestSuite) TestAnswersAreDeterministic() {
	first, err := s.service.OpexBreakdown(s.ctx, s.june, "ParentCo")
	s.Require().NoError(err)
	second, err := s.service.OpexBreakdown(s.ctx, s.june, "ParentCo")
	s.Require().NoError(err)
	s.Equal(first, second)

	firstRunway, err := s.service.CashRunway(s.ctx, "ParentCo")
	s.Require().NoError(err)
	secondRunway, err := s.service.CashRunway(s.ctx, "ParentCo")
	s.Require().NoError(err)
	s.Equal(firstRunway, secondRunway)
}

func (s *MetricsServiceTestSuite) TestBurnWindowOption() {
	store := memory.NewRecordStore(memory.SourceRows{
		Actuals: []domain.LedgerRow{
			row(s.may, "ParentCo", domain.CategoryCOGS, 30000, "USD"),
			row(s.june, "ParentCo", domain.CategoryCOGS, 10000, "USD"),
		},
		Cash: []domain.CashBalance{
			{Period: s.june, Entity: "ParentCo", CashUSD: decimal.NewFromInt(100000)},
		},
	})
	service := services.NewMetricsService(store, services.NewFxService(store), services.WithBurnWindow(1))

	result, err := service.CashRunway(s.ctx, "ParentCo")
	s.Require().NoError(err)

	// window 1 uses June's burn only: 100000 / 10000
	s.Contains(result.Text, "10.0 months")
	s.Contains(result.Text, "last 1 months")
}

func TestMetricsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MetricsServiceTestSuite))
}
