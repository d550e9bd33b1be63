package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/HamzaWajid1/cfo_copilot_app/internal/core/domain"
	"github.com/HamzaWajid1/cfo_copilot_app/internal/core/services"
	"github.com/HamzaWajid1/cfo_copilot_app/internal/repositories/memory"
)

func newIntentFixtureStore() *memory.RecordStore {
	jan := domain.YearMonth{Year: 2025, Month: time.January}
	return memory.NewRecordStore(memory.SourceRows{
		Actuals: []domain.LedgerRow{
			{Period: jan, Entity: "ParentCo", AccountCategory: domain.CategoryRevenue, Amount: decimal.NewFromInt(1), Currency: "USD"},
			{Period: jan, Entity: "EMEA", AccountCategory: domain.CategoryRevenue, Amount: decimal.NewFromInt(1), Currency: "EUR"},
		},
	})
}

func TestClassifyQuestions(t *testing.T) {
	svc := services.NewIntentService(newIntentFixtureStore())
	ctx := context.Background()
	june := domain.YearMonth{Year: 2025, Month: time.June}

	tests := []struct {
		name     string
		question string
		want     domain.QueryIntent
	}{
		{
			name:     "revenue vs budget with month name",
			question: "What was June 2025 revenue vs budget in USD?",
			want:     domain.QueryIntent{Metric: domain.MetricRevenueVsBudget, Period: june},
		},
		{
			name:     "revenue plus budget outranks margin keyword",
			question: "How did revenue and gross margin compare to budget?",
			want:     domain.QueryIntent{Metric: domain.MetricRevenueVsBudget},
		},
		{
			name:     "gross margin trend",
			question: "Show gross margin % trend for the last 3 months.",
			want:     domain.QueryIntent{Metric: domain.MetricGrossMarginTrend},
		},
		{
			name:     "opex breakdown with month name",
			question: "Break down Opex by category for June 2025.",
			want:     domain.QueryIntent{Metric: domain.MetricOpexBreakdown, Period: june},
		},
		{
			name:     "expenses with slash period and entity",
			question: "What were EMEA expenses in 6/2025?",
			want:     domain.QueryIntent{Metric: domain.MetricOpexBreakdown, Period: june, Entity: "EMEA"},
		},
		{
			name:     "ebitda trend",
			question: "How is EBITDA trending this year?",
			want:     domain.QueryIntent{Metric: domain.MetricEBITDATrend},
		},
		{
			name:     "ebitda vs budget with iso period",
			question: "Compare EBITDA against budget for 2025-06",
			want:     domain.QueryIntent{Metric: domain.MetricEBITDAVsBudget, Period: june},
		},
		{
			name:     "cash runway",
			question: "What is our cash runway right now?",
			want:     domain.QueryIntent{Metric: domain.MetricCashRunway},
		},
		{
			name:     "shouting is fine",
			question: "JUNE 2025 REVENUE VS BUDGET",
			want:     domain.QueryIntent{Metric: domain.MetricRevenueVsBudget, Period: june},
		},
		{
			name:     "nonsense month is treated as absent",
			question: "revenue vs budget for 13/2025",
			want:     domain.QueryIntent{Metric: domain.MetricRevenueVsBudget},
		},
		{
			name:     "first sorted entity wins on ties",
			question: "Opex for ParentCo and EMEA please",
			want:     domain.QueryIntent{Metric: domain.MetricOpexBreakdown, Entity: "EMEA"},
		},
		{
			name:     "gibberish",
			question: "asdkjhasd",
			want:     domain.QueryIntent{Metric: domain.MetricUnknown},
		},
		{
			name:     "off topic",
			question: "Tell me a joke about accountants in June 2025",
			want:     domain.QueryIntent{Metric: domain.MetricUnknown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.Classify(ctx, tt.question)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	svc := services.NewIntentService(newIntentFixtureStore())
	ctx := context.Background()

	question := "What was June 2025 revenue vs budget for EMEA?"
	first := svc.Classify(ctx, question)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, svc.Classify(ctx, question))
	}
}
