package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/HamzaWajid1/cfo_copilot_app/internal/core/domain"
	portsrepo "github.com/HamzaWajid1/cfo_copilot_app/internal/core/ports/repositories"
)

type fxKey struct {
	period   domain.YearMonth
	currency string
}

type cashKey struct {
	period domain.YearMonth
	entity string
}

// SourceRows carries the parsed table contents used to build a RecordStore.
// Dropped seeds the store's stats with rows already excluded upstream (CSV
// lines that failed parsing), so diagnostics reflect the whole pipeline.
type SourceRows struct {
	Actuals []domain.LedgerRow
	Budget  []domain.LedgerRow
	FxRates []domain.FxRate
	Cash    []domain.CashBalance
	Dropped domain.LoadStats
}

// RecordStore is an immutable in-memory view over the four financial tables,
// keyed by (period, entity[, currency/category]). It is built once per
// session and safe for concurrent readers; nothing writes to it after
// construction.
type RecordStore struct {
	actuals []domain.LedgerRow
	budget  []domain.LedgerRow
	fx      map[fxKey]domain.FxRate
	cash    []domain.CashBalance
	stats   domain.LoadStats
}

// NewRecordStore scans each source table once, dropping and counting rows
// that miss a required field, carry an unrecognized category or non-positive
// rate, or lose a duplicate-key conflict (last row wins), and indexes what
// remains.
func NewRecordStore(src SourceRows) *RecordStore {
	s := &RecordStore{
		fx:    make(map[fxKey]domain.FxRate, len(src.FxRates)),
		stats: src.Dropped,
	}

	for _, row := range src.Actuals {
		if !row.Valid() || !row.KnownCategory() {
			s.stats.ActualsDropped++
			continue
		}
		s.actuals = append(s.actuals, row)
	}
	for _, row := range src.Budget {
		if !row.Valid() || !row.KnownCategory() {
			s.stats.BudgetDropped++
			continue
		}
		s.budget = append(s.budget, row)
	}

	for _, rate := range src.FxRates {
		if !rate.Valid() {
			s.stats.FxDropped++
			continue
		}
		key := fxKey{period: rate.Period, currency: strings.ToUpper(rate.Currency)}
		if _, exists := s.fx[key]; exists {
			s.stats.FxDropped++
		}
		s.fx[key] = rate
	}

	cashByKey := make(map[cashKey]domain.CashBalance, len(src.Cash))
	for _, balance := range src.Cash {
		if !balance.Valid() {
			s.stats.CashDropped++
			continue
		}
		key := cashKey{period: balance.Period, entity: strings.ToLower(balance.Entity)}
		if _, exists := cashByKey[key]; exists {
			s.stats.CashDropped++
		}
		cashByKey[key] = balance
	}
	s.cash = make([]domain.CashBalance, 0, len(cashByKey))
	for _, balance := range cashByKey {
		s.cash = append(s.cash, balance)
	}

	sortLedgerRows(s.actuals)
	sortLedgerRows(s.budget)
	sort.SliceStable(s.cash, func(i, j int) bool {
		if s.cash[i].Period != s.cash[j].Period {
			return s.cash[i].Period.Before(s.cash[j].Period)
		}
		return s.cash[i].Entity < s.cash[j].Entity
	})

	return s
}

// Ensure RecordStore implements the read facade
var _ portsrepo.RecordStoreFacade = (*RecordStore)(nil)

func sortLedgerRows(rows []domain.LedgerRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Period.Before(rows[j].Period)
	})
}

// ActualsForPeriod returns actuals rows for one (period, entity).
func (s *RecordStore) ActualsForPeriod(_ context.Context, period domain.YearMonth, entity string) []domain.LedgerRow {
	return filterLedgerRows(s.actuals, period, period, entity)
}

// ActualsInRange returns the entity's actuals ordered by period. A zero
// from/to leaves that side of the range open.
func (s *RecordStore) ActualsInRange(_ context.Context, from, to domain.YearMonth, entity string) []domain.LedgerRow {
	return filterLedgerRows(s.actuals, from, to, entity)
}

// BudgetForPeriod returns budget rows for one (period, entity).
func (s *RecordStore) BudgetForPeriod(_ context.Context, period domain.YearMonth, entity string) []domain.LedgerRow {
	return filterLedgerRows(s.budget, period, period, entity)
}

func filterLedgerRows(rows []domain.LedgerRow, from, to domain.YearMonth, entity string) []domain.LedgerRow {
	var matched []domain.LedgerRow
	for _, row := range rows {
		if !from.IsZero() && row.Period.Before(from) {
			continue
		}
		if !to.IsZero() && row.Period.After(to) {
			continue
		}
		if !strings.EqualFold(row.Entity, entity) {
			continue
		}
		matched = append(matched, row)
	}
	return matched
}

// FxRateFor returns the rate for the exact (period, currency) key.
func (s *RecordStore) FxRateFor(_ context.Context, period domain.YearMonth, currency string) (domain.FxRate, bool) {
	rate, ok := s.fx[fxKey{period: period, currency: strings.ToUpper(currency)}]
	return rate, ok
}

// LatestCashForEntity returns the entity's most recent balance by period.
func (s *RecordStore) LatestCashForEntity(_ context.Context, entity string) (domain.CashBalance, bool) {
	for i := len(s.cash) - 1; i >= 0; i-- {
		if strings.EqualFold(s.cash[i].Entity, entity) {
			return s.cash[i], true
		}
	}
	return domain.CashBalance{}, false
}

// LatestCashOverall returns the most recent balance across all entities.
func (s *RecordStore) LatestCashOverall(_ context.Context) (domain.CashBalance, bool) {
	if len(s.cash) == 0 {
		return domain.CashBalance{}, false
	}
	return s.cash[len(s.cash)-1], true
}

// Entities returns the distinct entity names across actuals and cash, sorted.
func (s *RecordStore) Entities(_ context.Context) []string {
	seen := make(map[string]string)
	for _, row := range s.actuals {
		key := strings.ToLower(row.Entity)
		if _, ok := seen[key]; !ok {
			seen[key] = row.Entity
		}
	}
	for _, balance := range s.cash {
		key := strings.ToLower(balance.Entity)
		if _, ok := seen[key]; !ok {
			seen[key] = balance.Entity
		}
	}
	entities := make([]string, 0, len(seen))
	for _, name := range seen {
		entities = append(entities, name)
	}
	sort.Strings(entities)
	return entities
}

// Periods returns the distinct actuals periods for the entity, sorted.
func (s *RecordStore) Periods(_ context.Context, entity string) []domain.YearMonth {
	seen := make(map[domain.YearMonth]struct{})
	var periods []domain.YearMonth
	for _, row := range s.actuals {
		if !strings.EqualFold(row.Entity, entity) {
			continue
		}
		if _, ok := seen[row.Period]; ok {
			continue
		}
		seen[row.Period] = struct{}{}
		periods = append(periods, row.Period)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Before(periods[j]) })
	return periods
}

// Stats reports how many source rows were dropped while loading.
func (s *RecordStore) Stats(_ context.Context) domain.LoadStats {
	return s.stats
}
