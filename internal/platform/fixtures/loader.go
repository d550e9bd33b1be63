package fixtures

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/HamzaWajid1/cfo_copilot_app/internal/core/domain"
)

// Fixture file names. Actuals also load from the legacy name when the
// preferred one is absent.
const (
	ActualsFile       = "actuals.csv"
	LegacyActualsFile = "data.csv"
	BudgetFile        = "budget.csv"
	FxFile            = "fx.csv"
	CashFile          = "cash.csv"
)

// Tables holds the parsed fixture rows plus how many lines failed parsing.
// Semantic validation (missing fields, unknown categories, duplicates)
// happens in the record store; this layer only rejects what it cannot parse.
type Tables struct {
	Actuals []domain.LedgerRow
	Budget  []domain.LedgerRow
	FxRates []domain.FxRate
	Cash    []domain.CashBalance
	Dropped domain.LoadStats
}

// Load reads the four fixture files from dir concurrently. A missing or
// malformed file is a hard error; a malformed line only drops that line.
func Load(ctx context.Context, dir string) (*Tables, error) {
	tables := &Tables{}
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, dropped, err := loadLedgerFile(actualsPath(dir))
		if err != nil {
			return err
		}
		tables.Actuals = rows
		tables.Dropped.ActualsDropped = dropped
		return nil
	})
	g.Go(func() error {
		rows, dropped, err := loadLedgerFile(filepath.Join(dir, BudgetFile))
		if err != nil {
			return err
		}
		tables.Budget = rows
		tables.Dropped.BudgetDropped = dropped
		return nil
	})
	g.Go(func() error {
		rates, dropped, err := loadFxFile(filepath.Join(dir, FxFile))
		if err != nil {
			return err
		}
		tables.FxRates = rates
		tables.Dropped.FxDropped = dropped
		return nil
	})
	g.Go(func() error {
		balances, dropped, err := loadCashFile(filepath.Join(dir, CashFile))
		if err != nil {
			return err
		}
		tables.Cash = balances
		tables.Dropped.CashDropped = dropped
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

func actualsPath(dir string) string {
	path := filepath.Join(dir, ActualsFile)
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return filepath.Join(dir, LegacyActualsFile)
}

func loadLedgerFile(path string) ([]domain.LedgerRow, int, error) {
	records, cols, dropped, err := readTable(path, "month", "entity", "account_category", "amount", "currency")
	if err != nil {
		return nil, 0, err
	}

	var rows []domain.LedgerRow
	for _, record := range records {
		period, perr := domain.ParseYearMonth(field(record, cols["month"]))
		amount, aerr := decimal.NewFromString(strings.TrimSpace(field(record, cols["amount"])))
		if perr != nil || aerr != nil {
			dropped++
			continue
		}
		rows = append(rows, domain.LedgerRow{
			Period:          period,
			Entity:          strings.TrimSpace(field(record, cols["entity"])),
			AccountCategory: strings.TrimSpace(field(record, cols["account_category"])),
			Amount:          amount,
			Currency:        strings.TrimSpace(field(record, cols["currency"])),
		})
	}
	return rows, dropped, nil
}

func loadFxFile(path string) ([]domain.FxRate, int, error) {
	records, cols, dropped, err := readTable(path, "month", "currency", "rate_to_usd")
	if err != nil {
		return nil, 0, err
	}

	var rates []domain.FxRate
	for _, record := range records {
		period, perr := domain.ParseYearMonth(field(record, cols["month"]))
		rate, rerr := decimal.NewFromString(strings.TrimSpace(field(record, cols["rate_to_usd"])))
		if perr != nil || rerr != nil {
			dropped++
			continue
		}
		rates = append(rates, domain.FxRate{
			Period:    period,
			Currency:  strings.TrimSpace(field(record, cols["currency"])),
			RateToUSD: rate,
		})
	}
	return rates, dropped, nil
}

func loadCashFile(path string) ([]domain.CashBalance, int, error) {
	records, cols, dropped, err := readTable(path, "month", "entity", "cash_usd")
	if err != nil {
		return nil, 0, err
	}

	var balances []domain.CashBalance
	for _, record := range records {
		period, perr := domain.ParseYearMonth(field(record, cols["month"]))
		cash, cerr := decimal.NewFromString(strings.TrimSpace(field(record, cols["cash_usd"])))
		if perr != nil || cerr != nil {
			dropped++
			continue
		}
		balances = append(balances, domain.CashBalance{
			Period:  period,
			Entity:  strings.TrimSpace(field(record, cols["entity"])),
			CashUSD: cash,
		})
	}
	return balances, dropped, nil
}

// readTable opens a CSV file, maps its header to column indexes and returns
// the remaining records plus a count of lines the CSV reader rejected.
// Headers are matched case-insensitively with spaces and dashes folded to
// underscores, so "Account Category" and "account_category" land in the
// same column.
func readTable(path string, required ...string) ([][]string, map[string]int, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("open fixture %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, 0, fmt.Errorf("read header of %s: %w", path, err)
	}
	cols, err := columnIndex(header, required...)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("%s: %w", path, err)
	}

	var records [][]string
	dropped := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			dropped++
			continue
		}
		records = append(records, record)
	}
	return records, cols, dropped, nil
}

func columnIndex(header []string, required ...string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[toSnake(name)] = i
	}

	var missing []string
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func toSnake(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "_")
	return strings.ReplaceAll(name, "-", "_")
}

func field(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return record[idx]
}
