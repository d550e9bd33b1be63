package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Account categories the calculators recognize. Operating expense rows use
// sub-categories under the Opex prefix, e.g. "Opex:Sales" or "Opex:R&D".
const (
	CategoryRevenue = "Revenue"
	CategoryCOGS    = "COGS"

	opexPrefix = "Opex"
)

// LedgerRow is one actuals or budget line: an amount booked against an
// account category for an entity in a given month, in the row's own currency.
type LedgerRow struct {
	Period          YearMonth       `json:"period"`
	Entity          string          `json:"entity"`
	AccountCategory string          `json:"accountCategory"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
}

// IsOpex reports whether the row books to an operating-expense category.
func (r LedgerRow) IsOpex() bool {
	return strings.HasPrefix(r.AccountCategory, opexPrefix)
}

// KnownCategory reports whether the row's category participates in any
// metric. Rows outside the recognized set are dropped at load.
func (r LedgerRow) KnownCategory() bool {
	return r.AccountCategory == CategoryRevenue || r.AccountCategory == CategoryCOGS || r.IsOpex()
}

// Valid reports whether the row carries every field the calculators rely on.
func (r LedgerRow) Valid() bool {
	return !r.Period.IsZero() && r.Entity != "" && r.AccountCategory != "" && r.Currency != ""
}
