package domain

import "github.com/shopspring/decimal"

// CashBalance is the reported closing cash position for an entity in a given
// month, already expressed in US dollars by the source table.
type CashBalance struct {
	Period  YearMonth       `json:"period"`
	Entity  string          `json:"entity"`
	CashUSD decimal.Decimal `json:"cashUSD"`
}

// Valid reports whether the balance carries its full (period, entity) key.
func (b CashBalance) Valid() bool {
	return !b.Period.IsZero() && b.Entity != ""
}
