package domain

import "github.com/shopspring/decimal"

// FxRate converts one unit of Currency into US dollars for a single month.
// Rates apply to their exact period only; there is no carry-forward between
// months.
type FxRate struct {
	Period    YearMonth       `json:"period"`
	Currency  string          `json:"currency"`
	RateToUSD decimal.Decimal `json:"rateToUSD"`
}

// Valid reports whether the rate is usable: complete key and a positive rate.
func (r FxRate) Valid() bool {
	return !r.Period.IsZero() && r.Currency != "" && r.RateToUSD.IsPositive()
}
