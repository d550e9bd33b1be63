package services

import (
	"context"

	"github.com/HamzaWajid1/cfo_copilot_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyConverterSvc defines conversion of amounts into the reporting
// currency.
type CurrencyConverterSvc interface {
	// ToUSD converts amount from currency into USD using the fx rate for the
	// exact period. USD amounts pass through unchanged. A missing rate
	// returns an error wrapping apperrors.ErrMissingRate; callers exclude
	// the row and degrade the result instead of failing.
	ToUSD(ctx context.Context, amount decimal.Decimal, currency string, period domain.YearMonth) (decimal.Decimal, error)
}

// FxSvcFacade combines all fx-related service interfaces
type FxSvcFacade interface {
	CurrencyConverterSvc
}
