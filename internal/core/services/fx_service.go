package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/HamzaWajid1/cfo_copilot_app/internal/apperrors"
	"github.com/HamzaWajid1/cfo_copilot_app/internal/core/domain"
	portsrepo "github.com/HamzaWajid1/cfo_copilot_app/internal/core/ports/repositories"
	portssvc "github.com/HamzaWajid1/cfo_copilot_app/internal/core/ports/services"
)

// reportingCurrency is the currency all metrics are stated in.
const reportingCurrency = "USD"

// fxService converts ledger amounts into the reporting currency using the
// fx table's exact (period, currency) rates.
type fxService struct {
	BaseService
	records portsrepo.FxRateReader
}

// NewFxService creates a new fx conversion service
func NewFxService(records portsrepo.FxRateReader) portssvc.FxSvcFacade {
	return &fxService{records: records}
}

// Ensure fxService implements the facade
var _ portssvc.FxSvcFacade = (*fxService)(nil)

// ToUSD converts amount from currency into USD at the rate published for the
// row's own period. Amounts already in USD pass through unchanged. A missing
// rate returns apperrors.ErrMissingRate so callers can degrade rather than
// guess with a neighbouring period's rate.
func (s *fxService) ToUSD(ctx context.Context, amount decimal.Decimal, currency string, period domain.YearMonth) (decimal.Decimal, error) {
	if strings.EqualFold(currency, reportingCurrency) {
		return amount, nil
	}
	if period.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: period is required for fx conversion", apperrors.ErrValidation)
	}

	rate, ok := s.records.FxRateFor(ctx, period, currency)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s in %s", apperrors.ErrMissingRate, strings.ToUpper(currency), period)
	}

	return amount.Mul(rate.RateToUSD), nil
}
