package apperrors

import "errors"

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrMissingRate indicates that no fx rate exists for a (period, currency)
// pair. Callers exclude the affected row and mark the result degraded; this
// is never fatal.
var ErrMissingRate = errors.New("missing fx rate")
