package services

import (
	"context"

	"github.com/HamzaWajid1/cfo_copilot_app/internal/core/domain"
)

// IntentSvcFacade defines the free-text classifier. Classification is total:
// unmatched questions come back as MetricUnknown, never as an error.
type IntentSvcFacade interface {
	// Classify extracts the target metric, optional period and optional
	// entity from a question.
	Classify(ctx context.Context, question string) domain.QueryIntent
}
