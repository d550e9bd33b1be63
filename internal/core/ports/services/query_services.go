package services

import (
	"context"

	"github.com/HamzaWajid1/cfo_copilot_app/internal/core/domain"
)

// QuerySvcFacade is the engine's sole entry point: a question in, an answer
// out. Unresolved intents, missing months and empty data all resolve into
// the MetricResult text; errors are reserved for broken invariants.
type QuerySvcFacade interface {
	Answer(ctx context.Context, question string) (*domain.MetricResult, error)
}
