package services

import (
	portsrepo "github.com/HamzaWajid1/cfo_copilot_app/internal/core/ports/repositories"
	portssvc "github.com/HamzaWajid1/cfo_copilot_app/internal/core/ports/services"
	"github.com/HamzaWajid1/cfo_copilot_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Fx conversion first since the calculators depend on it
	container.Fx = NewFxService(repos.Records)

	container.Metrics = NewMetricsService(repos.Records, container.Fx)
	container.Intent = NewIntentService(repos.Records)
	container.Query = NewQueryService(
		repos.Records,
		container.Intent,
		container.Metrics,
		WithDefaultEntity(cfg.DefaultEntity),
	)

	return container
}
