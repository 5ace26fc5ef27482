//go:build wireinject
// +build wireinject

package di

import (
	"PortfolioPulse/pkg/config"
	"PortfolioPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient services
		ProvideLogger,
		ProvideMetrics,
		ProvideCache,

		// Repository
		ProvideSeriesStore,

		// Use cases
		ProvideAssetSeriesUseCase,
		ProvideCombinedUseCase,

		// HTTP handler and application server
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
