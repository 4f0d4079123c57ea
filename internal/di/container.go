// Package di provides dependency injection configuration for the report pipeline.
package di

import (
	"github.com/samber/do/v2"

	"github.com/zzstar101/jellyfin-playback-report/internal/di/providers"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Event log + database layer
	do.Provide(injector, providers.ProvideEventLogFetcher)
	do.Provide(injector, providers.ProvideStore)

	// Metadata clients
	do.Provide(injector, providers.ProvideJellyfinClient)
	do.Provide(injector, providers.ProvideMoviePilotClient)

	// Classification + aggregation
	do.Provide(injector, providers.ProvideClassifier)
	do.Provide(injector, providers.ProvideResolver)
	do.Provide(injector, providers.ProvideAggregator)
	do.Provide(injector, providers.ProvideAnnualBuilder)

	// Airing calendar
	do.Provide(injector, providers.ProvideCalendarSource)
	do.Provide(injector, providers.ProvideCalendarBuilder)

	// Poster rendering
	do.Provide(injector, providers.ProvideFonts)
	do.Provide(injector, providers.ProvideArtworkFetcher)
	do.Provide(injector, providers.ProvideRenderer)

	// Delivery
	do.Provide(injector, providers.ProvideDelivery)

	return injector
}
