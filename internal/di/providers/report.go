package providers

import (
	"github.com/samber/do/v2"

	"github.com/zzstar101/jellyfin-playback-report/internal/config"
	"github.com/zzstar101/jellyfin-playback-report/internal/logger"
	"github.com/zzstar101/jellyfin-playback-report/internal/metadata/jellyfin"
	"github.com/zzstar101/jellyfin-playback-report/internal/report"
	"github.com/zzstar101/jellyfin-playback-report/internal/resolver"
)

// ProvideClassifier selects the configured series classification policy.
func ProvideClassifier(i do.Injector) (resolver.Classifier, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	jf := do.MustInvoke[*jellyfin.Client](i)

	switch cfg.Report.ClassificationPolicy {
	case config.PolicyGenres:
		return resolver.NewGenrePolicy(jf, log.Logger), nil
	default:
		return resolver.NewLibraryPolicy(jf, cfg.Report.AnimeLibraryID, cfg.Report.TVLibraryID, log.Logger), nil
	}
}

// ProvideResolver provides the bounded-concurrency series resolver.
func ProvideResolver(i do.Injector) (*resolver.Resolver, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	classifier := do.MustInvoke[resolver.Classifier](i)

	return resolver.New(classifier, cfg.Report.ResolverConcurrency, log.Logger), nil
}

// ProvideAggregator provides the weekly report aggregator.
func ProvideAggregator(i do.Injector) (*report.Aggregator, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	store := do.MustInvoke[*StoreHandle](i)
	jf := do.MustInvoke[*jellyfin.Client](i)
	res := do.MustInvoke[*resolver.Resolver](i)

	return report.NewAggregator(store.Store, jf, res, cfg.Report.TopN, log.Logger), nil
}

// ProvideAnnualBuilder provides the annual report builder.
func ProvideAnnualBuilder(i do.Injector) (*report.AnnualBuilder, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	store := do.MustInvoke[*StoreHandle](i)
	jf := do.MustInvoke[*jellyfin.Client](i)

	return report.NewAnnualBuilder(store.Store, jf, cfg.Report.TopN, cfg.Report.Location(), log.Logger), nil
}
