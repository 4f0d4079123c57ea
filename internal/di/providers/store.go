package providers

import (
	"context"
	"time"

	"github.com/samber/do/v2"

	"github.com/zzstar101/jellyfin-playback-report/internal/config"
	"github.com/zzstar101/jellyfin-playback-report/internal/eventlog"
	"github.com/zzstar101/jellyfin-playback-report/internal/logger"
	"github.com/zzstar101/jellyfin-playback-report/internal/store/sqlite"
)

// fetchTimeout bounds the event log download at startup.
const fetchTimeout = 2 * time.Minute

// ProvideEventLogFetcher provides the playback activity snapshot fetcher.
func ProvideEventLogFetcher(i do.Injector) (*eventlog.Fetcher, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return eventlog.NewFetcher(cfg.EventLog, log.Logger), nil
}

// StoreHandle wraps the read-only activity store for lifecycle management.
type StoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Store.Close()
}

// ProvideStore fetches the activity snapshot and opens it read-only.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)
	fetcher := do.MustInvoke[*eventlog.Fetcher](i)

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	path, err := fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	store, err := sqlite.Open(path, log.Logger)
	if err != nil {
		return nil, err
	}
	log.Info("Activity store opened", "path", path)

	return &StoreHandle{Store: store}, nil
}
