package providers

import (
	"github.com/samber/do/v2"

	"github.com/zzstar101/jellyfin-playback-report/internal/config"
	"github.com/zzstar101/jellyfin-playback-report/internal/delivery"
	"github.com/zzstar101/jellyfin-playback-report/internal/logger"
)

// DeliveryHandle holds the delivery service, nil when delivery is
// disabled in configuration.
type DeliveryHandle struct {
	Service *delivery.Service
}

// Enabled reports whether posters should be published after rendering.
func (h *DeliveryHandle) Enabled() bool {
	return h.Service != nil
}

// ProvideDelivery provides the poster upload and push service.
func ProvideDelivery(i do.Injector) (*DeliveryHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.Delivery.Enabled {
		log.Info("Delivery disabled, posters stay local")
		return &DeliveryHandle{}, nil
	}

	uploader := delivery.NewUploader(cfg.Delivery.LskyURL, cfg.Delivery.LskyToken, log.Logger)
	notifier := delivery.NewNotifier(cfg.Delivery.ServerChanKey, log.Logger)
	svc := delivery.NewService(uploader, notifier, cfg.Report.SiteName, log.Logger)

	return &DeliveryHandle{Service: svc}, nil
}
