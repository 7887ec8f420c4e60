package fx

import (
	"context"

	"esports-digest/internal/api"
	"esports-digest/internal/clock"
	"esports-digest/internal/config"
	"esports-digest/internal/database"
	"esports-digest/internal/feed"
	"esports-digest/internal/logger"
	"esports-digest/internal/metrics"
	"esports-digest/internal/registry"
	"esports-digest/internal/repository"
	"esports-digest/internal/server"
	"esports-digest/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideMetrics() metrics.Metrics {
	return metrics.NewService()
}

func ProvideClock() clock.Clock {
	return clock.System{}
}

// ProvideRegistryStore picks the destination backend. The SQLite handle is
// closed when the app stops.
func ProvideRegistryStore(lc fx.Lifecycle, cfg *config.Config, log zerolog.Logger) (registry.Store, error) {
	if cfg.RegistryBackend != config.RegistrySQLite {
		log.Info().Str("path", cfg.RegistryPath).Msg("using file destination store")
		return registry.NewFileStore(cfg.RegistryPath), nil
	}

	sqlDB, err := database.Open(cfg.DBPath, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := sqlDB.Close(); err != nil {
				log.Warn().Err(err).Msg("error closing database connection")
				return err
			}
			return nil
		},
	})
	return repository.NewDestinationRepository(sqlDB, log), nil
}

func ProvideRegistry(lc fx.Lifecycle, store registry.Store, log zerolog.Logger, m metrics.Metrics) *registry.Registry {
	reg := registry.New(store, log, m)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			reg.Load(ctx)
			return nil
		},
	})
	return reg
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(ProvideMetrics),
	fx.Provide(ProvideClock),
	// upstream clients
	fx.Provide(feed.NewClient),
	fx.Provide(api.NewVLRClient),
	fx.Provide(api.NewHDevClient),
	fx.Provide(api.NewSeasonsClient),
	fx.Provide(api.NewLoLClient),
	fx.Provide(api.NewCaptureClient),
	fx.Provide(
		func(c *api.VLRClient) service.MatchFeed { return c },
		func(c *api.HDevClient) service.PlayerFeed { return c },
		func(c *api.SeasonsClient) service.SeasonFeed { return c },
		func(c *api.LoLClient) service.LoLFeed { return c },
		func(c *api.CaptureClient) service.Capturer { return c },
	),
	// svc
	fx.Provide(service.NewScheduleService),
	fx.Provide(service.NewLoLScheduleService),
	fx.Provide(service.NewBracketService),
	fx.Provide(service.NewSeasonService),
	fx.Provide(func(s *service.SeasonService) service.SeasonSource { return s }),
	fx.Provide(service.NewStatsService),
	// destinations
	fx.Provide(ProvideRegistryStore),
	fx.Provide(ProvideRegistry),
	// server
	fx.Provide(server.NewDigestServer),
)
