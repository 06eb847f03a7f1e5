package fx

import (
	"lol-tracker/internal/api"
	"lol-tracker/internal/config"
	"lol-tracker/internal/database"
	"lol-tracker/internal/logger"
	"lol-tracker/internal/repository"
	"lol-tracker/internal/server"
	"lol-tracker/internal/service"

	"go.uber.org/fx"
)

// ProvideMatchStore binds the sqlite repository to the storage capability
// the services consume.
func ProvideMatchStore(repo *repository.MatchRepository) service.MatchStore {
	return repo
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// store
	fx.Provide(repository.NewMatchRepository),
	fx.Provide(ProvideMatchStore),
	// api client
	fx.Provide(api.NewRiotClient),
	// svc
	fx.Provide(service.NewSyncService),
	fx.Provide(service.NewMatchService),
	fx.Provide(service.NewStatsService),
	// server
	fx.Provide(server.NewTrackerServer),
)
