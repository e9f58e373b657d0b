// Package main runs the trip planner API server configured from the
// environment, for container deployments where the CLI is not wanted.
package main

import (
	httpapi "trip-planner/api"
	"trip-planner/catalog"
	"trip-planner/db/postgres"
	"trip-planner/decision/search"
	"trip-planner/pkg/platform"
)

func main() {
	platform.LoadEnvFile()
	logger := platform.InitLogger()

	var src catalog.Source
	switch platform.GetEnv("CATALOG_BACKEND", "memory") {
	case "postgres":
		store, err := postgres.NewStore(&postgres.Config{
			Host:     platform.GetEnv("POSTGRES_HOST", "localhost"),
			Port:     platform.GetEnvInt("POSTGRES_PORT", 5432),
			Database: platform.GetEnv("POSTGRES_DATABASE", "tripplanner"),
			Username: platform.GetEnv("POSTGRES_USER", "postgres"),
			Password: platform.GetEnv("POSTGRES_PASSWORD", ""),
			SSLMode:  platform.GetEnv("POSTGRES_SSLMODE", "disable"),
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to postgres catalog")
		}
		defer store.Close()
		src = store
	default:
		src = catalog.NewMemorySource()
	}

	cfg := httpapi.DefaultConfig()
	cfg.Port = platform.GetEnvInt("PORT", cfg.Port)
	cfg.CORSOrigins = platform.GetEnvList("CORS_ORIGINS", cfg.CORSOrigins)

	svc := search.NewService(src, nil).WithLogger(logger)
	if err := httpapi.NewServer(svc, cfg, logger).StartWithGracefulShutdown(); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}
