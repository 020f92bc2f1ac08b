package main

import (
	"ihome/config"
	"ihome/di"
	"ihome/helper"
	"ihome/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title ihome API
// @version 1.0
// @description House rental marketplace: listings, bookings, reviews and accounts.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
