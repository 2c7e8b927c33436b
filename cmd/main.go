package main

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/parleyhq/parley/internal/api/handlers"
	"github.com/parleyhq/parley/internal/config"
	"github.com/parleyhq/parley/internal/infrastructure/postgres"
	"github.com/parleyhq/parley/internal/logger"
	"github.com/parleyhq/parley/internal/services"
	"github.com/parleyhq/parley/internal/services/chat"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using process environment")
	}
	logger.Setup()

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, config.GetDatabaseURL())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(config.GetDatabaseURL()); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	svcs, err := services.InitializeServices(pool)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}

	r := setupRouter(svcs.GetChatService())

	addr := ":" + config.GetServerPort()
	log.Info().Str("addr", addr).Msg("Server starting")
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal().Err(err).Msg("ListenAndServe error")
	}
}

func setupRouter(chatService chat.Service) *mux.Router {
	r := mux.NewRouter()
	handlers.RegisterRoutes(r, chatService)
	return r
}
