package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ArowuTest/bingo-caller/api/routes"
	"github.com/ArowuTest/bingo-caller/internal/config"
	"github.com/ArowuTest/bingo-caller/internal/handlers"
	"github.com/ArowuTest/bingo-caller/internal/logger"
	"github.com/ArowuTest/bingo-caller/internal/middleware"
	"github.com/ArowuTest/bingo-caller/internal/repositories"
	"github.com/ArowuTest/bingo-caller/internal/repositories/memory"
	mongorepo "github.com/ArowuTest/bingo-caller/internal/repositories/mongodb"
	"github.com/ArowuTest/bingo-caller/internal/services"
	apptoken "github.com/ArowuTest/bingo-caller/pkg/jwt"
	mongodb "github.com/ArowuTest/bingo-caller/pkg/mongodb"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig(config.GetEnv("CONFIG_PATH", "."))
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init(cfg.LogLevel, cfg.LogPretty)
	gin.SetMode(cfg.Server.Mode)

	// Server-side store for the mongo and memory backends
	var sharedStore repositories.StateStore
	switch cfg.Persistence.EffectiveBackend() {
	case config.BackendMongo:
		mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI, cfg.MongoDB.ConnectTimeout)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mongoClient.Disconnect(ctx); err != nil {
				logger.Log.Error().Err(err).Msg("Error disconnecting from MongoDB")
			}
		}()

		stateRepo := mongorepo.NewStateRepository(mongoClient.Database(cfg.MongoDB.Database), cfg.MongoDB.Collection)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoDB.ConnectTimeout)
		if err := stateRepo.EnsureIndexes(ctx); err != nil {
			logger.Log.Warn().Err(err).Msg("Failed to ensure state indexes")
		}
		cancel()
		sharedStore = stateRepo
	case config.BackendMemory:
		sharedStore = memory.NewStateRepository()
	}

	drawService := services.NewDrawService(nil, services.DrawServiceOptions{
		ShuffleFrames:     cfg.Game.ShuffleFrames,
		ShuffleIntervalMs: cfg.Game.ShuffleIntervalMs,
	})
	sessions := handlers.NewSessionResolver(cfg.Persistence, sharedStore)

	handlerDeps := routes.HandlerDependencies{
		GameHandler:  handlers.NewGameHandler(drawService, sessions),
		BoardHandler: handlers.NewBoardHandler(drawService, sessions, cfg.Auth.Enabled),
	}
	if cfg.Auth.Enabled {
		tokens := apptoken.NewHostTokenService(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
		handlerDeps.AuthHandler = handlers.NewAuthHandler(services.NewAuthService(cfg.Auth.HostPasswordHash, tokens))
		handlerDeps.HostAuth = middleware.JWTAuthMiddleware(tokens)
	}

	router := routes.SetupRouter(cfg, handlerDeps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	logger.Log.Info().
		Str("port", cfg.Server.Port).
		Str("backend", cfg.Persistence.EffectiveBackend()).
		Bool("auth", cfg.Auth.Enabled).
		Msg("Server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal().Err(err).Msg("listen")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
