package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-rest-backend/internal/bot"
	"github.com/rocketscienceinc/tictactoe-rest-backend/internal/config"
	"github.com/rocketscienceinc/tictactoe-rest-backend/internal/repository"
	"github.com/rocketscienceinc/tictactoe-rest-backend/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-rest-backend/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-rest-backend/transport/rest"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	gameRepo, cleanup, err := newGameRepository(ctx, log, conf)
	if err != nil {
		return fmt.Errorf("could not create game repository: %w", err)
	}
	defer cleanup()

	picker := bot.New()
	gameManager := usecase.NewGameManager(logger, gameRepo, picker)
	handler := rest.NewHandler(logger, gameManager)

	log.Info("Starting HTTP server", "port", conf.HTTPPort)
	if err = rest.Start(ctx, logger, conf.HTTPPort, handler); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}

// newGameRepository selects the storage backend from config. Unknown
// backends fall back to the in-memory one instead of crashing.
func newGameRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.GameRepository, func(), error) {
	ttl := conf.Storage.GameTTL()

	if conf.Storage.Backend == config.BackendRedis {
		redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		cleanup := func() {
			if err := redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}

		return repository.NewRedisGameRepository(redisStorage.Connection, ttl), cleanup, nil
	}

	if conf.Storage.Backend != config.BackendMemory {
		log.Warn("unknown storage backend, using memory", "backend", conf.Storage.Backend)
	}

	return repository.NewMemoryGameRepository(ttl), func() {}, nil
}
