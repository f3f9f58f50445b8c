package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/config"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-timetravel/transport/console"
	"github.com/rocketscienceinc/tictactoe-timetravel/transport/rest"
)

// writeTimeoutSlack is added to the save delay for the HTTP write timeout.
const writeTimeoutSlack = 10 * time.Second

type keyValueStorage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	io.Closer
}

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

	kvStorage, err := newStorage(ctx, conf.Storage)
	if err != nil {
		return err
	}

	defer func() {
		if err = kvStorage.Close(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	snapshotRepo := repository.NewSnapshotRepository(kvStorage, conf.Game.SaveKey)
	gameController := tictactoe.NewGameController()
	gameManager := usecase.NewGameManager(logger, snapshotRepo, gameController, conf.Game)

	switch conf.Mode {
	case config.ModeConsole:
		log.Info("Starting console", "storage", conf.Storage.Driver)
		if err = console.New(logger, gameManager, os.Stdout).Run(ctx, os.Stdin); err != nil {
			return fmt.Errorf("console error: %w", err)
		}

		return nil
	case config.ModeHTTP:
		log.Info("Starting HTTP server", "port", conf.HTTPPort, "storage", conf.Storage.Driver)
		router := rest.NewRouter(logger, gameManager)
		if err = rest.Start(ctx, conf.HTTPPort, router, conf.Game.SaveDelay+writeTimeoutSlack); err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}

		log.Info("Application context canceled, shutting down")

		return nil
	default:
		return fmt.Errorf("%w: %s", apperror.ErrUnknownRunMode, conf.Mode)
	}
}

func newStorage(ctx context.Context, conf config.Storage) (keyValueStorage, error) {
	switch conf.Driver {
	case config.DriverMemory:
		return storage.NewMemoryStorage(), nil
	case config.DriverRedis:
		redisStorage, err := storage.NewRedisStorage(ctx, &redis.Options{
			Addr:     conf.Redis.GetRedisAddr(),
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return redisStorage, nil
	default:
		return nil, fmt.Errorf("%w: %s", apperror.ErrUnknownStorage, conf.Driver)
	}
}
