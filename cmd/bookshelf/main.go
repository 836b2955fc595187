package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/emzola/bookshelf/config"
	"github.com/emzola/bookshelf/handler"
	"github.com/emzola/bookshelf/internal/jsonlog"
	"github.com/emzola/bookshelf/repository"
	"github.com/emzola/bookshelf/repository/memory"
	"github.com/emzola/bookshelf/repository/postgres"
	"github.com/emzola/bookshelf/repository/sqlite"
	"github.com/emzola/bookshelf/service"
	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/time/rate"
)

// app defines the application's layers and shared resources.
type app struct {
	config  config.Config
	repo    repository.Repository
	service service.Service
	handler *handler.Handler
}

func main() {
	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	// Initialize configuration
	cfg, err := config.Decode()
	if err != nil {
		logger.PrintFatal(err, nil)
	}

	// Initialize the configured storage backend
	repo, closeRepo, err := openRepository(cfg)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	defer closeRepo()
	logger.PrintInfo("storage initialized", map[string]string{
		"mode": cfg.Storage.Mode,
	})

	// Other shared resources: waitgroup and the rate limiter cache
	var wg sync.WaitGroup
	cache := ttlcache.New(ttlcache.WithTTL[string, *rate.Limiter](3 * time.Minute))
	go cache.Start()
	defer cache.Stop()

	// Application layers
	service := service.New(cfg, logger, repo)
	handler := handler.New(cfg, logger, cache, service)

	// Instantiate application
	app := &app{
		config:  cfg,
		repo:    repo,
		service: service,
		handler: handler,
	}

	// Start HTTP server
	err = app.serve(&wg, logger)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}

// openRepository selects the storage backend named by the configuration.
// Every backend satisfies the same contract, so the rest of the application
// never knows which one is running.
func openRepository(cfg config.Config) (repository.Repository, func() error, error) {
	switch cfg.Storage.Mode {
	case config.StorageMemory:
		return memory.New(), func() error { return nil }, nil
	case config.StorageSQLite:
		repo, err := sqlite.New(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	case config.StoragePostgres:
		repo, err := postgres.New(cfg)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage mode %q", cfg.Storage.Mode)
	}
}
