package app

import (
	"fmt"
	"net/http"

	"github.com/scorecastlab/scorecast/internal/config"
	"github.com/scorecastlab/scorecast/internal/domain/simulation"
	"github.com/scorecastlab/scorecast/internal/infrastructure/repository/memory"
	"github.com/scorecastlab/scorecast/internal/infrastructure/repository/postgres"
	"github.com/scorecastlab/scorecast/internal/interfaces/httpapi"
	"github.com/scorecastlab/scorecast/internal/platform/cache"
	idgen "github.com/scorecastlab/scorecast/internal/platform/id"
	"github.com/scorecastlab/scorecast/internal/platform/logging"
	"github.com/scorecastlab/scorecast/internal/usecase"
)

// NewHTTPServer wires repositories, services and the HTTP router into a
// ready-to-run server. The returned cleanup releases the database handle
// when one was opened.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	cleanup := func() error { return nil }

	var simulationRepo simulation.Repository
	if cfg.DBURL != "" {
		db, err := openDB(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		simulationRepo = postgres.NewSimulationRepository(db)
		cleanup = db.Close
		logger.Info("simulation history backed by postgres", "db_name", dbNameFromURL(cfg.DBURL))
	} else {
		simulationRepo = memory.NewSimulationRepository(cfg.HistoryCapacity)
		logger.Info("simulation history backed by memory", "capacity", cfg.HistoryCapacity)
	}

	var batchCache *cache.Store
	if cfg.CacheEnabled {
		batchCache = cache.NewStore(cfg.CacheTTL)
	}

	simulationSvc := usecase.NewSimulationService(simulationRepo, idgen.NewRandomGenerator(), logger)
	batchSvc := usecase.NewBatchService(cfg.BatchMaxRuns, cfg.BatchMaxWorkers, batchCache, logger)

	handler := httpapi.NewHandler(simulationSvc, batchSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		if err := cleanup(); err != nil {
			logger.Warn("close database", "error", err)
		}
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}
