package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/fwpboutique/crystalshop/internal/analysis"
	"github.com/fwpboutique/crystalshop/internal/api"
	"github.com/fwpboutique/crystalshop/internal/config"
	"github.com/fwpboutique/crystalshop/internal/metrics"
	"github.com/fwpboutique/crystalshop/internal/repository"
	"github.com/fwpboutique/crystalshop/internal/repository/memory"
	"github.com/fwpboutique/crystalshop/internal/repository/postgres"
	"github.com/fwpboutique/crystalshop/internal/service"
	"github.com/fwpboutique/crystalshop/internal/sheets"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	repos, closeStore, err := openStore(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open record store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer closeStore()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New("crystalshop", reg)

	sheetClient := sheets.NewClient(cfg.Sheets, logger)
	if !sheetClient.Enabled() {
		logger.Warn("SHEETS_WEBHOOK_URL is not set, orders will not be mirrored")
	}

	pricing := service.Pricing{
		Standard: cfg.Standard,
		Custom:   cfg.Custom,
		Coupon:   cfg.Coupon.Policy(),
	}
	orders := service.NewOrderService(repos, sheetClient, pricing, logger,
		service.WithMetrics(m),
		service.WithSubmitPulse(cfg.SubmitPulse),
	)
	analyses := service.NewAnalysisService(repos, analysis.NewClient(cfg.Analysis, logger), m, logger)

	router := api.NewRouter(cfg, api.Dependencies{
		Repos:    repos,
		Orders:   orders,
		Analyses: analyses,
		Sheets:   sheetClient,
		Gatherer: reg,
	}, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server listening", zap.String("addr", srv.Addr), zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.Environment == "production" {
		zcfg = zap.NewProductionConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	zcfg.Level = level
	return zcfg.Build()
}

func openStore(cfg *config.Config, logger *zap.Logger) (*repository.Repositories, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logger.Warn("Using the in-memory record store, records are lost on restart")
		return memory.NewRepositories(), func() {}, nil
	}

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := postgres.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	closeFn := func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database", zap.Error(err))
		}
	}
	return postgres.NewRepositories(db, logger), closeFn, nil
}
