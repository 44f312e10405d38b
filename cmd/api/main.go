package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/mvillagranc/mesaboard-backend/api/routes"
	"github.com/mvillagranc/mesaboard-backend/internal/branches"
	"github.com/mvillagranc/mesaboard-backend/internal/catalog"
	"github.com/mvillagranc/mesaboard-backend/internal/menu"
	"github.com/mvillagranc/mesaboard-backend/internal/staff"
	"github.com/mvillagranc/mesaboard-backend/pkg/auth/session"
	"github.com/mvillagranc/mesaboard-backend/pkg/config"
	"github.com/mvillagranc/mesaboard-backend/pkg/db"
	"github.com/mvillagranc/mesaboard-backend/pkg/logger"
	"github.com/mvillagranc/mesaboard-backend/pkg/metrics"
	"github.com/mvillagranc/mesaboard-backend/pkg/migrate"
	"github.com/mvillagranc/mesaboard-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	propagationMetrics := metrics.NewPropagationMetrics(registry)

	catalogRepo := catalog.NewRepository(dbClient.DB())
	guard, err := catalog.NewGuard(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create dependency guard", err)
		os.Exit(1)
	}
	catalogService, err := catalog.NewService(catalogRepo, guard)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	resolver, err := menu.NewResolver(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create menu resolver", err)
		os.Exit(1)
	}

	branchRepo := branches.NewRepository(dbClient.DB())
	propagator, err := branches.NewPropagator(branchRepo, catalogRepo, dbClient, logg, propagationMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create availability propagator", err)
		os.Exit(1)
	}
	branchService, err := branches.NewService(branchRepo, propagator)
	if err != nil {
		logg.Error(context.Background(), "failed to create branch service", err)
		os.Exit(1)
	}

	staffService, err := staff.NewService(staff.ServiceParams{
		Repo:           staff.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create staff service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	runCtx = logg.WithFields(runCtx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(runCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			redisClient,
			sessionManager,
			registry,
			staffService,
			catalogService,
			branchService,
			resolver,
		),
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(runCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(runCtx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(runCtx, "graceful shutdown failed", err)
			os.Exit(1)
		}
		logg.Info(runCtx, "api server stopped")
	}
}
