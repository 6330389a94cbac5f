// Command bugtracker serves the bug tracker HTTP API.
//
// @title        Bug Tracker API
// @version      1.0
// @description  Report bugs as an admin, move them through reported, processing and completed as a developer.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/99minutos/bug-tracker/internal/api"
	"github.com/99minutos/bug-tracker/internal/api/handler"
	"github.com/99minutos/bug-tracker/internal/api/metrics"
	"github.com/99minutos/bug-tracker/internal/core/domain"
	"github.com/99minutos/bug-tracker/internal/core/ports"
	"github.com/99minutos/bug-tracker/internal/core/service"
	"github.com/99minutos/bug-tracker/internal/infrastructure/db"
	"github.com/99minutos/bug-tracker/internal/infrastructure/poller"
	"github.com/99minutos/bug-tracker/internal/infrastructure/storage"
	"github.com/99minutos/bug-tracker/internal/pkg/config"
	"github.com/99minutos/bug-tracker/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "bugtracker",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := db.Open(ctx, cfg, logger.Component("db"))
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("failed to open storage")
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close storage")
		}
	}()

	adapter := storage.NewAdapter(backend.Store, logger.Component("storage"))
	if cfg.Storage.Seed {
		if err := adapter.InitializeStorage(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to seed storage")
		}
	}

	workflow, err := domain.WorkflowByName(cfg.Workflow.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid workflow")
	}

	// --- Services ---
	users := storage.NewUserStore(adapter)
	bugs := storage.NewBugRepository(adapter)
	sessionService := service.NewSessionService(users, users, logger.Component("session"))
	bugService := service.NewBugService(bugs, backend.Ledger, service.BugServiceConfig{
		Workflow:      workflow,
		SubmissionTTL: cfg.Workflow.SubmissionTTL,
	}, logger.Component("bugs"))

	// --- Dashboard pollers ---
	adminFeed := poller.New(string(domain.RoleAdmin), bugs, cfg.Workflow.AdminRefreshInterval, logger.Component("poller"))
	devFeed := poller.New(string(domain.RoleDeveloper), bugs, cfg.Workflow.DeveloperRefreshInterval, logger.Component("poller"))
	for _, p := range []*poller.Poller{adminFeed, devFeed} {
		p.OnRefresh = metrics.ObserveRefresh
		p.Start(ctx)
	}

	e := api.NewRouter(api.Deps{
		Sessions: sessionService,
		Bugs:     bugService,
		Feeds: map[domain.Role]ports.BugLister{
			domain.RoleAdmin:     adminFeed,
			domain.RoleDeveloper: devFeed,
		},
		Fallback:   bugs,
		Refreshers: []handler.Refresher{adminFeed, devFeed},
		Ready:      map[string]handler.Pinger{"storage": backend.Store},
		Log:        logger.Component("http"),
		Registerer: prometheus.DefaultRegisterer,
		Gatherer:   prometheus.DefaultGatherer,
	})

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Str("workflow", workflow.Name()).
			Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	<-adminFeed.Done()
	<-devFeed.Done()
}
