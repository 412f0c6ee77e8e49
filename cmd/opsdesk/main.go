package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/odyssey-erp/opsdesk/internal/app"
	"github.com/odyssey-erp/opsdesk/internal/assets"
	"github.com/odyssey-erp/opsdesk/internal/categories"
	"github.com/odyssey-erp/opsdesk/internal/console"
	"github.com/odyssey-erp/opsdesk/internal/incidents"
	"github.com/odyssey-erp/opsdesk/internal/observability"
	"github.com/odyssey-erp/opsdesk/internal/platform/cache"
	"github.com/odyssey-erp/opsdesk/internal/shared"
	"github.com/odyssey-erp/opsdesk/internal/surveys"
	"github.com/odyssey-erp/opsdesk/internal/users"
	"github.com/odyssey-erp/opsdesk/internal/view"
	"github.com/odyssey-erp/opsdesk/jobs"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("opsdesk stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *app.Config, logger *slog.Logger) error {
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		return err
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "opsdesk_session", cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)
	metrics := observability.NewMetrics()

	templates, err := view.NewEngine()
	if err != nil {
		return err
	}
	moduleConfig := func(basePath string) console.ModuleConfig {
		return console.ModuleConfig{
			BasePath:  basePath,
			Logger:    logger,
			Templates: templates,
			CSRF:      csrfManager,
			Recorder:  metrics,
		}
	}

	var registry categories.Registry = categories.NewMemoryRegistry()
	if cfg.CategoryStore == app.CategoryStoreRedis {
		registry = categories.NewRedisRegistry(redisClient, "opsdesk:categories")
	}

	var (
		dispatcher surveys.Dispatcher
		inspector  *asynq.Inspector
	)
	if cfg.JobsEnabled {
		client := jobs.NewClient(cache.QueueOpt(cfg.RedisAddr))
		defer func() {
			if err := client.Close(); err != nil {
				logger.Warn("jobs client close", slog.Any("error", err))
			}
		}()
		dispatcher = client
		inspector = asynq.NewInspector(cache.QueueOpt(cfg.RedisAddr))
		defer func() {
			if err := inspector.Close(); err != nil {
				logger.Warn("jobs inspector close", slog.Any("error", err))
			}
		}()
	}

	assetService, err := assets.NewService()
	if err != nil {
		return err
	}
	assetHandler, err := assets.NewHandler(moduleConfig("/assets"), assetService, cfg.PageSize)
	if err != nil {
		return err
	}

	incidentService, err := incidents.NewService(ctx, registry, logger, metrics)
	if err != nil {
		return err
	}
	incidentHandler, err := incidents.NewHandler(moduleConfig("/incidents"), incidentService, cfg.PageSize)
	if err != nil {
		return err
	}

	surveyService, err := surveys.NewService(dispatcher, logger)
	if err != nil {
		return err
	}
	surveyHandler, err := surveys.NewHandler(moduleConfig("/surveys"), surveyService, cfg.PageSize)
	if err != nil {
		return err
	}

	userService, err := users.NewService()
	if err != nil {
		return err
	}
	userHandler, err := users.NewHandler(moduleConfig("/users"), userService, cfg.PageSize)
	if err != nil {
		return err
	}

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		Templates:        templates,
		SessionManager:   sessionManager,
		CSRFManager:      csrfManager,
		AssetsHandler:    assetHandler,
		IncidentsHandler: incidentHandler,
		SurveysHandler:   surveyHandler,
		UsersHandler:     userHandler,
		JobHandler:       jobs.NewHandler(inspector, logger),
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("http server listening", slog.String("addr", cfg.AppAddr),
			slog.String("category_store", cfg.CategoryStore), slog.Bool("jobs", cfg.JobsEnabled))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down http server")
		return server.Shutdown(shutdownCtx)
	})
	return group.Wait()
}
