package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/odyssey-erp/opsdesk/internal/app"
	jobmetrics "github.com/odyssey-erp/opsdesk/internal/jobs"
	"github.com/odyssey-erp/opsdesk/internal/observability"
	"github.com/odyssey-erp/opsdesk/internal/platform/cache"
	"github.com/odyssey-erp/opsdesk/internal/users"
	"github.com/odyssey-erp/opsdesk/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	userService, err := users.NewService()
	if err != nil {
		logger.Error("load users", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()
	dispatchJob := jobs.NewSurveyDispatchJob(userService, logger, jobmetrics.NewMetrics(metrics.Registerer()))

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: cache.QueueOpt(cfg.RedisAddr),
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskSurveyDispatch, Handler: dispatchJob.Handle},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("worker started", slog.String("queue", jobs.QueueDefault))
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
