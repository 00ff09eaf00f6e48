package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-course-registry/internal/handler"
	"github.com/noah-isme/sma-course-registry/internal/service"
	"github.com/noah-isme/sma-course-registry/pkg/config"
	"github.com/noah-isme/sma-course-registry/pkg/logger"
	"github.com/noah-isme/sma-course-registry/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	var metrics *service.RegistryMetrics
	if cfg.Metrics.Enabled {
		metrics = service.NewRegistryMetrics()
	}
	registry := service.NewRegistry(metrics, logr)

	var reports *service.ReportService
	store, err := storage.NewLocalStorage(cfg.Export.Dir)
	if err != nil {
		logr.Warn("report exports disabled", zap.Error(err))
	} else {
		reports = service.NewReportService(registry, store, logr, nil, nil)
		if deleted, err := reports.Cleanup(cfg.Export.Retention); err != nil {
			logr.Warn("report cleanup failed", zap.Error(err))
		} else if len(deleted) > 0 {
			logr.Info("expired reports removed", zap.Int("count", len(deleted)))
		}
	}

	menu := handler.NewMenuHandler(registry, reports, metrics, os.Stdin, os.Stdout, handler.MenuConfig{
		Prompt:        cfg.Menu.Prompt,
		DefaultFormat: cfg.Export.DefaultFormat,
	}, logr)

	logr.Info("course admin starting", zap.String("env", cfg.Env), zap.Bool("metrics", cfg.Metrics.Enabled))
	if err := menu.Run(context.Background()); err != nil {
		logr.Fatal("menu failed", zap.Error(err))
	}
}
