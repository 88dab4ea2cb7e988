package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/denverdino/news-aggregator/internal/app"
	"github.com/denverdino/news-aggregator/internal/config"
	"github.com/denverdino/news-aggregator/internal/logger"
	"github.com/denverdino/news-aggregator/internal/metrics"
	"github.com/denverdino/news-aggregator/internal/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.EnableMonitoring {
		go startMonitoringServer(cfg.MonitoringPort)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	// Without a cron expression the aggregator runs once and exits,
	// which suits cron-job and CI-triggered deployments.
	if cfg.ScheduleCron == "" {
		if err := a.Run(ctx); err != nil {
			logger.Error("digest run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	logger.Info("starting scheduler", "cron", cfg.ScheduleCron)
	err = schedule.Loop(ctx, cfg.ScheduleCron, func() {
		if err := a.Run(ctx); err != nil {
			logger.Error("digest run failed", "error", err)
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("scheduler stopped", "error", err)
		os.Exit(1)
	}
}

func startMonitoringServer(port int) {
	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/metrics", metricsHandler)

	addr := fmt.Sprintf(":%d", port)
	logger.Info("starting monitoring server", "addr", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Error("monitoring server error", "error", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()
	w.Header().Set("Content-Type", "application/json")

	status := "ok"
	if !stats["is_healthy"].(bool) {
		status = "error"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	response := map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	}

	json.NewEncoder(w).Encode(response)
}

func metricsHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
