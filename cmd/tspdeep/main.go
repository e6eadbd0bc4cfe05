// Command tspdeep runs the greedy + deepening local search on a TSPLIB
// instance for a number of independent seeded runs and reports the results.
//
// All settings come from TSPDEEP_* environment variables (optionally loaded
// from a .env file); see Config.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/tspdeep/metrics"
	"github.com/katalvlaran/tspdeep/tsplib"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "tspdeep:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inst, err := tsplib.Open(cfg.Instance)
	if err != nil {
		return err
	}
	dist, err := inst.Distance()
	if err != nil {
		return err
	}
	name := inst.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(cfg.Instance), ".gz")
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	logger.Info("instance loaded", "name", name, "nodes", dist.N(), "weights", inst.EdgeWeightType)

	r := &runner{cfg: cfg, name: name, dist: dist, logger: logger}
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		r.collector = metrics.NewCollector(reg)
		srv := serveMetrics(cfg.MetricsAddr, reg, logger)
		defer shutdown(srv, logger)
	}

	results, err := r.runAll(ctx)
	if err != nil {
		return err
	}
	summarize(logger, name, results)

	if cfg.LowerBound {
		if _, err = r.lowerBound(ctx, bestLength(results)); err != nil {
			return err
		}
	}

	return nil
}

// serveMetrics exposes reg on addr/metrics in the background.
func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "addr", addr, "error", err)
		}
	}()
	logger.Info("metrics server listening", "addr", addr)

	return srv
}

func shutdown(srv *http.Server, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("metrics server shutdown", "error", err)
	}
}

// summarize logs one line per run plus best/mean/worst lengths.
func summarize(logger *slog.Logger, name string, results []RunResult) {
	if len(results) == 0 {
		return
	}
	var (
		best  = results[0].Length
		worst = results[0].Length
		sum   float64
		r     RunResult
	)
	for _, r = range results {
		logger.Info("run finished",
			"instance", name,
			"run", r.Run,
			"seed", r.Seed,
			"length", r.Length,
			"initial", r.InitialLength,
			"improvements", r.Improvements,
			"registrations", r.Registrations,
			"elapsed", r.Elapsed,
			"terminated", r.Terminated,
			"tour", r.TourPath,
		)
		best = min(best, r.Length)
		worst = max(worst, r.Length)
		sum += float64(r.Length)
	}
	logger.Info("summary",
		"instance", name,
		"runs", len(results),
		"best", best,
		"mean", sum/float64(len(results)),
		"worst", worst,
	)
}
