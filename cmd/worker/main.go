// Command worker keeps the football graph and live match data in sync with the
// sports data provider.
//
// Usage:
//
//	worker serve
//	worker sync league 39
//	worker sync teams 39
//	worker sync roster 50
//	worker live poll 1035037
//	worker jobs add 1035037
//	worker roster link 50 1100
//	worker roster protect 1100 --clear
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/riskibarqy/football-sync/internal/app"
	"github.com/riskibarqy/football-sync/internal/config"
	"github.com/riskibarqy/football-sync/internal/observability"
	"github.com/riskibarqy/football-sync/internal/platform/logging"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "worker",
		Short:         "Football data reconciliation worker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd())
	root.AddCommand(syncCmd())
	root.AddCommand(liveCmd())
	root.AddCommand(jobsCmd())
	root.AddCommand(rosterCmd())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		logger := logging.NewConsole(logging.LevelInfo)
		logger.Error("command failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

// runWithWorker loads config, starts telemetry and hands a wired worker to fn.
func runWithWorker(ctx context.Context, fn func(ctx context.Context, w *app.Worker, logger *logging.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(cfg)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownTelemetry, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return fmt.Errorf("init uptrace: %w", err)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			logger.Warn("uptrace shutdown failed", "error", err)
		}
	}()

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		return fmt.Errorf("init pyroscope: %w", err)
	}
	defer func() {
		if err := stopProfiler(); err != nil {
			logger.Warn("pyroscope stop failed", "error", err)
		}
	}()

	w, err := app.NewWorker(ctx, cfg, logger, app.Options{})
	if err != nil {
		return fmt.Errorf("build worker: %w", err)
	}
	defer func() {
		if err := w.Close(); err != nil {
			logger.Warn("close worker failed", "error", err)
		}
	}()
	w.StartScheduler(ctx)

	return fn(ctx, w, logger)
}

func newLogger(cfg config.Config) *logging.Logger {
	if cfg.AppEnv == config.EnvDev {
		return logging.NewConsole(cfg.LogLevel)
	}
	return logging.NewJSON(cfg.LogLevel)
}

func parseID(raw, name string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

func parseIDs(args []string, name string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, raw := range args {
		id, err := parseID(raw, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
