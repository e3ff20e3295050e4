package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/hamed0406/statuswatch/internal/config"
	"github.com/hamed0406/statuswatch/internal/httpapi"
	"github.com/hamed0406/statuswatch/internal/logging"
	"github.com/hamed0406/statuswatch/internal/metrics"
	"github.com/hamed0406/statuswatch/internal/notify"
	"github.com/hamed0406/statuswatch/internal/probe"
	"github.com/hamed0406/statuswatch/internal/scheduler"
)

func main() {
	if err := config.LoadDotEnv(config.DotEnvFile); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	checker := probe.NewHTTPChecker(cfg.ProbeTimeout)
	checker.DNS = cfg.DNSDiagnostics
	m := metrics.New()
	mon := scheduler.NewMonitor(
		logger,
		cfg.TargetURL,
		checker,
		notify.NewStatusNotifier(notify.NewSink(cfg.WebhookURL)),
		m,
		cfg.Interval,
		cfg.SerializeChecks,
	)

	logger.Info("🌐 Starting website status monitor for: "+cfg.TargetURL, zap.String("target", cfg.TargetURL))
	logger.Info(fmt.Sprintf("⏱️  Checking every %g minutes", cfg.IntervalMinutes()), zap.Duration("interval", cfg.Interval))

	var api *httpapi.Server
	if cfg.StatusAddr != "" {
		api = httpapi.NewServer(logger, cfg.TargetURL, mon, m.Registry)
	}

	// no signal handling: the monitor runs until the process is killed
	_ = run(context.Background(), logger, mon, api, cfg.StatusAddr)
}

// run serves the status endpoints in the background and blocks on the
// monitor. A status server that fails to start or dies is logged only;
// it never stops the checks.
func run(ctx context.Context, logger *zap.Logger, mon *scheduler.Monitor, api *httpapi.Server, addr string) error {
	if api != nil && addr != "" {
		go func() {
			if err := api.ListenAndServe(ctx, addr); err != nil {
				logger.Error("status_listen_failed", zap.String("addr", addr), zap.Error(err))
			}
		}()
	}
	return mon.Run(ctx)
}
