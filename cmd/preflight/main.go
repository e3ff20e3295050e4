// cmd/preflight/main.go
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hamed0406/statuswatch/internal/config"
	"github.com/hamed0406/statuswatch/internal/notify"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	for legacy, current := range map[string]string{
		"DISCORD_WEBHOOK_URL":   "WEBHOOK_URL",
		"WEBSITE_URL":           "TARGET_URL",
		"STATUS_CHECK_INTERVAL": "CHECK_INTERVAL_MINUTES",
	} {
		if strings.TrimSpace(os.Getenv(legacy)) != "" {
			warn(legacy + " is deprecated; use " + current)
		}
	}

	if err := config.LoadDotEnv(config.DotEnvFile); err != nil {
		fail(err.Error())
	}
	cfg, err := config.Load()
	if errors.Is(err, config.ErrMissingWebhook) {
		fail("WEBHOOK_URL is empty (no status updates can be sent).")
	}
	if err != nil {
		fail(err.Error())
	}

	switch notify.NewSink(cfg.WebhookURL).(type) {
	case *notify.Slack:
		ok("WEBHOOK_URL present (slack)")
	default:
		ok("WEBHOOK_URL present (discord)")
	}

	if os.Getenv("TARGET_URL") == "" && os.Getenv("WEBSITE_URL") == "" {
		warn("TARGET_URL empty; monitoring " + config.DefaultTargetURL)
	} else {
		ok("TARGET_URL=" + cfg.TargetURL)
	}

	ok(fmt.Sprintf("interval=%s timeout=%s", cfg.Interval, cfg.ProbeTimeout))
	if cfg.ProbeTimeout >= cfg.Interval {
		warn("PROBE_TIMEOUT_MS is not below the check interval; checks may overlap.")
	}

	if cfg.StatusAddr == "" {
		warn("STATUS_ADDR empty; status server disabled.")
	} else {
		ok("STATUS_ADDR=" + cfg.StatusAddr)
	}

	ok("preflight passed")
}
