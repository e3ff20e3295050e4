package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	DefaultTargetURL       = "http://localhost:3000"
	DefaultIntervalMinutes = 5.0
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// ErrMissingWebhook is returned when neither WEBHOOK_URL nor its legacy name is set.
var ErrMissingWebhook = errors.New("WEBHOOK_URL is not defined")

type Config struct {
	WebhookURL      string        // chat webhook receiving status updates
	TargetURL       string        // endpoint being monitored
	Interval        time.Duration // time between checks
	ProbeTimeout    time.Duration // bound on a single GET
	DNSDiagnostics  bool          // classify DNS on transport failures
	SerializeChecks bool          // skip a tick while the previous check is still running
	LogDir          string        // logs directory
	LogLevel        string
	StatusAddr      string // status server bind address; empty disables it
}

// rawEnv mirrors the environment. Pointers stay nil when a variable is unset,
// which lets the legacy names fill in only what the new names leave empty.
type rawEnv struct {
	WebhookURL      string   `env:"WEBHOOK_URL"`
	TargetURL       string   `env:"TARGET_URL"`
	IntervalMinutes *float64 `env:"CHECK_INTERVAL_MINUTES"`
	ProbeTimeoutMS  int      `env:"PROBE_TIMEOUT_MS" envDefault:"10000"`
	DNSDiagnostics  bool     `env:"PROBE_DNS_DIAGNOSTICS" envDefault:"false"`
	SerializeChecks bool     `env:"SERIALIZE_CHECKS" envDefault:"false"`
	LogDir          string   `env:"LOG_DIR" envDefault:"logs"`
	LogLevel        string   `env:"LOG_LEVEL" envDefault:"info"`
	StatusAddr      string   `env:"STATUS_ADDR"`

	// names used by the first release of the checker
	LegacyWebhookURL      string   `env:"DISCORD_WEBHOOK_URL"`
	LegacyTargetURL       string   `env:"WEBSITE_URL"`
	LegacyIntervalMinutes *float64 `env:"STATUS_CHECK_INTERVAL"`
}

// Load reads the environment once and validates it.
func Load() (Config, error) {
	raw, err := env.ParseAs[rawEnv]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	cfg := Config{
		WebhookURL:      firstNonEmpty(raw.WebhookURL, raw.LegacyWebhookURL),
		TargetURL:       firstNonEmpty(raw.TargetURL, raw.LegacyTargetURL, DefaultTargetURL),
		Interval:        minutes(firstSet(raw.IntervalMinutes, raw.LegacyIntervalMinutes, DefaultIntervalMinutes)),
		ProbeTimeout:    time.Duration(raw.ProbeTimeoutMS) * time.Millisecond,
		DNSDiagnostics:  raw.DNSDiagnostics,
		SerializeChecks: raw.SerializeChecks,
		LogDir:          raw.LogDir,
		LogLevel:        strings.ToLower(strings.TrimSpace(raw.LogLevel)),
		StatusAddr:      strings.TrimSpace(raw.StatusAddr),
	}

	if cfg.WebhookURL == "" {
		return Config{}, ErrMissingWebhook
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.WebhookURL, validation.Required, validation.By(validateHTTPURL)),
		validation.Field(&c.TargetURL, validation.Required, validation.By(validateHTTPURL)),
		validation.Field(&c.Interval, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.ProbeTimeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.LogDir, validation.Required),
		validation.Field(&c.LogLevel, validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError)),
	)
}

// IntervalMinutes is the check interval as configured, for the startup banner.
func (c Config) IntervalMinutes() float64 {
	return c.Interval.Minutes()
}

func validateHTTPURL(value interface{}) error {
	raw, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return validation.NewError("validation_invalid_url", "must be a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return validation.NewError("validation_invalid_scheme", "URL must use http or https scheme")
	}
	if u.Host == "" {
		return validation.NewError("validation_missing_host", "URL must have a host")
	}
	return nil
}

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func firstSet(primary, legacy *float64, def float64) float64 {
	if primary != nil {
		return *primary
	}
	if legacy != nil {
		return *legacy
	}
	return def
}
