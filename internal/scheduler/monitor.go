package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/hamed0406/statuswatch/internal/domain"
	"github.com/hamed0406/statuswatch/internal/metrics"
	"github.com/hamed0406/statuswatch/internal/notify"
	"github.com/hamed0406/statuswatch/internal/probe"
	"github.com/hamed0406/statuswatch/internal/tracker"
)

// Notifier announces a status transition.
type Notifier interface {
	Notify(ctx context.Context, r domain.CheckResult) notify.Outcome
}

// Monitor checks one target on a fixed interval and announces transitions.
//
// Checks are not serialized unless Serialize is set: a probe that outlives the
// interval runs alongside the next one, and whichever finishes last decides
// Current. The mutex only keeps the state update itself atomic.
type Monitor struct {
	Logger    *zap.Logger
	Target    string
	Checker   probe.Checker
	Notifier  Notifier
	Metrics   *metrics.Metrics
	Interval  time.Duration
	Serialize bool

	mu    sync.Mutex
	state domain.MonitorState
	last  *domain.CheckResult
}

func NewMonitor(
	logger *zap.Logger,
	target string,
	checker probe.Checker,
	notifier Notifier,
	m *metrics.Metrics,
	interval time.Duration,
	serialize bool,
) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Monitor{
		Logger:    logger,
		Target:    target,
		Checker:   checker,
		Notifier:  notifier,
		Metrics:   m,
		Interval:  interval,
		Serialize: serialize,
	}
}

// Run does an immediate check, then one per interval until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	clog := cronLogger{l: m.Logger.Sugar()}
	wrappers := []cron.JobWrapper{cron.Recover(clog)}
	if m.Serialize {
		wrappers = append(wrappers, cron.SkipIfStillRunning(clog))
	}
	job := cron.NewChain(wrappers...).Then(cron.FuncJob(func() { m.CheckOnce(ctx) }))

	c := cron.New(cron.WithLogger(clog))
	c.Schedule(cron.Every(m.Interval), job)

	go job.Run()
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	m.Logger.Info("monitor_stopped")
	return nil
}

// CheckOnce probes the target, folds the result into the state and, on a
// transition, sends a notification. A failed notification is logged; the
// transition stands.
func (m *Monitor) CheckOnce(ctx context.Context) (domain.CheckResult, bool) {
	log := m.Logger.With(
		zap.String("check_id", uuid.NewString()),
		zap.String("url", m.Target),
	)

	res := m.Checker.Check(ctx, m.Target)
	if ctx.Err() != nil {
		// the monitor is stopping; a cut-off probe says nothing about the target
		log.Debug("check_cancelled", zap.Error(ctx.Err()))
		return res, false
	}
	m.Metrics.ObserveCheck(res)

	m.mu.Lock()
	next, shouldNotify := tracker.Evaluate(res, m.state)
	m.state = next
	m.last = &res
	m.mu.Unlock()

	logResult(log, res)
	if !shouldNotify {
		return res, false
	}

	out := m.Notifier.Notify(ctx, res)
	m.Metrics.ObserveNotification(out.Sent)
	if out.Failed() {
		log.Error("❌ Failed to send webhook: "+out.Reason, zap.Stringer("status", res.Status))
		return res, true
	}
	log.Info("📢 Sent status update: "+notify.StatusLine(res.Status), zap.Stringer("status", res.Status))
	return res, true
}

// Snapshot returns the current state and the most recent result, if any.
func (m *Monitor) Snapshot() (domain.MonitorState, *domain.CheckResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.last == nil {
		return m.state, nil
	}
	last := *m.last
	return m.state, &last
}

func logResult(log *zap.Logger, r domain.CheckResult) {
	switch {
	case r.Status == domain.StatusHealthy:
		log.Info(
			fmt.Sprintf("✅ Website is online (%s) - Response time: %dms", r.StatusText, r.LatencyMS()),
			zap.Int("status", r.StatusCode),
			zap.Int64("latency_ms", r.LatencyMS()),
		)
	case r.StatusCode != 0:
		log.Error(
			"❌ Website returned an error: "+r.Reason,
			zap.Int("status", r.StatusCode),
		)
	default:
		fields := []zap.Field{zap.String("reason", r.Reason)}
		if r.DNSClass != "" {
			fields = append(fields, zap.String("dns_class", r.DNSClass))
		}
		log.Error("❌ Error checking website status: "+r.Reason, fields...)
	}
}
