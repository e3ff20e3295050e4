package main

import (
	"context"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hamed0406/statuswatch/internal/domain"
	"github.com/hamed0406/statuswatch/internal/httpapi"
	"github.com/hamed0406/statuswatch/internal/notify"
	"github.com/hamed0406/statuswatch/internal/scheduler"
)

type countingChecker struct{ n atomic.Int32 }

func (c *countingChecker) Check(ctx context.Context, target string) domain.CheckResult {
	c.n.Add(1)
	return domain.Healthy(target, 200, "200 - OK", time.Millisecond)
}

type quietNotifier struct{}

func (quietNotifier) Notify(ctx context.Context, r domain.CheckResult) notify.Outcome {
	return notify.Outcome{Sent: true}
}

func TestRun_StatusServerBindFailureKeepsChecking(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)
	chk := &countingChecker{}
	mon := scheduler.NewMonitor(logger, "http://t", chk, quietNotifier{}, nil, time.Second, false)
	api := httpapi.NewServer(logger, "http://t", mon, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2500*time.Millisecond)
	defer cancel()
	start := time.Now()
	require.NoError(t, run(ctx, logger, mon, api, busy.Addr().String()))

	// run only returns once its own context is done
	assert.GreaterOrEqual(t, time.Since(start), 2*time.Second)
	assert.GreaterOrEqual(t, chk.n.Load(), int32(2), "checks must continue after the status server fails")
	assert.Equal(t, 1, logs.FilterMessage("status_listen_failed").Len())
}
