package logging

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_CreatesDirAndLogger(t *testing.T) {
	dir := t.TempDir() + "/nested"
	log, err := NewLogger(dir, "info")
	require.NoError(t, err)
	defer func() { _ = log.Sync() }()

	_, err = os.Stat(dir)
	require.NoError(t, err, "log dir missing")

	// Write once; just ensuring no panic / basic functionality.
	log.Info("test_message_from_logging_test")

	// lumberjack opens the file lazily on first write
	_, err = os.Stat(dir + "/" + FileName)
	assert.NoError(t, err)
}

func TestNewLogger_Levels(t *testing.T) {
	log, err := NewLogger(t.TempDir(), "warn")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))

	// unknown levels fall back to info
	log, err = NewLogger(t.TempDir(), "chatty")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}
