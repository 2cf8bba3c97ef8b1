package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/Rorical/cadcopilot/internal/config"
)

func TestNewWithoutFileIsNop(t *testing.T) {
	logger, err := New(config.LogConfig{}, true)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.log")

	logger, err := New(config.LogConfig{File: path, Level: "warn"}, false)
	require.NoError(t, err)
	logger.Info("dropped")
	logger.Warn("kept")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kept")
	assert.NotContains(t, string(data), "dropped")
}

func TestNewVerboseForcesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.log")

	logger, err := New(config.LogConfig{File: path, Level: "error"}, true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(config.LogConfig{File: filepath.Join(t.TempDir(), "x.log"), Level: "loud"}, false)
	require.Error(t, err)
}

func TestNewConsole(t *testing.T) {
	logger, err := NewConsole(config.LogConfig{}, false)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = NewConsole(config.LogConfig{Level: "loud"}, false)
	require.Error(t, err)
}
