package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestSetupDisabled(t *testing.T) {
	logger, cleanup, err := Setup("", "debug")
	require.NoError(t, err)
	require.NotNil(t, logger)
	defer cleanup()

	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
}

func TestSetupWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	logger, cleanup, err := Setup(path, "info")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("loaded", zap.Int("rows", 12))
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"msg":"loaded"`)
	assert.Contains(t, out, `"rows":12`)
	assert.NotContains(t, out, "hidden")
	assert.Equal(t, 1, strings.Count(strings.TrimSpace(out), "\n")+1)
}

func TestSetupAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	for i := 0; i < 2; i++ {
		logger, cleanup, err := Setup(path, "")
		require.NoError(t, err)
		logger.Info("run")
		cleanup()
	}
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), `"msg":"run"`))
}

func TestSetupBadLevel(t *testing.T) {
	_, _, err := Setup(filepath.Join(t.TempDir(), "x.log"), "loud")
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"", zapcore.InfoLevel},
		{"debug", zapcore.DebugLevel},
		{" WARN ", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
