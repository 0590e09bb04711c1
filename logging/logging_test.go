package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestSetupWriter(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer
	logger, cleanup, err := Setup(Config{Level: "warn", Writer: &buf})
	require.NoError(t, err)
	defer cleanup()

	logger.Info("hidden")
	logger.Warn("shown", "k", "v")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown k=v")
	assert.Same(t, logger, slog.Default())
}

func TestSetupBadLevel(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer
	logger, _, err := Setup(Config{Level: "loud", Writer: &buf})
	assert.Error(t, err)
	require.NotNil(t, logger)

	logger.Info("still logging")
	assert.Contains(t, buf.String(), "still logging")
}

func TestSetupFile(t *testing.T) {
	restoreDefault(t)
	path := filepath.Join(t.TempDir(), "logs", "siegeschema.log")
	logger, cleanup, err := Setup(Config{Level: "debug", FilePath: path, MaxSizeMB: 1})
	require.NoError(t, err)

	logger.Debug("to file")
	require.NoError(t, cleanup())

	bs, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(bs), "to file")
}
