package infer

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	inf := WithLogging(NewEngine(), logger)

	s, err := inf.InferBytes([]byte(`{"a": 1}`))
	require.NoError(t, err)
	assert.NotNil(t, s)
	assert.Contains(t, buf.String(), "inferred schema")
	assert.Contains(t, buf.String(), "root=struct")

	buf.Reset()
	_, err = inf.InferBytes([]byte(`42`))
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "could not infer schema")
}
