package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	for _, k := range []string{"SIEGE_LOG", "SIEGE_ADDR", "SIEGE_WORKERS", "SIEGE_MAX_BODY_BYTES", "SIEGE_LOG_COMPRESS"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	c := FromEnv()
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, DefaultAddr, c.Addr)
	assert.Equal(t, DefaultWorkers, c.Workers)
	assert.Equal(t, int64(DefaultMaxBodyBytes), c.MaxBodyBytes)
	assert.True(t, c.LogCompress)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("SIEGE_LOG", "debug")
	t.Setenv("SIEGE_ADDR", "127.0.0.1:9000")
	t.Setenv("SIEGE_WORKERS", "12")
	t.Setenv("SIEGE_MAX_BODY_BYTES", "1024")
	t.Setenv("SIEGE_LOG_COMPRESS", "off")
	t.Setenv("SIEGE_REGISTRY", "https://registry.example.com")
	t.Setenv("SIEGE_APIKEY", "secret")

	c := FromEnv()
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, "127.0.0.1:9000", c.Addr)
	assert.Equal(t, 12, c.Workers)
	assert.Equal(t, int64(1024), c.MaxBodyBytes)
	assert.False(t, c.LogCompress)
	assert.Equal(t, "https://registry.example.com", c.Registry)
	assert.Equal(t, "secret", c.APIKey)
}

func TestInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("SIEGE_WORKERS", "many")
	t.Setenv("SIEGE_MAX_BODY_BYTES", "-5")
	t.Setenv("SIEGE_LOG_COMPRESS", "maybe")

	c := FromEnv()
	assert.Equal(t, DefaultWorkers, c.Workers)
	assert.Equal(t, int64(DefaultMaxBodyBytes), c.MaxBodyBytes)
	assert.True(t, c.LogCompress)
}

func TestLoadDotEnv(t *testing.T) {
	p := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(p, []byte("SIEGE_APIKEY=from-file\nSIEGE_WORKERS=7\n"), 0o600))
	t.Setenv("SIEGE_APIKEY", "")
	require.NoError(t, os.Unsetenv("SIEGE_APIKEY"))
	t.Setenv("SIEGE_WORKERS", "2")

	c := Load(p)
	assert.Equal(t, "from-file", c.APIKey)
	assert.Equal(t, 2, c.Workers)
}
