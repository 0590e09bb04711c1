// Package config reads siegeschema settings from SIEGE_* environment
// variables, after loading a .env file when one is present.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultAddr         = ":8080"
	DefaultMaxBodyBytes = 10 << 20
	DefaultWorkers      = 4
)

type Config struct {
	LogLevel      string // SIEGE_LOG, default "info"
	LogFile       string // SIEGE_LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // SIEGE_LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // SIEGE_LOG_MAX_BACKUPS, default 3
	LogMaxAgeDays int    // SIEGE_LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // SIEGE_LOG_COMPRESS, default true

	Addr         string // SIEGE_ADDR
	MaxBodyBytes int64  // SIEGE_MAX_BODY_BYTES
	Workers      int    // SIEGE_WORKERS

	Registry string // SIEGE_REGISTRY, schema registry base URL
	APIKey   string // SIEGE_APIKEY
}

// Load reads .env files (missing ones are ignored) and then the environment.
// Variables already set in the environment win over .env values.
func Load(files ...string) *Config {
	_ = godotenv.Load(files...)
	return FromEnv()
}

func FromEnv() *Config {
	return &Config{
		LogLevel:      getEnv("SIEGE_LOG", "info"),
		LogFile:       getEnv("SIEGE_LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("SIEGE_LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("SIEGE_LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays: getEnvInt("SIEGE_LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("SIEGE_LOG_COMPRESS", true),

		Addr:         getEnv("SIEGE_ADDR", DefaultAddr),
		MaxBodyBytes: int64(getEnvInt("SIEGE_MAX_BODY_BYTES", DefaultMaxBodyBytes)),
		Workers:      getEnvInt("SIEGE_WORKERS", DefaultWorkers),

		Registry: getEnv("SIEGE_REGISTRY", ""),
		APIKey:   getEnv("SIEGE_APIKEY", ""),
	}
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}
