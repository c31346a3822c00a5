package config

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, kv map[string]string) {
	t.Helper()
	for _, k := range []string{"DATABASE_URL", "PORT", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "LOG_LEVEL", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(k, kv[k])
	}
}

func noDotenv(t *testing.T) {
	t.Helper()
	loadDotenv = func() error { return os.ErrNotExist }
	t.Cleanup(func() { loadDotenv = defaultLoadDotenv })
}

var defaultLoadDotenv = loadDotenv

func TestLoadDefaults(t *testing.T) {
	noDotenv(t)
	setEnv(t, map[string]string{"DATABASE_URL": "postgres://u:p@localhost/db"})

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "postgres://u:p@localhost/db", cfg.DatabaseURL)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, ":8080", cfg.Addr())
	require.False(t, cfg.Redis.Enabled())
	require.Equal(t, 0, cfg.Redis.DB)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadAll(t *testing.T) {
	noDotenv(t)
	setEnv(t, map[string]string{
		"DATABASE_URL":     "db",
		"PORT":             "9000",
		"REDIS_ADDR":       "127.0.0.1:6379",
		"REDIS_PASSWORD":   "pw",
		"REDIS_DB":         "2",
		"LOG_LEVEL":        "debug",
		"SHUTDOWN_TIMEOUT": "3s",
	})

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9000, cfg.Port)
	require.True(t, cfg.Redis.Enabled())
	require.Equal(t, RedisConfig{Addr: "127.0.0.1:6379", Password: "pw", DB: 2}, cfg.Redis)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoadErrors(t *testing.T) {
	noDotenv(t)
	cases := []map[string]string{
		{},
		{"DATABASE_URL": "db", "PORT": "abc"},
		{"DATABASE_URL": "db", "PORT": "70000"},
		{"DATABASE_URL": "db", "REDIS_DB": "x"},
		{"DATABASE_URL": "db", "SHUTDOWN_TIMEOUT": "soon"},
	}
	for _, kv := range cases {
		setEnv(t, kv)
		_, err := Load()
		require.Error(t, err, "%v", kv)
	}
}

func TestLoadDotenvError(t *testing.T) {
	loadDotenv = func() error { return errors.New("parse") }
	t.Cleanup(func() { loadDotenv = defaultLoadDotenv })
	setEnv(t, map[string]string{"DATABASE_URL": "db"})

	_, err := Load()
	require.ErrorContains(t, err, "parse")
}
