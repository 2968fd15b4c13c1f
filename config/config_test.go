package config

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	for _, k := range []string{"PORT", "JWT_SECRET", "CACHE_DRIVER", "TASK_DRIVER", "CONTEXT_TIMEOUT", "CORS_ALLOWED_ORIGINS", "RATE_LIMIT_RPS"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverMemory, cfg.CacheDriver)
	assert.Equal(t, DriverInline, cfg.TaskDriver)
	assert.Equal(t, 5*time.Second, cfg.ContextTimeout)
	assert.Equal(t, float64(20), cfg.RateLimitRPS)
	assert.NotEmpty(t, cfg.JWTSecret, "development falls back to a dev secret")
	assert.Empty(t, cfg.AllowedOrigins)
	assert.False(t, cfg.UsesRedis())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CACHE_DRIVER", "REDIS")
	t.Setenv("TASK_DRIVER", "inline")
	t.Setenv("CONTEXT_TIMEOUT", "2s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com ,")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SES_INSECURE_SKIP_VERIFY", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, DriverRedis, cfg.CacheDriver)
	assert.Equal(t, 2*time.Second, cfg.ContextTimeout)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.SESInsecureSkipVerify)
	assert.True(t, cfg.UsesRedis())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"production without secret", map[string]string{"GO_ENV": "production", "JWT_SECRET": ""}},
		{"unknown cache driver", map[string]string{"CACHE_DRIVER": "memcached"}},
		{"unknown task driver", map[string]string{"TASK_DRIVER": "kafka"}},
		{"bad timeout", map[string]string{"CONTEXT_TIMEOUT": "soon"}},
		{"negative refresh interval", map[string]string{"ANNOUNCEMENT_REFRESH_INTERVAL": "-1m"}},
		{"bad redis db", map[string]string{"REDIS_DB": "zero"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GO_ENV", "test")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&Config{Environment: "production", LogLevel: "warn"}, &buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "v", rec["k"])

	buf.Reset()
	newLogger(&Config{Environment: "development", LogLevel: "debug"}, &buf).Debug("dev")
	assert.Contains(t, buf.String(), "msg=dev")
}
