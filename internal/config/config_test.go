package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.Equal(t, 72*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "5547997292357", cfg.Handoff.Contact)
	assert.True(t, cfg.Handoff.ClearOnDispatch)
	assert.NotEmpty(t, cfg.Session.Secret)
}

func TestLoad_FromEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "Redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("HANDOFF_CLEAR_ON_DISPATCH", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://albino.com.br, https://www.albino.com.br")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreRedis, cfg.Store.Driver)
	assert.False(t, cfg.Handoff.ClearOnDispatch)
	assert.Equal(t, []string{"https://albino.com.br", "https://www.albino.com.br"}, cfg.HTTP.CORSAllowedOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"secret outside development": {"APP_ENV": "production"},
		"redis without addr":         {"APP_ENV": "development", "STORE_DRIVER": "redis"},
		"unknown driver":             {"APP_ENV": "development", "STORE_DRIVER": "postgres"},
		"bad ttl":                    {"APP_ENV": "development", "SESSION_TTL": "soon"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			chdirTemp(t)
			t.Setenv("SESSION_SECRET", "")
			t.Setenv("REDIS_ADDR", "")
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
