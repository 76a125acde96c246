package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "http://localhost:3000", cfg.EventsAPI.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.EventsAPI.Timeout)
	assert.Equal(t, "Europe/Berlin", cfg.Display.TimeZone)
	assert.Equal(t, 3*time.Second, cfg.Notifications.Duration)
	assert.Equal(t, SessionStoreMemory, cfg.Session.Store)
	assert.Equal(t, "event_board_session", cfg.Session.CookieName)
	assert.Equal(t, BackendStorageMemory, cfg.Backend.Storage)
	assert.Equal(t, 3000, cfg.Backend.Port)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("EVENTS_API_BASE_URL", "https://events.example.com/api/")
	t.Setenv("EVENTS_API_TIMEOUT", "bogus")
	t.Setenv("SESSION_STORE", "REDIS")
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example.com , ,https://b.example.com")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://events.example.com/api", cfg.EventsAPI.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.EventsAPI.Timeout)
	assert.Equal(t, SessionStoreRedis, cfg.Session.Store)
	assert.Equal(t, 15*time.Minute, cfg.Session.TTL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 9090, cfg.Port)
}
