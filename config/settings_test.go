package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv removes key for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "CMS_DB_URL", "PAGE_CACHE_TTL", "CORS_ORIGINS"} {
		unsetenv(t, key)
	}

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", s.Port)
	assert.Equal(t, 5*time.Minute, s.PageCacheTTL)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:3001"}, s.CORSOrigins)
	assert.Contains(t, s.DSN(), "host=")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("CMS_DB_URL", "postgres://shop@db/catalog")
	t.Setenv("PAGE_CACHE_TTL", "30s")
	t.Setenv("WIDGET_APPLY_MODE", "gated")

	s, err := Load()
	require.NoError(t, err)

	assert.True(t, s.IsProduction())
	assert.Equal(t, "postgres://shop@db/catalog", s.DSN())
	assert.Equal(t, 30*time.Second, s.PageCacheTTL)
	assert.Equal(t, "gated", s.WidgetApplyMode)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("PAGE_CACHE_TTL", "soon")

	_, err := Load()
	assert.Error(t, err)
}
