package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.example, http://b.example")
	t.Setenv("CSRF_COOKIE_SECURE", "false")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORS.AllowOrigins)
	assert.False(t, cfg.CSRF.CookieSecure)
	assert.True(t, cfg.CSRF.Enabled)
	assert.Equal(t, "csrftoken", cfg.CSRF.CookieName)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CORS_ALLOW_ORIGINS", "")
	t.Setenv("MINIO_ENDPOINT", "")

	cfg := Load()

	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowOrigins)
	assert.False(t, cfg.CORS.AllowsAny())
	assert.False(t, cfg.MinIO.Enabled())
	assert.Equal(t, 10, cfg.ShutdownTimeoutSec)
}

func TestCORSAllowsAny(t *testing.T) {
	assert.True(t, CORSConfig{AllowOrigins: []string{"*"}}.AllowsAny())
	assert.True(t, CORSConfig{}.AllowsAny())
	assert.False(t, CORSConfig{AllowOrigins: []string{"http://x"}}.AllowsAny())
}

func TestLocation(t *testing.T) {
	cfg := &AppConfig{Timezone: "Asia/Tokyo"}
	loc := cfg.Location()
	if loc.String() != "Asia/Tokyo" {
		// tzdata may be missing in minimal images
		assert.Equal(t, time.UTC, loc)
	}

	cfg.Timezone = "Not/AZone"
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestGetEnvList(t *testing.T) {
	key := "TEST_LIST_VAR"

	t.Setenv(key, " , ")
	assert.Equal(t, []string{"d"}, getEnvList(key, []string{"d"}))

	t.Setenv(key, "a,b")
	assert.Equal(t, []string{"a", "b"}, getEnvList(key, nil))
}
