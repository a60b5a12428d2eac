package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef-test-secret"

// clearEnv pins every variable LoadConfig reads so the host environment can't leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"STUDENTS_FILE", "STUDENTS_SERIALIZE_WRITES", "AUTH_SECRET", "AUTH_TOKEN_DURATION",
		"HOST", "PORT", "WEB_DIR", "CSS_DIR", "JS_DIR", "REQUEST_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUTH_SECRET", testSecret)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultStudentsFile, cfg.Store.Path)
	assert.False(t, cfg.Store.SerializeWrites)
	assert.Equal(t, testSecret, cfg.Auth.Secret)
	assert.Equal(t, DefaultTokenDuration, cfg.Auth.TokenDuration)
	assert.Equal(t, "127.0.0.1:8000", cfg.Server.Addr())
	assert.Equal(t, DefaultWebDir, cfg.Server.WebDir)
	assert.Equal(t, DefaultCSSDir, cfg.Server.CSSDir)
	assert.Equal(t, DefaultJSDir, cfg.Server.JSDir)
	assert.Equal(t, DefaultRequestTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUTH_SECRET", testSecret)
	t.Setenv("STUDENTS_FILE", "/tmp/other.json")
	t.Setenv("STUDENTS_SERIALIZE_WRITES", "true")
	t.Setenv("AUTH_TOKEN_DURATION", "15m")
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("PORT", "9090")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/other.json", cfg.Store.Path)
	assert.True(t, cfg.Store.SerializeWrites)
	assert.Equal(t, 15*time.Minute, cfg.Auth.TokenDuration)
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Addr())
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfig_CollectsAllEnvErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("STUDENTS_SERIALIZE_WRITES", "sometimes")
	t.Setenv("AUTH_TOKEN_DURATION", "forever")

	_, err := LoadConfig()
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "AUTH_SECRET")
	assert.Contains(t, msg, "STUDENTS_SERIALIZE_WRITES")
	assert.Contains(t, msg, "AUTH_TOKEN_DURATION")
}

func TestLoadConfig_ValidationFailures(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUTH_SECRET", "short")
	t.Setenv("PORT", "http")
	t.Setenv("LOG_LEVEL", "loud")

	_, err := LoadConfig()
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "AppConfig.Auth.Secret")
	assert.Contains(t, msg, "AppConfig.Server.Port")
	assert.Contains(t, msg, "AppConfig.Log.Level")
}

func TestValidate_RejectsNonPositiveDurations(t *testing.T) {
	cfg := &AppConfig{
		Store:  &StoreConfig{Path: "x.json"},
		Auth:   &AuthConfig{Secret: testSecret, TokenDuration: 0},
		Server: &ServerConfig{Host: "localhost", Port: "80", RequestTimeout: time.Second},
		Log:    &LogConfig{Level: "info", Format: "text"},
	}

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TokenDuration")
}
