package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexbotov/engine-go/internal/logging"
	"github.com/alexbotov/engine-go/pkg/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "enginectl", cfg.Engine.ApplicationName)
	assert.Equal(t, engine.DefaultTimeout, cfg.Engine.Timeout)
	assert.Equal(t, "warn", cfg.Log.Level)

	auth, err := cfg.Authorization()
	require.NoError(t, err)
	assert.Nil(t, auth)
}

func TestLoad_File(t *testing.T) {
	t.Setenv("TEST_ENGINE_SECRET", "from-env")
	path := writeConfig(t, `
engine:
  apiUrl: https://engine.example.com/api
  applicationName: lobby
  serverId: eu-1
  locale: fr-FR
  timeout: 3s
auth:
  keyId: key-1
  keySecret: ${TEST_ENGINE_SECRET}
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, engine.Config{
		APIURL:          "https://engine.example.com/api",
		ApplicationName: "lobby",
		ServerID:        "eu-1",
		Locale:          "fr-FR",
		Timeout:         3 * time.Second,
	}, cfg.ClientConfig())

	auth, err := cfg.Authorization()
	require.NoError(t, err)
	apiKey, ok := auth.(*engine.APIKeyAuthorization)
	require.True(t, ok, "expected API key provider, got %T", auth)
	assert.Equal(t, "from-env", apiKey.Secret)

	logCfg, err := cfg.LoggingConfig(&bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, logCfg.Level)
	assert.Equal(t, logging.FormatJSON, logCfg.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
engine:
  apiUrl: https://file.example.com
  serverId: file-srv
`)
	t.Setenv("ENGINE_API_URL", "https://env.example.com")
	t.Setenv("ENGINE_LOCALE", "de-DE")
	t.Setenv("ENGINE_TIMEOUT", "250ms")
	t.Setenv("ENGINE_TOKEN", "session")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.Engine.APIURL)
	assert.Equal(t, "file-srv", cfg.Engine.ServerID)
	assert.Equal(t, "de-DE", cfg.Engine.Locale)
	assert.Equal(t, 250*time.Millisecond, cfg.Engine.Timeout)

	auth, err := cfg.Authorization()
	require.NoError(t, err)
	header, err := auth.AuthorizationHeader()
	require.NoError(t, err)
	assert.Equal(t, "Bearer session", header)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "engine: [unclosed"))
	assert.Error(t, err)

	t.Setenv("ENGINE_TIMEOUT", "soon")
	_, err = Load("")
	assert.ErrorContains(t, err, "ENGINE_TIMEOUT")
}

func TestAuthorization_Modes(t *testing.T) {
	tests := []struct {
		name    string
		auth    AuthConfig
		want    any
		wantErr bool
	}{
		{"explicit none ignores credentials", AuthConfig{Mode: "none", Token: "x"}, nil, false},
		{"apikey", AuthConfig{Mode: "apikey", KeyID: "k", KeySecret: "s"}, &engine.APIKeyAuthorization{}, false},
		{"apikey missing secret", AuthConfig{Mode: "apikey", KeyID: "k"}, nil, true},
		{"inferred apikey missing id", AuthConfig{KeySecret: "s"}, nil, true},
		{"bearer", AuthConfig{Mode: "Bearer", Token: "t"}, &engine.BearerAuthorization{}, false},
		{"bearer missing token", AuthConfig{Mode: "bearer"}, nil, true},
		{"service", AuthConfig{Mode: "service", KeyID: "k", KeySecret: "s", Audience: "engine"}, &engine.ServiceTokenAuthorization{}, false},
		{"unknown", AuthConfig{Mode: "oauth"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Auth = tt.auth

			got, err := cfg.Authorization()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			assert.IsType(t, tt.want, got)
		})
	}
}

func TestLoggingConfig_InvalidLevel(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "loud"
	_, err := cfg.LoggingConfig(&bytes.Buffer{})
	assert.Error(t, err)
}
