// Package config provides configuration management for enginectl
package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alexbotov/engine-go/internal/logging"
	"github.com/alexbotov/engine-go/pkg/engine"
	"gopkg.in/yaml.v3"
)

// Authorization modes
const (
	AuthNone    = "none"
	AuthAPIKey  = "apikey"
	AuthBearer  = "bearer"
	AuthService = "service"
)

// Config holds all configuration for enginectl
type Config struct {
	Engine EngineConfig `yaml:"engine"`
	Auth   AuthConfig   `yaml:"auth"`
	Log    LogConfig    `yaml:"log"`
}

// EngineConfig holds the Engine connection settings
type EngineConfig struct {
	APIURL          string        `yaml:"apiUrl"`
	ApplicationName string        `yaml:"applicationName"`
	ServerID        string        `yaml:"serverId"`
	Locale          string        `yaml:"locale"`
	Timeout         time.Duration `yaml:"timeout"`
}

// AuthConfig holds credentials. Mode is inferred from the filled fields
// when empty
type AuthConfig struct {
	Mode      string `yaml:"mode"`
	KeyID     string `yaml:"keyId"`
	KeySecret string `yaml:"keySecret"`
	Token     string `yaml:"token"`
	Audience  string `yaml:"audience"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in defaults
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			ApplicationName: "enginectl",
			Timeout:         engine.DefaultTimeout,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: string(logging.FormatText),
		},
	}
}

// Load loads configuration from an optional YAML file, then applies
// ENGINE_* environment overrides. ${VAR} references in the file are expanded
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Engine.APIURL = getEnv("ENGINE_API_URL", c.Engine.APIURL)
	c.Engine.ApplicationName = getEnv("ENGINE_APP_NAME", c.Engine.ApplicationName)
	c.Engine.ServerID = getEnv("ENGINE_SERVER_ID", c.Engine.ServerID)
	c.Engine.Locale = getEnv("ENGINE_LOCALE", c.Engine.Locale)
	if v := os.Getenv("ENGINE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("ENGINE_TIMEOUT: %w", err)
		}
		c.Engine.Timeout = d
	}

	c.Auth.Mode = getEnv("ENGINE_AUTH_MODE", c.Auth.Mode)
	c.Auth.KeyID = getEnv("ENGINE_API_KEY_ID", c.Auth.KeyID)
	c.Auth.KeySecret = getEnv("ENGINE_API_KEY_SECRET", c.Auth.KeySecret)
	c.Auth.Token = getEnv("ENGINE_TOKEN", c.Auth.Token)
	c.Auth.Audience = getEnv("ENGINE_TOKEN_AUDIENCE", c.Auth.Audience)

	c.Log.Level = getEnv("ENGINE_LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("ENGINE_LOG_FORMAT", c.Log.Format)
	return nil
}

// ClientConfig returns the engine client configuration
func (c *Config) ClientConfig() engine.Config {
	return engine.Config{
		APIURL:          c.Engine.APIURL,
		ApplicationName: c.Engine.ApplicationName,
		ServerID:        c.Engine.ServerID,
		Locale:          c.Engine.Locale,
		Timeout:         c.Engine.Timeout,
	}
}

// Authorization builds the provider selected by Auth. It returns nil when
// no credentials are configured
func (c *Config) Authorization() (engine.AuthorizationProvider, error) {
	mode := strings.ToLower(strings.TrimSpace(c.Auth.Mode))
	if mode == "" {
		switch {
		case c.Auth.Token != "":
			mode = AuthBearer
		case c.Auth.KeyID != "" || c.Auth.KeySecret != "":
			mode = AuthAPIKey
		default:
			mode = AuthNone
		}
	}

	switch mode {
	case AuthNone:
		return nil, nil
	case AuthAPIKey:
		if c.Auth.KeyID == "" || c.Auth.KeySecret == "" {
			return nil, fmt.Errorf("auth mode %q requires keyId and keySecret", mode)
		}
		return engine.NewAPIKeyAuthorization(c.Auth.KeyID, c.Auth.KeySecret), nil
	case AuthBearer:
		if c.Auth.Token == "" {
			return nil, fmt.Errorf("auth mode %q requires a token", mode)
		}
		return &engine.BearerAuthorization{Token: c.Auth.Token}, nil
	case AuthService:
		if c.Auth.KeyID == "" || c.Auth.KeySecret == "" {
			return nil, fmt.Errorf("auth mode %q requires keyId and keySecret", mode)
		}
		return engine.NewServiceTokenAuthorization(c.Auth.KeyID, c.Auth.KeySecret, c.Auth.Audience), nil
	}
	return nil, fmt.Errorf("unknown auth mode %q", c.Auth.Mode)
}

// LoggingConfig returns the logging settings described by Log, writing to w
func (c *Config) LoggingConfig(w io.Writer) (logging.Config, error) {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return logging.Config{}, err
	}
	return logging.Config{
		Level:  level,
		Format: logging.ParseFormat(c.Log.Format),
		Output: w,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
