package engine

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// DefaultTimeout is applied when Config.Timeout is zero
const DefaultTimeout = 10 * time.Second

// ErrInvalidConfig is returned by New and ChangeLocale for unusable settings
var ErrInvalidConfig = errors.New("engine: invalid configuration")

// Config holds the settings shared by every request a Client sends
type Config struct {
	// APIURL is the Engine base URL, e.g. "https://engine.example.com/api"
	APIURL string

	// ApplicationName identifies the calling application (x-agent-name)
	ApplicationName string

	// ServerID identifies the target game server instance (x-server-id)
	ServerID string

	// Locale is an optional BCP 47 tag sent as Accept-Language
	Locale string

	// Timeout bounds each request. Defaults to DefaultTimeout
	Timeout time.Duration
}

// DefaultConfig returns a configuration with the default timeout
func DefaultConfig() Config {
	return Config{
		Timeout: DefaultTimeout,
	}
}

// WithLocale returns a copy of the configuration using locale
func (c Config) WithLocale(locale string) Config {
	c.Locale = locale
	return c
}

func (c Config) normalize() (Config, error) {
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	if c.APIURL == "" {
		return c, fmt.Errorf("%w: api url is required", ErrInvalidConfig)
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return c, fmt.Errorf("%w: api url %q must be an absolute http(s) url", ErrInvalidConfig, c.APIURL)
	}
	if err := validateLocale(c.Locale); err != nil {
		return c, err
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c, nil
}

func validateLocale(locale string) error {
	if locale == "" {
		return nil
	}
	if _, err := language.Parse(locale); err != nil {
		return fmt.Errorf("%w: locale %q: %v", ErrInvalidConfig, locale, err)
	}
	return nil
}
