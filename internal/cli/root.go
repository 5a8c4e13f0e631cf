// Package cli implements enginectl, a command line client for the Engine API
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/alexbotov/engine-go/internal/config"
	"github.com/alexbotov/engine-go/internal/logging"
	"github.com/alexbotov/engine-go/pkg/engine"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string

	apiURL    string
	appName   string
	serverID  string
	locale    string
	timeout   time.Duration
	authMode  string
	keyID     string
	keySecret string
	token     string
	logLevel  string

	characterID   string
	executorUser  string
	correlationID string
}

// Execute runs enginectl with os.Args and returns the process exit code
func Execute() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		printError(root.ErrOrStderr(), err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "enginectl",
		Short: "Command line client for the Engine API",
		Long: `enginectl sends requests to an Engine game server API.

Settings are read from an optional YAML file (--config), then ENGINE_*
environment variables, then flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	fs := cmd.PersistentFlags()
	fs.StringVarP(&opts.configPath, "config", "c", os.Getenv("ENGINE_CONFIG"), "config yaml path")
	fs.StringVar(&opts.apiURL, "api-url", "", "Engine base URL")
	fs.StringVar(&opts.appName, "app-name", "", "application name sent as x-agent-name")
	fs.StringVar(&opts.serverID, "server-id", "", "game server id sent as x-server-id")
	fs.StringVar(&opts.locale, "locale", "", "locale sent as Accept-Language")
	fs.DurationVar(&opts.timeout, "timeout", 0, "per-request timeout")
	fs.StringVar(&opts.authMode, "auth", "", "authorization mode: none, apikey, bearer or service")
	fs.StringVar(&opts.keyID, "key-id", "", "API key id")
	fs.StringVar(&opts.keySecret, "key-secret", "", "API key secret")
	fs.StringVar(&opts.token, "token", "", "bearer token")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.StringVar(&opts.characterID, "character-id", "", "character sent as x-character-id")
	fs.StringVar(&opts.executorUser, "executor-user", "", "user sent as x-executor-user")
	fs.StringVar(&opts.correlationID, "correlation-id", "", "correlation id, generated when empty")

	for _, method := range []string{"GET", "POST", "PUT", "PATCH", "DELETE"} {
		cmd.AddCommand(newRequestCmd(method, opts))
	}
	cmd.AddCommand(
		newWhoamiCmd(opts),
		newServerCmd(opts),
		newLocalesCmd(opts),
		newTranslationsCmd(opts),
		newConfigCmd(opts),
	)
	return cmd
}

// loadConfig merges the config file and environment with flag overrides
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	override(&cfg.Engine.APIURL, o.apiURL)
	override(&cfg.Engine.ApplicationName, o.appName)
	override(&cfg.Engine.ServerID, o.serverID)
	override(&cfg.Engine.Locale, o.locale)
	if o.timeout > 0 {
		cfg.Engine.Timeout = o.timeout
	}
	override(&cfg.Auth.Mode, o.authMode)
	override(&cfg.Auth.KeyID, o.keyID)
	override(&cfg.Auth.KeySecret, o.keySecret)
	override(&cfg.Auth.Token, o.token)
	override(&cfg.Log.Level, o.logLevel)
	return cfg, nil
}

func (o *rootOptions) newClient(cmd *cobra.Command) (*engine.Client, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	logCfg, err := cfg.LoggingConfig(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	auth, err := cfg.Authorization()
	if err != nil {
		return nil, err
	}

	logger := logging.New(logCfg)
	clientOpts := []engine.Option{engine.WithLogger(logger)}
	if auth != nil {
		clientOpts = append(clientOpts, engine.WithAuthorization(auth))
	}
	client, err := engine.New(cfg.ClientConfig(), clientOpts...)
	if err != nil {
		return nil, err
	}
	logger.Debug("engine client ready",
		slog.String("api_url", client.APIURL()),
		slog.String("server_id", client.ServerID()))
	return client, nil
}

func (o *rootOptions) requestOptions() *engine.RequestOptions {
	return &engine.RequestOptions{
		CorrelationID: o.correlationID,
		CharacterID:   o.characterID,
		ExecutorUser:  o.executorUser,
	}
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printError writes err to w, expanding Engine error responses
func printError(w io.Writer, err error) {
	apiErr, ok := engine.AsAPIError(err)
	if !ok {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "error: %s (%d): %s\n", apiErr.Key, apiErr.StatusCode, apiErr.Message)
	keys := make([]string, 0, len(apiErr.Params))
	for k := range apiErr.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %s\n", k, apiErr.Params[k])
	}
	if u := apiErr.URL(); u != "" {
		fmt.Fprintf(w, "  url: %s\n", u)
	}
}
