package cli

import (
	"github.com/spf13/cobra"
)

func newWhoamiCmd(ro *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the principal behind the configured credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ro.newClient(cmd)
			if err != nil {
				return err
			}
			info, err := client.UserInfo().Me(cmd.Context(), ro.requestOptions())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), info)
		},
	}
}

func newServerCmd(ro *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Show the public server description",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ro.newClient(cmd)
			if err != nil {
				return err
			}
			info, err := client.Public().Server(cmd.Context(), ro.requestOptions())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), info)
		},
	}
}

func newLocalesCmd(ro *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List the locales configured on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ro.newClient(cmd)
			if err != nil {
				return err
			}
			locales, err := client.Locales().List(cmd.Context(), ro.requestOptions())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), locales)
		},
	}
}

func newTranslationsCmd(ro *rootOptions) *cobra.Command {
	var (
		namespaces []string
		noCache    bool
	)
	cmd := &cobra.Command{
		Use:   "translations <locale>",
		Short: "Print the translations of a locale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ro.newClient(cmd)
			if err != nil {
				return err
			}
			tr, err := client.Locales().Translations(cmd.Context(), args[0], namespaces, noCache, ro.requestOptions())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), tr)
		},
	}
	cmd.Flags().StringSliceVarP(&namespaces, "namespace", "n", nil, "namespaces to fetch, comma separated")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the server translation cache")
	return cmd
}

// configView is the effective configuration with secrets masked
type configView struct {
	APIURL          string `json:"apiUrl"`
	ApplicationName string `json:"applicationName"`
	ServerID        string `json:"serverId"`
	Locale          string `json:"locale"`
	Timeout         string `json:"timeout"`
	AuthMode        string `json:"authMode,omitempty"`
	KeyID           string `json:"keyId,omitempty"`
	KeySecret       string `json:"keySecret,omitempty"`
	Token           string `json:"token,omitempty"`
	LogLevel        string `json:"logLevel"`
}

func newConfigCmd(ro *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ro.loadConfig()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), configView{
				APIURL:          cfg.Engine.APIURL,
				ApplicationName: cfg.Engine.ApplicationName,
				ServerID:        cfg.Engine.ServerID,
				Locale:          cfg.Engine.Locale,
				Timeout:         cfg.Engine.Timeout.String(),
				AuthMode:        cfg.Auth.Mode,
				KeyID:           cfg.Auth.KeyID,
				KeySecret:       mask(cfg.Auth.KeySecret),
				Token:           mask(cfg.Auth.Token),
				LogLevel:        cfg.Log.Level,
			})
		},
	}
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "****"
}
