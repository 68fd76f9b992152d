package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/libris/internal/config"
)

type rootFlags struct {
	configPath string
	apiURL     string
	statePath  string
	logLevel   string
	verbose    bool
	ephemeral  bool
}

// apply layers explicitly set flags over the resolved configuration.
func (f *rootFlags) apply(cfg *config.Config) {
	if v := strings.TrimSpace(f.apiURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(f.statePath); v != "" {
		cfg.StatePath = v
	}
	if v := strings.TrimSpace(f.logLevel); v != "" {
		cfg.LogLevel = v
	}
}

func newRootCmd(app *AppContext) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "libris",
		Short:         "Libris manages your personal library from the terminal",
		Long:          "Libris is a terminal client for a library catalog API. Run it without a subcommand to open the interactive interface.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Open(flags); err != nil {
				return err
			}
			return runDashboard(cmd, app)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to a YAML config file (default ~/.libris/config.yaml)")
	cmd.PersistentFlags().StringVar(&flags.apiURL, "api-url", "", "Base URL of the library API")
	cmd.PersistentFlags().StringVar(&flags.statePath, "state", "", "Path of the state file holding the session and theme")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log at debug level to stderr")
	cmd.PersistentFlags().BoolVar(&flags.ephemeral, "ephemeral", false, "Keep the session and theme in memory only")

	cmd.AddCommand(newLoginCmd(app, flags))
	cmd.AddCommand(newRegisterCmd(app, flags))
	cmd.AddCommand(newLogoutCmd(app, flags))
	cmd.AddCommand(newWhoamiCmd(app, flags))
	cmd.AddCommand(newBooksCmd(app, flags))
	cmd.AddCommand(newCategoriesCmd(app, flags))
	cmd.AddCommand(newThemeCmd(app, flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
