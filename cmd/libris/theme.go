package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/libris/internal/theme"
)

func newThemeCmd(app *AppContext, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "theme [light|dark|system]",
		Short:     "Show or set the colour theme",
		Long:      "Without an argument, print the stored preference and the palette it resolves to. With one, store the new preference.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(theme.ModeLight), string(theme.ModeDark), string(theme.ModeSystem)},
		RunE: func(cmd *cobra.Command, args []string) error {
			var mode theme.Mode
			if len(args) == 1 {
				parsed, err := theme.ParseMode(args[0])
				if err != nil {
					return newCommandError("set theme", "invalid theme", err, "Use light, dark or system.")
				}
				mode = parsed
			}

			if err := app.Open(flags); err != nil {
				return err
			}
			ctx, log := app.CommandContext(cmd, "command.theme")
			store := app.Theme()

			if mode != "" {
				if err := store.Set(mode); err != nil {
					log.Error(ctx, "theme persist failed", "mode", mode, "error", err)
					return newCommandError("set theme", "saving the preference", err, "Check state file permissions and try again.")
				}
				log.Info(ctx, "theme changed", "mode", mode, "applied", store.Applied())
			}

			current := store.Mode()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", current.Icon(), current.Label(), store.Applied())
			return nil
		},
	}

	return cmd
}
