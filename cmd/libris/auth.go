package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/libris/internal/domain/catalog"
	librisErrors "github.com/alexisbeaulieu97/libris/pkg/errors"
)

type credentialOptions struct {
	username string
}

func newLoginCmd(app *AppContext, flags *rootFlags) *cobra.Command {
	opts := &credentialOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Long:  "Sign in against the library API. The password is read without echo when stdin is a terminal.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Open(flags); err != nil {
				return err
			}
			ctx, log := app.CommandContext(cmd, "command.login")

			creds, err := readCredentials(cmd, opts)
			if err != nil {
				return newCommandError("log in", "reading credentials", err, "Pass --username and pipe the password on stdin.")
			}

			snapshot, err := app.Catalog.Login(ctx, creds)
			if err != nil {
				log.Warn(ctx, "login failed", "error", err)
				return authError("log in", err, app.Config.APIURL)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", snapshot.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.username, "username", "u", "", "Username (prompted when omitted)")

	return cmd
}

func newRegisterCmd(app *AppContext, flags *rootFlags) *cobra.Command {
	opts := &credentialOptions{}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Open(flags); err != nil {
				return err
			}
			ctx, log := app.CommandContext(cmd, "command.register")

			creds, err := readCredentials(cmd, opts)
			if err != nil {
				return newCommandError("register", "reading credentials", err, "Pass --username and pipe the password on stdin.")
			}

			if err := app.Catalog.Register(ctx, creds); err != nil {
				log.Warn(ctx, "registration failed", "error", err)
				return authError("register", err, app.Config.APIURL)
			}

			fmt.Fprintln(cmd.OutOrStdout(), catalog.MsgRegistrationComplete)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.username, "username", "u", "", "Username (prompted when omitted)")

	return cmd
}

func newLogoutCmd(app *AppContext, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Open(flags); err != nil {
				return err
			}
			ctx, log := app.CommandContext(cmd, "command.logout")

			if !app.Session.Authenticated() {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}

			if err := app.Catalog.Logout(ctx); err != nil {
				log.Error(ctx, "logout failed", "error", err)
				return newCommandError("log out", "clearing the stored session", err, "Check state file permissions and try again.")
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(app *AppContext, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Open(flags); err != nil {
				return err
			}

			snapshot := app.Session.Snapshot()
			if !snapshot.Authenticated() {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), snapshot.Username)
			return nil
		},
	}
}

func readCredentials(cmd *cobra.Command, opts *credentialOptions) (catalog.Credentials, error) {
	p := newPrompter(cmd)

	username := strings.TrimSpace(opts.username)
	if username == "" {
		value, err := p.line("Username: ")
		if err != nil {
			return catalog.Credentials{}, err
		}
		username = strings.TrimSpace(value)
	}

	password, err := p.secret("Password: ")
	if err != nil {
		return catalog.Credentials{}, err
	}

	return catalog.Credentials{Username: username, Password: password}, nil
}

// authError renders a login or register failure: the server's message when
// it sent one, a connectivity message when it could not be reached.
func authError(operation string, err error, apiURL string) error {
	if librisErrors.IsNetwork(err) {
		return newCommandError(operation, catalog.MsgConnectFailed, err, fmt.Sprintf("Check that the API is running at %s or pass --api-url.", apiURL))
	}
	return newCommandError(operation, librisErrors.UserMessage(err, catalog.MsgInvalidCredentials), err, "")
}
