package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/five82/parkview/internal/app"
	"github.com/five82/parkview/internal/session"
)

var errNoCredentials = errors.New("username and password are required (use --username/--password or PARKVIEW_USERNAME/PARKVIEW_PASSWORD)")

// isTerminal is swapped in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func newLoginCmd(flags *rootFlags) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		Long: `Sign in to the parking service and store the issued token.

Credentials come from flags, then PARKVIEW_USERNAME and PARKVIEW_PASSWORD,
then an interactive prompt when stdin is a terminal.`,
		Example: `  parkview login
  parkview login --username alice
  PARKVIEW_PASSWORD=secret parkview login --username alice`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				username = os.Getenv("PARKVIEW_USERNAME")
			}
			if password == "" {
				password = os.Getenv("PARKVIEW_PASSWORD")
			}
			if strings.TrimSpace(username) == "" || password == "" {
				if !isTerminal() {
					return errNoCredentials
				}
				if err := promptCredentials(&username, &password); err != nil {
					return err
				}
			}

			env, err := app.Setup(flags.options())
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			msg, err := env.Session.Login(cmd.Context(), username, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			if msg == "" {
				msg = "Login successful"
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)

			st, err := env.Session.Status(cmd.Context())
			if err == nil {
				printState(cmd, st)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	return cmd
}

func promptCredentials(username, password *string) error {
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Username").
			Value(username).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("username is required")
				}
				return nil
			}),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(password),
	))
	if err := form.Run(); err != nil {
		return fmt.Errorf("prompt: %w", err)
	}
	if *password == "" {
		return errNoCredentials
	}
	return nil
}

func newLogoutCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the session and forget the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Setup(flags.options())
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			msg, err := env.Session.Logout(cmd.Context())
			if err != nil {
				return fmt.Errorf("logout failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return env.Session.Clear()
		},
	}
}

func newWhoamiCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Setup(flags.options())
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			st, err := env.Session.Status(cmd.Context())
			if err != nil {
				log.Debug().Err(err).Msg("whoami status")
			}
			printState(cmd, st)
			return nil
		},
	}
}

func printState(cmd *cobra.Command, st session.State) {
	out := cmd.OutOrStdout()
	if !st.LoggedIn || st.User == nil {
		fmt.Fprintln(out, "signed out")
		return
	}
	role := "user"
	if st.Admin {
		role = "admin"
	}
	fmt.Fprintf(out, "%s (%s)\n", st.User.DisplayName(), role)
	if !st.ExpiresAt.IsZero() {
		fmt.Fprintf(out, "token expires %s\n", st.ExpiresAt.Local().Format(time.RFC1123))
	}
}
