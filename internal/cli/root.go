// Package cli holds the parkview cobra commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/five82/parkview/internal/app"
)

var version = "dev" // set with -ldflags at build time

type rootFlags struct {
	configPath string
	prefsPath  string
	profile    string
}

func (f *rootFlags) options() app.Options {
	return app.Options{
		ConfigPath: f.configPath,
		PrefsPath:  f.prefsPath,
		Profile:    f.profile,
	}
}

// NewRootCmd builds the parkview command tree. Without a subcommand it
// starts the terminal UI.
func NewRootCmd(ctx context.Context) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "parkview",
		Short: "Terminal client for the parking booking service",
		Long: `parkview is a terminal client for the parking booking service.

Run it without arguments to open the interactive UI. The subcommands cover
the session tasks that are handy from scripts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), flags.options())
		},
	}
	root.SetContext(ctx)

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.config/parkview/config.toml)")
	pf.StringVar(&flags.prefsPath, "prefs", "", "UI preferences file (default ~/.config/parkview/prefs.toml)")
	pf.StringVar(&flags.profile, "profile", "", "keyring profile for the stored token")

	root.AddCommand(
		newLoginCmd(flags),
		newLogoutCmd(flags),
		newWhoamiCmd(flags),
		newRoutesCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command tree and reports the error on stderr.
func Execute(ctx context.Context) error {
	return execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := NewRootCmd(ctx)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "parkview version %s\n", version)
		},
	}
}
