// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/addonpack/addonpack/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the addonpack command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "addonpack",
		Short: "Version bumps for game addon manifests",
		Long: TitleStyle.Render("addonpack") + SubtitleStyle.Render(" - version bumps for game addon manifests") + `

addonpack edits the manifest of the addon in the current directory (or the
one given with --dir): the manifest is the file named after the directory,
e.g. MyAddon/MyAddon.txt. Every write goes through a scratch copy that is
moved over the original, so a failed edit never leaves a half-written file.

` + SubtitleStyle.Render("Examples:") + `
  addonpack bump                 Bump the patch version (1.2.3 → 1.2.4)
  addonpack bump minor           Bump the minor version (1.2 r4 → 1.3 r1)
  addonpack bump --set 2.0.0     Set an explicit version
  addonpack api bump --squash    Collapse APIVersion to its incremented maximum
  addonpack manifest check       Validate the manifest without writing`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.prepare(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&app.opts.verbose, "verbose", "v", false, "enable verbose output")
	flags.StringVar(&app.opts.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/addonpack/config.cue)")
	flags.StringVarP(&app.opts.dir, "dir", "C", "", "addon directory (default is the current directory)")

	root.AddCommand(
		newBumpCommand(app),
		newAPICommand(app),
		newManifestCommand(app),
		newConfigCommand(app),
	)

	return root
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Run executes the CLI against os.Args and returns the process exit status.
func Run() int {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return int(types.ExitFailure)
	}

	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return int(exitErr.Code)
		}
		return int(types.ExitFailure)
	}
	return int(types.ExitOK)
}

// Execute runs the CLI and exits the process. It is called by main.main().
func Execute() {
	os.Exit(Run())
}
