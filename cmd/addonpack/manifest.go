// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/addonpack/addonpack/internal/bump"

	"github.com/spf13/cobra"
)

// newManifestCommand creates the read-only `addonpack manifest` command tree.
func newManifestCommand(app *App) *cobra.Command {
	manifestCmd := &cobra.Command{
		Use:   "manifest",
		Short: "Inspect the addon manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	manifestCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the fields addonpack reads and writes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.bumpService()
			if err != nil {
				return err
			}
			sum, err := svc.Inspect(cmd.Context(), app.opts.dir)
			if err != nil {
				return app.fail("inspect manifest", app.addonDir(), err)
			}
			app.printSummary(sum)
			return nil
		},
	})

	manifestCmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Validate the manifest without writing",
		Long: `Validate what "addonpack bump" with no argument would validate: line
endings, leading colons, the Version grammar, the build number of the version
the bump.default_part setting produces, the APIVersion list and the presence
of every PackageBumpFiles entry. All problems are reported.

An explicit part can still succeed where the default fails: 1.100.3 cannot
take a patch bump, but "addonpack bump major" yields 2.0.0 (build 20000).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.bumpService()
			if err != nil {
				return err
			}
			sum, errs := svc.Check(cmd.Context(), app.opts.dir)
			if len(errs) == 0 {
				fmt.Fprintf(app.stdout, "%s %s manifest is valid\n", successIcon, TitleStyle.Render(sum.Addon))
				return nil
			}

			for _, e := range errs {
				fmt.Fprintf(app.stdout, "%s %s\n", errorIcon, e)
			}
			first := classifyError(errs[0])
			return &ExitError{Code: first.ExitCode, Err: fmt.Errorf("manifest check found %d problem(s)", len(errs))}
		},
	})

	return manifestCmd
}

func (a *App) printSummary(sum bump.Summary) {
	label := func(name string) string {
		return SubtitleStyle.Render(fmt.Sprintf("  %-13s", name+":"))
	}
	value := func(v string) string {
		if v == "" {
			return SubtitleStyle.Render("(none)")
		}
		return v
	}

	fmt.Fprintln(a.stdout, TitleStyle.Render(sum.Addon))
	fmt.Fprintf(a.stdout, "%s %s\n", label("Manifest"), CmdStyle.Render(sum.Manifest))
	fmt.Fprintf(a.stdout, "%s %s\n", label("Title"), value(sum.Title))
	fmt.Fprintf(a.stdout, "%s %s\n", label("Version"), value(sum.Version))
	fmt.Fprintf(a.stdout, "%s %s\n", label("AddOnVersion"), value(sum.AddOnVersion))
	fmt.Fprintf(a.stdout, "%s %s\n", label("APIVersion"), value(sum.APIVersion))
	fmt.Fprintf(a.stdout, "%s %s\n", label("Excludes"), value(strings.Join(sum.Excludes, ", ")))
	fmt.Fprintf(a.stdout, "%s %s\n", label("Release dir"), value(sum.ReleaseDir))
	fmt.Fprintf(a.stdout, "%s %s\n", label("Bump files"), value(strings.Join(sum.BumpFiles, ", ")))
}
