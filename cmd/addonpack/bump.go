// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/addonpack/addonpack/internal/bump"
	"github.com/addonpack/addonpack/pkg/addonver"
	"github.com/addonpack/addonpack/pkg/manifest"
	"github.com/addonpack/addonpack/pkg/sourcepatch"

	"github.com/spf13/cobra"
)

// newBumpCommand creates the `addonpack bump` command.
func newBumpCommand(app *App) *cobra.Command {
	var (
		explicit string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "bump [major|minor|patch]",
		Short: "Bump the addon version",
		Long: `Bump the manifest Version, update the AddOnVersion build number and
rewrite the version string in every file listed by "; PackageBumpFiles:".

Without an argument the part from the bump.default_part setting is bumped
(patch by default). Versions in the "X.Y rZ" form never get revision 0: a
major or minor bump starts the revision at r1.`,
		Example: `  addonpack bump
  addonpack bump minor --dry-run
  addonpack bump --set "2.0 r1"`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(addonver.BumpMajor), string(addonver.BumpMinor), string(addonver.BumpPatch)},
		RunE: func(cmd *cobra.Command, args []string) error {
			var mode addonver.BumpMode
			if len(args) == 1 {
				m, err := addonver.ParseBumpMode(args[0])
				if err != nil {
					return app.fail("bump version", app.addonDir(), err)
				}
				mode = m
				if explicit != "" {
					slog.Warn("--set given, ignoring bump part", "part", mode)
				}
			}

			svc, err := app.bumpService()
			if err != nil {
				return err
			}

			res, err := svc.BumpVersion(cmd.Context(), bump.VersionRequest{
				Dir:      app.opts.dir,
				Mode:     mode,
				Explicit: explicit,
				DryRun:   dryRun,
			})
			if err != nil {
				if len(res.Patched) > 0 {
					app.printPatched(res.Manifest, res.Patched)
				}
				return app.fail("bump version", app.addonDir(), err)
			}

			app.printVersionResult(res)
			return nil
		},
	}

	cmd.Flags().StringVar(&explicit, "set", "", "set this exact version instead of bumping (X.Y.Z or \"X.Y rZ\")")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate and print the change without writing any file")

	return cmd
}

func (a *App) printVersionResult(res bump.VersionResult) {
	build := SuccessStyle.Render(res.NextBuild.String())
	if res.PreviousBuild != "" {
		build = res.PreviousBuild.String() + " → " + build
	}

	if res.DryRun {
		fmt.Fprintln(a.stdout, WarningStyle.Render("dry run: no files were written"))
	}
	fmt.Fprintf(a.stdout, "%s %s %s → %s (build %s)\n",
		successIcon,
		TitleStyle.Render(manifest.AddonName(res.Manifest)),
		res.Previous,
		SuccessStyle.Render(res.Next.String()),
		build,
	)

	if res.DryRun {
		for _, f := range res.BumpFiles {
			fmt.Fprintf(a.stdout, "  %s would patch %s\n", infoIcon, CmdStyle.Render(f))
		}
		return
	}
	a.printPatched(res.Manifest, res.Patched)
}

func (a *App) printPatched(manifestPath string, patched []sourcepatch.Patched) {
	dir := filepath.Dir(manifestPath)
	for _, p := range patched {
		rel, err := filepath.Rel(dir, p.Path)
		if err != nil {
			rel = p.Path
		}
		fmt.Fprintf(a.stdout, "  %s patched %s (%s)\n", infoIcon, CmdStyle.Render(filepath.ToSlash(rel)), plural(p.Replacements, "replacement"))
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
