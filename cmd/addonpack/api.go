// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/addonpack/addonpack/internal/bump"
	"github.com/addonpack/addonpack/pkg/manifest"

	"github.com/spf13/cobra"
)

// newAPICommand creates the `addonpack api` command tree.
func newAPICommand(app *App) *cobra.Command {
	apiCmd := &cobra.Command{
		Use:   "api",
		Short: "Manage the manifest APIVersion",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var (
		squash   bool
		explicit string
		dryRun   bool
	)

	bumpCmd := &cobra.Command{
		Use:   "bump",
		Short: "Increment every APIVersion entry",
		Long: `Increment every interface number listed in "## APIVersion:".

With --squash the list collapses to a single entry, its maximum plus one.
With --set the list is replaced verbatim (entries must be integers).`,
		Example: `  addonpack api bump
  addonpack api bump --squash
  addonpack api bump --set "101041 101042"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.bumpService()
			if err != nil {
				return err
			}

			res, err := svc.BumpAPIVersion(cmd.Context(), bump.APIRequest{
				Dir:      app.opts.dir,
				Squash:   squash,
				Explicit: explicit,
				DryRun:   dryRun,
			})
			if err != nil {
				return app.fail("bump API version", app.addonDir(), err)
			}

			if res.DryRun {
				fmt.Fprintln(app.stdout, WarningStyle.Render("dry run: no files were written"))
			}
			fmt.Fprintf(app.stdout, "%s %s APIVersion %s → %s\n",
				successIcon,
				TitleStyle.Render(manifest.AddonName(res.Manifest)),
				res.Previous,
				SuccessStyle.Render(res.Next.String()),
			)
			return nil
		},
	}

	bumpCmd.Flags().BoolVar(&squash, "squash", false, "replace the list with its maximum plus one")
	bumpCmd.Flags().StringVar(&explicit, "set", "", "set this exact, space-separated list of interface numbers")
	bumpCmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate and print the change without writing the manifest")

	apiCmd.AddCommand(bumpCmd)
	return apiCmd
}
