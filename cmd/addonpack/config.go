// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/addonpack/addonpack/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `addonpack config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage addonpack configuration",
		Long: `Manage addonpack configuration.

Configuration is stored in:
  - Linux: ~/.config/addonpack/config.cue
  - macOS: ~/Library/Application Support/addonpack/config.cue
  - Windows: %APPDATA%\addonpack\config.cue

ADDONPACK_* environment variables override file values, e.g.
ADDONPACK_BUMP_DEFAULT_PART=minor.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.requireConfig()
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app)
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfig("", force)
			if errors.Is(err, config.ErrConfigExists) {
				fmt.Fprintf(app.stdout, "%s Configuration already exists at %s (use --force to overwrite)\n", infoIcon, CmdStyle.Render(path))
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to create config: %w", err)
			}
			fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", successIcon, CmdStyle.Render(path))
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Set a configuration value",
		Args:      cobra.ExactArgs(2),
		ValidArgs: config.Keys,
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(app, args[0], args[1])
		},
	})

	return cfgCmd
}

func showConfig(app *App) error {
	cfg, err := app.requireConfig()
	if err != nil {
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(app.stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(app.stdout)

	path, err := config.Resolve(config.LoadOptions{ConfigFilePath: app.opts.configPath})
	if err != nil || path == "" {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	} else {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), path)
	}
	fmt.Fprintln(app.stdout)

	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(app.stdout, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))
	fmt.Fprintf(app.stdout, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))

	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("bump"))
	fmt.Fprintf(app.stdout, "  default_part: %s\n", valueStyle.Render(cfg.Bump.DefaultPart.String()))

	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("manifest"))
	fmt.Fprintf(app.stdout, "  extension: %s\n", valueStyle.Render(cfg.Manifest.Extension.String()))

	return nil
}

func showConfigPath(app *App) error {
	if app.opts.configPath != "" {
		fmt.Fprintf(app.stdout, "Config file: %s\n", app.opts.configPath)
		return nil
	}

	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	path, err := config.DefaultPath(cfgDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(app.stdout, "Config file: %s\n", path)
	return nil
}

func setConfigValue(app *App, key, value string) error {
	cfg, err := app.requireConfig()
	if err != nil {
		return err
	}

	updated := *cfg
	if err := config.Set(&updated, key, value); err != nil {
		return err
	}

	path := app.opts.configPath
	if path == "" {
		if path, err = config.DefaultPath(""); err != nil {
			return err
		}
	}
	if err := config.Save(&updated, path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(app.stdout, "%s Set %s = %s in %s\n", successIcon, CmdStyle.Render(key), SuccessStyle.Render(value), path)
	return nil
}
