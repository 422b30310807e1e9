// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/addonpack/addonpack/internal/bump"
	"github.com/addonpack/addonpack/internal/config"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: all Cobra command handlers receive an App reference and delegate
	// to its services.
	App struct {
		Config  ConfigProvider
		NewBump BumpServiceFactory
		stdout  io.Writer
		stderr  io.Writer

		opts   globalOptions
		cfg    *config.Config
		cfgErr error
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config  ConfigProvider
		NewBump BumpServiceFactory
		Stdout  io.Writer
		Stderr  io.Writer
	}

	// globalOptions holds the persistent root flags.
	globalOptions struct {
		verbose    bool
		configPath string
		dir        string
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// BumpService performs the manifest operations behind the bump, api and
	// manifest commands.
	BumpService interface {
		BumpVersion(ctx context.Context, req bump.VersionRequest) (bump.VersionResult, error)
		BumpAPIVersion(ctx context.Context, req bump.APIRequest) (bump.APIResult, error)
		Inspect(ctx context.Context, dir string) (bump.Summary, error)
		Check(ctx context.Context, dir string) (bump.Summary, []error)
	}

	// BumpServiceFactory builds a BumpService from the loaded configuration.
	BumpServiceFactory func(opts bump.Options) BumpService
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.NewBump == nil {
		deps.NewBump = func(opts bump.Options) BumpService { return bump.NewService(opts) }
	}

	return &App{
		Config:  deps.Config,
		NewBump: deps.NewBump,
		stdout:  deps.Stdout,
		stderr:  deps.Stderr,
	}, nil
}

// prepare loads the configuration and installs the logger. A configuration
// error is kept for requireConfig instead of failing here, so that
// `config init` and `config path` keep working with a broken file.
func (a *App) prepare(ctx context.Context) {
	a.cfg, a.cfgErr = a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.opts.configPath})
	if a.cfg == nil {
		a.cfg = config.DefaultConfig()
	}

	slog.SetDefault(newLogger(a.stderr, a.verbose()))

	if a.cfgErr != nil {
		slog.Debug("configuration not loaded", "error", a.cfgErr)
	}
}

// verbose reports whether --verbose or ui.verbose is set.
func (a *App) verbose() bool {
	return a.opts.verbose || (a.cfg != nil && a.cfg.UI.Verbose)
}

// requireConfig returns the loaded configuration or the classified load error.
func (a *App) requireConfig() (*config.Config, error) {
	if a.cfgErr != nil {
		return nil, a.fail("load configuration", a.opts.configPath, configError(a.cfgErr))
	}
	if a.cfg == nil {
		return config.DefaultConfig(), nil
	}
	return a.cfg, nil
}

// addonDir returns the addon directory as given on the command line.
func (a *App) addonDir() string {
	if a.opts.dir == "" {
		return "."
	}
	return a.opts.dir
}

// bumpService builds the BumpService for the loaded configuration.
func (a *App) bumpService() (BumpService, error) {
	cfg, err := a.requireConfig()
	if err != nil {
		return nil, err
	}
	return a.NewBump(bump.Options{
		ManifestExtension: cfg.Manifest.Extension.String(),
		DefaultMode:       cfg.Bump.DefaultPart,
	}), nil
}

// fail wraps err as an actionable failure of op on resource, classifies it,
// renders its remediation to stderr and returns the *ExitError the RunE
// handler should return.
func (a *App) fail(op, resource string, err error) error {
	err = actionableError(op, resource, err)
	svcErr := classifyError(err)
	scheme := config.ColorSchemeAuto
	if a.cfg != nil {
		scheme = a.cfg.UI.ColorScheme
	}
	renderServiceError(a.stderr, svcErr, glamourStyle(a.stderr, scheme), a.verbose())
	return &ExitError{Code: svcErr.ExitCode, Err: err}
}
