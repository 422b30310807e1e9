// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/addonpack/addonpack/pkg/addonver"
)

// Keys accepted by Set, in display order.
var Keys = []string{"ui.verbose", "ui.color_scheme", "bump.default_part", "manifest.extension"}

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config file when set.
	ConfigFilePath string
	// ConfigDirPath overrides the config directory lookup when set.
	ConfigDirPath string
}

// Provider loads configuration from explicit options.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
}

type fileProvider struct{}

// NewProvider creates a configuration provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Set assigns value to the dotted key on cfg and validates the result.
func Set(cfg *Config, key, value string) error {
	next := *cfg
	switch key {
	case "ui.verbose":
		switch strings.ToLower(value) {
		case "true", "1", "yes":
			next.UI.Verbose = true
		case "false", "0", "no":
			next.UI.Verbose = false
		default:
			return fmt.Errorf("invalid value for %s: %q (expected true or false)", key, value)
		}
	case "ui.color_scheme":
		next.UI.ColorScheme = ColorScheme(value)
	case "bump.default_part":
		next.Bump.DefaultPart = addonver.BumpMode(value)
	case "manifest.extension":
		next.Manifest.Extension = ManifestExtension(value)
	default:
		return fmt.Errorf("unknown configuration key: %s\nValid keys: %s", key, strings.Join(Keys, ", "))
	}
	if valid, errs := next.IsValid(); !valid {
		return errs[0]
	}
	*cfg = next
	return nil
}
