// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/addonpack/addonpack/pkg/addonver"
	"github.com/addonpack/addonpack/pkg/manifest"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidManifestExtension is returned when a ManifestExtension is malformed.
	ErrInvalidManifestExtension = errors.New("invalid manifest extension")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")

	manifestExtensionPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// ManifestExtension is the manifest file extension without the leading dot.
	ManifestExtension string

	// InvalidManifestExtensionError is returned when a ManifestExtension is empty
	// or contains characters other than letters, digits, '_' and '-'.
	InvalidManifestExtensionError struct {
		Value ManifestExtension
	}

	// InvalidConfigError collects field-level validation errors of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Bump configures version bumps
		Bump BumpConfig `json:"bump" mapstructure:"bump"`
		// Manifest configures manifest discovery
		Manifest ManifestConfig `json:"manifest" mapstructure:"manifest"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose enables debug logging
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// ColorScheme sets the color scheme of rendered help pages
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
	}

	// BumpConfig configures version bumps.
	BumpConfig struct {
		// DefaultPart is bumped when no part is given on the command line
		DefaultPart addonver.BumpMode `json:"default_part" mapstructure:"default_part"`
	}

	// ManifestConfig configures how manifests are located.
	ManifestConfig struct {
		// Extension is appended to the addon directory name to form the manifest name
		Extension ManifestExtension `json:"extension" mapstructure:"extension"`
	}
)

// String returns the string representation of the ColorScheme.
func (c ColorScheme) String() string { return string(c) }

// IsValid returns whether the ColorScheme is one of the defined schemes.
func (c ColorScheme) IsValid() (bool, []error) {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: c}}
	}
}

// GlamourStyle maps the scheme to a glamour style name. Auto resolves to dark.
func (c ColorScheme) GlamourStyle() string {
	if c == ColorSchemeLight {
		return "light"
	}
	return "dark"
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the ManifestExtension.
func (m ManifestExtension) String() string { return string(m) }

// IsValid returns whether the ManifestExtension is usable as a file extension.
func (m ManifestExtension) IsValid() (bool, []error) {
	if !manifestExtensionPattern.MatchString(string(m)) {
		return false, []error{&InvalidManifestExtensionError{Value: m}}
	}
	return true, nil
}

// Error implements the error interface for InvalidManifestExtensionError.
func (e *InvalidManifestExtensionError) Error() string {
	return fmt.Sprintf("invalid manifest extension %q: use letters, digits, '_' or '-' without a leading dot", e.Value)
}

// Unwrap returns ErrInvalidManifestExtension for errors.Is() compatibility.
func (e *InvalidManifestExtensionError) Unwrap() error { return ErrInvalidManifestExtension }

// IsValid returns whether the Config has valid fields.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Bump.DefaultPart.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Manifest.Extension.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns the sentinel and every field error, so errors.Is matches both
// ErrInvalidConfig and the field-level sentinels.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Verbose:     false,
			ColorScheme: ColorSchemeAuto,
		},
		Bump: BumpConfig{
			DefaultPart: addonver.BumpPatch,
		},
		Manifest: ManifestConfig{
			Extension: ManifestExtension(manifest.DefaultExtension),
		},
	}
}
