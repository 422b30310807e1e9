// SPDX-License-Identifier: MPL-2.0

// Package config handles addonpack configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/addonpack/config.cue (or the XDG equivalent on
// Linux, ~/Library/Application Support/addonpack/config.cue on macOS,
// %APPDATA%\addonpack\config.cue on Windows), or from an explicit file. Every file is
// validated against the embedded config_schema.cue before it is merged over the defaults.
// ADDONPACK_* environment variables override file values (e.g. ADDONPACK_BUMP_DEFAULT_PART).
package config
