// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the addonpack command-line interface.
//
// The Cobra command tree is built around an App, which owns the configuration
// provider, the bump service factory and the output streams. Handlers never
// call os.Exit: failures are returned as *ExitError so Run can map them to a
// process status.
package cmd
