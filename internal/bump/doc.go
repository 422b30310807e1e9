// SPDX-License-Identifier: MPL-2.0

// Package bump drives version changes for an addon directory end to end.
//
// A Service loads and validates the addon manifest, computes the next version
// (or API version set), and applies the change to the manifest and to the
// configured auxiliary source files. Every parse or validation failure happens
// before the first write. The CLI layer calls into this package and is
// responsible for rendering results and mapping errors to exit codes.
package bump
