// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable, user-facing error reporting for addonpack.
//
// ActionableError carries the failed operation, the file involved and
// remediation hints. The issue catalog maps each failure category to a
// Markdown page rendered with glamour when a command fails.
package issue
