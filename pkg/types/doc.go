// SPDX-License-Identifier: MPL-2.0

// Package types holds small value types shared by the addonpack CLI packages.
package types
