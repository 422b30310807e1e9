// SPDX-License-Identifier: MPL-2.0

// Package addonver implements the two version grammars used by addon manifests
// and the arithmetic that moves them forward.
//
// A manifest Version is either Dotted ("1.2.3") or Revision ("1.2 r3"). Both
// forms decompose into the same Version value; the Separator records which form
// was parsed so that a bump renders back in the same grammar. Alongside the
// version, a manifest carries a flat BuildNumber (its AddOnVersion field) and an
// APIVersionSet listing the host API versions the addon is compatible with.
package addonver
