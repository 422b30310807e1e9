// SPDX-License-Identifier: MPL-2.0

// Package manifest reads and atomically edits addon manifest files.
//
// A manifest is a line-oriented text file named after its addon directory
// (MyAddon/MyAddon.txt). Two kinds of fields are recognized:
//
//	## Version: 1.2.3            variable field
//	; PackageReleaseDir: dist    option field
//
// Variables carry metadata read by the host runtime (Title, Version,
// AddOnVersion, APIVersion); options configure packaging and are ignored by
// the runtime. The runtime treats CRLF line endings and lines starting with a
// colon as corruption, so Load rejects both before any field is read.
//
// All writes go through Replace, which applies a list of Edits to a scratch
// copy of the manifest and renames it over the original (see package
// atomicfile).
package manifest
