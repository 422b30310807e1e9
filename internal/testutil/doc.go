// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Common helpers include file operations (MustMkdirAll, MustWriteFile,
// MustReadFile) and throwaway addon directories (NewAddon, NewAddonWithExt)
// whose manifest is named after the directory.
package testutil
