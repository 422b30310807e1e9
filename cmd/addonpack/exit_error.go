// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/addonpack/addonpack/pkg/types"
)

// ExitError carries the process status of a failed command out of a RunE
// handler, so that Run maps it to the exit code instead of calling os.Exit.
//
// App.fail sets Code from the failure's class (2 for version problems, 3 for
// manifest problems, 4 for I/O). `manifest check` sets it from the first
// problem it reports.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// Error returns the wrapped message, or the bare status when Err is nil.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("addonpack: exit status %d", e.Code)
}

// Unwrap exposes Err to errors.Is and errors.As, so callers can still reach
// the ActionableError or manifest error behind a non-zero exit.
func (e *ExitError) Unwrap() error {
	return e.Err
}
