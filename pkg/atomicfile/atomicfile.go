// SPDX-License-Identifier: MPL-2.0

// Package atomicfile rewrites text files through a scratch copy so that readers
// of the original path only ever observe the old content or the complete new
// content.
//
// Apply copies the target into a scratch file in the same directory, runs a
// sequence of pure text transforms against the copy, and finally renames the
// copy over the target. The rename is the only step that touches the original
// path; a failure in any earlier step removes the scratch file and leaves the
// target byte-for-byte unchanged.
package atomicfile

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// StepCopy is the copy of the target into the scratch file.
	StepCopy Step = "copy"
	// StepEdit is the application of the transforms to the scratch copy.
	StepEdit Step = "edit"
	// StepMove is the rename of the scratch file over the target.
	StepMove Step = "move"
)

// ErrIOFailure is the sentinel error wrapped by IOFailureError.
var ErrIOFailure = errors.New("atomic file update failed")

type (
	// Step names a phase of the copy/edit/move sequence.
	Step string

	// Transform is a pure text edit applied to the scratch copy.
	// Returning an error aborts the update before the target is touched.
	Transform func(content string) (string, error)

	// IOFailureError is returned when any step of Apply fails. It wraps both
	// ErrIOFailure and the underlying cause.
	IOFailureError struct {
		Path string
		Step Step
		Err  error
	}
)

// Error implements the error interface.
func (e *IOFailureError) Error() string {
	return fmt.Sprintf("%s: %s step failed: %v", e.Path, e.Step, e.Err)
}

// Unwrap returns ErrIOFailure and the underlying cause so that errors.Is
// matches either.
func (e *IOFailureError) Unwrap() []error { return []error{ErrIOFailure, e.Err} }

// Apply rewrites path by running transforms, in order, on a scratch copy and
// renaming the result over path. The scratch file keeps the permission bits of
// the original.
func Apply(path string, transforms ...Transform) (err error) {
	info, err := os.Stat(path)
	if err != nil {
		return &IOFailureError{Path: path, Step: StepCopy, Err: err}
	}
	if !info.Mode().IsRegular() {
		return &IOFailureError{Path: path, Step: StepCopy, Err: fmt.Errorf("not a regular file")}
	}

	scratch, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &IOFailureError{Path: path, Step: StepCopy, Err: err}
	}
	scratchPath := scratch.Name()
	slog.Debug("atomic update started", "path", path, "scratch", scratchPath)

	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			_ = scratch.Close() // Best-effort: the error being returned matters more
		}
		if rmErr := os.Remove(scratchPath); rmErr != nil && !os.IsNotExist(rmErr) {
			slog.Warn("failed to remove scratch file", "scratch", scratchPath, "error", rmErr)
		}
	}()

	if err = copyInto(scratch, path); err != nil {
		return &IOFailureError{Path: path, Step: StepCopy, Err: err}
	}

	if err = editInPlace(scratch, transforms); err != nil {
		return &IOFailureError{Path: path, Step: StepEdit, Err: err}
	}

	if err = scratch.Chmod(info.Mode().Perm()); err != nil {
		return &IOFailureError{Path: path, Step: StepEdit, Err: err}
	}
	if err = scratch.Sync(); err != nil {
		return &IOFailureError{Path: path, Step: StepEdit, Err: err}
	}
	closed = true
	if err = scratch.Close(); err != nil {
		return &IOFailureError{Path: path, Step: StepEdit, Err: err}
	}

	if err = os.Rename(scratchPath, path); err != nil {
		return &IOFailureError{Path: path, Step: StepMove, Err: err}
	}

	slog.Debug("atomic update committed", "path", path)
	return nil
}

// copyInto copies the file at src into dst.
func copyInto(dst *os.File, src string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := in.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	_, err = io.Copy(dst, in)
	return err
}

// editInPlace reads f back, applies transforms and replaces f's content with
// the result.
func editInPlace(f *os.File, transforms []Transform) error {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	content := string(data)
	for i, transform := range transforms {
		content, err = transform(content)
		if err != nil {
			return fmt.Errorf("edit %d: %w", i+1, err)
		}
	}

	if err := f.Truncate(0); err != nil {
		return err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	_, err = io.WriteString(f, content)
	return err
}
