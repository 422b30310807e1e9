// SPDX-License-Identifier: MPL-2.0

package addonver

import (
	"errors"
	"fmt"
)

const (
	// BumpPatch increments the patch component. It is the default mode.
	BumpPatch BumpMode = "patch"
	// BumpMinor increments the minor component and resets patch.
	BumpMinor BumpMode = "minor"
	// BumpMajor increments the major component and resets minor and patch.
	BumpMajor BumpMode = "major"
)

// ErrInvalidBumpMode is the sentinel error wrapped by InvalidBumpModeError.
var ErrInvalidBumpMode = errors.New("invalid bump mode")

type (
	// BumpMode selects which version component Next increments.
	// The zero value ("") behaves as BumpPatch.
	BumpMode string

	// InvalidBumpModeError is returned when a BumpMode value is not recognized.
	InvalidBumpModeError struct {
		Value BumpMode
	}
)

// Error implements the error interface.
func (e *InvalidBumpModeError) Error() string {
	return fmt.Sprintf("invalid bump mode %q (expected major, minor or patch)", e.Value)
}

// Unwrap returns ErrInvalidBumpMode so callers can use errors.Is for programmatic detection.
func (e *InvalidBumpModeError) Unwrap() error { return ErrInvalidBumpMode }

// ParseBumpMode converts user input into a BumpMode. An empty string yields BumpPatch.
func ParseBumpMode(s string) (BumpMode, error) {
	m := BumpMode(s)
	if m == "" {
		return BumpPatch, nil
	}
	if ok, errs := m.IsValid(); !ok {
		return "", errs[0]
	}
	return m, nil
}

// IsValid returns whether the BumpMode is one of the defined modes (or the
// zero value), and a list of validation errors if it is not.
func (m BumpMode) IsValid() (bool, []error) {
	switch m {
	case "", BumpPatch, BumpMinor, BumpMajor:
		return true, nil
	default:
		return false, []error{&InvalidBumpModeError{Value: m}}
	}
}

// String returns the string representation of the BumpMode.
func (m BumpMode) String() string {
	if m == "" {
		return string(BumpPatch)
	}
	return string(m)
}

// Next returns the version that follows v under mode. The separator kind is
// preserved. A Revision version never gets patch 0: when a major or minor bump
// resets the patch, it starts at r1 instead.
func (v Version) Next(mode BumpMode) (Version, error) {
	next := v
	switch mode {
	case BumpMajor:
		next.Major++
		next.Minor = 0
		next.Patch = 0
	case BumpMinor:
		next.Minor++
		next.Patch = 0
	case "", BumpPatch:
		next.Patch++
	default:
		return Version{}, &InvalidBumpModeError{Value: mode}
	}

	if next.Separator == Revision && next.Patch == 0 {
		next.Patch = 1
	}

	return revalidate(next)
}

// NextVersion computes the version that replaces current. A non-empty explicit
// value wins over mode: it is parsed and returned as given, with no arithmetic
// and no revision guard applied.
func NextVersion(current Version, mode BumpMode, explicit string) (Version, error) {
	if explicit != "" {
		v, err := Parse(explicit)
		if err != nil {
			return Version{}, err
		}
		return revalidate(v)
	}
	return current.Next(mode)
}

// revalidate round-trips v through the grammar so that no malformed value can
// reach the manifest.
func revalidate(v Version) (Version, error) {
	if ok, errs := v.IsValid(); !ok {
		return Version{}, errs[0]
	}
	return v, nil
}
