// SPDX-License-Identifier: MPL-2.0

package addonver

import (
	"errors"
	"fmt"
	"strconv"
)

// MaxComponent is the largest minor or patch value that fits the two decimal digits the
// build number reserves per component.
const MaxComponent = 99

// ErrComponentOverflow is the sentinel error wrapped by ComponentOverflowError.
var ErrComponentOverflow = errors.New("version component overflow")

type (
	// BuildNumber is the flat numeric form of a Version stored in the
	// manifest's AddOnVersion field.
	BuildNumber string

	// ComponentOverflowError is returned when a version component does not fit
	// into the two-digit build number encoding.
	ComponentOverflowError struct {
		Version   Version
		Component string
		Value     uint
	}
)

// Error implements the error interface.
func (e *ComponentOverflowError) Error() string {
	return fmt.Sprintf("cannot derive build number from %q: %s component %d exceeds %d",
		e.Version, e.Component, e.Value, MaxComponent)
}

// Unwrap returns ErrComponentOverflow so callers can use errors.Is for programmatic detection.
func (e *ComponentOverflowError) Unwrap() error { return ErrComponentOverflow }

// String returns the string representation of the BuildNumber.
func (b BuildNumber) String() string { return string(b) }

// DeriveBuildNumber encodes v as a build number.
//
// Dotted versions encode as major, then minor and patch zero-padded to two
// digits each (1.2.3 becomes 10203). Revision versions use the revision
// counter itself (1.2 r3 becomes 3).
func DeriveBuildNumber(v Version) (BuildNumber, error) {
	for _, c := range []struct {
		name  string
		value uint
	}{
		{"major", v.Major},
		{"minor", v.Minor},
		{"patch", v.Patch},
	} {
		if c.value > MaxComponent {
			return "", &ComponentOverflowError{Version: v, Component: c.name, Value: c.value}
		}
	}

	if v.Separator == Revision {
		return BuildNumber(strconv.FormatUint(uint64(v.Patch), 10)), nil
	}

	n := v.Major*10000 + v.Minor*100 + v.Patch
	return BuildNumber(strconv.FormatUint(uint64(n), 10)), nil
}
