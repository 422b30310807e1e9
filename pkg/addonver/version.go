// SPDX-License-Identifier: MPL-2.0

package addonver

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

const (
	// Dotted is the "X.Y.Z" grammar.
	Dotted SeparatorKind = iota
	// Revision is the "X.Y rZ" grammar.
	Revision
)

// ErrInvalidVersionFormat is the sentinel error wrapped by InvalidVersionFormatError.
var ErrInvalidVersionFormat = errors.New("invalid version format")

// versionRegex accepts both grammars. The third group selects the separator kind.
var versionRegex = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)(\.| r)(0|[1-9]\d*)$`)

type (
	// SeparatorKind tells which of the two grammars a Version was written in.
	SeparatorKind int

	// Version is a parsed manifest version. The zero value is the Dotted
	// version "0.0.0".
	Version struct {
		Major     uint
		Minor     uint
		Patch     uint
		Separator SeparatorKind
	}

	// InvalidVersionFormatError is returned when a string matches neither
	// version grammar.
	InvalidVersionFormatError struct {
		Value string
	}
)

// Error implements the error interface.
func (e *InvalidVersionFormatError) Error() string {
	return fmt.Sprintf("invalid version format %q (expected \"X.Y.Z\" or \"X.Y rZ\")", e.Value)
}

// Unwrap returns ErrInvalidVersionFormat so callers can use errors.Is for programmatic detection.
func (e *InvalidVersionFormatError) Unwrap() error { return ErrInvalidVersionFormat }

// String returns the name of the grammar.
func (k SeparatorKind) String() string {
	switch k {
	case Dotted:
		return "dotted"
	case Revision:
		return "revision"
	default:
		return fmt.Sprintf("SeparatorKind(%d)", int(k))
	}
}

// Parse decomposes text into a Version. Components must be decimal integers
// without leading zeros; any other shape is an *InvalidVersionFormatError.
func Parse(text string) (Version, error) {
	m := versionRegex.FindStringSubmatch(text)
	if m == nil {
		return Version{}, &InvalidVersionFormatError{Value: text}
	}

	var parts [3]uint
	for i, s := range []string{m[1], m[2], m[4]} {
		n, err := strconv.ParseUint(s, 10, strconv.IntSize)
		if err != nil {
			// Only reachable on overflow; the regex already rejected everything else.
			return Version{}, &InvalidVersionFormatError{Value: text}
		}
		parts[i] = uint(n)
	}

	v := Version{Major: parts[0], Minor: parts[1], Patch: parts[2], Separator: Dotted}
	if m[3] == " r" {
		v.Separator = Revision
	}
	return v, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(text string) Version {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

// String renders the version in the grammar it was parsed from.
func (v Version) String() string {
	if v.Separator == Revision {
		return fmt.Sprintf("%d.%d r%d", v.Major, v.Minor, v.Patch)
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// IsValid reports whether the version renders to text that Parse accepts
// unchanged, and the validation errors if it does not.
func (v Version) IsValid() (bool, []error) {
	if v.Separator != Dotted && v.Separator != Revision {
		return false, []error{&InvalidVersionFormatError{Value: v.String()}}
	}
	s := v.String()
	parsed, err := Parse(s)
	if err != nil {
		return false, []error{err}
	}
	if parsed != v {
		return false, []error{&InvalidVersionFormatError{Value: s}}
	}
	return true, nil
}
