// SPDX-License-Identifier: MPL-2.0

package addonver

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// ErrInvalidAPIVersion is the sentinel error wrapped by InvalidAPIVersionError
// and APIVersionOverflowError.
var ErrInvalidAPIVersion = errors.New("invalid API version")

// apiVersionRegex accepts the canonical decimal form only, so that every
// parsed set serializes back to the text it came from.
var apiVersionRegex = regexp.MustCompile(`^(0|[1-9]\d*)$`)

type (
	// APIVersionSet is the ordered list of host API versions declared by a
	// manifest. Order is preserved and duplicates are allowed.
	APIVersionSet []uint64

	// InvalidAPIVersionError is returned when an API version token is not a
	// non-negative decimal integer without leading zeros.
	InvalidAPIVersionError struct {
		Value string
	}

	// APIVersionOverflowError is returned when an API version cannot be
	// incremented without leaving the uint64 range.
	APIVersionOverflowError struct {
		Value uint64
	}
)

// Error implements the error interface.
func (e *InvalidAPIVersionError) Error() string {
	return fmt.Sprintf("invalid API version %q (expected a non-negative integer without leading zeros)", e.Value)
}

// Unwrap returns ErrInvalidAPIVersion so callers can use errors.Is for programmatic detection.
func (e *InvalidAPIVersionError) Unwrap() error { return ErrInvalidAPIVersion }

// Error implements the error interface.
func (e *APIVersionOverflowError) Error() string {
	return fmt.Sprintf("API version %d cannot be incremented", e.Value)
}

// Unwrap returns ErrInvalidAPIVersion so callers can use errors.Is for programmatic detection.
func (e *APIVersionOverflowError) Unwrap() error { return ErrInvalidAPIVersion }

// ParseAPIVersionSet splits text on whitespace and parses every token as an
// API version. Blank text yields an empty set.
func ParseAPIVersionSet(text string) (APIVersionSet, error) {
	fields := strings.Fields(text)
	set := make(APIVersionSet, 0, len(fields))
	for _, f := range fields {
		if !apiVersionRegex.MatchString(f) {
			return nil, &InvalidAPIVersionError{Value: f}
		}
		n, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil, &InvalidAPIVersionError{Value: f}
		}
		set = append(set, n)
	}
	return set, nil
}

// Next returns the set that follows s. Every element is incremented by one;
// with squash, only the incremented maximum is kept. An element equal to
// math.MaxUint64 yields an APIVersionOverflowError.
//
// s must not be empty.
func (s APIVersionSet) Next(squash bool) (APIVersionSet, error) {
	if squash {
		mx := slices.Max(s)
		if mx == math.MaxUint64 {
			return nil, &APIVersionOverflowError{Value: mx}
		}
		return APIVersionSet{mx + 1}, nil
	}
	next := make(APIVersionSet, len(s))
	for i, n := range s {
		if n == math.MaxUint64 {
			return nil, &APIVersionOverflowError{Value: n}
		}
		next[i] = n + 1
	}
	return next, nil
}

// NextAPIVersionSet computes the set that replaces current. A non-empty
// explicit value replaces the whole set verbatim.
func NextAPIVersionSet(current APIVersionSet, squash bool, explicit string) (APIVersionSet, error) {
	if strings.TrimSpace(explicit) != "" {
		return ParseAPIVersionSet(explicit)
	}
	return current.Next(squash)
}

// String joins the set with single spaces, the manifest serialization.
func (s APIVersionSet) String() string {
	parts := make([]string, len(s))
	for i, n := range s {
		parts[i] = strconv.FormatUint(n, 10)
	}
	return strings.Join(parts, " ")
}
