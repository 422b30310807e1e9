// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBadLineEnding is the sentinel error wrapped by BadLineEndingError.
	ErrBadLineEnding = errors.New("manifest uses CRLF line endings")
	// ErrLeadingColon is the sentinel error wrapped by LeadingColonError.
	ErrLeadingColon = errors.New("manifest line starts with a colon")
)

type (
	// BadLineEndingError is returned when a manifest line is terminated by CRLF.
	BadLineEndingError struct {
		Path string
		Line int
	}

	// LeadingColonError is returned when a manifest line begins with ':'.
	LeadingColonError struct {
		Path string
		Line int
	}
)

// Error implements the error interface.
func (e *BadLineEndingError) Error() string {
	return fmt.Sprintf("%s:%d: CRLF line ending (manifest must use LF only)", e.Path, e.Line)
}

// Unwrap returns ErrBadLineEnding so callers can use errors.Is for programmatic detection.
func (e *BadLineEndingError) Unwrap() error { return ErrBadLineEnding }

// Error implements the error interface.
func (e *LeadingColonError) Error() string {
	return fmt.Sprintf("%s:%d: line starts with ':'", e.Path, e.Line)
}

// Unwrap returns ErrLeadingColon so callers can use errors.Is for programmatic detection.
func (e *LeadingColonError) Unwrap() error { return ErrLeadingColon }

// ValidateEncoding reports the first line of content, in file order, that the
// host runtime would reject. Line numbers are 1-based; path only labels the error.
func ValidateEncoding(path, content string) error {
	for i, line := range strings.Split(content, "\n") {
		if strings.HasSuffix(line, "\r") {
			return &BadLineEndingError{Path: path, Line: i + 1}
		}
		if strings.HasPrefix(line, ":") {
			return &LeadingColonError{Path: path, Line: i + 1}
		}
	}
	return nil
}
