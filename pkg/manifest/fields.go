// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/shell"
)

// Variable fields read by the host runtime.
const (
	FieldTitle        = "Title"
	FieldVersion      = "Version"
	FieldAddOnVersion = "AddOnVersion"
	FieldAPIVersion   = "APIVersion"
)

// Option fields read only by the packaging tool.
const (
	OptionPackageExcludes   = "PackageExcludes"
	OptionPackageReleaseDir = "PackageReleaseDir"
	OptionPackageBumpFiles  = "PackageBumpFiles"
)

const (
	// KindVariable marks "## Name: value" lines.
	KindVariable FieldKind = iota
	// KindOption marks "; Name: value" lines.
	KindOption
)

// ErrMissingField is the sentinel error wrapped by MissingFieldError.
var ErrMissingField = errors.New("manifest field missing")

type (
	// FieldKind distinguishes the two field marker shapes.
	FieldKind int

	// MissingFieldError is returned when an operation needs a field the
	// manifest does not declare (or declares empty).
	MissingFieldError struct {
		Path  string
		Kind  FieldKind
		Field string
	}
)

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("missing %s %q", e.Kind, e.Field)
	}
	return fmt.Sprintf("%s: missing %s %q", e.Path, e.Kind, e.Field)
}

// Unwrap returns ErrMissingField so callers can use errors.Is for programmatic detection.
func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// String returns the human name of the field kind.
func (k FieldKind) String() string {
	if k == KindOption {
		return "option"
	}
	return "variable"
}

// marker returns the line prefix that introduces field name of kind k.
func (k FieldKind) marker(name string) string {
	if k == KindOption {
		return "; " + name + ":"
	}
	return "## " + name + ":"
}

// FormatLine renders a complete field line.
func (k FieldKind) FormatLine(name, value string) string {
	return k.marker(name) + " " + value
}

// findLine returns the index of the first line declaring name, or -1.
func findLine(lines []string, kind FieldKind, name string) int {
	marker := kind.marker(name)
	for i, line := range lines {
		if strings.HasPrefix(line, marker) {
			return i
		}
	}
	return -1
}

// field returns the value of the first line declaring name and whether it exists.
func (d *Document) field(kind FieldKind, name string) (string, bool) {
	i := findLine(d.lines, kind, name)
	if i < 0 {
		return "", false
	}
	value := strings.TrimPrefix(d.lines[i], kind.marker(name))
	return strings.TrimSpace(value), true
}

// Variable returns the value of a "## name:" field, or "" when absent.
func (d *Document) Variable(name string) string {
	v, _ := d.field(KindVariable, name)
	return v
}

// HasVariable reports whether the manifest declares a "## name:" line.
func (d *Document) HasVariable(name string) bool {
	_, ok := d.field(KindVariable, name)
	return ok
}

// RequireVariable returns the value of a "## name:" field, failing with a
// *MissingFieldError when it is absent or empty.
func (d *Document) RequireVariable(name string) (string, error) {
	v, ok := d.field(KindVariable, name)
	if !ok || v == "" {
		return "", &MissingFieldError{Path: d.Path, Kind: KindVariable, Field: name}
	}
	return v, nil
}

// Option returns the value of a "; name:" field, or "" when absent.
func (d *Document) Option(name string) string {
	v, _ := d.field(KindOption, name)
	return v
}

// OptionList splits an option value into words using shell quoting rules, so
// entries containing spaces can be written as "My File.lua". Environment
// variable references are expanded. An absent option yields no words.
func (d *Document) OptionList(name string) ([]string, error) {
	v := d.Option(name)
	if v == "" {
		return nil, nil
	}
	words, err := shell.Fields(v, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: option %q: %w", d.Path, name, err)
	}
	return words, nil
}
