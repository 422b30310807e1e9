// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/addonpack/addonpack/pkg/atomicfile"
)

// Edit is a single line-level change applied by Replace.
type Edit struct {
	desc  string
	apply func(lines []string) ([]string, error)
}

// String describes the edit for logging.
func (e Edit) String() string { return e.desc }

// SetVariable replaces the first "## name:" line with "## name: value".
// The edit fails if the manifest has no such line.
func SetVariable(name, value string) Edit {
	return Edit{
		desc: "set " + name + " = " + value,
		apply: func(lines []string) ([]string, error) {
			i := findLine(lines, KindVariable, name)
			if i < 0 {
				return nil, &MissingFieldError{Kind: KindVariable, Field: name}
			}
			lines[i] = KindVariable.FormatLine(name, value)
			return lines, nil
		},
	}
}

// InsertVariableAfter inserts "## name: value" on the line following the
// first "## anchor:" line. The edit fails if the anchor is absent.
func InsertVariableAfter(anchor, name, value string) Edit {
	return Edit{
		desc: "insert " + name + " = " + value + " after " + anchor,
		apply: func(lines []string) ([]string, error) {
			i := findLine(lines, KindVariable, anchor)
			if i < 0 {
				return nil, &MissingFieldError{Kind: KindVariable, Field: anchor}
			}
			out := make([]string, 0, len(lines)+1)
			out = append(out, lines[:i+1]...)
			out = append(out, KindVariable.FormatLine(name, value))
			out = append(out, lines[i+1:]...)
			return out, nil
		},
	}
}

// UpsertVariableAfter sets name when the manifest already declares it and
// otherwise inserts it after anchor.
//
// When the anchor itself is changed in the same Replace call, this edit must
// come first: the insertion point is found by the anchor's current line.
func UpsertVariableAfter(anchor, name, value string) Edit {
	set, insert := SetVariable(name, value), InsertVariableAfter(anchor, name, value)
	return Edit{
		desc: "upsert " + name + " = " + value + " after " + anchor,
		apply: func(lines []string) ([]string, error) {
			if findLine(lines, KindVariable, name) >= 0 {
				return set.apply(lines)
			}
			return insert.apply(lines)
		},
	}
}

// Replace applies edits, in order, to a scratch copy of the manifest at path
// and moves the result over the original. On any failure the original is left
// untouched and the returned error wraps atomicfile.ErrIOFailure.
func Replace(path string, edits ...Edit) error {
	transforms := make([]atomicfile.Transform, len(edits), len(edits)+1)
	for i, e := range edits {
		transforms[i] = func(content string) (string, error) {
			slog.Debug("applying manifest edit", "path", path, "edit", e.desc)
			lines, err := e.apply(strings.Split(content, "\n"))
			if err != nil {
				var fieldErr *MissingFieldError
				if errors.As(err, &fieldErr) {
					fieldErr.Path = path
				}
				return "", err
			}
			return strings.Join(lines, "\n"), nil
		}
	}
	// The edited copy must still be readable by the host runtime.
	transforms = append(transforms, func(content string) (string, error) {
		return content, ValidateEncoding(path, content)
	})
	return atomicfile.Apply(path, transforms...)
}
