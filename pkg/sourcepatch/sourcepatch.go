// SPDX-License-Identifier: MPL-2.0

// Package sourcepatch rewrites quoted version literals in auxiliary source
// files, such as a Lua constant holding the addon version.
//
// Only occurrences enclosed by a matching pair of quotes ('1.2.3' or "1.2.3")
// are replaced, so unrelated numbers that happen to contain the version text
// are left alone. Each file is rewritten atomically through package atomicfile.
package sourcepatch

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/addonpack/addonpack/pkg/atomicfile"
)

var quoteChars = []string{`"`, `'`}

// Patched records the outcome of one successfully patched file.
type Patched struct {
	// Path is the patched file location.
	Path string
	// Replacements counts the quoted literals that were substituted.
	Replacements int
}

// Substitute replaces every quoted occurrence of current in content with next
// and returns the new content and the number of replacements.
func Substitute(content, current, next string) (string, int) {
	count := 0
	for _, q := range quoteChars {
		old := q + current + q
		n := strings.Count(content, old)
		if n == 0 {
			continue
		}
		count += n
		content = strings.ReplaceAll(content, old, q+next+q)
	}
	return content, count
}

// Patch substitutes current with next in the file at path. A file without any
// quoted occurrence is still rewritten (unchanged) and reports zero replacements.
func Patch(path, current, next string) (int, error) {
	if current == "" {
		return 0, fmt.Errorf("%s: refusing to patch an empty version string", path)
	}

	var count int
	err := atomicfile.Apply(path, func(content string) (string, error) {
		var out string
		out, count = Substitute(content, current, next)
		return out, nil
	})
	if err != nil {
		return 0, err
	}

	slog.Debug("patched source file", "path", path, "from", current, "to", next, "replacements", count)
	return count, nil
}

// Resolve returns file relative to the addon directory dir, unless file is
// already absolute.
func Resolve(dir, file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(dir, file)
}

// PatchAll patches every file in files, resolved relative to dir, in order.
//
// The first failure stops the loop: the returned slice lists the files that
// were patched before it, and those files are not rolled back.
func PatchAll(dir string, files []string, current, next string) ([]Patched, error) {
	patched := make([]Patched, 0, len(files))
	for _, f := range files {
		path := Resolve(dir, f)
		count, err := Patch(path, current, next)
		if err != nil {
			return patched, fmt.Errorf("failed to patch %s: %w", f, err)
		}
		patched = append(patched, Patched{Path: path, Replacements: count})
	}
	return patched, nil
}
