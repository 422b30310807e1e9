// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"testing"

	"github.com/addonpack/addonpack/internal/issue"
	"github.com/addonpack/addonpack/pkg/addonver"
	"github.com/addonpack/addonpack/pkg/atomicfile"
	"github.com/addonpack/addonpack/pkg/manifest"
)

func TestActionableError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantSuggst string
	}{
		{"missing manifest", &manifest.MissingManifestError{Path: "A/A.txt"}, "Create A/A.txt"},
		{"crlf", &manifest.BadLineEndingError{Path: "A/A.txt", Line: 3}, "Line 3 of A/A.txt ends with CRLF"},
		{"leading colon", &manifest.LeadingColonError{Path: "A/A.txt", Line: 2}, "line 2 of A/A.txt"},
		{"missing field", &manifest.MissingFieldError{Path: "A/A.txt", Kind: manifest.KindVariable, Field: "Version"}, `"## Version: <value>" line to A/A.txt`},
		{"bad version", &addonver.InvalidVersionFormatError{Value: "1.2"}, `"X.Y rZ"`},
		{"bad mode", &addonver.InvalidBumpModeError{Value: "huge"}, "major, minor, patch"},
		{"overflow", &addonver.ComponentOverflowError{Component: "minor", Value: 100}, "at most 99"},
		{"api overflow", &addonver.APIVersionOverflowError{Value: 1<<64 - 1}, "api bump --set"},
		{"bad api", &addonver.InvalidAPIVersionError{Value: "x"}, "space-separated integers"},
		{"edit step crlf", &atomicfile.IOFailureError{Path: "A/A.txt", Step: atomicfile.StepEdit, Err: &manifest.BadLineEndingError{Path: "A/A.txt", Line: 1}}, "dos2unix A/A.txt"},
		{"permission", &atomicfile.IOFailureError{Path: "A/a.lua", Step: atomicfile.StepCopy, Err: os.ErrPermission}, "permissions of A/a.lua"},
		{"io", &atomicfile.IOFailureError{Path: "A/a.lua", Step: atomicfile.StepMove, Err: errors.New("disk full")}, "A/a.lua is a regular, writable file"},
		{"missing file on patch", &atomicfile.IOFailureError{Path: "/x/A/b.lua", Step: atomicfile.StepCopy, Err: &fs.PathError{Op: "open", Path: "/x/A/b.lua", Err: fs.ErrNotExist}}, "Create b.lua"},
		{"missing bump file", fmt.Errorf("bump file a.lua: %w", &fs.PathError{Op: "stat", Path: "/x/A/a.lua", Err: fs.ErrNotExist}), `Create a.lua or remove it from "; PackageBumpFiles:"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := actionableError("bump version", "A", tt.err)

			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("expected *issue.ActionableError, got %T", err)
			}
			if ae.Operation != "bump version" || ae.Resource != "A" {
				t.Errorf("operation/resource = %q/%q", ae.Operation, ae.Resource)
			}
			if !errors.Is(err, tt.err) {
				t.Error("wrapped error should match the cause")
			}
			if joined := strings.Join(ae.Suggestions, "\n"); !strings.Contains(joined, tt.wantSuggst) {
				t.Errorf("suggestions = %q, want one containing %q", ae.Suggestions, tt.wantSuggst)
			}
		})
	}
}

func TestActionableError_UnknownHasNoSuggestions(t *testing.T) {
	t.Parallel()

	var ae *issue.ActionableError
	if !errors.As(actionableError("bump version", ".", errors.New("odd")), &ae) {
		t.Fatal("expected *issue.ActionableError")
	}
	if ae.HasSuggestions() {
		t.Errorf("suggestions = %q, want none", ae.Suggestions)
	}
}

func TestActionableError_KeepsExistingContext(t *testing.T) {
	t.Parallel()

	orig := issue.NewErrorContext().WithOperation("load configuration").Wrap(errors.New("boom")).BuildError()
	wrapped := fmt.Errorf("outer: %w", orig)
	if got := actionableError("bump version", ".", wrapped); got != wrapped {
		t.Errorf("actionableError() = %v, want the error unchanged", got)
	}
}
