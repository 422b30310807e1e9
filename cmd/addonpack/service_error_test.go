// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/addonpack/addonpack/internal/issue"
	"github.com/addonpack/addonpack/pkg/addonver"
	"github.com/addonpack/addonpack/pkg/atomicfile"
	"github.com/addonpack/addonpack/pkg/manifest"
	"github.com/addonpack/addonpack/pkg/types"
)

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		wantIssue issue.Id
		wantCode  types.ExitCode
	}{
		{"missing manifest", &manifest.MissingManifestError{Path: "A/A.txt"}, issue.ManifestNotFoundId, types.ExitInvalidManifest},
		{"crlf", &manifest.BadLineEndingError{Path: "A/A.txt", Line: 1}, issue.BadLineEndingId, types.ExitInvalidManifest},
		{"leading colon", &manifest.LeadingColonError{Path: "A/A.txt", Line: 2}, issue.LeadingColonId, types.ExitInvalidManifest},
		{"missing field", &manifest.MissingFieldError{Kind: manifest.KindVariable, Field: "Version"}, issue.MissingFieldId, types.ExitInvalidManifest},
		{"bad version", &addonver.InvalidVersionFormatError{Value: "1.2"}, issue.InvalidVersionId, types.ExitInvalidVersion},
		{"bad mode", &addonver.InvalidBumpModeError{Value: "huge"}, issue.InvalidBumpModeId, types.ExitInvalidVersion},
		{"overflow", &addonver.ComponentOverflowError{Component: "minor", Value: 100}, issue.ComponentOverflowId, types.ExitInvalidVersion},
		{"bad api", fmt.Errorf("wrapped: %w", addonver.ErrInvalidAPIVersion), issue.InvalidAPIVersionId, types.ExitInvalidVersion},
		{"io", &atomicfile.IOFailureError{Path: "x", Step: atomicfile.StepMove, Err: errors.New("disk full")}, issue.PatchFailedId, types.ExitIO},
		{"permission", &atomicfile.IOFailureError{Path: "x", Step: atomicfile.StepCopy, Err: os.ErrPermission}, issue.PermissionDeniedId, types.ExitIO},
		{"edit step encoding", &atomicfile.IOFailureError{Path: "x", Step: atomicfile.StepEdit, Err: &manifest.BadLineEndingError{Line: 3}}, issue.BadLineEndingId, types.ExitInvalidManifest},
		{"missing bump file", fmt.Errorf("bump file a.lua: %w", os.ErrNotExist), issue.PatchFailedId, types.ExitIO},
		{"unknown", errors.New("something else"), 0, types.ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := classifyError(tt.err)
			if got.IssueID != tt.wantIssue || got.ExitCode != tt.wantCode {
				t.Errorf("classifyError() = (issue %d, code %d), want (issue %d, code %d)", got.IssueID, got.ExitCode, tt.wantIssue, tt.wantCode)
			}
			if !errors.Is(got, tt.err) {
				t.Error("classified error should wrap the original")
			}
		})
	}
}

func TestClassifyError_KeepsServiceError(t *testing.T) {
	t.Parallel()

	orig := configError(errors.New("bad config"))
	if got := classifyError(orig); got != orig {
		t.Errorf("classifyError() = %+v, want the ServiceError itself", got)
	}

	wrapped := fmt.Errorf("outer: %w", orig)
	got := classifyError(wrapped)
	if got.IssueID != orig.IssueID || got.ExitCode != orig.ExitCode {
		t.Errorf("classifyError() = (issue %d, code %d), want the inner class", got.IssueID, got.ExitCode)
	}
	if got.Err != wrapped {
		t.Errorf("classifyError().Err = %v, want the outer error", got.Err)
	}
}

func TestNewServiceError_NilPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("newServiceError(nil) should panic")
		}
	}()
	newServiceError(nil, 0, types.ExitFailure)
}

func TestRenderServiceError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ae := issue.NewErrorContext().
		WithOperation("load configuration").
		WithSuggestion("Check the CUE syntax").
		Wrap(errors.New("boom")).
		Build()
	renderServiceError(&buf, configError(ae), "notty", false)

	out := buf.String()
	if !strings.Contains(out, "• Check the CUE syntax") {
		t.Errorf("missing suggestion:\n%s", out)
	}
	if !strings.Contains(out, "Failed to load configuration") {
		t.Errorf("missing catalog page:\n%s", out)
	}
}

func TestGlamourStyle_NonTerminal(t *testing.T) {
	t.Parallel()

	if got := glamourStyle(&bytes.Buffer{}, "light"); got != "notty" {
		t.Errorf("glamourStyle(buffer) = %q, want notty", got)
	}
}
