// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/addonpack/addonpack/internal/config"
	"github.com/addonpack/addonpack/internal/issue"
	"github.com/addonpack/addonpack/pkg/addonver"
	"github.com/addonpack/addonpack/pkg/atomicfile"
	"github.com/addonpack/addonpack/pkg/manifest"
	"github.com/addonpack/addonpack/pkg/types"
)

// ServiceError is an error classified for the CLI layer: it carries the exit
// code and the issue catalog page to render for it.
// Always create via newServiceError to enforce the Err-must-be-non-nil invariant.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID is the optional issue catalog ID for rendering help text.
	IssueID issue.Id
	// ExitCode is the process status for this failure.
	ExitCode types.ExitCode
}

// errorClass maps a sentinel to its catalog page and exit code.
type errorClass struct {
	sentinel error
	issueID  issue.Id
	code     types.ExitCode
}

// errorClasses is checked in order. Manifest and version categories precede
// the I/O ones because edit-step failures wrap both.
var errorClasses = []errorClass{
	{manifest.ErrMissingManifest, issue.ManifestNotFoundId, types.ExitInvalidManifest},
	{manifest.ErrBadLineEnding, issue.BadLineEndingId, types.ExitInvalidManifest},
	{manifest.ErrLeadingColon, issue.LeadingColonId, types.ExitInvalidManifest},
	{manifest.ErrMissingField, issue.MissingFieldId, types.ExitInvalidManifest},
	{addonver.ErrInvalidVersionFormat, issue.InvalidVersionId, types.ExitInvalidVersion},
	{addonver.ErrInvalidBumpMode, issue.InvalidBumpModeId, types.ExitInvalidVersion},
	{addonver.ErrComponentOverflow, issue.ComponentOverflowId, types.ExitInvalidVersion},
	{addonver.ErrInvalidAPIVersion, issue.InvalidAPIVersionId, types.ExitInvalidVersion},
	{os.ErrPermission, issue.PermissionDeniedId, types.ExitIO},
	{atomicfile.ErrIOFailure, issue.PatchFailedId, types.ExitIO},
	{os.ErrNotExist, issue.PatchFailedId, types.ExitIO},
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
func newServiceError(err error, issueID issue.Id, code types.ExitCode) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{
		Err:      err,
		IssueID:  issueID,
		ExitCode: code,
	}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// classifyError assigns err its catalog page and exit code. An already
// classified error keeps its class; errors matching no known category get
// ExitFailure and no page.
func classifyError(err error) *ServiceError {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		if svcErr == err {
			return svcErr
		}
		return newServiceError(err, svcErr.IssueID, svcErr.ExitCode)
	}
	for _, c := range errorClasses {
		if errors.Is(err, c.sentinel) {
			return newServiceError(err, c.issueID, c.code)
		}
	}
	return newServiceError(err, 0, types.ExitFailure)
}

// configError marks err as a configuration failure.
func configError(err error) *ServiceError {
	return newServiceError(err, issue.ConfigLoadFailedId, types.ExitFailure)
}

// renderServiceError writes the suggestions of an actionable error and the
// issue catalog page, if any, to stderr. The headline message is left to fang.
func renderServiceError(stderr io.Writer, svcErr *ServiceError, style string, verbose bool) {
	if svcErr == nil {
		return
	}

	var ae *issue.ActionableError
	if errors.As(svcErr.Err, &ae) && (ae.HasSuggestions() || verbose) {
		fmt.Fprintln(stderr, ae.Format(verbose))
	}

	if svcErr.IssueID == 0 {
		return
	}

	if catalogEntry := issue.Get(svcErr.IssueID); catalogEntry != nil {
		rendered, renderErr := catalogEntry.Render(style)
		if renderErr != nil {
			slog.Warn("failed to render issue catalog entry", "issueID", svcErr.IssueID, "error", renderErr)
		} else {
			fmt.Fprint(stderr, rendered)
		}
	}
}

// glamourStyle picks the catalog style for the configured scheme; output that
// is not a terminal always gets the plain "notty" style.
func glamourStyle(w io.Writer, scheme config.ColorScheme) string {
	if !isTerminal(w) {
		return "notty"
	}
	return scheme.GlamourStyle()
}
