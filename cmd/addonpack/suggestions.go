// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/addonpack/addonpack/internal/issue"
	"github.com/addonpack/addonpack/pkg/addonver"
	"github.com/addonpack/addonpack/pkg/atomicfile"
	"github.com/addonpack/addonpack/pkg/manifest"
)

// actionableError wraps err with the failed operation, the resource it
// concerns and the remediation hints of its class. Errors that already carry
// an ActionableError are returned unchanged.
func actionableError(op, resource string, err error) error {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return err
	}
	return issue.NewErrorContext().
		WithOperation(op).
		WithResource(resource).
		WithSuggestions(suggestionsFor(err)...).
		Wrap(err).
		BuildError()
}

// suggestionsFor returns hints naming the file (and line) behind err.
// Manifest and version classes are checked before the I/O ones, and a missing
// file before other I/O failures.
func suggestionsFor(err error) []string {
	var (
		missingManifest *manifest.MissingManifestError
		badEnding       *manifest.BadLineEndingError
		leadingColon    *manifest.LeadingColonError
		missingField    *manifest.MissingFieldError
		badVersion      *addonver.InvalidVersionFormatError
		badMode         *addonver.InvalidBumpModeError
		overflow        *addonver.ComponentOverflowError
		apiOverflow     *addonver.APIVersionOverflowError
		ioFailure       *atomicfile.IOFailureError
		pathErr         *fs.PathError
	)

	switch {
	case errors.As(err, &missingManifest):
		return []string{
			fmt.Sprintf("Create %s: the manifest is named after its directory", missingManifest.Path),
			"Run addonpack inside the addon directory or pass it with --dir",
		}
	case errors.As(err, &badEnding):
		return []string{
			fmt.Sprintf("Line %d of %s ends with CRLF: convert the file to LF, e.g. dos2unix %s", badEnding.Line, badEnding.Path, badEnding.Path),
		}
	case errors.As(err, &leadingColon):
		return []string{
			fmt.Sprintf("Remove the ':' at the start of line %d of %s", leadingColon.Line, leadingColon.Path),
		}
	case errors.As(err, &missingField):
		where := "the manifest"
		if missingField.Path != "" {
			where = missingField.Path
		}
		return []string{
			fmt.Sprintf("Add a %q line to %s", missingField.Kind.FormatLine(missingField.Field, "<value>"), where),
		}
	case errors.As(err, &badVersion):
		return []string{`Write the version as "X.Y.Z" (1.2.3) or "X.Y rZ" (1.2 r3), without leading zeros`}
	case errors.As(err, &badMode):
		return []string{"Use one of: major, minor, patch"}
	case errors.As(err, &overflow):
		return []string{
			fmt.Sprintf("The AddOnVersion build number allows at most %d per component", addonver.MaxComponent),
			"Bump a higher part (addonpack bump major) or pick the version with --set",
		}
	case errors.As(err, &apiOverflow):
		return []string{fmt.Sprintf("APIVersion %d cannot grow: replace the list with addonpack api bump --set", apiOverflow.Value)}
	case errors.Is(err, addonver.ErrInvalidAPIVersion):
		return []string{"List APIVersion entries as space-separated integers without leading zeros"}
	case errors.Is(err, fs.ErrNotExist) && errors.As(err, &pathErr):
		return []string{
			fmt.Sprintf("Create %s or remove it from \"; %s:\"", filepath.Base(pathErr.Path), manifest.OptionPackageBumpFiles),
		}
	case errors.As(err, &ioFailure):
		if errors.Is(err, fs.ErrPermission) {
			return []string{fmt.Sprintf("Check the permissions of %s and its directory", ioFailure.Path)}
		}
		return []string{fmt.Sprintf("Check that %s is a regular, writable file and the disk is not full", ioFailure.Path)}
	}
	return nil
}
