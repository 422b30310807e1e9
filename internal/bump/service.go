// SPDX-License-Identifier: MPL-2.0

package bump

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/addonpack/addonpack/pkg/addonver"
	"github.com/addonpack/addonpack/pkg/manifest"
	"github.com/addonpack/addonpack/pkg/sourcepatch"
)

type (
	// Options configures a Service. The zero value uses the "txt" manifest
	// extension and patch bumps.
	Options struct {
		// ManifestExtension is the manifest file extension (without dot).
		ManifestExtension string
		// DefaultMode is used when a VersionRequest leaves Mode empty.
		DefaultMode addonver.BumpMode
	}

	// Service implements the version bump operations for addon directories.
	Service struct {
		opts Options
	}

	// VersionRequest describes a single-version bump.
	VersionRequest struct {
		// Dir is the addon directory. Empty means the current directory.
		Dir string
		// Mode selects the component to increment. Zero value means Options.DefaultMode.
		Mode addonver.BumpMode
		// Explicit, when non-empty, replaces the version verbatim.
		Explicit string
		// DryRun computes and validates the change without writing anything.
		DryRun bool
	}

	// VersionResult reports a completed (or simulated) version bump.
	VersionResult struct {
		Manifest      string
		Previous      addonver.Version
		Next          addonver.Version
		PreviousBuild addonver.BuildNumber
		NextBuild     addonver.BuildNumber
		// BumpFiles lists the auxiliary files the bump applies to, as declared
		// by the PackageBumpFiles option.
		BumpFiles []string
		// Patched lists the auxiliary files rewritten so far. On a patch
		// failure it holds the files completed before the failing one.
		Patched []sourcepatch.Patched
		DryRun  bool
	}

	// APIRequest describes an API version bump.
	APIRequest struct {
		// Dir is the addon directory. Empty means the current directory.
		Dir string
		// Squash collapses the set to its incremented maximum.
		Squash bool
		// Explicit, when non-empty, replaces the whole set verbatim.
		Explicit string
		// DryRun computes and validates the change without writing anything.
		DryRun bool
	}

	// APIResult reports a completed (or simulated) API version bump.
	APIResult struct {
		Manifest string
		Previous addonver.APIVersionSet
		Next     addonver.APIVersionSet
		DryRun   bool
	}
)

// NewService creates a Service.
func NewService(opts Options) *Service {
	if opts.ManifestExtension == "" {
		opts.ManifestExtension = manifest.DefaultExtension
	}
	if opts.DefaultMode == "" {
		opts.DefaultMode = addonver.BumpPatch
	}
	return &Service{opts: opts}
}

// load locates and validates the manifest for dir.
func (s *Service) load(ctx context.Context, dir string) (*manifest.Document, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", fmt.Errorf("bump canceled: %w", err)
	}
	if dir == "" {
		dir = "."
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve addon directory: %w", err)
	}
	path, err := manifest.Locate(absDir, s.opts.ManifestExtension)
	if err != nil {
		return nil, "", err
	}
	doc, err := manifest.Load(path)
	if err != nil {
		return nil, "", err
	}
	return doc, absDir, nil
}

// BumpVersion moves the manifest Version (and its AddOnVersion build number)
// forward and patches the configured source files.
//
// The manifest is written first, then each source file in declaration order.
// A source file failure aborts the remaining files; the manifest and files
// already patched keep their new content.
func (s *Service) BumpVersion(ctx context.Context, req VersionRequest) (VersionResult, error) {
	doc, dir, err := s.load(ctx, req.Dir)
	if err != nil {
		return VersionResult{}, err
	}

	currentText, err := doc.RequireVariable(manifest.FieldVersion)
	if err != nil {
		return VersionResult{}, err
	}
	current, err := addonver.Parse(currentText)
	if err != nil {
		return VersionResult{}, fmt.Errorf("%s: %s: %w", doc.Path, manifest.FieldVersion, err)
	}

	mode := req.Mode
	if mode == "" {
		mode = s.opts.DefaultMode
	}
	next, err := addonver.NextVersion(current, mode, req.Explicit)
	if err != nil {
		return VersionResult{}, err
	}
	nextBuild, err := addonver.DeriveBuildNumber(next)
	if err != nil {
		return VersionResult{}, err
	}
	files, err := doc.OptionList(manifest.OptionPackageBumpFiles)
	if err != nil {
		return VersionResult{}, err
	}

	result := VersionResult{
		Manifest:      doc.Path,
		Previous:      current,
		Next:          next,
		PreviousBuild: addonver.BuildNumber(doc.Variable(manifest.FieldAddOnVersion)),
		NextBuild:     nextBuild,
		BumpFiles:     files,
		DryRun:        req.DryRun,
	}

	if req.DryRun {
		for _, f := range files {
			if _, statErr := os.Stat(sourcepatch.Resolve(dir, f)); statErr != nil {
				return result, fmt.Errorf("bump file %s: %w", f, statErr)
			}
		}
		slog.Debug("dry run: version bump computed", "manifest", doc.Path, "from", current, "to", next)
		return result, nil
	}

	// AddOnVersion goes first: when it has to be inserted, the anchor is the
	// Version line as it reads before the bump.
	err = manifest.Replace(doc.Path,
		manifest.UpsertVariableAfter(manifest.FieldVersion, manifest.FieldAddOnVersion, nextBuild.String()),
		manifest.SetVariable(manifest.FieldVersion, next.String()),
	)
	if err != nil {
		return result, err
	}
	slog.Debug("manifest version updated", "manifest", doc.Path, "from", current, "to", next, "build", nextBuild)

	result.Patched, err = sourcepatch.PatchAll(dir, files, currentText, next.String())
	if err != nil {
		return result, err
	}
	return result, nil
}

// BumpAPIVersion moves the manifest APIVersion set forward.
func (s *Service) BumpAPIVersion(ctx context.Context, req APIRequest) (APIResult, error) {
	doc, _, err := s.load(ctx, req.Dir)
	if err != nil {
		return APIResult{}, err
	}

	currentText, err := doc.RequireVariable(manifest.FieldAPIVersion)
	if err != nil {
		return APIResult{}, err
	}
	current, err := addonver.ParseAPIVersionSet(currentText)
	if err != nil {
		return APIResult{}, fmt.Errorf("%s: %s: %w", doc.Path, manifest.FieldAPIVersion, err)
	}

	next, err := addonver.NextAPIVersionSet(current, req.Squash, req.Explicit)
	if err != nil {
		return APIResult{}, err
	}

	result := APIResult{Manifest: doc.Path, Previous: current, Next: next, DryRun: req.DryRun}
	if req.DryRun {
		slog.Debug("dry run: API version bump computed", "manifest", doc.Path, "from", current.String(), "to", next.String())
		return result, nil
	}

	if err := manifest.Replace(doc.Path, manifest.SetVariable(manifest.FieldAPIVersion, next.String())); err != nil {
		return result, err
	}
	slog.Debug("manifest API version updated", "manifest", doc.Path, "from", current.String(), "to", next.String())
	return result, nil
}
