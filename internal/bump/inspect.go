// SPDX-License-Identifier: MPL-2.0

package bump

import (
	"context"
	"fmt"
	"os"

	"github.com/addonpack/addonpack/pkg/addonver"
	"github.com/addonpack/addonpack/pkg/manifest"
	"github.com/addonpack/addonpack/pkg/sourcepatch"
)

// Summary is a read-only view of the fields addonpack cares about.
type Summary struct {
	Manifest     string
	Addon        string
	Title        string
	Version      string
	AddOnVersion string
	APIVersion   string
	Excludes     []string
	ReleaseDir   string
	BumpFiles    []string
}

// Inspect loads the manifest for dir and returns its Summary. Only encoding
// and option-list syntax are validated; use Check for the version fields.
func (s *Service) Inspect(ctx context.Context, dir string) (Summary, error) {
	doc, _, err := s.load(ctx, dir)
	if err != nil {
		return Summary{}, err
	}
	return summarize(doc)
}

// Check validates what a default-mode bump would validate, without writing:
// the manifest encoding, the Version grammar, the build number of the version
// the default bump part produces, the APIVersion set, and the presence of
// every bump file. The load error, if any, is the only element returned;
// otherwise all field problems are collected.
func (s *Service) Check(ctx context.Context, dir string) (Summary, []error) {
	doc, absDir, err := s.load(ctx, dir)
	if err != nil {
		return Summary{}, []error{err}
	}

	sum, err := summarize(doc)
	if err != nil {
		return sum, []error{err}
	}

	var errs []error
	if text, err := doc.RequireVariable(manifest.FieldVersion); err != nil {
		errs = append(errs, err)
	} else if v, err := addonver.Parse(text); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", manifest.FieldVersion, err))
	} else if next, err := v.Next(s.opts.DefaultMode); err != nil {
		errs = append(errs, err)
	} else if _, err := addonver.DeriveBuildNumber(next); err != nil {
		errs = append(errs, err)
	}

	if text, err := doc.RequireVariable(manifest.FieldAPIVersion); err != nil {
		errs = append(errs, err)
	} else if _, err := addonver.ParseAPIVersionSet(text); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", manifest.FieldAPIVersion, err))
	}

	for _, f := range sum.BumpFiles {
		if _, err := os.Stat(sourcepatch.Resolve(absDir, f)); err != nil {
			errs = append(errs, fmt.Errorf("bump file %s: %w", f, err))
		}
	}

	return sum, errs
}

func summarize(doc *manifest.Document) (Summary, error) {
	excludes, err := doc.OptionList(manifest.OptionPackageExcludes)
	if err != nil {
		return Summary{}, err
	}
	bumpFiles, err := doc.OptionList(manifest.OptionPackageBumpFiles)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Manifest:     doc.Path,
		Addon:        manifest.AddonName(doc.Path),
		Title:        doc.Variable(manifest.FieldTitle),
		Version:      doc.Variable(manifest.FieldVersion),
		AddOnVersion: doc.Variable(manifest.FieldAddOnVersion),
		APIVersion:   doc.Variable(manifest.FieldAPIVersion),
		Excludes:     excludes,
		ReleaseDir:   doc.Option(manifest.OptionPackageReleaseDir),
		BumpFiles:    bumpFiles,
	}, nil
}
