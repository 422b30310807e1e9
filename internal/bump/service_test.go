// SPDX-License-Identifier: MPL-2.0

package bump

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/addonpack/addonpack/internal/testutil"
	"github.com/addonpack/addonpack/pkg/addonver"
	"github.com/addonpack/addonpack/pkg/atomicfile"
	"github.com/addonpack/addonpack/pkg/manifest"
	"github.com/addonpack/addonpack/pkg/sourcepatch"
	"github.com/google/go-cmp/cmp"
)

func TestBumpVersion_Patch(t *testing.T) {
	t.Parallel()

	a := testutil.NewAddon(t, "MyAddon", "## Title: MyAddon\n## Version: 1.2.3\n## AddOnVersion: 10203\n## APIVersion: 100123\n; PackageBumpFiles: src/main.lua\n")
	a.Write("src/main.lua", "local VERSION = \"1.2.3\" -- 1.2.3\n")

	svc := NewService(Options{})
	res, err := svc.BumpVersion(context.Background(), VersionRequest{Dir: a.Dir})
	if err != nil {
		t.Fatalf("BumpVersion returned error: %v", err)
	}

	if res.Previous.String() != "1.2.3" || res.Next.String() != "1.2.4" {
		t.Errorf("versions = %s -> %s, want 1.2.3 -> 1.2.4", res.Previous, res.Next)
	}
	if res.PreviousBuild != "10203" || res.NextBuild != "10204" {
		t.Errorf("builds = %s -> %s, want 10203 -> 10204", res.PreviousBuild, res.NextBuild)
	}

	wantManifest := "## Title: MyAddon\n## Version: 1.2.4\n## AddOnVersion: 10204\n## APIVersion: 100123\n; PackageBumpFiles: src/main.lua\n"
	if got := a.Manifest(); got != wantManifest {
		t.Errorf("manifest mismatch:\ngot:\n%s\nwant:\n%s", got, wantManifest)
	}
	if got := a.Read("src/main.lua"); got != "local VERSION = \"1.2.4\" -- 1.2.3\n" {
		t.Errorf("source file = %q", got)
	}

	wantPatched := []sourcepatch.Patched{{Path: filepath.Join(a.Dir, "src", "main.lua"), Replacements: 1}}
	if diff := cmp.Diff(wantPatched, res.Patched); diff != "" {
		t.Errorf("patched mismatch (-want +got):\n%s", diff)
	}
}

func TestBumpVersion_RevisionBootstrapsBuildNumber(t *testing.T) {
	t.Parallel()

	a := testutil.NewAddon(t, "Rev", "## Title: Rev\n## Version: 1.2 r9\n## APIVersion: 1\n")

	res, err := NewService(Options{}).BumpVersion(context.Background(), VersionRequest{Dir: a.Dir, Mode: addonver.BumpMinor})
	if err != nil {
		t.Fatalf("BumpVersion returned error: %v", err)
	}
	if res.Next.String() != "1.3 r1" {
		t.Errorf("next = %q, want %q", res.Next, "1.3 r1")
	}
	if res.PreviousBuild != "" {
		t.Errorf("previous build = %q, want empty", res.PreviousBuild)
	}

	want := "## Title: Rev\n## Version: 1.3 r1\n## AddOnVersion: 1\n## APIVersion: 1\n"
	if got := a.Manifest(); got != want {
		t.Errorf("manifest mismatch:\ngot:\n%q\nwant:\n%q", got, want)
	}
}

func TestBumpVersion_DefaultModeFromOptions(t *testing.T) {
	t.Parallel()

	a := testutil.NewAddon(t, "A", "## Version: 1.2.3\n")
	res, err := NewService(Options{DefaultMode: addonver.BumpMajor}).BumpVersion(context.Background(), VersionRequest{Dir: a.Dir})
	if err != nil {
		t.Fatalf("BumpVersion returned error: %v", err)
	}
	if res.Next.String() != "2.0.0" {
		t.Errorf("next = %q, want 2.0.0", res.Next)
	}
}

func TestBumpVersion_Explicit(t *testing.T) {
	t.Parallel()

	a := testutil.NewAddon(t, "A", "## Version: 1.2.3\n## AddOnVersion: 10203\n")
	res, err := NewService(Options{}).BumpVersion(context.Background(), VersionRequest{Dir: a.Dir, Explicit: "3.1.4"})
	if err != nil {
		t.Fatalf("BumpVersion returned error: %v", err)
	}
	if res.Next.String() != "3.1.4" || res.NextBuild != "30104" {
		t.Errorf("result = %s (%s)", res.Next, res.NextBuild)
	}
	if got := a.Manifest(); got != "## Version: 3.1.4\n## AddOnVersion: 30104\n" {
		t.Errorf("manifest = %q", got)
	}
}

func TestBumpVersion_CustomExtension(t *testing.T) {
	t.Parallel()

	a := testutil.NewAddonWithExt(t, "Toc", "toc", "## Version: 0.1.0\n")

	res, err := NewService(Options{ManifestExtension: "toc"}).BumpVersion(context.Background(), VersionRequest{Dir: a.Dir})
	if err != nil {
		t.Fatalf("BumpVersion returned error: %v", err)
	}
	if res.Manifest != a.ManifestPath() {
		t.Errorf("manifest = %q", res.Manifest)
	}
}

// Failures that must be reported before anything is written.
func TestBumpVersion_FailsBeforeMutation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		manifest string
		req      VersionRequest
		sentinel error
	}{
		{"crlf", "## Version: 1.2.3\r\n", VersionRequest{}, manifest.ErrBadLineEnding},
		{"leading_colon", "## Version: 1.2.3\n:oops\n", VersionRequest{}, manifest.ErrLeadingColon},
		{"missing_version", "## Title: A\n", VersionRequest{}, manifest.ErrMissingField},
		{"bad_version", "## Version: 1.2\n", VersionRequest{}, addonver.ErrInvalidVersionFormat},
		{"bad_explicit", "## Version: 1.2.3\n", VersionRequest{Explicit: "1.2.3.4"}, addonver.ErrInvalidVersionFormat},
		{"bad_mode", "## Version: 1.2.3\n", VersionRequest{Mode: "huge"}, addonver.ErrInvalidBumpMode},
		{"overflow", "## Version: 1.99.99\n", VersionRequest{Mode: addonver.BumpMinor}, addonver.ErrComponentOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := testutil.NewAddon(t, "A", tt.manifest)
			req := tt.req
			req.Dir = a.Dir

			_, err := NewService(Options{}).BumpVersion(context.Background(), req)
			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("error = %v, want %v", err, tt.sentinel)
			}
			if got := a.Manifest(); got != tt.manifest {
				t.Errorf("manifest modified: %q", got)
			}
		})
	}
}

func TestBumpVersion_MissingManifest(t *testing.T) {
	t.Parallel()

	_, err := NewService(Options{}).BumpVersion(context.Background(), VersionRequest{Dir: t.TempDir()})
	if !errors.Is(err, manifest.ErrMissingManifest) {
		t.Errorf("expected ErrMissingManifest, got: %v", err)
	}
}

func TestBumpVersion_PatchFailureKeepsEarlierWrites(t *testing.T) {
	t.Parallel()

	a := testutil.NewAddon(t, "A", "## Version: 1.0.0\n; PackageBumpFiles: one.lua missing.lua three.lua\n")
	a.Write("one.lua", `v = "1.0.0"`)
	a.Write("three.lua", `v = "1.0.0"`)

	res, err := NewService(Options{}).BumpVersion(context.Background(), VersionRequest{Dir: a.Dir})
	if !errors.Is(err, atomicfile.ErrIOFailure) {
		t.Fatalf("expected ErrIOFailure, got: %v", err)
	}

	if got := a.Manifest(); got != "## Version: 1.0.1\n## AddOnVersion: 10001\n; PackageBumpFiles: one.lua missing.lua three.lua\n" {
		t.Errorf("manifest = %q", got)
	}
	if got := a.Read("one.lua"); got != `v = "1.0.1"` {
		t.Errorf("one.lua = %q", got)
	}
	if got := a.Read("three.lua"); got != `v = "1.0.0"` {
		t.Errorf("three.lua = %q, want untouched", got)
	}
	if len(res.Patched) != 1 {
		t.Errorf("patched = %+v, want only one.lua", res.Patched)
	}
}

func TestBumpVersion_DryRun(t *testing.T) {
	t.Parallel()

	original := "## Version: 1.0.0\n; PackageBumpFiles: one.lua\n"
	a := testutil.NewAddon(t, "A", original)
	a.Write("one.lua", `v = "1.0.0"`)

	res, err := NewService(Options{}).BumpVersion(context.Background(), VersionRequest{Dir: a.Dir, DryRun: true})
	if err != nil {
		t.Fatalf("BumpVersion returned error: %v", err)
	}
	if !res.DryRun || res.Next.String() != "1.0.1" || res.NextBuild != "10001" {
		t.Errorf("result = %+v", res)
	}
	if diff := cmp.Diff([]string{"one.lua"}, res.BumpFiles); diff != "" {
		t.Errorf("bump files mismatch (-want +got):\n%s", diff)
	}
	if a.Manifest() != original || a.Read("one.lua") != `v = "1.0.0"` {
		t.Error("dry run modified files")
	}
}

func TestBumpVersion_DryRunMissingBumpFile(t *testing.T) {
	t.Parallel()

	a := testutil.NewAddon(t, "A", "## Version: 1.0.0\n; PackageBumpFiles: nope.lua\n")
	_, err := NewService(Options{}).BumpVersion(context.Background(), VersionRequest{Dir: a.Dir, DryRun: true})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got: %v", err)
	}
}

func TestBumpVersion_CanceledContext(t *testing.T) {
	t.Parallel()

	a := testutil.NewAddon(t, "A", "## Version: 1.0.0\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewService(Options{}).BumpVersion(ctx, VersionRequest{Dir: a.Dir}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
	if a.Manifest() != "## Version: 1.0.0\n" {
		t.Error("manifest modified after cancellation")
	}
}

func TestBumpAPIVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  APIRequest
		want string
	}{
		{"each", APIRequest{}, "100124 100235"},
		{"squash", APIRequest{Squash: true}, "100235"},
		{"explicit", APIRequest{Explicit: "110000  110002", Squash: true}, "110000 110002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := testutil.NewAddon(t, "A", "## Title: A\n## APIVersion: 100123 100234\n## Version: 1.0.0\n")
			req := tt.req
			req.Dir = a.Dir

			res, err := NewService(Options{}).BumpAPIVersion(context.Background(), req)
			if err != nil {
				t.Fatalf("BumpAPIVersion returned error: %v", err)
			}
			if diff := cmp.Diff(addonver.APIVersionSet{100123, 100234}, res.Previous); diff != "" {
				t.Errorf("previous mismatch (-want +got):\n%s", diff)
			}
			if res.Next.String() != tt.want {
				t.Errorf("next = %q, want %q", res.Next, tt.want)
			}
			want := "## Title: A\n## APIVersion: " + tt.want + "\n## Version: 1.0.0\n"
			if got := a.Manifest(); got != want {
				t.Errorf("manifest = %q, want %q", got, want)
			}
		})
	}
}

func TestBumpAPIVersion_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		manifest string
		req      APIRequest
		sentinel error
	}{
		{"missing", "## Version: 1.0.0\n", APIRequest{}, manifest.ErrMissingField},
		{"empty", "## APIVersion:\n", APIRequest{}, manifest.ErrMissingField},
		{"bad_token", "## APIVersion: 100 x\n", APIRequest{}, addonver.ErrInvalidAPIVersion},
		{"bad_explicit", "## APIVersion: 100\n", APIRequest{Explicit: "1.0"}, addonver.ErrInvalidAPIVersion},
		{"leading_zero", "## APIVersion: 0100123\n", APIRequest{}, addonver.ErrInvalidAPIVersion},
		{"leading_zero_explicit", "## APIVersion: 100\n", APIRequest{Explicit: "110000 0110001"}, addonver.ErrInvalidAPIVersion},
		{"max_uint64", "## APIVersion: 18446744073709551615\n", APIRequest{Squash: true}, addonver.ErrInvalidAPIVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := testutil.NewAddon(t, "A", tt.manifest)
			req := tt.req
			req.Dir = a.Dir
			if _, err := NewService(Options{}).BumpAPIVersion(context.Background(), req); !errors.Is(err, tt.sentinel) {
				t.Fatalf("error = %v, want %v", err, tt.sentinel)
			}
			if a.Manifest() != tt.manifest {
				t.Error("manifest modified")
			}
		})
	}
}

func TestBumpAPIVersion_DryRun(t *testing.T) {
	t.Parallel()

	a := testutil.NewAddon(t, "A", "## APIVersion: 7 9\n")
	res, err := NewService(Options{}).BumpAPIVersion(context.Background(), APIRequest{Dir: a.Dir, Squash: true, DryRun: true})
	if err != nil {
		t.Fatalf("BumpAPIVersion returned error: %v", err)
	}
	if res.Next.String() != "10" {
		t.Errorf("next = %q, want 10", res.Next)
	}
	if a.Manifest() != "## APIVersion: 7 9\n" {
		t.Error("dry run modified the manifest")
	}
}
