// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/addonpack/addonpack/internal/issue"
	"github.com/addonpack/addonpack/internal/testutil"
	"github.com/addonpack/addonpack/pkg/addonver"
	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	testutil.MustWriteFile(t, path, content)
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	want := &Config{
		UI:       UIConfig{Verbose: false, ColorScheme: ColorSchemeAuto},
		Bump:     BumpConfig{DefaultPart: addonver.BumpPatch},
		Manifest: ManifestConfig{Extension: "txt"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("DefaultConfig() mismatch (-want +got):\n%s", diff)
	}
	if valid, errs := cfg.IsValid(); !valid {
		t.Errorf("DefaultConfig() is invalid: %v", errs)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("loadWithOptions returned error: %v", err)
	}
	if path != "" {
		t.Errorf("resolved path = %q, want empty", path)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	want := writeConfig(t, dir, `
ui: verbose: true
bump: default_part: "minor"
manifest: extension: "toc"
`)

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("loadWithOptions returned error: %v", err)
	}
	if path != want {
		t.Errorf("resolved path = %q, want %q", path, want)
	}
	if !cfg.UI.Verbose || cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("ui = %+v", cfg.UI)
	}
	if cfg.Bump.DefaultPart != addonver.BumpMinor || cfg.Manifest.Extension != "toc" {
		t.Errorf("config = %+v", cfg)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), `ui: color_scheme: "light"`)
	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path, ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.UI.ColorScheme != ColorSchemeLight {
		t.Errorf("color scheme = %q, want light", cfg.UI.ColorScheme)
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	t.Parallel()

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: filepath.Join(t.TempDir(), "nope.cue")})
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *issue.ActionableError, got %T: %v", err, err)
	}
	if !ae.HasSuggestions() {
		t.Error("expected suggestions on a missing config file")
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"bad_part", `bump: default_part: "huge"`, "bump.default_part"},
		{"bad_scheme", `ui: color_scheme: "neon"`, "ui.color_scheme"},
		{"dotted_extension", `manifest: extension: ".txt"`, "manifest.extension"},
		{"wrong_type", `ui: verbose: "yes"`, "ui.verbose"},
		{"syntax", `ui: {`, "config.cue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `bump: default_part: "minor"`)
	t.Setenv("ADDONPACK_BUMP_DEFAULT_PART", "major")
	t.Setenv("ADDONPACK_UI_VERBOSE", "true")

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Bump.DefaultPart != addonver.BumpMajor || !cfg.UI.Verbose {
		t.Errorf("config = %+v", cfg)
	}
}

func TestLoad_EnvOverrideInvalid(t *testing.T) {
	t.Setenv("ADDONPACK_BUMP_DEFAULT_PART", "huge")

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if !errors.Is(err, addonver.ErrInvalidBumpMode) {
		t.Errorf("expected ErrInvalidBumpMode, got: %v", err)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		UI:       UIConfig{Verbose: true, ColorScheme: ColorSchemeDark},
		Bump:     BumpConfig{DefaultPart: addonver.BumpMajor},
		Manifest: ManifestConfig{Extension: "toc"},
	}
	dir := t.TempDir()
	writeConfig(t, dir, GenerateCUE(cfg))

	got, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested")
	path, err := CreateDefaultConfig(dir, false)
	if err != nil {
		t.Fatalf("CreateDefaultConfig returned error: %v", err)
	}
	if path != filepath.Join(dir, "config.cue") {
		t.Errorf("path = %q", path)
	}

	if _, err := CreateDefaultConfig(dir, false); !errors.Is(err, ErrConfigExists) {
		t.Errorf("second call: expected ErrConfigExists, got: %v", err)
	}
	if _, err := CreateDefaultConfig(dir, true); err != nil {
		t.Errorf("forced call returned error: %v", err)
	}

	resolved, err := Resolve(LoadOptions{ConfigDirPath: dir})
	if err != nil || resolved != path {
		t.Errorf("Resolve = %q, %v; want %q", resolved, err, path)
	}
}

func TestConfigDir_Override(t *testing.T) {
	// Not parallel: mutates package state.
	SetConfigDirOverride("/tmp/addonpack-test")
	t.Cleanup(Reset)

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir returned error: %v", err)
	}
	if dir != "/tmp/addonpack-test" {
		t.Errorf("ConfigDir() = %q", dir)
	}
}
