// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtension is the manifest file extension used when none is configured.
const DefaultExtension = "txt"

// ErrMissingManifest is the sentinel error wrapped by MissingManifestError.
var ErrMissingManifest = errors.New("manifest not found")

type (
	// Document is a validated, in-memory snapshot of a manifest file.
	// It is never kept across operations; callers reload it each time.
	Document struct {
		// Path is the manifest location on disk.
		Path  string
		lines []string
	}

	// MissingManifestError is returned when no manifest exists at the expected path.
	MissingManifestError struct {
		Path string
	}
)

// Error implements the error interface.
func (e *MissingManifestError) Error() string {
	return fmt.Sprintf("manifest not found: %s", e.Path)
}

// Unwrap returns ErrMissingManifest so callers can use errors.Is for programmatic detection.
func (e *MissingManifestError) Unwrap() error { return ErrMissingManifest }

// Locate returns the manifest path for the addon in dir: the directory's own
// name with ext appended. An empty ext means DefaultExtension.
func Locate(dir, ext string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve addon directory: %w", err)
	}
	if ext == "" {
		ext = DefaultExtension
	}
	ext = strings.TrimPrefix(ext, ".")
	return filepath.Join(absDir, filepath.Base(absDir)+"."+ext), nil
}

// AddonName returns the addon name implied by a manifest path.
func AddonName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// Load reads the manifest at path and validates its encoding.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &MissingManifestError{Path: path}
		}
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	return Parse(path, string(data))
}

// Parse validates content and wraps it in a Document labeled with path.
func Parse(path, content string) (*Document, error) {
	if err := ValidateEncoding(path, content); err != nil {
		return nil, err
	}
	return &Document{Path: path, lines: strings.Split(content, "\n")}, nil
}

// Content returns the full manifest text.
func (d *Document) Content() string {
	return strings.Join(d.lines, "\n")
}
