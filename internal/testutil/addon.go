// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"testing"
)

// Addon is a throwaway addon directory under t.TempDir().
type Addon struct {
	t testing.TB

	// Dir is the addon directory; its base name is Name.
	Dir string
	// Name is the addon name and the manifest base name.
	Name string
	// Ext is the manifest extension, without dot.
	Ext string
}

// NewAddon creates the directory name with a name.txt manifest holding
// manifestText.
func NewAddon(t testing.TB, name, manifestText string) *Addon {
	t.Helper()
	return NewAddonWithExt(t, name, "txt", manifestText)
}

// NewAddonWithExt is NewAddon for a manifest extension other than txt.
func NewAddonWithExt(t testing.TB, name, ext, manifestText string) *Addon {
	t.Helper()
	a := &Addon{t: t, Dir: filepath.Join(t.TempDir(), name), Name: name, Ext: ext}
	MustMkdirAll(t, a.Dir, 0o755)
	MustWriteFile(t, a.ManifestPath(), manifestText)
	return a
}

// Path returns the absolute path of rel, a slash-separated path inside Dir.
func (a *Addon) Path(rel string) string {
	return filepath.Join(a.Dir, filepath.FromSlash(rel))
}

// ManifestPath returns the manifest location.
func (a *Addon) ManifestPath() string {
	return a.Path(a.Name + "." + a.Ext)
}

// Write creates or replaces rel with content.
func (a *Addon) Write(rel, content string) {
	a.t.Helper()
	MustWriteFile(a.t, a.Path(rel), content)
}

// Read returns the content of rel.
func (a *Addon) Read(rel string) string {
	a.t.Helper()
	return MustReadFile(a.t, a.Path(rel))
}

// Manifest returns the current manifest text.
func (a *Addon) Manifest() string {
	a.t.Helper()
	return MustReadFile(a.t, a.ManifestPath())
}
