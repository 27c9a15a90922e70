package pluginhost

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifestValid(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `{
		"id": "test-plugin",
		"name": "Test Plugin",
		"version": "1.0.0",
		"author": "someone",
		"description": "a test plugin",
		"entry_point": "main.scr",
		"dependencies": ["other-plugin"],
		"permissions": {"filesystem": true, "memory_bytes": 1048576, "wall_time_ms": 1000}
	}`)

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.ID != "test-plugin" || m.Version != "1.0.0" {
		t.Fatalf("unexpected manifest: %+v", m)
	}
	if m.Path() != dir {
		t.Fatalf("Path() = %q, want %q", m.Path(), dir)
	}
	if !m.Permissions.Filesystem {
		t.Fatal("expected filesystem permission true")
	}
}

func TestLoadManifestMissingID(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `{"name": "x", "version": "1.0.0", "entry_point": "main.scr"}`)

	if _, err := LoadManifest(path); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestLoadManifestInvalidID(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `{"id": "Test_Plugin", "name": "x", "version": "1.0.0", "entry_point": "main.scr"}`)

	_, err := LoadManifest(path)
	if err == nil {
		t.Fatal("expected error for invalid id")
	}
}

func TestLoadManifestInvalidVersion(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `{"id": "test", "name": "x", "version": "not-semver", "entry_point": "main.scr"}`)

	if _, err := LoadManifest(path); err == nil {
		t.Fatal("expected error for invalid version")
	}
}

func TestManifestClone(t *testing.T) {
	m := &Manifest{ID: "a", Dependencies: []string{"b", "c"}}
	clone := m.Clone()
	clone.Dependencies[0] = "z"
	if m.Dependencies[0] == "z" {
		t.Fatal("Clone did not deep-copy Dependencies")
	}
}

func TestManifestString(t *testing.T) {
	m := &Manifest{ID: "foo", Version: "2.1.0"}
	if got := m.String(); got != "foo@2.1.0" {
		t.Fatalf("String() = %q", got)
	}
}
