package integrity

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// buildOutputDirs lists conventional build-output directory names skipped
// during canonicalization, in addition to any hidden (dot-prefixed) entry.
var buildOutputDirs = map[string]bool{
	"zig-out":      true,
	"node_modules": true,
	"target":       true,
	"dist":         true,
	"build":        true,
	".git":         true,
}

// ContentHash computes the SHA-256 content hash of the plugin directory
// root on fs: it recursively enumerates regular files, skipping hidden
// entries and build-output directories, sorts the remaining paths
// lexicographically (relative to root), and feeds
// `relative_path || 0x00 || file_bytes || 0x00` for each into the
// hasher in that order. The result is 64 lowercase hex characters.
func ContentHash(fsys afero.Fs, root string) (string, error) {
	paths, err := canonicalPaths(fsys, root)
	if err != nil {
		return "", err
	}

	h := sha256.New()
	for _, rel := range paths {
		data, err := afero.ReadFile(fsys, filepath.Join(root, rel))
		if err != nil {
			return "", err
		}
		h.Write([]byte(rel))
		h.Write([]byte{0})
		h.Write(data)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// canonicalPaths returns every regular file under root, relative to
// root, in sorted order, skipping hidden entries and build-output
// directories at any depth.
func canonicalPaths(fsys afero.Fs, root string) ([]string, error) {
	var paths []string
	err := afero.Walk(fsys, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		name := info.Name()
		if strings.HasPrefix(name, ".") || buildOutputDirs[name] {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
