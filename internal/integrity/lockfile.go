package integrity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// LockEntry pins one installed plugin's identity and content hash.
type LockEntry struct {
	ID           string   `json:"id"`
	Version      string   `json:"version"`
	ContentHash  string   `json:"content_hash"`
	Source       string   `json:"source"`
	Kind         string   `json:"kind"`
	Dependencies []string `json:"dependencies"`
	UpdatedAt    int64    `json:"updated_at"` // milliseconds since the Unix epoch
}

// LockfileVersion is the only lockfile format version this package
// knows how to read and write.
const LockfileVersion = "1"

// lockfileHeader marks the file as machine-generated; stripped on read,
// re-added on write.
const lockfileHeader = "// grim.lock — machine-generated, do not edit by hand\n"

// Lockfile is the decoded form of a grim.lock file: a format version and
// a set of per-plugin lock entries.
type Lockfile struct {
	Version string
	Plugins map[string]LockEntry
}

// NewLockfile returns an empty lockfile at the current format version.
func NewLockfile() *Lockfile {
	return &Lockfile{Version: LockfileVersion, Plugins: map[string]LockEntry{}}
}

// ReadLockfile reads and parses the lockfile at path on fsys. A missing
// file is reported as ErrLockfileNotFound.
func ReadLockfile(fsys afero.Fs, path string) (*Lockfile, error) {
	raw, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, ErrLockfileNotFound
	}

	body := stripHeader(string(raw))
	if !gjson.Valid(body) {
		return nil, ErrLockfileCorrupt
	}
	root := gjson.Parse(body)

	version := root.Get("version").String()
	if version == "" {
		return nil, ErrLockfileCorrupt
	}
	if version != LockfileVersion {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, version)
	}

	lf := &Lockfile{Version: version, Plugins: map[string]LockEntry{}}
	for id, entry := range root.Get("plugins").Map() {
		var deps []string
		for _, d := range entry.Get("dependencies").Array() {
			deps = append(deps, d.String())
		}
		lf.Plugins[id] = LockEntry{
			ID:           entry.Get("id").String(),
			Version:      entry.Get("version").String(),
			ContentHash:  entry.Get("content_hash").String(),
			Source:       entry.Get("source").String(),
			Kind:         entry.Get("kind").String(),
			Dependencies: deps,
			UpdatedAt:    entry.Get("updated_at").Int(),
		}
	}
	return lf, nil
}

// Write serializes the lockfile to path on fsys, with plugin entries in
// lexicographic id order for deterministic output, prefixed by the
// machine-generated comment header.
func (lf *Lockfile) Write(fsys afero.Fs, path string) error {
	doc := "{}"
	var err error
	doc, err = sjson.Set(doc, "version", lf.Version)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(lf.Plugins))
	for id := range lf.Plugins {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	doc, err = sjson.SetRaw(doc, "plugins", "{}")
	if err != nil {
		return err
	}
	for _, id := range ids {
		entry := lf.Plugins[id]
		entryDoc := "{}"
		entryDoc, _ = sjson.Set(entryDoc, "id", entry.ID)
		entryDoc, _ = sjson.Set(entryDoc, "version", entry.Version)
		entryDoc, _ = sjson.Set(entryDoc, "content_hash", entry.ContentHash)
		entryDoc, _ = sjson.Set(entryDoc, "source", entry.Source)
		entryDoc, _ = sjson.Set(entryDoc, "kind", entry.Kind)
		entryDoc, _ = sjson.Set(entryDoc, "dependencies", entry.Dependencies)
		entryDoc, _ = sjson.Set(entryDoc, "updated_at", entry.UpdatedAt)

		doc, err = sjson.SetRaw(doc, "plugins."+jsonPathKey(id), entryDoc)
		if err != nil {
			return err
		}
	}

	formatted := pretty.Pretty([]byte(doc))
	return afero.WriteFile(fsys, path, append([]byte(lockfileHeader), formatted...), 0o644)
}

// jsonPathKey escapes id for use as an sjson path segment (sjson paths
// use "." and "*" as structural characters the way gjson does).
func jsonPathKey(id string) string {
	r := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`)
	return r.Replace(id)
}

func stripHeader(content string) string {
	lines := strings.Split(content, "\n")
	var kept []string
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
