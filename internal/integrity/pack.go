package integrity

import (
	"sort"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
)

// PackEntry is one plugin member of a pack.
type PackEntry struct {
	Name    string
	Source  string
	Version string // optional
	Enabled bool
}

// Pack is a curated, named set of plugins installed together.
type Pack struct {
	Name        string
	Version     string
	Description string
	Author      string
	Plugins     map[string]PackEntry
}

// ReadPack parses a pack file at path on fsys.
func ReadPack(fsys afero.Fs, path string) (*Pack, error) {
	raw, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(raw) {
		return nil, ErrPackCorrupt
	}
	root := gjson.ParseBytes(raw)

	p := &Pack{
		Name:        root.Get("name").String(),
		Version:     root.Get("version").String(),
		Description: root.Get("description").String(),
		Author:      root.Get("author").String(),
		Plugins:     map[string]PackEntry{},
	}
	for name, entry := range root.Get("plugins").Map() {
		p.Plugins[name] = PackEntry{
			Name:    name,
			Source:  entry.Get("source").String(),
			Version: entry.Get("version").String(),
			Enabled: entry.Get("enabled").Bool(),
		}
	}
	return p, nil
}

// Installer installs a single plugin named name from source (and
// optional version), returning an error on failure. The CLI's install
// command supplies the concrete implementation.
type Installer func(name, source, version string) error

// Install iterates the pack's entries in lexicographic name order and
// invokes install for each enabled member, stopping at the first
// failure.
func (p *Pack) Install(install Installer) error {
	names := make([]string, 0, len(p.Plugins))
	for name := range p.Plugins {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		entry := p.Plugins[name]
		if !entry.Enabled {
			continue
		}
		if err := install(entry.Name, entry.Source, entry.Version); err != nil {
			return err
		}
	}
	return nil
}
