package pluginhost

import (
	"os"
	"path/filepath"
	"sort"
)

// Loader scans plugin-root directories for manifests.
type Loader struct {
	roots []string
}

// NewLoader creates a loader over the given plugin-root directories.
func NewLoader(roots ...string) *Loader {
	return &Loader{roots: roots}
}

// DefaultPluginRoots returns the conventional plugin search directories,
// honoring XDG_DATA_HOME and XDG_CONFIG_HOME when set.
func DefaultPluginRoots() []string {
	var roots []string

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			configHome = filepath.Join(home, ".config")
		}
	}
	if configHome != "" {
		roots = append(roots, filepath.Join(configHome, "grim", "plugins"))
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dataHome = filepath.Join(home, ".local", "share")
		}
	}
	if dataHome != "" {
		roots = append(roots, filepath.Join(dataHome, "grim", "plugins"))
	}

	if cwd, err := os.Getwd(); err == nil {
		roots = append(roots, filepath.Join(cwd, ".grim", "plugins"))
	}

	return roots
}

// DiscoveryResult is the outcome of a Discover call.
type DiscoveryResult struct {
	// Plugins is the deduplicated set of discovered manifests, sorted by id.
	Plugins []*Manifest

	// Duplicates records ids discovered more than once; only the first
	// occurrence (by root order, then lexicographic path) is kept.
	Duplicates []string
}

// Discover scans every root for top-level plugin directories containing a
// manifest file. The first occurrence of an id wins; later duplicates are
// reported but do not fail discovery.
func (l *Loader) Discover() (*DiscoveryResult, error) {
	seen := make(map[string]bool)
	result := &DiscoveryResult{}

	for _, root := range l.roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}

		names := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.IsDir() {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)

		for _, name := range names {
			dir := filepath.Join(root, name)
			manifest, err := LoadManifestFromDir(dir)
			if err != nil {
				continue
			}
			if seen[manifest.ID] {
				result.Duplicates = append(result.Duplicates, manifest.ID)
				continue
			}
			seen[manifest.ID] = true
			result.Plugins = append(result.Plugins, manifest)
		}
	}

	sort.Slice(result.Plugins, func(i, j int) bool {
		return result.Plugins[i].ID < result.Plugins[j].ID
	})

	return result, nil
}

// ResolvedLoadOrder is the outcome of resolving a dependency graph.
type ResolvedLoadOrder struct {
	// Order lists plugin ids in a valid topological load order.
	Order []string

	// Unsatisfied maps a plugin id to the dependency id it is missing.
	// Plugins named here are excluded from Order.
	Unsatisfied map[string]string

	// Cycle names one representative dependency cycle, if the graph
	// contains one. Every id in Cycle is excluded from Order; plugins
	// outside the cycle are resolved and ordered normally.
	Cycle []string
}

// ResolveLoadOrder computes a dependency-respecting load order over the
// discovered manifests using Kahn's algorithm. A missing dependency
// excludes the dependent plugin (ErrUnsatisfiedDependency semantics,
// reported via Unsatisfied); unrelated plugins are unaffected. A cycle
// among the remaining plugins excludes the cycle's members (reported
// via Cycle); plugins with no path into the cycle still resolve and load.
// A plugin that depends, directly or transitively, on an excluded plugin
// is left out of Order as well, without an entry in Unsatisfied or Cycle.
func ResolveLoadOrder(manifests []*Manifest) (*ResolvedLoadOrder, error) {
	byID := make(map[string]*Manifest, len(manifests))
	for _, m := range manifests {
		byID[m.ID] = m
	}

	unsatisfied := make(map[string]string)
	eligible := make(map[string]*Manifest)
	for _, m := range manifests {
		missing := ""
		for _, dep := range m.Dependencies {
			if _, ok := byID[dep]; !ok {
				missing = dep
				break
			}
		}
		if missing != "" {
			unsatisfied[m.ID] = missing
			continue
		}
		eligible[m.ID] = m
	}

	// indegree[id] = number of eligible dependencies still unresolved.
	indegree := make(map[string]int, len(eligible))
	dependents := make(map[string][]string)
	ids := make([]string, 0, len(eligible))
	for id, m := range eligible {
		ids = append(ids, id)
		indegree[id] = len(m.Dependencies)
		for _, dep := range m.Dependencies {
			dependents[dep] = append(dependents[dep], id)
		}
	}
	sort.Strings(ids)
	for _, deps := range dependents {
		sort.Strings(deps)
	}

	var queue []string
	for _, id := range ids {
		if indegree[id] == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	var order []string
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		next := append([]string(nil), dependents[id]...)
		sort.Strings(next)
		for _, dep := range next {
			indegree[dep]--
			if indegree[dep] == 0 {
				queue = append(queue, dep)
				sort.Strings(queue)
			}
		}
	}

	var cycle []string
	if len(order) != len(eligible) {
		cycle = findCycle(eligible)
	}

	return &ResolvedLoadOrder{Order: order, Unsatisfied: unsatisfied, Cycle: cycle}, nil
}

// findCycle returns the ids forming one cycle in the remaining graph,
// in deterministic (sorted start node) order, for error reporting.
func findCycle(eligible map[string]*Manifest) []string {
	ids := make([]string, 0, len(eligible))
	for id := range eligible {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	const (
		white = 0
		gray  = 1
	)
	color := make(map[string]int, len(eligible))
	var path []string
	var cycle []string

	var visit func(id string) bool
	visit = func(id string) bool {
		color[id] = gray
		path = append(path, id)
		m := eligible[id]
		for _, dep := range m.Dependencies {
			if _, ok := eligible[dep]; !ok {
				continue
			}
			switch color[dep] {
			case white:
				if visit(dep) {
					return true
				}
			case gray:
				for i, p := range path {
					if p == dep {
						cycle = append([]string(nil), path[i:]...)
						break
					}
				}
				return true
			}
		}
		path = path[:len(path)-1]
		color[id] = 2
		return false
	}

	for _, id := range ids {
		if color[id] == white {
			if visit(id) {
				return cycle
			}
		}
	}
	return cycle
}
