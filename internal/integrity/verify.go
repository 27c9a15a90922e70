package integrity

import (
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/ghostkellz/grim/internal/metrics"
)

// EntryStatus is one lock entry's verification outcome.
type EntryStatus int

const (
	// StatusOK means the recomputed hash matched the lock entry.
	StatusOK EntryStatus = iota
	// StatusNotInstalled means the plugin directory is absent.
	StatusNotInstalled
	// StatusMismatch means the recomputed hash disagreed with the pinned one.
	StatusMismatch
)

func (s EntryStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNotInstalled:
		return "not_installed"
	case StatusMismatch:
		return "mismatch"
	default:
		return "unknown"
	}
}

// EntryResult is one plugin's verification outcome.
type EntryResult struct {
	ID     string
	Status EntryStatus
}

// Result is the outcome of verifying a whole lockfile: every entry's
// individual result, plus an overall pass/fail.
type Result struct {
	Entries []EntryResult
	OK      bool
}

// Verify iterates every entry in the lockfile at lockfilePath, recomputes
// its content hash from pluginsDir/<id>, and reports a per-plugin
// pass/fail. The overall result fails if any entry is missing or
// mismatched.
func Verify(fsys afero.Fs, lockfilePath, pluginsDir string) (*Result, error) {
	lf, err := ReadLockfile(fsys, lockfilePath)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(lf.Plugins))
	for id := range lf.Plugins {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := &Result{OK: true}
	for _, id := range ids {
		entry := lf.Plugins[id]
		dir := filepath.Join(pluginsDir, id)

		if exists, _ := afero.DirExists(fsys, dir); !exists {
			result.Entries = append(result.Entries, EntryResult{ID: id, Status: StatusNotInstalled})
			result.OK = false
			continue
		}

		hash, err := ContentHash(fsys, dir)
		if err != nil {
			return nil, err
		}
		if hash != entry.ContentHash {
			result.Entries = append(result.Entries, EntryResult{ID: id, Status: StatusMismatch})
			result.OK = false
			continue
		}
		result.Entries = append(result.Entries, EntryResult{ID: id, Status: StatusOK})
	}

	for _, e := range result.Entries {
		metrics.IntegrityVerifications.WithLabelValues(e.Status.String()).Inc()
	}
	return result, nil
}
