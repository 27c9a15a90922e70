package vcs

import (
	"os"
	"path/filepath"
)

// Stage writes path's working-tree content as a blob object and records
// it in the index, as `git add <path>` would.
func (r *Repository) Stage(path string) error {
	full := filepath.Join(r.WorkTree, path)
	data, err := os.ReadFile(full)
	if err != nil {
		return err
	}
	info, err := os.Stat(full)
	if err != nil {
		return err
	}
	hash, err := r.WriteObject(KindBlob, data)
	if err != nil {
		return err
	}
	idx, err := r.ReadIndex()
	if err != nil {
		return err
	}
	idx.Upsert(entryFromStat(path, info, hash))
	return r.WriteIndex(idx)
}

// Unstage resets path's index entry back to its HEAD content, or removes
// it from the index entirely if HEAD has no such path (undoing a `git
// add` on a newly created file).
func (r *Repository) Unstage(path string) error {
	idx, err := r.ReadIndex()
	if err != nil {
		return err
	}
	if _, staged := idx.Find(path); !staged {
		return ErrPathNotTracked
	}

	head, err := r.ResolveHEAD()
	if err != nil {
		idx.Remove(path)
		return r.WriteIndex(idx)
	}
	blobHash, err := r.ResolvePath(head, path)
	if err != nil {
		idx.Remove(path)
		return r.WriteIndex(idx)
	}
	obj, err := r.ReadObject(blobHash)
	if err != nil {
		return err
	}
	idx.Upsert(IndexEntry{
		Mode: 0o100644,
		Size: uint32(len(obj.Data)),
		Hash: blobHash,
		Path: path,
	})
	return r.WriteIndex(idx)
}

// Discard overwrites path's working-tree content with its staged (index)
// version, discarding unstaged edits.
func (r *Repository) Discard(path string) error {
	idx, err := r.ReadIndex()
	if err != nil {
		return err
	}
	entry, staged := idx.Find(path)
	if !staged {
		return ErrPathNotTracked
	}
	obj, err := r.ReadObject(entry.Hash)
	if err != nil {
		return err
	}
	full := filepath.Join(r.WorkTree, path)
	return os.WriteFile(full, obj.Data, 0o644)
}

// Hunks returns the unified-diff hunks between path's staged (index)
// content and its working-tree content, the basis for a partial-stage UI.
func (r *Repository) Hunks(path string) ([]Hunk, error) {
	idx, err := r.ReadIndex()
	if err != nil {
		return nil, err
	}
	entry, staged := idx.Find(path)
	var stagedContent string
	if staged {
		obj, err := r.ReadObject(entry.Hash)
		if err != nil {
			return nil, err
		}
		stagedContent = string(obj.Data)
	}
	full := filepath.Join(r.WorkTree, path)
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, err
	}
	return Hunks(stagedContent, string(data), 3), nil
}

// StageHunk stages only the lines selected (by their position in the
// full hunk set Hunks(path) returns) rather than the whole working-tree
// file, reconstructing the partially-updated blob from the staged
// baseline plus the selected hunks.
func (r *Repository) StageHunk(path string, selected []Hunk) error {
	idx, err := r.ReadIndex()
	if err != nil {
		return err
	}
	entry, staged := idx.Find(path)
	var baseline string
	if staged {
		obj, err := r.ReadObject(entry.Hash)
		if err != nil {
			return err
		}
		baseline = string(obj.Data)
	}

	patched := Apply(baseline, selected)
	hash, err := r.WriteObject(KindBlob, []byte(patched))
	if err != nil {
		return err
	}
	idx.Upsert(IndexEntry{
		Mode: 0o100644,
		Size: uint32(len(patched)),
		Hash: hash,
		Path: path,
	})
	return r.WriteIndex(idx)
}
