package vcs

import (
	"os"
	"path/filepath"
)

// FileState classifies one path's working-tree/index/HEAD relationship.
type FileState int

// File states, ordered roughly by how "dirty" they are.
const (
	StateUnmodified FileState = iota
	StateUntracked
	StateModified
	StateStaged
	StateDeleted
	StateAdded
)

func (s FileState) String() string {
	switch s {
	case StateUnmodified:
		return "unmodified"
	case StateUntracked:
		return "untracked"
	case StateModified:
		return "modified"
	case StateStaged:
		return "staged"
	case StateDeleted:
		return "deleted"
	case StateAdded:
		return "added"
	default:
		return "unknown"
	}
}

// FileStatus reports path's state relative to the index and HEAD. path
// is relative to the repository's working tree.
func (r *Repository) FileStatus(path string) (FileState, error) {
	idx, err := r.ReadIndex()
	if err != nil {
		return 0, err
	}
	entry, staged := idx.Find(path)

	full := filepath.Join(r.WorkTree, path)
	info, statErr := os.Stat(full)
	existsOnDisk := statErr == nil

	headHash, headErr := r.headBlobHash(path)
	trackedAtHead := headErr == nil

	switch {
	case !existsOnDisk && !staged:
		return 0, ErrPathNotTracked
	case !existsOnDisk && staged && trackedAtHead:
		return StateDeleted, nil
	case !existsOnDisk && staged && !trackedAtHead:
		return StateDeleted, nil
	case existsOnDisk && !staged:
		return StateUntracked, nil
	}

	workHash, err := blobHashOfFile(full)
	if err != nil {
		return 0, err
	}

	switch {
	case workHash != entry.Hash:
		return StateModified, nil
	case !trackedAtHead:
		return StateAdded, nil
	case entry.Hash != headHash:
		return StateStaged, nil
	case info != nil && uint32(info.Size()) != entry.Size:
		return StateModified, nil
	default:
		return StateUnmodified, nil
	}
}

// headBlobHash resolves path's blob hash as of the HEAD commit.
func (r *Repository) headBlobHash(path string) (string, error) {
	head, err := r.ResolveHEAD()
	if err != nil {
		return "", err
	}
	return r.ResolvePath(head, path)
}

// blobHashOfFile computes the git blob hash the working-tree copy of
// path would have if staged right now, without writing anything.
func blobHashOfFile(full string) (string, error) {
	data, err := os.ReadFile(full)
	if err != nil {
		return "", err
	}
	return HashObject(KindBlob, data), nil
}
