package vcs

import "errors"

var (
	// ErrNotARepository is returned when no .git directory is found in
	// path or any of its ancestors.
	ErrNotARepository = errors.New("vcs: not a git repository")

	// ErrDetachedHead is returned by CurrentBranch when HEAD does not
	// point at a branch ref.
	ErrDetachedHead = errors.New("vcs: HEAD is detached")

	// ErrObjectNotFound is returned when a requested object hash is
	// present in neither the loose object store nor any pack.
	ErrObjectNotFound = errors.New("vcs: object not found")

	// ErrCorruptObject is returned when a loose or packed object fails
	// to decompress or has a malformed header.
	ErrCorruptObject = errors.New("vcs: corrupt object")

	// ErrCorruptIndex is returned when the index file's header or entry
	// table does not match the git index v2 format.
	ErrCorruptIndex = errors.New("vcs: corrupt index")

	// ErrPathNotTracked is returned by operations that require a path to
	// already be present in the index (unstage, discard).
	ErrPathNotTracked = errors.New("vcs: path is not tracked")
)
