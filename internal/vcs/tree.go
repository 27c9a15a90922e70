package vcs

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// TreeEntry is one row of a decoded tree object.
type TreeEntry struct {
	Mode string
	Name string
	Hash string
	Dir  bool
}

// ReadTree decodes a tree object's payload into its entries. Tree entries
// are "<mode> <name>\x00<20-byte sha1>" repeated with no separator or
// trailing framing.
func ReadTree(data []byte) ([]TreeEntry, error) {
	var entries []TreeEntry
	for len(data) > 0 {
		sp := bytes.IndexByte(data, ' ')
		if sp < 0 {
			return nil, ErrCorruptObject
		}
		mode := string(data[:sp])
		data = data[sp+1:]

		nul := bytes.IndexByte(data, 0)
		if nul < 0 {
			return nil, ErrCorruptObject
		}
		name := string(data[:nul])
		data = data[nul+1:]

		if len(data) < 20 {
			return nil, ErrCorruptObject
		}
		hash := hex.EncodeToString(data[:20])
		data = data[20:]

		entries = append(entries, TreeEntry{Mode: mode, Name: name, Hash: hash, Dir: mode == "40000"})
	}
	return entries, nil
}

// ResolvePath walks from the commit tree at commitHash down path's
// components, returning the blob hash at the leaf.
func (r *Repository) ResolvePath(commitHash, path string) (string, error) {
	commitObj, err := r.ReadObject(commitHash)
	if err != nil {
		return "", err
	}
	commit, err := ParseCommit(commitObj.Data)
	if err != nil {
		return "", err
	}
	return r.resolveInTree(commit.Tree, splitPath(path))
}

func (r *Repository) resolveInTree(treeHash string, parts []string) (string, error) {
	obj, err := r.ReadObject(treeHash)
	if err != nil {
		return "", err
	}
	entries, err := ReadTree(obj.Data)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if e.Name != parts[0] {
			continue
		}
		if len(parts) == 1 {
			if e.Dir {
				return "", fmt.Errorf("vcs: %w: %s is a directory", ErrObjectNotFound, e.Name)
			}
			return e.Hash, nil
		}
		if !e.Dir {
			return "", ErrObjectNotFound
		}
		return r.resolveInTree(e.Hash, parts[1:])
	}
	return "", ErrObjectNotFound
}

func splitPath(path string) []string {
	var parts []string
	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '/' {
			if i > start {
				parts = append(parts, path[start:i])
			}
			start = i + 1
		}
	}
	return parts
}
