package vcs

import "time"

// BlameLine attributes one line of a file's current content to the
// commit that last changed it, walking the first-parent history (a
// documented simplification — merge parents are not consulted, since
// this core has no use for full ancestry blame, only "who touched this
// line most recently on the branch I'm on").
type BlameLine struct {
	Line   int
	Commit string
	Author string
	At     time.Time
	Text   string
}

// Blame computes per-line attribution for path as of HEAD.
func (r *Repository) Blame(path string) ([]BlameLine, error) {
	head, err := r.ResolveHEAD()
	if err != nil {
		return nil, err
	}
	commits, err := r.Log(head, 0)
	if err != nil {
		return nil, err
	}
	if len(commits) == 0 {
		return nil, ErrObjectNotFound
	}

	content, err := r.blobContentAt(commits[0].Hash, path)
	if err != nil {
		return nil, err
	}
	lines := splitLines(content)

	origin := make([]*Commit, len(lines))

	// posToOriginal[i] maps a position in the "current" content (the
	// content as of commits[k]) back to its index in the original HEAD
	// line slice, so attribution survives content reshaping as we walk
	// further into history.
	posToOriginal := make([]int, len(lines))
	for i := range posToOriginal {
		posToOriginal[i] = i
	}
	current := content

	for k := 0; k < len(commits); k++ {
		c := commits[k]
		var parentContent string
		hasParent := len(c.Parents) > 0
		if hasParent {
			pc, err := r.blobContentAt(c.Parents[0], path)
			if err == nil {
				parentContent = pc
			} else {
				hasParent = false
			}
		}

		diff := DiffLines(parentContent, current)
		parentLines := splitLines(parentContent)
		nextPosToOriginal := make([]int, 0, len(parentLines))

		curIdx := 0
		for _, op := range diff {
			switch op.Op {
			case OpEqual:
				orig := posToOriginal[curIdx]
				nextPosToOriginal = append(nextPosToOriginal, orig)
				curIdx++
			case OpInsert:
				orig := posToOriginal[curIdx]
				if origin[orig] == nil {
					origin[orig] = c
				}
				curIdx++
			case OpDelete:
				// present only in the parent; irrelevant to current's lines.
			}
		}

		if !hasParent {
			for i, o := range origin {
				if o == nil {
					origin[i] = c
				}
			}
			break
		}

		current = parentContent
		posToOriginal = nextPosToOriginal
	}

	out := make([]BlameLine, len(lines))
	for i, text := range lines {
		c := origin[i]
		bl := BlameLine{Line: i + 1, Text: text}
		if c != nil {
			bl.Commit = c.Hash
			bl.Author = c.Author
			bl.At = c.AuthorAt
		}
		out[i] = bl
	}
	return out, nil
}

// blobContentAt returns path's content as of commitHash, or "" with
// ErrObjectNotFound if the path did not exist at that commit.
func (r *Repository) blobContentAt(commitHash, path string) (string, error) {
	blobHash, err := r.ResolvePath(commitHash, path)
	if err != nil {
		return "", err
	}
	obj, err := r.ReadObject(blobHash)
	if err != nil {
		return "", err
	}
	return string(obj.Data), nil
}
