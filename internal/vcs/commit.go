package vcs

import (
	"strings"
	"time"
)

// Commit is a decoded commit object: tree, parents, identities, and
// message, enough to drive blame and log-style traversal.
type Commit struct {
	Hash      string
	Tree      string
	Parents   []string
	Author    string
	AuthorAt  time.Time
	Committer string
	Message   string
}

// ParseCommit decodes a commit object's payload.
func ParseCommit(data []byte) (*Commit, error) {
	text := string(data)
	headerEnd := strings.Index(text, "\n\n")
	if headerEnd < 0 {
		headerEnd = len(text)
	}
	header := text[:headerEnd]
	message := ""
	if headerEnd+2 <= len(text) {
		message = text[headerEnd+2:]
	}

	c := &Commit{Message: message}
	for _, line := range strings.Split(header, "\n") {
		switch {
		case strings.HasPrefix(line, "tree "):
			c.Tree = strings.TrimPrefix(line, "tree ")
		case strings.HasPrefix(line, "parent "):
			c.Parents = append(c.Parents, strings.TrimPrefix(line, "parent "))
		case strings.HasPrefix(line, "author "):
			name, at := parseIdentLine(strings.TrimPrefix(line, "author "))
			c.Author = name
			c.AuthorAt = at
		case strings.HasPrefix(line, "committer "):
			name, _ := parseIdentLine(strings.TrimPrefix(line, "committer "))
			c.Committer = name
		}
	}
	return c, nil
}

// parseIdentLine splits a "Name <email> <unix> <tzoffset>" identity line
// into a display name and its timestamp.
func parseIdentLine(line string) (name string, at time.Time) {
	gt := strings.LastIndex(line, ">")
	if gt < 0 {
		return line, time.Time{}
	}
	name = strings.TrimSpace(line[:gt+1])
	rest := strings.Fields(strings.TrimSpace(line[gt+1:]))
	if len(rest) == 0 {
		return name, time.Time{}
	}
	var sec int64
	for _, c := range rest[0] {
		if c < '0' || c > '9' {
			return name, time.Time{}
		}
	}
	for _, c := range rest[0] {
		sec = sec*10 + int64(c-'0')
	}
	return name, time.Unix(sec, 0).UTC()
}

// Log walks first-parent history starting at hash, up to limit commits
// (0 means unbounded).
func (r *Repository) Log(hash string, limit int) ([]*Commit, error) {
	var out []*Commit
	for hash != "" && (limit <= 0 || len(out) < limit) {
		obj, err := r.ReadObject(hash)
		if err != nil {
			return out, err
		}
		c, err := ParseCommit(obj.Data)
		if err != nil {
			return out, err
		}
		c.Hash = hash
		out = append(out, c)
		if len(c.Parents) == 0 {
			break
		}
		hash = c.Parents[0]
	}
	return out, nil
}
