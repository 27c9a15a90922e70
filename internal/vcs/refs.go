package vcs

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// ResolveHEAD follows HEAD (a "ref: refs/heads/<branch>" symref, or a
// detached commit hash) down to a concrete commit hash.
func (r *Repository) ResolveHEAD() (string, error) {
	data, err := os.ReadFile(filepath.Join(r.GitDir, "HEAD"))
	if err != nil {
		return "", err
	}
	return r.resolveRefContent(strings.TrimSpace(string(data)))
}

// CurrentBranch returns the short branch name HEAD points to, or
// ErrDetachedHead if HEAD is a direct commit hash.
func (r *Repository) CurrentBranch() (string, error) {
	data, err := os.ReadFile(filepath.Join(r.GitDir, "HEAD"))
	if err != nil {
		return "", err
	}
	content := strings.TrimSpace(string(data))
	if !strings.HasPrefix(content, "ref: ") {
		return "", ErrDetachedHead
	}
	ref := strings.TrimPrefix(content, "ref: ")
	return strings.TrimPrefix(ref, "refs/heads/"), nil
}

// resolveRefContent interprets a ref-file's content, which is either a
// "ref: <path>" symref (possibly chained) or a raw hex object id.
func (r *Repository) resolveRefContent(content string) (string, error) {
	for strings.HasPrefix(content, "ref: ") {
		name := strings.TrimPrefix(content, "ref: ")
		hash, err := r.readRef(name)
		if err != nil {
			return "", err
		}
		content = hash
	}
	return content, nil
}

// readRef resolves a ref name (e.g. "refs/heads/main") to its stored
// content, checking the loose refs/ tree first and packed-refs second.
func (r *Repository) readRef(name string) (string, error) {
	path := filepath.Join(r.GitDir, filepath.FromSlash(name))
	if data, err := os.ReadFile(path); err == nil {
		return strings.TrimSpace(string(data)), nil
	} else if !os.IsNotExist(err) {
		return "", err
	}

	f, err := os.Open(filepath.Join(r.GitDir, "packed-refs"))
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "^") {
			continue
		}
		fields := strings.SplitN(line, " ", 2)
		if len(fields) == 2 && fields[1] == name {
			return fields[0], nil
		}
	}
	return "", ErrObjectNotFound
}
