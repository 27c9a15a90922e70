package vcs

import (
	"os"
	"path/filepath"
)

// Repository is a handle onto one working tree's .git directory.
type Repository struct {
	WorkTree string
	GitDir   string
}

// Detect walks up from start looking for a .git directory, returning
// ErrNotARepository if none is found before reaching the filesystem
// root.
func Detect(start string) (*Repository, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return nil, err
	}
	for {
		gitDir := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return &Repository{WorkTree: dir, GitDir: gitDir}, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, ErrNotARepository
		}
		dir = parent
	}
}

func (r *Repository) path(parts ...string) string {
	return filepath.Join(append([]string{r.GitDir}, parts...)...)
}
