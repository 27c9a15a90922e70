package bridge

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// findFiles walks arg's "root" directory (default ".") and records every
// regular file's path, relative to root, skipping hidden entries and
// version-control directories. The result is cached on the Bridge so a
// subsequent filter() call has something to narrow.
func (b *Bridge) findFiles(arg string) (Result, error) {
	root := gjson.Get(arg, "root").String()
	if root == "" {
		root = "."
	}
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if name != "." && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	sort.Strings(files)
	b.fileIndex = files

	quoted := make([]string, len(files))
	for i, f := range files {
		quoted[i] = quoteJSON(f)
	}
	return jsonList(quoted...), nil
}

// filter narrows the last findFiles result (or arg's explicit
// "candidates" list, if given) against arg's "query" using a
// subsequence fuzzy match, ranked by match compactness the way a
// command-palette fuzzy-finder does.
func (b *Bridge) filter(arg string) (Result, error) {
	query := gjson.Get(arg, "query").String()
	candidates := b.fileIndex
	if list := gjson.Get(arg, "candidates"); list.IsArray() {
		candidates = nil
		for _, v := range list.Array() {
			candidates = append(candidates, v.String())
		}
	}

	type scored struct {
		text  string
		score int
	}
	var matches []scored
	for _, c := range candidates {
		if score, ok := fuzzyScore(query, c); ok {
			matches = append(matches, scored{c, score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score < matches[j].score
	})

	quoted := make([]string, len(matches))
	for i, m := range matches {
		quoted[i] = quoteJSON(m.text)
	}
	return jsonList(quoted...), nil
}

// fuzzyScore reports whether query is a subsequence of text (case
// insensitive) and, if so, the span of the greedy leftmost match (first
// matched byte to last) — smaller spans rank higher. A tighter window
// later in text is not searched for.
func fuzzyScore(query, text string) (int, bool) {
	if query == "" {
		return 0, true
	}
	q := strings.ToLower(query)
	t := strings.ToLower(text)

	qi := 0
	start := -1
	end := -1
	for i := 0; i < len(t) && qi < len(q); i++ {
		if t[i] == q[qi] {
			if start < 0 {
				start = i
			}
			end = i
			qi++
		}
	}
	if qi < len(q) {
		return 0, false
	}
	return end - start, true
}
