package bridge

import (
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/ghostkellz/grim/internal/vcs"
)

// gitDetectRepository walks up from the current directory (".") looking
// for a .git directory and, if found, binds it as this Bridge's active
// repository for every subsequent git.* capability.
func (b *Bridge) gitDetectRepository() (Result, error) {
	path := "."
	repo, err := vcs.Detect(path)
	if err != nil {
		return staticResult(`false`), nil
	}
	b.repo = repo
	return jsonObject(
		"worktree", quoteJSON(repo.WorkTree),
		"git_dir", quoteJSON(repo.GitDir),
	), nil
}

func (b *Bridge) gitCurrentBranch() (Result, error) {
	if b.repo == nil {
		return Result{}, ErrNoRepository
	}
	branch, err := b.repo.CurrentBranch()
	if err != nil {
		return Result{}, err
	}
	return jsonString(branch), nil
}

func (b *Bridge) gitFileStatus(arg string) (Result, error) {
	if b.repo == nil {
		return Result{}, ErrNoRepository
	}
	path := gjson.Get(arg, "path").String()
	state, err := b.repo.FileStatus(path)
	if err != nil {
		return Result{}, err
	}
	return jsonString(state.String()), nil
}

func (b *Bridge) gitBlame(arg string) (Result, error) {
	if b.repo == nil {
		return Result{}, ErrNoRepository
	}
	path := gjson.Get(arg, "path").String()
	lines, err := b.repo.Blame(path)
	if err != nil {
		return Result{}, err
	}
	items := make([]string, len(lines))
	for i, l := range lines {
		items[i] = jsonObject(
			"line", strconv.Itoa(l.Line),
			"commit", quoteJSON(l.Commit),
			"author", quoteJSON(l.Author),
		).JSON
	}
	return jsonList(items...), nil
}

func (b *Bridge) gitStage(arg string) (Result, error) {
	if b.repo == nil {
		return Result{}, ErrNoRepository
	}
	path := gjson.Get(arg, "path").String()
	if err := b.repo.Stage(path); err != nil {
		return Result{}, err
	}
	return staticResult(`true`), nil
}

func (b *Bridge) gitUnstage(arg string) (Result, error) {
	if b.repo == nil {
		return Result{}, ErrNoRepository
	}
	path := gjson.Get(arg, "path").String()
	if err := b.repo.Unstage(path); err != nil {
		return Result{}, err
	}
	return staticResult(`true`), nil
}

func (b *Bridge) gitDiscard(arg string) (Result, error) {
	if b.repo == nil {
		return Result{}, ErrNoRepository
	}
	path := gjson.Get(arg, "path").String()
	if err := b.repo.Discard(path); err != nil {
		return Result{}, err
	}
	return staticResult(`true`), nil
}

func (b *Bridge) gitHunks(arg string) (Result, error) {
	if b.repo == nil {
		return Result{}, ErrNoRepository
	}
	path := gjson.Get(arg, "path").String()
	hunks, err := b.repo.Hunks(path)
	if err != nil {
		return Result{}, err
	}
	return jsonList(hunkItems(hunks)...), nil
}

func (b *Bridge) gitStageHunk(arg string) (Result, error) {
	if b.repo == nil {
		return Result{}, ErrNoRepository
	}
	path := gjson.Get(arg, "path").String()
	indicesResult := gjson.Get(arg, "hunk_indices")

	all, err := b.repo.Hunks(path)
	if err != nil {
		return Result{}, err
	}
	var selected []vcs.Hunk
	if indicesResult.IsArray() {
		for _, idx := range indicesResult.Array() {
			i := int(idx.Int())
			if i >= 0 && i < len(all) {
				selected = append(selected, all[i])
			}
		}
	} else {
		selected = all
	}

	if err := b.repo.StageHunk(path, selected); err != nil {
		return Result{}, err
	}
	return staticResult(`true`), nil
}

func hunkItems(hunks []vcs.Hunk) []string {
	items := make([]string, len(hunks))
	for i, h := range hunks {
		items[i] = jsonObject(
			"old_start", strconv.Itoa(h.OldStart),
			"old_lines", strconv.Itoa(h.OldLines),
			"new_start", strconv.Itoa(h.NewStart),
			"new_lines", strconv.Itoa(h.NewLines),
		).JSON
	}
	return items
}
