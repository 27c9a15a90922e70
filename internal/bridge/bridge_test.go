package bridge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/ghostkellz/grim/internal/engine"
)

type recordingThemes struct {
	registered   []string
	unregistered []string
	failRegister bool
}

func (r *recordingThemes) RegisterTheme(pluginID, name, colors string) error {
	if r.failRegister {
		return fmt.Errorf("boom")
	}
	r.registered = append(r.registered, pluginID+"/"+name)
	return nil
}

func (r *recordingThemes) UnregisterTheme(pluginID, name string) error {
	r.unregistered = append(r.unregistered, pluginID+"/"+name)
	return nil
}

func newTestBridge(t *testing.T, content string) (*Bridge, *recordingThemes, *[]string) {
	t.Helper()
	eng := engine.New(engine.WithContent(content))
	themes := &recordingThemes{}
	var messages []string
	b := New(eng, nil, nil, func(m string) { messages = append(messages, m) }, themes)
	return b, themes, &messages
}

func TestDispatchShowMessage(t *testing.T) {
	b, _, messages := newTestBridge(t, "")
	if err := b.Dispatch(context.Background(), capShowMessage, "hi"); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(*messages) != 1 || (*messages)[0] != "hi" {
		t.Fatalf("expected [\"hi\"], got %v", *messages)
	}
}

func TestResolveKnownAndUnknown(t *testing.T) {
	b, _, _ := newTestBridge(t, "")
	if !b.Resolve(capShowMessage) {
		t.Fatalf("expected %s to resolve", capShowMessage)
	}
	if b.Resolve("nonexistent.capability") {
		t.Fatalf("expected unknown capability to not resolve")
	}
}

func TestCallUnknownCapability(t *testing.T) {
	b, _, _ := newTestBridge(t, "")
	_, err := b.Call(context.Background(), "nonexistent.capability", "{}")
	if err != ErrUnknownCapability {
		t.Fatalf("expected ErrUnknownCapability, got %v", err)
	}
}

func TestRegisterAndUnregisterTheme(t *testing.T) {
	b, themes, _ := newTestBridge(t, "")

	result, err := b.Call(context.Background(), capRegisterTheme, `{"plugin_id":"p1","name":"dark","colors":{"bg":"#000"}}`)
	if err != nil {
		t.Fatalf("register_theme: %v", err)
	}
	if result.JSON != "true" {
		t.Fatalf("expected true, got %s", result.JSON)
	}
	if len(themes.registered) != 1 || themes.registered[0] != "p1/dark" {
		t.Fatalf("expected p1/dark registered, got %v", themes.registered)
	}

	if _, err := b.Call(context.Background(), capUnregisterTheme, `{"plugin_id":"p1","name":"dark"}`); err != nil {
		t.Fatalf("unregister_theme: %v", err)
	}
	if len(themes.unregistered) != 1 || themes.unregistered[0] != "p1/dark" {
		t.Fatalf("expected p1/dark unregistered, got %v", themes.unregistered)
	}
}

func TestRegisterThemeMissingFields(t *testing.T) {
	b, _, _ := newTestBridge(t, "")
	_, err := b.Call(context.Background(), capRegisterTheme, `{"plugin_id":"p1"}`)
	if err != ErrInvalidArgument {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestBookmarkPinJumpUnpin(t *testing.T) {
	b, _, _ := newTestBridge(t, "hello world")

	if _, err := b.Call(context.Background(), capBookmarkPin, `{"name":"a","offset":6}`); err != nil {
		t.Fatalf("pin: %v", err)
	}

	result, err := b.Call(context.Background(), capBookmarkJump, `{"name":"a"}`)
	if err != nil {
		t.Fatalf("jump: %v", err)
	}
	if result.JSON != `{"offset":6}` {
		t.Fatalf("expected offset 6, got %s", result.JSON)
	}
	if b.engine.PrimaryCursor() != 6 {
		t.Fatalf("expected primary cursor at 6, got %d", b.engine.PrimaryCursor())
	}

	if _, err := b.Call(context.Background(), capBookmarkUnpin, `{"name":"a"}`); err != nil {
		t.Fatalf("unpin: %v", err)
	}
	if _, err := b.Call(context.Background(), capBookmarkJump, `{"name":"a"}`); err != ErrBookmarkNotFound {
		t.Fatalf("expected ErrBookmarkNotFound after unpin, got %v", err)
	}
}

func TestBookmarkJumpUnknown(t *testing.T) {
	b, _, _ := newTestBridge(t, "")
	if _, err := b.Call(context.Background(), capBookmarkJump, `{"name":"missing"}`); err != ErrBookmarkNotFound {
		t.Fatalf("expected ErrBookmarkNotFound, got %v", err)
	}
}

func TestFindFilesAndFilter(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"main.go", "helper.go", "README.md", ".hidden"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}

	b, _, _ := newTestBridge(t, "")
	arg := fmt.Sprintf(`{"root":%s}`, quoteJSON(dir))
	result, err := b.Call(context.Background(), capFindFiles, arg)
	if err != nil {
		t.Fatalf("find_files: %v", err)
	}
	if len(b.fileIndex) != 3 {
		t.Fatalf("expected 3 visible files, got %d (%v) json=%s", len(b.fileIndex), b.fileIndex, result.JSON)
	}

	filtered, err := b.Call(context.Background(), capFilter, `{"query":"main"}`)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if filtered.JSON != `["main.go"]` {
		t.Fatalf("expected [\"main.go\"], got %s", filtered.JSON)
	}
}

func TestFilterExplicitCandidates(t *testing.T) {
	b, _, _ := newTestBridge(t, "")
	result, err := b.Call(context.Background(), capFilter, `{"query":"fb","candidates":["foo.go","foobar.go","baz.go"]}`)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if result.JSON != `["foobar.go"]` {
		t.Fatalf("expected only foobar.go to match subsequence fb, got %s", result.JSON)
	}
}

func TestFoldRegions(t *testing.T) {
	b, _, _ := newTestBridge(t, "func f() {\n\tx := 1\n}\n")
	result, err := b.Call(context.Background(), capFoldRegions, "{}")
	if err != nil {
		t.Fatalf("fold_regions: %v", err)
	}
	want := `[{"start":9,"end":20}]`
	if result.JSON != want {
		t.Fatalf("expected %s, got %s", want, result.JSON)
	}
}

func TestExpandAndShrinkSelection(t *testing.T) {
	text := "f(a, b)"
	b, _, _ := newTestBridge(t, text)
	b.engine.SetPrimaryCursor(3) // inside the parens, on "a, "

	expanded, err := b.Call(context.Background(), capExpandSelection, "{}")
	if err != nil {
		t.Fatalf("expand_selection: %v", err)
	}
	if b.engine.PrimarySelection().Start() != 1 || b.engine.PrimarySelection().End() != 7 {
		t.Fatalf("expected selection [1,7) around parens, got %s (%d,%d)", expanded.JSON, b.engine.PrimarySelection().Start(), b.engine.PrimarySelection().End())
	}

	if _, err := b.Call(context.Background(), capShrinkSelection, "{}"); err != nil {
		t.Fatalf("shrink_selection: %v", err)
	}
	if b.engine.PrimarySelection().Start() != b.engine.PrimarySelection().End() {
		t.Fatalf("expected shrink to collapse when no inner bracket pair exists")
	}
}

func TestGitCapabilitiesWithoutRepository(t *testing.T) {
	b, _, _ := newTestBridge(t, "")
	for _, capability := range []string{capGitCurrentBranch, capGitFileStatus, capGitBlame, capGitStage, capGitUnstage, capGitDiscard, capGitHunks, capGitStageHunk} {
		if _, err := b.Call(context.Background(), capability, `{"path":"f.go"}`); err != ErrNoRepository {
			t.Fatalf("%s: expected ErrNoRepository, got %v", capability, err)
		}
	}
}

func TestGitDetectRepositoryNotFound(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	defer os.Chdir(wd)
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	b, _, _ := newTestBridge(t, "")
	result, err := b.Call(context.Background(), capGitDetectRepo, "{}")
	if err != nil {
		t.Fatalf("git.detect_repository: %v", err)
	}
	if result.JSON != "false" {
		t.Fatalf("expected false outside a repository, got %s", result.JSON)
	}
	if b.repo != nil {
		t.Fatalf("expected repo to remain unbound")
	}
}

func TestGitDetectRepositoryFound(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	defer os.Chdir(wd)
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	b, _, _ := newTestBridge(t, "")
	result, err := b.Call(context.Background(), capGitDetectRepo, "{}")
	if err != nil {
		t.Fatalf("git.detect_repository: %v", err)
	}
	if result.JSON == "false" {
		t.Fatalf("expected a bound repository, got %s", result.JSON)
	}
	if b.repo == nil {
		t.Fatalf("expected repo to be bound")
	}
}

func TestHighlightSpansWithoutCache(t *testing.T) {
	b, _, _ := newTestBridge(t, "x")
	result, err := b.Call(context.Background(), capHighlightSpans, `{"language":"go"}`)
	if err != nil {
		t.Fatalf("highlight.spans: %v", err)
	}
	if result.JSON != "[]" {
		t.Fatalf("expected empty span list with no cache, got %s", result.JSON)
	}
}
