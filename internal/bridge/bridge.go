package bridge

import (
	"context"
	"sync"

	"github.com/ghostkellz/grim/internal/engine"
	"github.com/ghostkellz/grim/internal/highlight"
	"github.com/ghostkellz/grim/internal/vcs"
)

// MessageSink receives ctx.showMessage payloads. The editor UI
// (out of scope for this module) supplies the real implementation; tests
// and the end-to-end scenario in spec.md §8 supply a recording stub.
type MessageSink func(message string)

// ThemeSink receives register_theme/unregister_theme calls, forwarded
// from Manager.RegisterTheme's caller-supplied callback pair (spec.md
// §4.6). The bridge itself holds no theme state — it only validates and
// routes.
type ThemeSink interface {
	RegisterTheme(pluginID, name, colorsJSON string) error
	UnregisterTheme(pluginID, name string) error
}

// Bridge is the capability surface shared by reference with every
// plugin instance open against one buffer. It is a borrowed view over
// session-owned state (spec.md §9): it never outlives the Engine it
// wraps and holds no plugin back-references, only the opaque identity a
// caller supplies per call.
type Bridge struct {
	mu sync.Mutex

	engine    *engine.Engine
	highlight *highlight.Cache
	repo      *vcs.Repository // nil if the buffer is not inside a working tree

	onMessage MessageSink
	themes    ThemeSink

	bookmarks map[string]engine.ByteOffset
	fileIndex []string // last FindFiles result, consulted by Filter
}

// New creates a Bridge over eng for one buffer. repo may be nil.
func New(eng *engine.Engine, hl *highlight.Cache, repo *vcs.Repository, onMessage MessageSink, themes ThemeSink) *Bridge {
	return &Bridge{
		engine:    eng,
		highlight: hl,
		repo:      repo,
		onMessage: onMessage,
		themes:    themes,
		bookmarks: make(map[string]engine.ByteOffset),
	}
}

// callee names recognized by both Dispatch (script) and Call (native).
const (
	capShowMessage       = "ctx.showMessage"
	capRegisterTheme     = "register_theme"
	capUnregisterTheme   = "unregister_theme"
	capFindFiles         = "find_files"
	capFilter            = "filter"
	capGitDetectRepo     = "git.detect_repository"
	capGitCurrentBranch  = "git.current_branch"
	capGitFileStatus     = "git.file_status"
	capGitBlame          = "git.blame"
	capGitStage          = "git.stage"
	capGitUnstage        = "git.unstage"
	capGitDiscard        = "git.discard"
	capGitStageHunk      = "git.stage_hunk"
	capGitHunks          = "git.hunks"
	capBookmarkPin       = "bookmark.pin"
	capBookmarkJump      = "bookmark.jump"
	capBookmarkUnpin     = "bookmark.unpin"
	capFoldRegions       = "fold_regions"
	capExpandSelection   = "expand_selection"
	capShrinkSelection   = "shrink_selection"
	capHighlightSpans    = "highlight.spans"
)

// capabilities lists every callee this Bridge resolves, for Resolve
// (the script.CallRegistry contract) and for enumerating the table a
// plugin manifest's permissions are checked against.
var capabilities = map[string]bool{
	capShowMessage:      true,
	capRegisterTheme:    true,
	capUnregisterTheme:  true,
	capFindFiles:        true,
	capFilter:           true,
	capGitDetectRepo:    true,
	capGitCurrentBranch: true,
	capGitFileStatus:    true,
	capGitBlame:         true,
	capGitStage:         true,
	capGitUnstage:       true,
	capGitDiscard:       true,
	capGitStageHunk:     true,
	capGitHunks:         true,
	capBookmarkPin:      true,
	capBookmarkJump:     true,
	capBookmarkUnpin:    true,
	capFoldRegions:      true,
	capExpandSelection:  true,
	capShrinkSelection:  true,
	capHighlightSpans:   true,
}

// Resolve implements script.CallRegistry: it reports whether callee is a
// recognized capability, so Compile rejects an unknown call before any
// script ever runs.
func (b *Bridge) Resolve(callee string) bool {
	return capabilities[callee]
}

// Dispatch implements script.Dispatcher: it performs the side effect
// named by callee using arg, the single string literal the script
// grammar allows. Richer capabilities accept a JSON object string here
// (e.g. `{"path":"a.go"}`), parsed with gjson.
func (b *Bridge) Dispatch(ctx context.Context, callee, arg string) error {
	_, err := b.invoke(ctx, callee, arg)
	return err
}

// Call is the native-plugin entry point: a callee name plus a JSON
// argument object, returning a compact JSON-like Result. It is
// functionally Dispatch's superset — the same capability table, but
// carrying a return value across the C ABI rather than just an error.
func (b *Bridge) Call(ctx context.Context, callee, argJSON string) (Result, error) {
	return b.invoke(ctx, callee, argJSON)
}

func (b *Bridge) invoke(ctx context.Context, callee, arg string) (Result, error) {
	if !capabilities[callee] {
		return Result{}, ErrUnknownCapability
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch callee {
	case capShowMessage:
		return b.showMessage(arg)
	case capRegisterTheme:
		return b.registerTheme(arg)
	case capUnregisterTheme:
		return b.unregisterTheme(arg)
	case capFindFiles:
		return b.findFiles(arg)
	case capFilter:
		return b.filter(arg)
	case capGitDetectRepo:
		return b.gitDetectRepository()
	case capGitCurrentBranch:
		return b.gitCurrentBranch()
	case capGitFileStatus:
		return b.gitFileStatus(arg)
	case capGitBlame:
		return b.gitBlame(arg)
	case capGitStage:
		return b.gitStage(arg)
	case capGitUnstage:
		return b.gitUnstage(arg)
	case capGitDiscard:
		return b.gitDiscard(arg)
	case capGitStageHunk:
		return b.gitStageHunk(arg)
	case capGitHunks:
		return b.gitHunks(arg)
	case capBookmarkPin:
		return b.bookmarkPin(arg)
	case capBookmarkJump:
		return b.bookmarkJump(arg)
	case capBookmarkUnpin:
		return b.bookmarkUnpin(arg)
	case capFoldRegions:
		return b.foldRegions(ctx)
	case capExpandSelection:
		return b.expandSelection()
	case capShrinkSelection:
		return b.shrinkSelection()
	case capHighlightSpans:
		return b.highlightSpans(ctx, arg)
	default:
		return Result{}, ErrUnknownCapability
	}
}

func (b *Bridge) showMessage(arg string) (Result, error) {
	if b.onMessage != nil {
		b.onMessage(arg)
	}
	return staticResult(`true`), nil
}
