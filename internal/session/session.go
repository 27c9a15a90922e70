// Package session wires one open buffer's Engine, Highlight Cache, VCS
// Repository, capability Bridge, and plugin Manager into the single
// object a buffer-open code path constructs, breaking the constructor
// cycle between the Bridge (which needs the Manager as its ThemeSink) and
// the Manager (whose script runtime needs the Bridge as its Dispatcher).
package session

import (
	"github.com/ghostkellz/grim/internal/bridge"
	"github.com/ghostkellz/grim/internal/engine"
	"github.com/ghostkellz/grim/internal/highlight"
	"github.com/ghostkellz/grim/internal/native"
	"github.com/ghostkellz/grim/internal/pluginhost"
	"github.com/ghostkellz/grim/internal/script"
	"github.com/ghostkellz/grim/internal/vcs"
)

// Buffer bundles one open document's runtime: its text engine, the
// syntax-highlight cache drawn against it, the plugin manager loaded over
// it, and the capability bridge every plugin instance dispatches through.
type Buffer struct {
	Engine    *engine.Engine
	Highlight *highlight.Cache
	Repo      *vcs.Repository // nil outside a working tree
	Bridge    *bridge.Bridge
	Manager   *pluginhost.Manager
}

// Open constructs a Buffer over content, discovering and loading plugins
// from pluginRoots. themes is the editor's real theme registry (out of
// scope for this module); onMessage receives ctx.showMessage payloads.
// repoStart is the path Detect walks upward from to find a working tree;
// a NotFound result leaves Repo nil and every git.* capability answers
// "not a repository" rather than failing.
func Open(content string, pluginRoots []string, repoStart string, onMessage bridge.MessageSink, themes pluginhost.ThemeRegistrar) (*Buffer, error) {
	eng := engine.New(engine.WithContent(content))
	hl := highlight.NewCache()

	repo, err := vcs.Detect(repoStart)
	if err != nil {
		repo = nil
	}

	mgr := pluginhost.NewManager(pluginRoots, pluginhost.Runtimes{}, themes)
	br := bridge.New(eng, hl, repo, onMessage, mgr)

	scriptHost := pluginhost.NewScriptHost(br, br, script.DefaultSandboxConfig())
	mgr.SetRuntimes(pluginhost.Runtimes{
		Script: scriptHost,
		Native: native.NewLoader(),
	})

	buf := &Buffer{
		Engine:    eng,
		Highlight: hl,
		Repo:      repo,
		Bridge:    br,
		Manager:   mgr,
	}
	return buf, nil
}
