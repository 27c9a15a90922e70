// Package bridge implements the Capability Bridge: the stable,
// editor-facing interface spec.md §4.7 exposes to both classes of
// plugin. A Bridge is constructed once per open buffer from the
// session's *engine.Engine, *highlight.Cache, and (if the buffer lives
// inside a working tree) *vcs.Repository, and is handed out by reference
// to every plugin instance for that instance's lifetime — it is never
// owned by a plugin, only borrowed, so the natural Manager/Instance/
// Bridge reference cycle spec.md §9 warns about never forms.
//
// Two call surfaces front the same capability table:
//
//   - Dispatch implements script.Dispatcher, so the Script Host can
//     invoke a capability by its dotted callee name with the single
//     string argument the script grammar allows.
//   - Call is the flat, C-ABI-friendly surface native plugins drive:
//     a callee name plus a JSON argument object, returning a compact
//     JSON-like result tagged with a Lifetime per spec.md §4.7's
//     serialization contract.
//
// Every capability method, and both Dispatch and Call, assume they run
// on the editor's single cooperative thread (spec.md §5); nothing here
// is safe to call concurrently with itself or with a Document mutation.
package bridge
