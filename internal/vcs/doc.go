// Package vcs implements just enough git plumbing to back the Capability
// Bridge's git operations (detect_repository, current_branch,
// file_status, blame, stage, unstage, discard, stage_hunk, hunks)
// directly against a repository's .git directory — HEAD, refs, the
// index, and loose/packed objects — with no network transport and no
// dependency on a full git implementation, since LSP/VCS network access
// is out of scope for this editor core.
//
// Only the plumbing this bridge needs is implemented: reading loose
// objects (zlib-inflated, sha1-addressed), resolving HEAD through symref
// chains and packed-refs, reading and rewriting the index in the git
// index v2 format, and a line-oriented diff for hunks and blame. Packed
// objects are read when present but never rewritten; nothing here
// creates commits or packs.
package vcs
