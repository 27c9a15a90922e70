package highlight

import (
	"context"
	"sync"
	"time"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/ghostkellz/grim/internal/engine/buffer"
	"github.com/ghostkellz/grim/internal/metrics"
)

// EditRegion describes the byte range an edit touched, for Invalidate and
// for the incremental reuse rule: [Start, End) in the prior version became
// insertLen bytes in the new version.
type EditRegion struct {
	Start     uint32
	End       uint32
	InsertLen uint32
}

// result is one cached (version, language) entry.
type result struct {
	version  buffer.Version
	language string
	spans    []Span
	tree     *sitter.Tree // nil for the fallback scanner
	length   uint32
}

// Cache maps a Document's version to an ordered, non-overlapping list of
// Highlight Spans for the currently configured language. It implements
// spec.md §4.3's determinism: repeated calls for the same (snapshot,
// language) return identical spans. Spans are not carried across an
// edit by the Cache itself; ReuseAcrossEdit does that as a standalone
// helper.
//
// A Cache is bound to a single Document's highlight state; the editor
// session owns one per open buffer.
type Cache struct {
	mu sync.Mutex

	language string
	grammar  Grammar
	hasGrammar bool

	last *result
}

// NewCache creates an empty highlight cache with no language configured;
// Highlight falls back to the identifier/punctuation scanner until
// SetLanguage names a registered grammar.
func NewCache() *Cache {
	return &Cache{}
}

// SetLanguage configures the active grammar. An unrecognized tag is not
// an error, here or in Highlight: the cache uses the fallback scanner
// for it, matching spec.md's "falls back... " language rather than
// failing configuration outright.
func (c *Cache) SetLanguage(tag string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.language = tag
	g, ok := grammars[tag]
	c.grammar = g
	c.hasGrammar = ok
	c.last = nil
}

// Invalidate discards any cached result touching [region.Start, region.End)
// or after it, forcing the next Highlight call to recompute. Called by the
// owning session after a Document edit; the session itself computes the
// EditRegion from the Edit Record and the edit's insert length.
func (c *Cache) Invalidate(region EditRegion) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = nil
}

// Highlight returns the sorted, non-overlapping, gap-filled span list for
// snap's content under language, recomputing from scratch if no prior
// result for this exact (version, language) pair exists, or reusing it
// verbatim if it does (determinism invariant: repeated calls for the same
// pair return identical spans without doing any work the second time).
func (c *Cache) Highlight(ctx context.Context, snap *buffer.Snapshot, language string) ([]Span, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if language != c.language {
		c.language = language
		g, ok := grammars[language]
		c.grammar = g
		c.hasGrammar = ok
		c.last = nil
	}

	if c.last != nil && c.last.version == snap.Version() && c.last.language == language {
		metrics.HighlightCacheHits.Inc()
		return c.last.spans, nil
	}
	metrics.HighlightCacheMisses.Inc()

	start := time.Now()
	spans, tree, err := c.compute(ctx, snap)
	metrics.HighlightReparseSeconds.Observe(time.Since(start).Seconds())

	length := uint32(snap.Len())
	if err != nil {
		if c.last != nil {
			// ParserInternal: return the last known good spans and mark
			// dirty so the next call retries a full recompute.
			stale := c.last.spans
			c.last = nil
			return stale, ErrParserInternal
		}
		return normalize(nil, length), err
	}

	c.last = &result{version: snap.Version(), language: language, spans: spans, tree: tree, length: length}
	return spans, nil
}

// compute runs the configured grammar (or the fallback scanner) over
// snap's full text. It always parses from scratch: no edit is ever
// applied to a cached tree, so a prior tree cannot be handed back to
// tree-sitter without yielding spans for the old content.
func (c *Cache) compute(ctx context.Context, snap *buffer.Snapshot) ([]Span, *sitter.Tree, error) {
	text := []byte(snap.Text())
	length := uint32(len(text))

	if !c.hasGrammar {
		return normalize(scanFallback(text), length), nil, nil
	}

	tree, spans, err := treeSitterParse(ctx, c.grammar, text, nil)
	if err != nil {
		return nil, nil, err
	}
	return normalize(spans, length), tree, nil
}

// ReuseAcrossEdit implements the incremental rule of spec.md §4.3 for
// callers that want to seed a new cache result without a reparse: spans
// entirely before region.Start are kept, spans entirely at or after
// region.End are shifted by (region.InsertLen - (region.End -
// region.Start)), and the slack window in between is left for the next
// Highlight call to recompute. It returns nil if no prior result exists.
func ReuseAcrossEdit(prior []Span, region EditRegion) []Span {
	if prior == nil {
		return nil
	}
	delta := int(region.InsertLen) - int(region.End-region.Start)
	kept := before(prior, region.Start)
	tail := shift(after(prior, region.End), delta)
	return append(kept, tail...)
}
