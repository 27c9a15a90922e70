package bridge

import (
	"context"
	"strconv"

	"github.com/tidwall/gjson"
)

// highlightSpans exposes the buffer's current Highlight Cache result to
// plugins — not one of spec.md §4.7's named operations, but a natural
// extension of "syntax features" the fold/selection capabilities
// already lean on, and the only consumer of the Bridge's *highlight.Cache
// field.
func (b *Bridge) highlightSpans(ctx context.Context, arg string) (Result, error) {
	if b.highlight == nil {
		return jsonList(), nil
	}
	language := gjson.Get(arg, "language").String()
	snap := b.engine.Snapshot()
	spans, err := b.highlight.Highlight(ctx, snap, language)
	if err != nil {
		return Result{}, err
	}
	items := make([]string, len(spans))
	for i, s := range spans {
		items[i] = jsonObject(
			"start", strconv.FormatUint(uint64(s.Start), 10),
			"end", strconv.FormatUint(uint64(s.End), 10),
			"class", quoteJSON(s.Class.String()),
		).JSON
	}
	return jsonList(items...), nil
}
