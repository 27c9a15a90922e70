package bridge

import (
	"context"
	"strconv"

	"github.com/ghostkellz/grim/internal/engine/buffer"
	"github.com/ghostkellz/grim/internal/engine/cursor"
)

// foldable pairs the fold-region scanner matches. Fold regions are
// computed from raw bracket nesting rather than the highlighter's
// syntax tree: the spec leaves the mechanism open ("Implementers may
// choose a tree-based parser... or a handwritten lexer"), and a single
// bracket scan works uniformly across every language the highlighter
// might not yet have a grammar for.
var foldable = map[byte]byte{'{': '}', '[': ']', '(': ')'}

// foldRegions scans the buffer for bracket-delimited regions spanning
// more than one line and returns them as byte ranges in the order their
// closing brackets appear, so a nested region precedes its enclosing one.
func (b *Bridge) foldRegions(ctx context.Context) (Result, error) {
	snap := b.engine.Snapshot()
	text := snap.Text()

	type open struct {
		ch     byte
		offset int
		line   uint32
	}
	var stack []open
	var regions []buffer.Range

	for i := 0; i < len(text); i++ {
		c := text[i]
		if _, isOpen := foldable[c]; isOpen {
			stack = append(stack, open{ch: c, offset: i, line: snap.OffsetToPoint(buffer.ByteOffset(i)).Line})
			continue
		}
		for openCh, closeCh := range foldable {
			if c != closeCh || len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			if top.ch != openCh {
				continue
			}
			stack = stack[:len(stack)-1]
			endLine := snap.OffsetToPoint(buffer.ByteOffset(i)).Line
			if endLine > top.line {
				regions = append(regions, buffer.Range{Start: buffer.ByteOffset(top.offset), End: buffer.ByteOffset(i + 1)})
			}
		}
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}
	}

	items := make([]string, len(regions))
	for i, r := range regions {
		items[i] = jsonObject(
			"start", strconv.FormatInt(int64(r.Start), 10),
			"end", strconv.FormatInt(int64(r.End), 10),
		).JSON
	}
	return jsonList(items...), nil
}

// expandSelection grows the primary selection to the next enclosing
// bracket pair, or to the full line if no enclosing pair is found. It
// is the inverse of shrinkSelection: repeated calls climb one syntactic
// level at a time.
func (b *Bridge) expandSelection() (Result, error) {
	snap := b.engine.Snapshot()
	sel := b.engine.PrimarySelection()
	text := snap.Text()

	start, end := enclosingBracketRange(text, int(sel.Start()), int(sel.End()))
	if start < 0 {
		line := snap.OffsetToPoint(sel.Start()).Line
		start = int(snap.LineStartOffset(line))
		end = int(snap.LineEndOffset(line))
	}
	b.engine.SetPrimarySelection(cursor.NewSelection(cursor.ByteOffset(start), cursor.ByteOffset(end)))
	return jsonObject(
		"start", strconv.Itoa(start),
		"end", strconv.Itoa(end),
	), nil
}

// shrinkSelection narrows the primary selection to the innermost
// bracket pair fully inside it, or collapses to a cursor if none
// exists.
func (b *Bridge) shrinkSelection() (Result, error) {
	snap := b.engine.Snapshot()
	sel := b.engine.PrimarySelection()
	text := snap.Text()

	start, end := innermostBracketRange(text, int(sel.Start()), int(sel.End()))
	if start < 0 {
		start, end = int(sel.Start()), int(sel.Start())
	}
	b.engine.SetPrimarySelection(cursor.NewSelection(cursor.ByteOffset(start), cursor.ByteOffset(end)))
	return jsonObject(
		"start", strconv.Itoa(start),
		"end", strconv.Itoa(end),
	), nil
}

func enclosingBracketRange(text string, start, end int) (int, int) {
	depth := map[byte]int{}
	for i := start - 1; i >= 0; i-- {
		c := text[i]
		if isCloseBracket(c) {
			depth[matchOpen(c)]--
		}
		if isOpenBracket(c) {
			if depth[c] < 0 {
				depth[c]++
				continue
			}
			close := findMatchingClose(text, i)
			if close >= 0 && close+1 >= end {
				return i, close + 1
			}
		}
	}
	return -1, -1
}

func innermostBracketRange(text string, start, end int) (int, int) {
	bestStart, bestEnd := -1, -1
	for i := start; i < end && i < len(text); i++ {
		if !isOpenBracket(text[i]) {
			continue
		}
		close := findMatchingClose(text, i)
		if close < 0 || close+1 > end {
			continue
		}
		if i == start && close+1 == end {
			// Same pair as the current selection; not a narrower level.
			continue
		}
		if bestStart < 0 || (close+1-i) < (bestEnd-bestStart) {
			bestStart, bestEnd = i, close+1
		}
	}
	return bestStart, bestEnd
}

func findMatchingClose(text string, openPos int) int {
	open := text[openPos]
	close := foldable[open]
	depth := 0
	for i := openPos; i < len(text); i++ {
		switch text[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func isOpenBracket(c byte) bool {
	_, ok := foldable[c]
	return ok
}

func isCloseBracket(c byte) bool {
	for _, close := range foldable {
		if close == c {
			return true
		}
	}
	return false
}

func matchOpen(closeCh byte) byte {
	for open, close := range foldable {
		if close == closeCh {
			return open
		}
	}
	return 0
}
