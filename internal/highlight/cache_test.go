package highlight

import (
	"context"
	"reflect"
	"testing"

	"github.com/ghostkellz/grim/internal/engine/buffer"
)

func TestHighlightFallbackCoversWholeBuffer(t *testing.T) {
	c := NewCache()
	b := buffer.NewBufferFromString("foo + bar")
	spans, err := c.Highlight(context.Background(), b.Snapshot(), "unknown-language")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var covered uint32
	for i, s := range spans {
		if s.StartByte != covered {
			t.Fatalf("gap before span %d: want start %d, got %d", i, covered, s.StartByte)
		}
		covered = s.EndByte
	}
	if covered != uint32(b.Len()) {
		t.Fatalf("spans cover %d bytes, want %d", covered, b.Len())
	}
}

func TestHighlightDeterministic(t *testing.T) {
	c := NewCache()
	b := buffer.NewBufferFromString("foo + bar")
	snap := b.Snapshot()
	first, err := c.Highlight(context.Background(), snap, "unknown-language")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := c.Highlight(context.Background(), snap, "unknown-language")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical spans for repeated calls, got %+v vs %+v", first, second)
	}
}

func TestHighlightGoGrammar(t *testing.T) {
	c := NewCache()
	c.SetLanguage("go")
	b := buffer.NewBufferFromString("package main\n\nfunc main() {}\n")
	spans, err := c.Highlight(context.Background(), b.Snapshot(), "go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spans) == 0 {
		t.Fatal("expected at least one span")
	}
	found := false
	for _, s := range spans {
		if s.Class == ClassKeywordDeclaration {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a keyword.declaration span for 'func'")
	}
}

func TestNormalizeFillsGapsAndSorts(t *testing.T) {
	spans := normalize([]Span{
		{StartByte: 5, EndByte: 8, Class: ClassString},
		{StartByte: 0, EndByte: 2, Class: ClassKeyword},
	}, 10)

	want := []Span{
		{StartByte: 0, EndByte: 2, Class: ClassKeyword},
		{StartByte: 2, EndByte: 5, Class: ClassNone},
		{StartByte: 5, EndByte: 8, Class: ClassString},
		{StartByte: 8, EndByte: 10, Class: ClassNone},
	}
	if !reflect.DeepEqual(spans, want) {
		t.Fatalf("got %+v, want %+v", spans, want)
	}
}

func TestReuseAcrossEditShiftsTail(t *testing.T) {
	prior := []Span{
		{StartByte: 0, EndByte: 3, Class: ClassKeyword},
		{StartByte: 3, EndByte: 6, Class: ClassNone},
		{StartByte: 6, EndByte: 9, Class: ClassString},
	}
	got := ReuseAcrossEdit(prior, EditRegion{Start: 3, End: 6, InsertLen: 2})
	want := []Span{
		{StartByte: 0, EndByte: 3, Class: ClassKeyword},
		{StartByte: 5, EndByte: 8, Class: ClassString},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}
