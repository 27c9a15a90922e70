package rope

import (
	"io"
	"strings"
)

// Builder accumulates text incrementally and produces a Rope in one
// shot, which is considerably cheaper than calling Rope.Insert
// repeatedly: writes land in a plain strings.Builder and only get
// carved into Chunks once enough has accumulated (or Build is called).
type Builder struct {
	pending  strings.Builder
	chunks   []Chunk
	totalLen int
}

// NewBuilder returns a ready-to-use Builder.
func NewBuilder() *Builder {
	return &Builder{chunks: make([]Chunk, 0, 64)}
}

// Len reports the total bytes written so far.
func (b *Builder) Len() int {
	return b.totalLen
}

// WriteString appends s.
func (b *Builder) WriteString(s string) {
	if len(s) == 0 {
		return
	}
	b.totalLen += len(s)
	b.pending.WriteString(s)

	if b.pending.Len() >= MaxChunkSize*2 {
		b.drain()
	}
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (int, error) {
	b.WriteString(string(p))
	return len(p), nil
}

// WriteByte appends a single byte.
func (b *Builder) WriteByte(c byte) error {
	b.totalLen++
	return b.pending.WriteByte(c)
}

// WriteRune appends a single rune, UTF-8 encoded.
func (b *Builder) WriteRune(r rune) (int, error) {
	n, err := b.pending.WriteRune(r)
	b.totalLen += n
	return n, err
}

// ReadFrom drains r into the builder, implementing io.ReaderFrom.
func (b *Builder) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, 64*1024)
	var total int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			b.WriteString(string(buf[:n]))
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// drain carves whatever is sitting in pending into Chunks.
func (b *Builder) drain() {
	if b.pending.Len() == 0 {
		return
	}
	s := b.pending.String()
	b.pending.Reset()
	b.chunks = append(b.chunks, splitIntoChunks(s)...)
}

// Reset discards everything written so far, readying the builder for
// reuse.
func (b *Builder) Reset() {
	b.chunks = b.chunks[:0]
	b.pending.Reset()
	b.totalLen = 0
}

// Build assembles a Rope from everything written, then resets the
// builder so it can be used again.
func (b *Builder) Build() Rope {
	b.drain()
	if len(b.chunks) == 0 {
		b.Reset()
		return New()
	}

	chunks := b.chunks
	b.Reset()
	return buildFromChunks(chunks)
}

// String returns the accumulated text. Intended for debugging; use
// Build to produce a Rope.
func (b *Builder) String() string {
	var sb strings.Builder
	sb.Grow(b.totalLen)
	for _, chunk := range b.chunks {
		sb.WriteString(chunk.String())
	}
	sb.WriteString(b.pending.String())
	return sb.String()
}

// FromLines joins lines with '\n', omitting a trailing newline after
// the last one, and returns the resulting Rope.
func FromLines(lines []string) Rope {
	if len(lines) == 0 {
		return New()
	}

	var b Builder
	for i, line := range lines {
		b.WriteString(line)
		if i < len(lines)-1 {
			b.WriteByte('\n')
		}
	}
	return b.Build()
}

// FromChunks assembles a Rope directly from pre-cut chunks, skipping
// the splitIntoChunks pass FromString would otherwise perform.
func FromChunks(chunks []Chunk) Rope {
	if len(chunks) == 0 {
		return New()
	}
	return buildFromChunks(chunks)
}

// Join concatenates ropes with sep between each pair.
func Join(ropes []Rope, sep string) Rope {
	if len(ropes) == 0 {
		return New()
	}
	if len(ropes) == 1 {
		return ropes[0]
	}

	sepRope := FromString(sep)
	result := ropes[0]
	for _, r := range ropes[1:] {
		if sep != "" {
			result = result.Concat(sepRope)
		}
		result = result.Concat(r)
	}
	return result
}

// Repeat returns a Rope holding s repeated n times. Small results are
// built via strings.Repeat and a single FromString; large ones go
// through a Builder to avoid materializing the whole repetition as one
// string first.
func Repeat(s string, n int) Rope {
	if n <= 0 || len(s) == 0 {
		return New()
	}

	if len(s)*n <= MaxChunkSize*4 {
		return FromString(strings.Repeat(s, n))
	}

	var b Builder
	for i := 0; i < n; i++ {
		b.WriteString(s)
	}
	return b.Build()
}
