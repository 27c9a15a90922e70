package rope

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
)

var benchSizes = []int{1000, 10000, 100000}

// synthProse builds a string of the given byte size out of a small word
// list, wrapping to a new line past 60 columns so line-oriented
// benchmarks see a realistic mix of short and long lines.
func synthProse(size int) string {
	words := []string{"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog", "hello", "world"}

	var sb strings.Builder
	sb.Grow(size)
	col := 0

	for sb.Len() < size {
		word := words[rand.Intn(len(words))]
		if sb.Len()+len(word)+1 > size {
			break
		}
		if sb.Len() > 0 {
			if col > 60 {
				sb.WriteByte('\n')
				col = 0
			} else {
				sb.WriteByte(' ')
				col++
			}
		}
		sb.WriteString(word)
		col += len(word)
	}
	return sb.String()
}

// synthLines builds text with exactly n lines, each within +/-10 bytes
// of avgLen.
func synthLines(n, avgLen int) string {
	var sb strings.Builder
	sb.Grow(n * (avgLen + 1))

	for i := 0; i < n; i++ {
		length := avgLen + rand.Intn(21) - 10
		if length < 10 {
			length = 10
		}
		for j := 0; j < length; j++ {
			sb.WriteByte(byte('a' + rand.Intn(26)))
		}
		if i < n-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func BenchmarkFromString(b *testing.B) {
	for _, size := range append(benchSizes, 1000000) {
		text := synthProse(size)
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = FromString(text)
			}
		})
	}
}

func BenchmarkBuilderAssembly(b *testing.B) {
	for _, size := range append([]int{100}, benchSizes...) {
		text := synthProse(size)
		const chunkSize = 100
		var chunks []string
		for i := 0; i < len(text); i += chunkSize {
			end := i + chunkSize
			if end > len(text) {
				end = len(text)
			}
			chunks = append(chunks, text[i:end])
		}

		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				builder := NewBuilder()
				for _, c := range chunks {
					builder.WriteString(c)
				}
				_ = builder.Build()
			}
		})
	}
}

func BenchmarkInsertStart(b *testing.B) {
	for _, size := range benchSizes {
		r := FromString(synthProse(size))
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = r.Insert(0, "x")
			}
		})
	}
}

func BenchmarkInsertMiddle(b *testing.B) {
	for _, size := range benchSizes {
		r := FromString(synthProse(size))
		mid := ByteOffset(size / 2)
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = r.Insert(mid, "x")
			}
		})
	}
}

func BenchmarkInsertEnd(b *testing.B) {
	for _, size := range benchSizes {
		r := FromString(synthProse(size))
		end := ByteOffset(size)
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = r.Insert(end, "x")
			}
		})
	}
}

func BenchmarkInsertRandom(b *testing.B) {
	for _, size := range benchSizes {
		r := FromString(synthProse(size))
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = r.Insert(ByteOffset(rand.Intn(size)), "x")
			}
		})
	}
}

func BenchmarkDeleteMiddle(b *testing.B) {
	for _, size := range benchSizes {
		r := FromString(synthProse(size))
		start, end := ByteOffset(size/2-50), ByteOffset(size/2+50)
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = r.Delete(start, end)
			}
		})
	}
}

func BenchmarkConcat(b *testing.B) {
	for _, size := range benchSizes {
		r1 := FromString(synthProse(size / 2))
		r2 := FromString(synthProse(size / 2))
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = r1.Concat(r2)
			}
		})
	}
}

func BenchmarkSplit(b *testing.B) {
	for _, size := range benchSizes {
		r := FromString(synthProse(size))
		mid := ByteOffset(size / 2)
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = r.Split(mid)
			}
		})
	}
}

func BenchmarkByteAt(b *testing.B) {
	for _, size := range append(benchSizes, 1000000) {
		r := FromString(synthProse(size))
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = r.ByteAt(ByteOffset(rand.Intn(size)))
			}
		})
	}
}

func BenchmarkSlice(b *testing.B) {
	for _, size := range benchSizes {
		r := FromString(synthProse(size))
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				start := ByteOffset(rand.Intn(size - 100))
				_ = r.Slice(start, start+100)
			}
		})
	}
}

var benchLineCounts = []int{100, 1000, 10000}

func BenchmarkLineCount(b *testing.B) {
	for _, lines := range benchLineCounts {
		r := FromString(synthLines(lines, 80))
		b.Run(fmt.Sprintf("lines=%d", lines), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = r.LineCount()
			}
		})
	}
}

func BenchmarkLineText(b *testing.B) {
	for _, lines := range benchLineCounts {
		r := FromString(synthLines(lines, 80))
		b.Run(fmt.Sprintf("lines=%d", lines), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = r.LineText(uint32(rand.Intn(lines)))
			}
		})
	}
}

func BenchmarkLineStartOffset(b *testing.B) {
	for _, lines := range benchLineCounts {
		r := FromString(synthLines(lines, 80))
		b.Run(fmt.Sprintf("lines=%d", lines), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = r.LineStartOffset(uint32(rand.Intn(lines)))
			}
		})
	}
}

func BenchmarkOffsetToPoint(b *testing.B) {
	for _, lines := range benchLineCounts {
		text := synthLines(lines, 80)
		r := FromString(text)
		size := len(text)
		b.Run(fmt.Sprintf("lines=%d", lines), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = r.OffsetToPoint(ByteOffset(rand.Intn(size)))
			}
		})
	}
}

func BenchmarkPointToOffset(b *testing.B) {
	for _, lines := range benchLineCounts {
		r := FromString(synthLines(lines, 80))
		b.Run(fmt.Sprintf("lines=%d", lines), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				p := Point{Line: uint32(rand.Intn(lines)), Column: uint32(rand.Intn(80))}
				_ = r.PointToOffset(p)
			}
		})
	}
}

func BenchmarkCursorSeekOffset(b *testing.B) {
	for _, size := range benchSizes {
		r := FromString(synthProse(size))
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			cursor := NewCursor(r)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				cursor.SeekOffset(ByteOffset(rand.Intn(size)))
			}
		})
	}
}

func BenchmarkCursorSeekLine(b *testing.B) {
	for _, lines := range benchLineCounts {
		r := FromString(synthLines(lines, 80))
		b.Run(fmt.Sprintf("lines=%d", lines), func(b *testing.B) {
			cursor := NewCursor(r)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				cursor.SeekLine(uint32(rand.Intn(lines)))
			}
		})
	}
}

func BenchmarkCursorIterate(b *testing.B) {
	for _, size := range []int{1000, 10000} {
		r := FromString(synthProse(size))
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				cursor := NewCursor(r)
				for cursor.Next() {
				}
			}
		})
	}
}

func BenchmarkChunkIterator(b *testing.B) {
	for _, size := range benchSizes {
		r := FromString(synthProse(size))
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				for it := r.Chunks(); it.Next(); {
					_ = it.Chunk()
				}
			}
		})
	}
}

func BenchmarkLineIterator(b *testing.B) {
	for _, lines := range benchLineCounts {
		r := FromString(synthLines(lines, 80))
		b.Run(fmt.Sprintf("lines=%d", lines), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				for it := r.Lines(); it.Next(); {
					_ = it.Text()
				}
			}
		})
	}
}

// BenchmarkStringVsRopeInsert compares a plain string's O(n) splice
// against a mid-document Rope.Insert, to justify the rope's added
// structural complexity.
func BenchmarkStringVsRopeInsert(b *testing.B) {
	for _, size := range []int{1000, 10000} {
		text := synthProse(size)

		b.Run(fmt.Sprintf("string_size=%d", size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				mid := size / 2
				_ = text[:mid] + "x" + text[mid:]
			}
		})

		r := FromString(text)
		b.Run(fmt.Sprintf("rope_size=%d", size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = r.Insert(ByteOffset(size/2), "x")
			}
		})
	}
}
