package highlight

// scanFallback tokenizes text with no language knowledge at all: runs of
// identifier characters become ClassIdentifier, everything else becomes
// ClassPunctuation. This is the scanner Highlight falls back to when no
// grammar is registered for a language tag (ErrUnsupportedLanguage), per
// spec.md §4.3's failure mode.
func scanFallback(text []byte) []Span {
	var spans []Span
	i := 0
	for i < len(text) {
		start := i
		if isIdentByte(text[i]) {
			for i < len(text) && isIdentByte(text[i]) {
				i++
			}
			spans = append(spans, Span{StartByte: uint32(start), EndByte: uint32(i), Class: ClassIdentifier})
			continue
		}
		for i < len(text) && !isIdentByte(text[i]) {
			i++
		}
		spans = append(spans, Span{StartByte: uint32(start), EndByte: uint32(i), Class: ClassPunctuation})
	}
	return spans
}

func isIdentByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
