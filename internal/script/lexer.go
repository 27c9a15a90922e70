package script

import "fmt"

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokLParen
	tokRParen
	tokLBrace
	tokRBrace
	tokComma
	tokSemicolon
	tokFn
)

type token struct {
	kind tokenKind
	text string
	pos  Position
}

// lexer turns source text into a flat token stream. Comments (//...) and
// whitespace are discarded; newlines are treated as statement separators
// identically to semicolons, so the parser never needs to see them as
// tokens.
type lexer struct {
	src    []byte
	pos    int
	line   int
	column int
}

func newLexer(src string) *lexer {
	return &lexer{src: []byte(src), line: 1, column: 1}
}

func (l *lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) advance() byte {
	b := l.src[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return b
}

func (l *lexer) here() Position {
	return Position{Line: l.line, Column: l.column}
}

// next returns the next token, treating a bare newline as an implicit
// statement terminator (reported as tokSemicolon) unless it directly
// follows another implicit terminator.
func (l *lexer) next() (token, error) {
	sawNewline := false
	for l.pos < len(l.src) {
		b := l.peekByte()
		switch {
		case b == '\n':
			sawNewline = true
			l.advance()
		case b == ' ' || b == '\t' || b == '\r':
			l.advance()
		case b == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/':
			for l.pos < len(l.src) && l.peekByte() != '\n' {
				l.advance()
			}
		default:
			goto scan
		}
	}
scan:
	pos := l.here()
	if sawNewline {
		return token{kind: tokSemicolon, text: "\n", pos: pos}, nil
	}
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: pos}, nil
	}

	b := l.peekByte()
	switch {
	case b == '(':
		l.advance()
		return token{kind: tokLParen, text: "(", pos: pos}, nil
	case b == ')':
		l.advance()
		return token{kind: tokRParen, text: ")", pos: pos}, nil
	case b == '{':
		l.advance()
		return token{kind: tokLBrace, text: "{", pos: pos}, nil
	case b == '}':
		l.advance()
		return token{kind: tokRBrace, text: "}", pos: pos}, nil
	case b == ',':
		l.advance()
		return token{kind: tokComma, text: ",", pos: pos}, nil
	case b == ';':
		l.advance()
		return token{kind: tokSemicolon, text: ";", pos: pos}, nil
	case b == '"':
		return l.scanString(pos)
	case isIdentStart(b):
		return l.scanIdent(pos)
	default:
		return token{}, &SyntaxError{Line: pos.Line, Column: pos.Column,
			Message: fmt.Sprintf("script: unexpected character %q at %d:%d", b, pos.Line, pos.Column)}
	}
}

func (l *lexer) scanString(pos Position) (token, error) {
	l.advance() // opening quote
	var out []byte
	for {
		if l.pos >= len(l.src) {
			return token{}, &SyntaxError{Line: pos.Line, Column: pos.Column,
				Message: "script: unterminated string literal"}
		}
		b := l.peekByte()
		if b == '"' {
			l.advance()
			break
		}
		if b == '\\' {
			l.advance()
			if l.pos >= len(l.src) {
				return token{}, &SyntaxError{Line: pos.Line, Column: pos.Column,
					Message: "script: unterminated escape sequence"}
			}
			esc := l.advance()
			switch esc {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case '"':
				out = append(out, '"')
			case '\\':
				out = append(out, '\\')
			default:
				return token{}, &SyntaxError{Line: pos.Line, Column: pos.Column,
					Message: fmt.Sprintf("script: unknown escape \\%c", esc)}
			}
			continue
		}
		out = append(out, l.advance())
	}
	return token{kind: tokString, text: string(out), pos: pos}, nil
}

func (l *lexer) scanIdent(pos Position) (token, error) {
	start := l.pos
	for l.pos < len(l.src) && isIdentPart(l.peekByte()) {
		l.advance()
	}
	text := string(l.src[start:l.pos])
	if text == "fn" {
		return token{kind: tokFn, text: text, pos: pos}, nil
	}
	return token{kind: tokIdent, text: text, pos: pos}, nil
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9') || b == '.'
}
