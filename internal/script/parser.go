package script

import "fmt"

// CallRegistry reports whether a dotted callee name is a valid bridge
// operation. Compile consults it so an unresolvable callee is rejected
// before any action runs.
type CallRegistry interface {
	Resolve(callee string) bool
}

// parser builds a Program from a token stream, validating every callee
// against a CallRegistry as it goes.
type parser struct {
	lex      *lexer
	tok      token
	registry CallRegistry
}

// Compile lexes and parses src, resolving every call statement's callee
// against registry. It returns ErrSetupMissing if no setup() declaration
// is present, ErrInvalidSyntax for grammar violations, and
// ErrUnsupportedStatement for any callee the registry does not recognize.
func Compile(src string, registry CallRegistry) (*Program, error) {
	p := &parser{lex: newLexer(src), registry: registry}
	if err := p.advance(); err != nil {
		return nil, err
	}

	prog := &Program{Functions: make(map[string]*Function)}
	for p.tok.kind == tokSemicolon {
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	for p.tok.kind != tokEOF {
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		if _, exists := prog.Functions[fn.Name]; exists {
			return nil, &SyntaxError{Line: fn.Pos.Line, Column: fn.Pos.Column,
				Message: fmt.Sprintf("script: duplicate declaration of %s", fn.Name)}
		}
		prog.Functions[fn.Name] = fn
		prog.Order = append(prog.Order, fn.Name)
		for p.tok.kind == tokSemicolon {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}

	if _, ok := prog.Functions[EntryPoint]; !ok {
		return nil, ErrSetupMissing
	}
	return prog, nil
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	if p.tok.kind != kind {
		return token{}, &SyntaxError{Line: p.tok.pos.Line, Column: p.tok.pos.Column,
			Message: fmt.Sprintf("script: expected %s at %d:%d, got %q", what, p.tok.pos.Line, p.tok.pos.Column, p.tok.text)}
	}
	tok := p.tok
	return tok, p.advance()
}

func (p *parser) parseFunction() (*Function, error) {
	pos := p.tok.pos
	if _, err := p.expect(tokFn, "'fn'"); err != nil {
		return nil, err
	}
	name, err := p.expect(tokIdent, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokLParen, "'('"); err != nil {
		return nil, err
	}
	var param string
	if p.tok.kind == tokIdent {
		param = p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokLBrace, "'{'"); err != nil {
		return nil, err
	}

	fn := &Function{Name: name.text, Param: param, Pos: pos}
	for {
		for p.tok.kind == tokSemicolon {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		if p.tok.kind == tokRBrace {
			break
		}
		if p.tok.kind == tokEOF {
			return nil, &SyntaxError{Line: pos.Line, Column: pos.Column,
				Message: fmt.Sprintf("script: unterminated body for %s", name.text)}
		}
		action, err := p.parseCallStatement()
		if err != nil {
			return nil, err
		}
		fn.Body = append(fn.Body, action)
	}
	if _, err := p.expect(tokRBrace, "'}'"); err != nil {
		return nil, err
	}
	return fn, nil
}

func (p *parser) parseCallStatement() (Action, error) {
	calleeTok, err := p.expect(tokIdent, "call statement")
	if err != nil {
		return Action{}, err
	}
	if p.registry != nil && !p.registry.Resolve(calleeTok.text) {
		return Action{}, fmt.Errorf("%w: %q at %d:%d", ErrUnsupportedStatement,
			calleeTok.text, calleeTok.pos.Line, calleeTok.pos.Column)
	}
	if _, err := p.expect(tokLParen, "'('"); err != nil {
		return Action{}, err
	}

	var arg string
	if p.tok.kind == tokString {
		arg = p.tok.text
		if err := p.advance(); err != nil {
			return Action{}, err
		}
	}
	if _, err := p.expect(tokRParen, "')'"); err != nil {
		return Action{}, err
	}
	return Action{Callee: calleeTok.text, Arg: arg, Pos: calleeTok.pos}, nil
}
