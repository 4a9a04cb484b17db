// Package parser implements a recursive-descent parser that turns a
// token.Token stream into an ast.Program.
//
// The shape follows github.com/skx/math-compiler's compiler.go: a
// three-stage pipeline (tokenize, build an internal form, walk it) —
// generalized here so stage two produces a full statement/expression
// AST instead of flat stack instructions, and stage three is the
// interpreter (a separate package) rather than an assembly emitter.
package parser

import (
	"fmt"

	"github.com/jcorbin/retrobasic/ast"
	"github.com/jcorbin/retrobasic/lexer"
	"github.com/jcorbin/retrobasic/token"
)

// SyntaxError reports a parse failure at a source position, per
// spec.md §7 ("Syntax error — tokenizer or parser failure; surfaced at
// parse time with source position").
type SyntaxError struct {
	Pos     token.Position
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %v: %s", e.Pos, e.Message)
}

// Parser holds parsing state over a fixed token slice.
type Parser struct {
	toks []token.Token
	pos  int
}

// Parse tokenizes and parses source into a Program.
func Parse(source string) (*ast.Program, error) {
	toks, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	p := &Parser{toks: toks}
	return p.parseProgram()
}

// ParseLine parses a single immediate-mode line (with or without a
// leading line number) into its statement group, for interactive entry
// of one line at a time.
func ParseLine(source string) (line int, stmts []ast.Stmt, err error) {
	toks, err := lexer.Tokenize(source)
	if err != nil {
		return 0, nil, err
	}
	p := &Parser{toks: toks}
	p.skipNewlines()
	line, stmts, err = p.parseLineGroup()
	return line, stmts, err
}

// ---- token cursor ----

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	i := p.pos + n
	if i < 0 || i >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[i]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) atEOF() bool { return p.cur().Kind == token.EOF }

func (p *Parser) errf(format string, args ...interface{}) error {
	return &SyntaxError{Pos: p.cur().Pos, Message: fmt.Sprintf(format, args...)}
}

func (p *Parser) expectKeyword(kw string) error {
	if p.cur().Kind == token.Keyword && p.cur().Text == kw {
		p.advance()
		return nil
	}
	return p.errf("expected %s, got %v", kw, p.cur())
}

func (p *Parser) expectPunct(text string) error {
	if p.cur().Kind == token.Punct && p.cur().Text == text {
		p.advance()
		return nil
	}
	return p.errf("expected %q, got %v", text, p.cur())
}

func (p *Parser) isKeyword(kw string) bool {
	return p.cur().Kind == token.Keyword && p.cur().Text == kw
}

func (p *Parser) isPunct(text string) bool {
	return p.cur().Kind == token.Punct && p.cur().Text == text
}

func (p *Parser) skipNewlines() {
	for p.cur().Kind == token.Newline {
		p.advance()
	}
}

func (p *Parser) endOfLine() bool {
	k := p.cur().Kind
	return k == token.Newline || k == token.EOF
}

// ---- program / line grouping ----

func (p *Parser) parseProgram() (*ast.Program, error) {
	prog := ast.NewProgram()
	var stmts []ast.Stmt
	for {
		p.skipNewlines()
		if p.atEOF() {
			break
		}
		_, group, err := p.parseLineGroup()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, group...)
		if !p.endOfLine() {
			return nil, p.errf("unexpected token %v", p.cur())
		}
	}
	prog.Load(stmts)
	return prog, nil
}

// parseLineGroup parses one physical line: an optional leading line
// number, then one or more statements separated by ':'. Only the first
// statement in the group carries the line number.
func (p *Parser) parseLineGroup() (line int, stmts []ast.Stmt, err error) {
	if p.cur().Kind == token.Number {
		f := p.cur().Num
		if f != float64(int(f)) || f < 0 {
			return 0, nil, p.errf("invalid line number %v", p.cur().Text)
		}
		line = int(f)
		p.advance()
	}

	first := true
	for {
		pos := p.cur().Pos
		s, err := p.parseStmt()
		if err != nil {
			return 0, nil, err
		}
		if first && line != 0 {
			setLine(s, line, pos)
		}
		first = false
		stmts = append(stmts, s)

		if p.isPunct(":") {
			p.advance()
			continue
		}
		break
	}
	return line, stmts, nil
}

// setLine back-patches the parsed line number onto a freshly parsed
// statement, since individual statement parsers build their LineInfo
// without knowing the enclosing line group's number.
func setLine(s ast.Stmt, line int, pos token.Position) {
	switch n := s.(type) {
	case *ast.Let:
		n.Line = line
	case *ast.ArraySet:
		n.Line = line
	case *ast.Print:
		n.Line = line
	case *ast.Input:
		n.Line = line
	case *ast.If:
		n.Line = line
	case *ast.For:
		n.Line = line
	case *ast.Next:
		n.Line = line
	case *ast.While:
		n.Line = line
	case *ast.Wend:
		n.Line = line
	case *ast.Do:
		n.Line = line
	case *ast.LoopStmt:
		n.Line = line
	case *ast.Goto:
		n.Line = line
	case *ast.Gosub:
		n.Line = line
	case *ast.Return:
		n.Line = line
	case *ast.On:
		n.Line = line
	case *ast.Dim:
		n.Line = line
	case *ast.Data:
		n.Line = line
	case *ast.Read:
		n.Line = line
	case *ast.Restore:
		n.Line = line
	case *ast.DefFn:
		n.Line = line
	case *ast.End:
		n.Line = line
	case *ast.Stop:
		n.Line = line
	case *ast.Rem:
		n.Line = line
	case *ast.Meta:
		n.Line = line
	case *ast.Peripheral:
		n.Line = line
	}
}

func parseIntToken(t token.Token) (int, error) {
	if t.Kind != token.Number {
		return 0, fmt.Errorf("expected a number, got %v", t)
	}
	return int(t.Num), nil
}
