package parser

import (
	"github.com/jcorbin/retrobasic/ast"
	"github.com/jcorbin/retrobasic/lexer"
	"github.com/jcorbin/retrobasic/token"
)

// Operator precedence table per spec.md §4.2, low to high. Level 7
// (unary) and level 8 (primary) are handled directly by parseUnary/
// parsePrimary rather than this table.
var precedence = []struct {
	ops []string
}{
	{[]string{"OR"}},                             // 1
	{[]string{"AND"}},                            // 2
	{[]string{"=", "<>", "<", "<=", ">", ">="}},   // 3
	{[]string{"+", "-"}},                         // 4
	{[]string{"*", "/", "MOD"}},                  // 5
}

// ParseExpr parses a single expression from source, for host-supplied
// breakpoint/watch condition text (spec.md §6).
func ParseExpr(source string) (ast.Expr, error) {
	toks, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	p := &Parser{toks: toks}
	e, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (p *Parser) parseExpr(level int) (ast.Expr, error) {
	if level == len(precedence) {
		return p.parsePow()
	}
	x, err := p.parseExpr(level + 1)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.matchOp(precedence[level].ops)
		if !ok {
			return x, nil
		}
		pos := p.peekAt(-1).Pos
		y, err := p.parseExpr(level + 1)
		if err != nil {
			return nil, err
		}
		x = &ast.Binary{Base: baseAt(pos), Op: op, X: x, Y: y}
	}
}

// matchOp consumes and returns the current token's text if it is an
// operator or keyword-operator (AND/OR/MOD) among ops.
func (p *Parser) matchOp(ops []string) (string, bool) {
	cur := p.cur()
	if cur.Kind != token.Operator && cur.Kind != token.Keyword {
		return "", false
	}
	for _, op := range ops {
		if cur.Text == op {
			p.advance()
			return op, true
		}
	}
	return "", false
}

// parsePow handles right-associative ^ (precedence level 6).
func (p *Parser) parsePow() (ast.Expr, error) {
	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind == token.Operator && p.cur().Text == "^" {
		pos := p.cur().Pos
		p.advance()
		y, err := p.parsePow() // right-associative: recurse at same level
		if err != nil {
			return nil, err
		}
		return &ast.Binary{Base: baseAt(pos), Op: "^", X: x, Y: y}, nil
	}
	return x, nil
}

// parseUnary handles precedence level 7: unary +, -, NOT.
func (p *Parser) parseUnary() (ast.Expr, error) {
	cur := p.cur()
	if (cur.Kind == token.Operator && (cur.Text == "+" || cur.Text == "-")) ||
		(cur.Kind == token.Keyword && cur.Text == "NOT") {
		p.advance()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Base: baseAt(cur.Pos), Op: cur.Text, X: x}, nil
	}
	return p.parsePrimary()
}

// parsePrimary handles precedence level 8: literals, identifiers,
// parenthesized expressions, function calls, array access.
func (p *Parser) parsePrimary() (ast.Expr, error) {
	cur := p.cur()
	switch cur.Kind {
	case token.Number:
		p.advance()
		return &ast.NumberLit{Base: baseAt(cur.Pos), Value: cur.Num}, nil

	case token.String:
		p.advance()
		return &ast.StringLit{Base: baseAt(cur.Pos), Value: cur.Text}, nil

	case token.Punct:
		if cur.Text == "(" {
			p.advance()
			inner, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(")"); err != nil {
				return nil, err
			}
			return &ast.Paren{Base: baseAt(cur.Pos), Inner: inner}, nil
		}

	case token.Keyword:
		if cur.Text == "FN" {
			p.advance()
			name := p.cur()
			if name.Kind != token.Ident {
				return nil, p.errf("expected function name after FN, got %v", name)
			}
			p.advance()
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			return &ast.Call{Base: baseAt(cur.Pos), Name: name.Text, Args: args, FN: true}, nil
		}
		if isBuiltinFunc(cur.Text) {
			p.advance()
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			return &ast.Call{Base: baseAt(cur.Pos), Name: cur.Text, Args: args}, nil
		}

	case token.Ident, token.IdentString, token.IdentInt:
		p.advance()
		if p.isPunct("(") {
			subs, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			return &ast.Index{Base: baseAt(cur.Pos), Name: cur.Text, Subs: subs}, nil
		}
		return &ast.Ident{Base: baseAt(cur.Pos), Name: cur.Text}, nil
	}

	return nil, p.errf("unexpected token %v in expression", cur)
}

// parseArgList parses a parenthesized, comma-separated expression list.
// An empty "()" yields a nil slice.
func (p *Parser) parseArgList() ([]ast.Expr, error) {
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var args []ast.Expr
	if !p.isPunct(")") {
		for {
			e, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			args = append(args, e)
			if p.isPunct(",") {
				p.advance()
				continue
			}
			break
		}
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return args, nil
}

var builtinFuncs = map[string]bool{
	"ABS": true, "INT": true, "RND": true, "SIN": true, "COS": true,
	"TAN": true, "ATN": true, "LOG": true, "EXP": true, "SQR": true,
	"STR$": true, "CHR$": true, "LEN": true, "VAL": true, "ASC": true,
	"LEFT$": true, "RIGHT$": true, "MID$": true, "POINT": true,
}

func isBuiltinFunc(name string) bool { return builtinFuncs[name] }

// baseAt wraps a token position as the ast.Base embedded in every
// expression node.
func baseAt(pos token.Position) ast.Base { return ast.Base{P: pos} }
