package parser

import (
	"strings"

	"github.com/jcorbin/retrobasic/ast"
	"github.com/jcorbin/retrobasic/token"
)

var graphicsKeywords = map[string]bool{
	"SCREEN": true, "CLS": true, "COLOR": true, "PSET": true, "PRESET": true,
	"LINE": true, "CIRCLE": true, "PAINT": true, "GET": true, "PUT": true,
	"VIEW": true, "WINDOW": true, "PALETTE": true, "DRAW": true,
}

var audioKeywords = map[string]bool{"SOUND": true, "PLAY": true}

var metaKeywords = map[string]bool{
	"RUN": true, "LIST": true, "NEW": true, "CLEAR": true, "SAVE": true,
	"LOAD": true, "VARS": true, "TRON": true, "TROFF": true,
}

// parseStmt dispatches on the current token to the matching statement
// parser, or falls back to implicit assignment when the statement
// begins with a bare identifier (spec.md §4.2).
func (p *Parser) parseStmt() (ast.Stmt, error) {
	cur := p.cur()

	switch cur.Kind {
	case token.Ident, token.IdentString, token.IdentInt:
		return p.parseAssignment()

	case token.Keyword:
		switch {
		case cur.Text == "LET":
			p.advance()
			return p.parseAssignment()
		case strings.HasPrefix(cur.Text, "REM"):
			p.advance()
			return &ast.Rem{LineInfo: liAt(cur.Pos), Text: strings.TrimPrefix(cur.Text[3:], " ")}, nil
		case cur.Text == "PRINT":
			return p.parsePrint()
		case cur.Text == "INPUT":
			return p.parseInput()
		case cur.Text == "IF":
			return p.parseIf()
		case cur.Text == "FOR":
			return p.parseFor()
		case cur.Text == "NEXT":
			return p.parseNext()
		case cur.Text == "WHILE":
			return p.parseWhile()
		case cur.Text == "WEND":
			p.advance()
			return &ast.Wend{LineInfo: liAt(cur.Pos)}, nil
		case cur.Text == "DO":
			return p.parseDo()
		case cur.Text == "LOOP":
			return p.parseLoop()
		case cur.Text == "GOTO":
			p.advance()
			n, err := p.expectLineNumber()
			if err != nil {
				return nil, err
			}
			return &ast.Goto{LineInfo: liAt(cur.Pos), Target: n}, nil
		case cur.Text == "GOSUB":
			p.advance()
			n, err := p.expectLineNumber()
			if err != nil {
				return nil, err
			}
			return &ast.Gosub{LineInfo: liAt(cur.Pos), Target: n}, nil
		case cur.Text == "RETURN":
			p.advance()
			return &ast.Return{LineInfo: liAt(cur.Pos)}, nil
		case cur.Text == "ON":
			return p.parseOn()
		case cur.Text == "DIM":
			return p.parseDim()
		case cur.Text == "DATA":
			return p.parseData()
		case cur.Text == "READ":
			return p.parseRead()
		case cur.Text == "RESTORE":
			return p.parseRestore()
		case cur.Text == "DEF":
			return p.parseDefFn()
		case cur.Text == "END":
			p.advance()
			return &ast.End{LineInfo: liAt(cur.Pos)}, nil
		case cur.Text == "STOP":
			p.advance()
			return &ast.Stop{LineInfo: liAt(cur.Pos)}, nil
		case metaKeywords[cur.Text]:
			return p.parseMeta()
		case graphicsKeywords[cur.Text] || audioKeywords[cur.Text] || cur.Text == "OPEN" || cur.Text == "CLOSE":
			return p.parsePeripheral()
		}
	}

	return nil, p.errf("unexpected token %v", cur)
}

func liAt(pos token.Position) ast.LineInfo { return ast.LineInfo{Base: baseAt(pos)} }

// expectLineNumber parses a bare integer literal used as a jump target.
func (p *Parser) expectLineNumber() (int, error) {
	if p.cur().Kind != token.Number {
		return 0, p.errf("expected a line number, got %v", p.cur())
	}
	n, err := parseIntToken(p.cur())
	if err != nil {
		return 0, p.errf("%v", err)
	}
	p.advance()
	return n, nil
}

func (p *Parser) parseAssignment() (ast.Stmt, error) {
	nameTok := p.cur()
	p.advance()
	if p.isPunct("(") {
		subs, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		if err := p.expectOperator("="); err != nil {
			return nil, err
		}
		val, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		return &ast.ArraySet{LineInfo: liAt(nameTok.Pos), Name: nameTok.Text, Subs: subs, Expr: val}, nil
	}
	if err := p.expectOperator("="); err != nil {
		return nil, err
	}
	val, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	return &ast.Let{LineInfo: liAt(nameTok.Pos), Name: nameTok.Text, Expr: val}, nil
}

func (p *Parser) expectOperator(op string) error {
	if p.cur().Kind == token.Operator && p.cur().Text == op {
		p.advance()
		return nil
	}
	return p.errf("expected %q, got %v", op, p.cur())
}

func (p *Parser) parsePrint() (ast.Stmt, error) {
	pos := p.cur().Pos
	p.advance() // PRINT
	pr := &ast.Print{LineInfo: liAt(pos)}
	if p.isPunct("#") {
		p.advance()
		f, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		pr.File = f
		if p.isPunct(",") {
			p.advance()
		}
	}
	for !p.endOfLine() && !p.isPunct(":") {
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		sep := ""
		if p.isPunct(",") {
			sep = ","
			p.advance()
		} else if p.isPunct(";") {
			sep = ";"
			p.advance()
		}
		pr.Items = append(pr.Items, ast.PrintItem{Expr: e, Sep: sep})
		if sep == "" {
			break
		}
	}
	return pr, nil
}

func (p *Parser) parseInput() (ast.Stmt, error) {
	pos := p.cur().Pos
	p.advance() // INPUT
	in := &ast.Input{LineInfo: liAt(pos)}
	if p.isPunct("#") {
		p.advance()
		f, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		in.File = f
		if p.isPunct(",") {
			p.advance()
		}
	}
	if p.cur().Kind == token.String && p.peekAt(1).Kind == token.Punct &&
		(p.peekAt(1).Text == ";" || p.peekAt(1).Text == ",") {
		in.Prompt = p.cur().Text
		p.advance()
		p.advance()
	}
	for {
		name := p.cur()
		if name.Kind != token.Ident && name.Kind != token.IdentString && name.Kind != token.IdentInt {
			return nil, p.errf("expected variable name, got %v", name)
		}
		p.advance()
		in.Vars = append(in.Vars, name.Text)
		if p.isPunct(",") {
			p.advance()
			continue
		}
		break
	}
	return in, nil
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	pos := p.cur().Pos
	p.advance() // IF
	cond, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("THEN"); err != nil {
		return nil, err
	}

	ifStmt := &ast.If{LineInfo: liAt(pos), Cond: cond}

	if p.endOfLine() {
		// multi-line form: IF cond THEN \n ... [ELSE ...] ENDIF
		p.skipNewlines()
		thenStmts, stopWord, err := p.parseBlockUntil("ELSE", "ENDIF")
		if err != nil {
			return nil, err
		}
		ifStmt.Then = thenStmts
		if stopWord == "ELSE" {
			p.skipNewlines()
			elseStmts, _, err := p.parseBlockUntil("ENDIF")
			if err != nil {
				return nil, err
			}
			ifStmt.Else = elseStmts
		}
		return ifStmt, nil
	}

	// single-line form: IF cond THEN stmt [ELSE stmt]
	// a bare line number after THEN/ELSE means "GOTO lineno"
	thenStmt, err := p.parseThenClause()
	if err != nil {
		return nil, err
	}
	ifStmt.Then = []ast.Stmt{thenStmt}

	if p.isKeyword("ELSE") {
		p.advance()
		elseStmt, err := p.parseThenClause()
		if err != nil {
			return nil, err
		}
		ifStmt.Else = []ast.Stmt{elseStmt}
	}
	return ifStmt, nil
}

// parseThenClause parses the single statement following THEN or ELSE on
// a one-line IF, allowing the historical shorthand of a bare line
// number meaning GOTO.
func (p *Parser) parseThenClause() (ast.Stmt, error) {
	if p.cur().Kind == token.Number {
		pos := p.cur().Pos
		n, err := p.expectLineNumber()
		if err != nil {
			return nil, err
		}
		return &ast.Goto{LineInfo: liAt(pos), Target: n}, nil
	}
	return p.parseStmt()
}

// parseBlockUntil parses line-grouped statements until a line whose
// sole content is one of the stop keywords. It returns the accumulated
// statements (flattened across the block's physical lines) and which
// stop keyword was found; the stop keyword's own line is consumed.
func (p *Parser) parseBlockUntil(stopWords ...string) ([]ast.Stmt, string, error) {
	var stmts []ast.Stmt
	for {
		p.skipNewlines()
		if p.cur().Kind == token.Number {
			// inner lines may carry their own line numbers but those
			// numbers are not addressable via GOTO: IF bodies are
			// nested, not flat (see SPEC_FULL.md §9's Open Question
			// resolution). The number is simply consumed.
			p.advance()
		}
		if p.cur().Kind == token.Keyword {
			for _, w := range stopWords {
				if p.cur().Text == w {
					p.advance()
					return stmts, w, nil
				}
			}
		}
		if p.atEOF() {
			return nil, "", p.errf("unexpected end of input, expected one of %v", stopWords)
		}
		s, err := p.parseStmt()
		if err != nil {
			return nil, "", err
		}
		stmts = append(stmts, s)
		for p.isPunct(":") {
			p.advance()
			s, err := p.parseStmt()
			if err != nil {
				return nil, "", err
			}
			stmts = append(stmts, s)
		}
	}
}

func (p *Parser) parseFor() (ast.Stmt, error) {
	pos := p.cur().Pos
	p.advance() // FOR
	name := p.cur()
	if name.Kind != token.Ident && name.Kind != token.IdentInt {
		return nil, p.errf("expected loop variable, got %v", name)
	}
	p.advance()
	if err := p.expectOperator("="); err != nil {
		return nil, err
	}
	start, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("TO"); err != nil {
		return nil, err
	}
	end, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	f := &ast.For{LineInfo: liAt(pos), Var: name.Text, Start: start, End: end}
	if p.isKeyword("STEP") {
		p.advance()
		step, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		f.Step = step
	}
	return f, nil
}

func (p *Parser) parseNext() (ast.Stmt, error) {
	pos := p.cur().Pos
	p.advance() // NEXT
	n := &ast.Next{LineInfo: liAt(pos)}
	if p.cur().Kind == token.Ident || p.cur().Kind == token.IdentInt {
		n.Var = p.cur().Text
		p.advance()
	}
	return n, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	pos := p.cur().Pos
	p.advance() // WHILE
	cond, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	return &ast.While{LineInfo: liAt(pos), Cond: cond}, nil
}

func (p *Parser) parseDo() (ast.Stmt, error) {
	pos := p.cur().Pos
	p.advance() // DO
	d := &ast.Do{LineInfo: liAt(pos)}
	if cond, expr, ok, err := p.tryParseCond(); err != nil {
		return nil, err
	} else if ok {
		d.PreCond, d.PreExpr = cond, expr
	}
	return d, nil
}

func (p *Parser) parseLoop() (ast.Stmt, error) {
	pos := p.cur().Pos
	p.advance() // LOOP
	l := &ast.LoopStmt{LineInfo: liAt(pos)}
	if cond, expr, ok, err := p.tryParseCond(); err != nil {
		return nil, err
	} else if ok {
		l.PostCond, l.PostExpr = cond, expr
	}
	return l, nil
}

func (p *Parser) tryParseCond() (ast.DoLoopCond, ast.Expr, bool, error) {
	switch {
	case p.isKeyword("UNTIL"):
		p.advance()
		e, err := p.parseExpr(0)
		return ast.CondUntil, e, true, err
	case p.isKeyword("WHILE"):
		p.advance()
		e, err := p.parseExpr(0)
		return ast.CondWhile, e, true, err
	}
	return ast.CondNone, nil, false, nil
}

func (p *Parser) parseOn() (ast.Stmt, error) {
	pos := p.cur().Pos
	p.advance() // ON
	expr, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	isGosub := false
	if p.isKeyword("GOSUB") {
		isGosub = true
		p.advance()
	} else if err := p.expectKeyword("GOTO"); err != nil {
		return nil, err
	}
	on := &ast.On{LineInfo: liAt(pos), Expr: expr, IsGosub: isGosub}
	for {
		n, err := p.expectLineNumber()
		if err != nil {
			return nil, err
		}
		on.Targets = append(on.Targets, n)
		if p.isPunct(",") {
			p.advance()
			continue
		}
		break
	}
	return on, nil
}

func (p *Parser) parseDim() (ast.Stmt, error) {
	pos := p.cur().Pos
	p.advance() // DIM
	name := p.cur()
	if name.Kind != token.Ident && name.Kind != token.IdentString && name.Kind != token.IdentInt {
		return nil, p.errf("expected array name, got %v", name)
	}
	p.advance()
	dims, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	return &ast.Dim{LineInfo: liAt(pos), Name: name.Text, Dims: dims}, nil
}

func (p *Parser) parseData() (ast.Stmt, error) {
	pos := p.cur().Pos
	p.advance() // DATA
	d := &ast.Data{LineInfo: liAt(pos)}
	for {
		cur := p.cur()
		switch cur.Kind {
		case token.Number:
			p.advance()
			d.Values = append(d.Values, &ast.NumberLit{Base: baseAt(cur.Pos), Value: cur.Num})
		case token.String:
			p.advance()
			d.Values = append(d.Values, &ast.StringLit{Base: baseAt(cur.Pos), Value: cur.Text})
		default:
			// bareword literal, e.g. DATA THREE (unquoted string datum)
			if cur.Kind == token.Ident || cur.Kind == token.Keyword {
				p.advance()
				d.Values = append(d.Values, &ast.StringLit{Base: baseAt(cur.Pos), Value: cur.Text})
			} else {
				return nil, p.errf("expected a DATA literal, got %v", cur)
			}
		}
		if p.isPunct(",") {
			p.advance()
			continue
		}
		break
	}
	return d, nil
}

func (p *Parser) parseRead() (ast.Stmt, error) {
	pos := p.cur().Pos
	p.advance() // READ
	r := &ast.Read{LineInfo: liAt(pos)}
	for {
		name := p.cur()
		if name.Kind != token.Ident && name.Kind != token.IdentString && name.Kind != token.IdentInt {
			return nil, p.errf("expected variable name, got %v", name)
		}
		p.advance()
		r.Vars = append(r.Vars, name.Text)
		if p.isPunct(",") {
			p.advance()
			continue
		}
		break
	}
	return r, nil
}

func (p *Parser) parseRestore() (ast.Stmt, error) {
	pos := p.cur().Pos
	p.advance() // RESTORE
	r := &ast.Restore{LineInfo: liAt(pos)}
	if p.cur().Kind == token.Number {
		n, err := p.expectLineNumber()
		if err != nil {
			return nil, err
		}
		r.Line = n
	}
	return r, nil
}

func (p *Parser) parseDefFn() (ast.Stmt, error) {
	pos := p.cur().Pos
	p.advance() // DEF
	if err := p.expectKeyword("FN"); err != nil {
		return nil, err
	}
	name := p.cur()
	if name.Kind != token.Ident && name.Kind != token.IdentString && name.Kind != token.IdentInt {
		return nil, p.errf("expected function name, got %v", name)
	}
	p.advance()
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	param := p.cur()
	if param.Kind != token.Ident && param.Kind != token.IdentString && param.Kind != token.IdentInt {
		return nil, p.errf("expected parameter name, got %v", param)
	}
	p.advance()
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	if err := p.expectOperator("="); err != nil {
		return nil, err
	}
	body, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	return &ast.DefFn{LineInfo: liAt(pos), Name: name.Text, Param: param.Text, Expr: body}, nil
}

func (p *Parser) parseMeta() (ast.Stmt, error) {
	pos := p.cur().Pos
	cmd := p.cur().Text
	p.advance()
	var sb strings.Builder
	for !p.endOfLine() && !p.isPunct(":") {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(p.cur().String())
		p.advance()
	}
	return &ast.Meta{LineInfo: liAt(pos), Command: cmd, Args: sb.String()}, nil
}

func (p *Parser) parsePeripheral() (ast.Stmt, error) {
	pos := p.cur().Pos
	cmd := p.cur().Text
	p.advance()
	per := &ast.Peripheral{LineInfo: liAt(pos), Command: cmd}
	for !p.endOfLine() && !p.isPunct(":") {
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		per.Args = append(per.Args, e)
		if p.isPunct(",") {
			p.advance()
			continue
		}
		break
	}
	return per, nil
}
