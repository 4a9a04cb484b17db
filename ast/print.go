package ast

import (
	"strconv"
	"strings"
)

// ExprString renders an expression back to BASIC source text. The same
// printer backs Program.String, which the SAVE meta-command writes and
// the parse-idempotence test (spec.md §8 invariant 6) re-parses:
// tokenize(ExprString(e)) then
// re-parsing must yield an equal expression tree, up to position
// metadata.
func ExprString(e Expr) string {
	var sb strings.Builder
	writeExpr(&sb, e)
	return sb.String()
}

func writeExpr(sb *strings.Builder, e Expr) {
	switch n := e.(type) {
	case *NumberLit:
		sb.WriteString(formatNumber(n.Value))
	case *StringLit:
		sb.WriteByte('"')
		sb.WriteString(n.Value)
		sb.WriteByte('"')
	case *Ident:
		sb.WriteString(n.Name)
	case *Paren:
		sb.WriteByte('(')
		writeExpr(sb, n.Inner)
		sb.WriteByte(')')
	case *Unary:
		sb.WriteString(n.Op)
		if n.Op == "NOT" {
			sb.WriteByte(' ')
		}
		writeExpr(sb, n.X)
	case *Binary:
		writeExpr(sb, n.X)
		sb.WriteByte(' ')
		sb.WriteString(n.Op)
		sb.WriteByte(' ')
		writeExpr(sb, n.Y)
	case *Call:
		if n.FN {
			sb.WriteString("FN ")
		}
		sb.WriteString(n.Name)
		sb.WriteByte('(')
		writeExprList(sb, n.Args)
		sb.WriteByte(')')
	case *Index:
		sb.WriteString(n.Name)
		sb.WriteByte('(')
		writeExprList(sb, n.Subs)
		sb.WriteByte(')')
	}
}

func writeExprList(sb *strings.Builder, exprs []Expr) {
	for i, e := range exprs {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeExpr(sb, e)
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// StmtString renders a single statement back to BASIC source text,
// without its leading line number.
func StmtString(s Stmt) string {
	var sb strings.Builder
	writeStmt(&sb, s)
	return sb.String()
}

func writeStmt(sb *strings.Builder, s Stmt) {
	switch n := s.(type) {
	case *Let:
		sb.WriteString(n.Name)
		sb.WriteString(" = ")
		writeExpr(sb, n.Expr)
	case *ArraySet:
		sb.WriteString(n.Name)
		sb.WriteByte('(')
		writeExprList(sb, n.Subs)
		sb.WriteString(") = ")
		writeExpr(sb, n.Expr)
	case *Print:
		if n.File != nil {
			sb.WriteString("PRINT#")
			writeExpr(sb, n.File)
			sb.WriteString(", ")
		} else {
			sb.WriteString("PRINT ")
		}
		for i, item := range n.Items {
			if i > 0 {
				sb.WriteString(" ")
			}
			writeExpr(sb, item.Expr)
			sb.WriteString(item.Sep)
		}
	case *Input:
		sb.WriteString("INPUT ")
		if n.Prompt != "" {
			sb.WriteByte('"')
			sb.WriteString(n.Prompt)
			sb.WriteString(`"; `)
		}
		sb.WriteString(strings.Join(n.Vars, ", "))
	case *If:
		sb.WriteString("IF ")
		writeExpr(sb, n.Cond)
		sb.WriteString(" THEN ")
		writeStmtList(sb, n.Then)
		if len(n.Else) > 0 {
			sb.WriteString(" ELSE ")
			writeStmtList(sb, n.Else)
		}
	case *For:
		sb.WriteString("FOR ")
		sb.WriteString(n.Var)
		sb.WriteString(" = ")
		writeExpr(sb, n.Start)
		sb.WriteString(" TO ")
		writeExpr(sb, n.End)
		if n.Step != nil {
			sb.WriteString(" STEP ")
			writeExpr(sb, n.Step)
		}
	case *Next:
		sb.WriteString("NEXT")
		if n.Var != "" {
			sb.WriteByte(' ')
			sb.WriteString(n.Var)
		}
	case *While:
		sb.WriteString("WHILE ")
		writeExpr(sb, n.Cond)
	case *Wend:
		sb.WriteString("WEND")
	case *Do:
		sb.WriteString("DO")
		writeCond(sb, n.PreCond, n.PreExpr)
	case *LoopStmt:
		sb.WriteString("LOOP")
		writeCond(sb, n.PostCond, n.PostExpr)
	case *Goto:
		sb.WriteString("GOTO ")
		sb.WriteString(strconv.Itoa(n.Target))
	case *Gosub:
		sb.WriteString("GOSUB ")
		sb.WriteString(strconv.Itoa(n.Target))
	case *Return:
		sb.WriteString("RETURN")
	case *On:
		sb.WriteString("ON ")
		writeExpr(sb, n.Expr)
		if n.IsGosub {
			sb.WriteString(" GOSUB ")
		} else {
			sb.WriteString(" GOTO ")
		}
		for i, t := range n.Targets {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.Itoa(t))
		}
	case *Dim:
		sb.WriteString("DIM ")
		sb.WriteString(n.Name)
		sb.WriteByte('(')
		writeExprList(sb, n.Dims)
		sb.WriteByte(')')
	case *Data:
		sb.WriteString("DATA ")
		writeExprList(sb, n.Values)
	case *Read:
		sb.WriteString("READ ")
		sb.WriteString(strings.Join(n.Vars, ", "))
	case *Restore:
		sb.WriteString("RESTORE")
		if n.Line != 0 {
			sb.WriteByte(' ')
			sb.WriteString(strconv.Itoa(n.Line))
		}
	case *DefFn:
		sb.WriteString("DEF FN ")
		sb.WriteString(n.Name)
		sb.WriteByte('(')
		sb.WriteString(n.Param)
		sb.WriteString(") = ")
		writeExpr(sb, n.Expr)
	case *End:
		sb.WriteString("END")
	case *Stop:
		sb.WriteString("STOP")
	case *Rem:
		sb.WriteString("REM ")
		sb.WriteString(n.Text)
	case *Meta:
		sb.WriteString(n.Command)
		if n.Args != "" {
			sb.WriteByte(' ')
			sb.WriteString(n.Args)
		}
	case *Peripheral:
		sb.WriteString(n.Command)
		sb.WriteByte(' ')
		writeExprList(sb, n.Args)
	}
}

func writeCond(sb *strings.Builder, cond DoLoopCond, expr Expr) {
	switch cond {
	case CondUntil:
		sb.WriteString(" UNTIL ")
		writeExpr(sb, expr)
	case CondWhile:
		sb.WriteString(" WHILE ")
		writeExpr(sb, expr)
	}
}

func writeStmtList(sb *strings.Builder, stmts []Stmt) {
	for i, s := range stmts {
		if i > 0 {
			sb.WriteString(" : ")
		}
		writeStmt(sb, s)
	}
}

// String renders the full program back to BASIC source text, one
// line-numbered line per distinct Line, statements sharing a line
// joined by " : ".
func (p *Program) String() string {
	var sb strings.Builder
	i := 0
	for i < len(p.Stmts) {
		line := 0
		if liner, ok := p.Stmts[i].(Liner); ok {
			line = liner.LineNumber()
		}
		j := i + 1
		for j < len(p.Stmts) {
			if liner, ok := p.Stmts[j].(Liner); ok && liner.LineNumber() != 0 {
				break
			}
			j++
		}
		if line != 0 {
			sb.WriteString(strconv.Itoa(line))
			sb.WriteByte(' ')
		}
		writeStmtList(&sb, p.Stmts[i:j])
		sb.WriteByte('\n')
		i = j
	}
	return sb.String()
}
