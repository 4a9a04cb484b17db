// Package ast defines the tagged-variant statement and expression trees
// produced by the parser, plus the Program container (flat statement
// vector + line-number index) that the interpreter walks.
//
// Following spec.md §9 ("Polymorphic AST"), the source language's class
// hierarchies become Go interfaces implemented by small structs; the
// single dispatch point per consumer (evaluator, interpreter, printer)
// is a type switch rather than a visitor interface, the same way
// jcorbin/gothird dispatches its small number of primitive ops by a
// plain switch in its execution loop.
package ast

import "github.com/jcorbin/retrobasic/token"

// Node is implemented by every Stmt and Expr.
type Node interface {
	Pos() token.Position
}

// Expr is a pure expression tree node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a statement tree node.
type Stmt interface {
	Node
	stmtNode()
}

// Base carries the source position shared by every Expr and Stmt node.
type Base struct{ P token.Position }

func (b Base) Pos() token.Position { return b.P }

// ---- Expressions ----

// NumberLit is a numeric literal.
type NumberLit struct {
	Base
	Value float64
}

// StringLit is a string literal.
type StringLit struct {
	Base
	Value string
}

// Ident is an identifier reference (scalar variable read).
type Ident struct {
	Base
	Name string // includes any $ / % suffix
}

// Paren is a parenthesized sub-expression, kept distinct from its inner
// expression so the pretty-printer can round-trip parentheses exactly
// (needed for the parse-idempotence property, spec.md §8 invariant 6).
type Paren struct {
	Base
	Inner Expr
}

// Unary is a unary operation: +expr, -expr, NOT expr.
type Unary struct {
	Base
	Op string
	X  Expr
}

// Binary is a binary operation with the precedence table of spec.md §4.2.
type Binary struct {
	Base
	Op   string
	X, Y Expr
}

// Call is a call to a builtin function or a DEF FN user function.
// FN is true when the callee was written as "FN name(...)".
type Call struct {
	Base
	Name string
	Args []Expr
	FN   bool
}

// Index is an array element access: NAME(sub1, sub2, ...).
type Index struct {
	Base
	Name string
	Subs []Expr
}

func (NumberLit) exprNode() {}
func (StringLit) exprNode() {}
func (Ident) exprNode()     {}
func (Paren) exprNode()     {}
func (Unary) exprNode()     {}
func (Binary) exprNode()    {}
func (Call) exprNode()      {}
func (Index) exprNode()     {}

// ---- Statements ----

// LineInfo is embedded in every Stmt: an optional user-visible BASIC
// line number (0 if this statement has none, e.g. a statement after a
// ':' separator on the same line) plus its source position.
type LineInfo struct {
	Base
	Line int // 0 means "no line number" (continuation after ':')
}

// Let assigns a scalar variable: LET v = e / v = e.
type Let struct {
	LineInfo
	Name string
	Expr Expr
}

// ArraySet assigns an array element: A(i, ...) = e.
type ArraySet struct {
	LineInfo
	Name string
	Subs []Expr
	Expr Expr
}

// PrintItem is one expression of a PRINT list.
type PrintItem struct {
	Expr Expr
	// Sep is the separator that followed this item in source: "," | ";" | "".
	Sep string
}

// Print emits formatted output.
type Print struct {
	LineInfo
	Items []PrintItem
	File  Expr // non-nil for PRINT#, the channel number expression
}

// Input requests values from the host.
type Input struct {
	LineInfo
	Prompt string
	Vars   []string
	File   Expr // non-nil for INPUT#
}

// If is both the single-line and multi-line IF/THEN/ELSE form. For the
// single-line form, Then/Else hold exactly one statement each; for the
// multi-line form they hold the full nested block up to ELSE/ENDIF.
type If struct {
	LineInfo
	Cond Expr
	Then []Stmt
	Else []Stmt
}

// For is the FOR half of FOR/NEXT, a sibling statement in the flat
// vector per spec.md §4.2 — the body is NOT a nested list.
type For struct {
	LineInfo
	Var            string
	Start, End     Expr
	Step           Expr // nil means default step of 1
}

// Next is the NEXT half; Var is "" when NEXT was written without a
// variable name.
type Next struct {
	LineInfo
	Var string
}

// While is the WHILE half of WHILE/WEND, a sibling statement like For.
type While struct {
	LineInfo
	Cond Expr
}

// Wend marks the end of a WHILE body.
type Wend struct {
	LineInfo
}

// DoLoopCond identifies which side (if any) of a DO/LOOP carries a
// condition, and its polarity.
type DoLoopCond int

const (
	CondNone DoLoopCond = iota
	CondUntil
	CondWhile
)

// Do is the DO half of DO/LOOP. PreCond/PreExpr hold a pre-condition if
// written as "DO UNTIL/WHILE expr".
type Do struct {
	LineInfo
	PreCond DoLoopCond
	PreExpr Expr
}

// LoopStmt is the LOOP half. PostCond/PostExpr hold a post-condition if
// written as "LOOP UNTIL/WHILE expr".
type LoopStmt struct {
	LineInfo
	PostCond DoLoopCond
	PostExpr Expr
}

// Goto is an unconditional jump.
type Goto struct {
	LineInfo
	Target int
}

// Gosub calls a subroutine.
type Gosub struct {
	LineInfo
	Target int
}

// Return returns from a GOSUB.
type Return struct {
	LineInfo
}

// On dispatches ON...GOTO / ON...GOSUB computed targets.
type On struct {
	LineInfo
	Expr    Expr
	Targets []int
	IsGosub bool
}

// Dim declares an array's shape.
type Dim struct {
	LineInfo
	Name string
	Dims []Expr
}

// Data holds literal values harvested into the DATA pool at program
// load (spec.md §4.3.8). Each element is a NumberLit or StringLit.
type Data struct {
	LineInfo
	Values []Expr
}

// Read consumes values from the DATA pool into variables.
type Read struct {
	LineInfo
	Vars []string
}

// Restore repositions the DATA pointer; Line is 0 for unqualified
// RESTORE, otherwise the line number argument (see SPEC_FULL.md §9).
type Restore struct {
	LineInfo
	Line int
}

// DefFn registers a single-parameter user function.
type DefFn struct {
	LineInfo
	Name  string
	Param string
	Expr  Expr
}

// End/Stop terminate a run. Stop additionally allows resumption in
// historical BASICs via CONT, which this dialect does not implement;
// both are modeled identically here (see Non-goals, spec.md §1).
type End struct{ LineInfo }
type Stop struct{ LineInfo }

// Rem is a no-op comment statement.
type Rem struct {
	LineInfo
	Text string
}

// Meta covers immediate-mode commands: RUN, LIST, NEW, CLEAR, SAVE,
// LOAD, VARS, TRON, TROFF. Args holds any trailing source text
// (e.g. a filename for SAVE/LOAD, a range for LIST).
type Meta struct {
	LineInfo
	Command string
	Args    string
}

// Peripheral covers every statement forwarded to an external interface
// adapter (graphics, audio, file I/O) per spec.md §4.7's dispatch
// table. Args are the parsed argument expressions in source order.
type Peripheral struct {
	LineInfo
	Command string
	Args    []Expr
}

func (*Let) stmtNode()        {}
func (*ArraySet) stmtNode()   {}
func (*Print) stmtNode()      {}
func (*Input) stmtNode()      {}
func (*If) stmtNode()         {}
func (*For) stmtNode()        {}
func (*Next) stmtNode()       {}
func (*While) stmtNode()      {}
func (*Wend) stmtNode()       {}
func (*Do) stmtNode()         {}
func (*LoopStmt) stmtNode()   {}
func (*Goto) stmtNode()       {}
func (*Gosub) stmtNode()      {}
func (*Return) stmtNode()     {}
func (*On) stmtNode()         {}
func (*Dim) stmtNode()        {}
func (*Data) stmtNode()       {}
func (*Read) stmtNode()       {}
func (*Restore) stmtNode()    {}
func (*DefFn) stmtNode()      {}
func (*End) stmtNode()        {}
func (*Stop) stmtNode()       {}
func (*Rem) stmtNode()        {}
func (*Meta) stmtNode()       {}
func (*Peripheral) stmtNode() {}

// LineNumber returns the statement's BASIC line number, if any, via a
// small interface so callers don't need a type switch just for this.
type Liner interface {
	LineNumber() int
}

func (li LineInfo) LineNumber() int { return li.Line }
