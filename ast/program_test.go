package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/retrobasic/ast"
)

func stmtAtLine(line int) ast.Stmt {
	return &ast.End{LineInfo: ast.LineInfo{Line: line}}
}

func TestProgramSpliceSortedOrder(t *testing.T) {
	p := ast.NewProgram()
	p.SpliceLine(20, []ast.Stmt{stmtAtLine(20)})
	p.SpliceLine(10, []ast.Stmt{stmtAtLine(10)})
	p.SpliceLine(30, []ast.Stmt{stmtAtLine(30)})

	require.Len(t, p.Stmts, 3)
	var lines []int
	for _, s := range p.Stmts {
		lines = append(lines, s.(ast.Liner).LineNumber())
	}
	assert.Equal(t, []int{10, 20, 30}, lines)

	for _, ln := range lines {
		idx, ok := p.IndexOf(ln)
		require.True(t, ok)
		assert.Equal(t, ln, p.Stmts[idx].(ast.Liner).LineNumber())
	}
}

func TestProgramSpliceReplacesExistingLine(t *testing.T) {
	p := ast.NewProgram()
	p.SpliceLine(10, []ast.Stmt{stmtAtLine(10)})
	p.SpliceLine(20, []ast.Stmt{stmtAtLine(20)})

	newStmt := &ast.Rem{LineInfo: ast.LineInfo{Line: 10}, Text: "replaced"}
	p.SpliceLine(10, []ast.Stmt{newStmt})

	require.Len(t, p.Stmts, 2)
	assert.Same(t, newStmt, p.Stmts[0])
}

func TestProgramSpliceDeletesLineWhenGroupEmpty(t *testing.T) {
	p := ast.NewProgram()
	p.SpliceLine(10, []ast.Stmt{stmtAtLine(10)})
	p.SpliceLine(20, []ast.Stmt{stmtAtLine(20)})

	p.SpliceLine(10, nil)

	require.Len(t, p.Stmts, 1)
	_, ok := p.IndexOf(10)
	assert.False(t, ok)
	_, ok = p.IndexOf(20)
	assert.True(t, ok)
}

func TestProgramClear(t *testing.T) {
	p := ast.NewProgram()
	p.SpliceLine(10, []ast.Stmt{stmtAtLine(10)})
	p.Clear()
	assert.Empty(t, p.Stmts)
	assert.Empty(t, p.LineMap())
}
