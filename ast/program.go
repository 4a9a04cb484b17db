package ast

import "sort"

// Program is an ordered sequence of statements plus a mapping from
// user-visible line numbers to statement indices (spec.md §3).
//
// Line numbers are sparse 32-bit integers defining program order.
// Splice uses insertion-sort semantics: a new line number is spliced
// into sorted position; an existing line number is replaced in place.
// The index map is rebuilt whenever the sequence changes, satisfying
// invariant 1 of spec.md §8 at every statement boundary between edits.
type Program struct {
	Stmts   []Stmt
	lineMap map[int]int // line number -> index into Stmts
}

// NewProgram returns an empty Program.
func NewProgram() *Program {
	return &Program{lineMap: make(map[int]int)}
}

// LineMap returns the line-number -> statement-index mapping. Callers
// must not mutate the returned map.
func (p *Program) LineMap() map[int]int { return p.lineMap }

// IndexOf returns the statement index for line, and whether it exists.
func (p *Program) IndexOf(line int) (int, bool) {
	idx, ok := p.lineMap[line]
	return idx, ok
}

// Load replaces the program's statement vector wholesale (used after a
// fresh parse) and rebuilds the line map.
func (p *Program) Load(stmts []Stmt) {
	p.Stmts = stmts
	p.rebuild()
}

// Clear empties the program.
func (p *Program) Clear() {
	p.Stmts = nil
	p.lineMap = make(map[int]int)
}

// SpliceLine inserts or replaces the single-line statement group
// carrying line number `line`. If `line` is already present, the prior
// group (that line number's statements, up to but not including the
// next distinct line number) is replaced; otherwise the group is
// spliced into sorted position. Passing an empty group with an
// existing line number deletes that line, matching the classic BASIC
// "type a bare line number to delete it" behavior.
func (p *Program) SpliceLine(line int, group []Stmt) {
	start, end := p.lineGroupRange(line)
	replaced := make([]Stmt, 0, len(p.Stmts)-(end-start)+len(group))
	replaced = append(replaced, p.Stmts[:start]...)
	replaced = append(replaced, group...)
	replaced = append(replaced, p.Stmts[end:]...)
	p.Stmts = replaced
	p.rebuild()
}

// lineGroupRange finds the [start, end) index range of statements
// belonging to line number `line`: either the existing run of
// statements whose first carries that line number, or (if absent) the
// single point where a new group would be spliced in sorted order.
func (p *Program) lineGroupRange(line int) (start, end int) {
	lines := p.sortedLines()
	pos := sort.SearchInts(lines, line)
	if pos < len(lines) && lines[pos] == line {
		start = p.lineMap[line]
		end = len(p.Stmts)
		if pos+1 < len(lines) {
			end = p.lineMap[lines[pos+1]]
		}
		return start, end
	}
	// not present: splice point is the start of the next higher line,
	// or end of program if `line` is the highest.
	if pos < len(lines) {
		start = p.lineMap[lines[pos]]
	} else {
		start = len(p.Stmts)
	}
	return start, start
}

func (p *Program) sortedLines() []int {
	lines := make([]int, 0, len(p.lineMap))
	for ln := range p.lineMap {
		lines = append(lines, ln)
	}
	sort.Ints(lines)
	return lines
}

func (p *Program) rebuild() {
	p.lineMap = make(map[int]int, len(p.Stmts))
	for i, s := range p.Stmts {
		if liner, ok := s.(Liner); ok {
			if ln := liner.LineNumber(); ln != 0 {
				p.lineMap[ln] = i
			}
		}
	}
}
