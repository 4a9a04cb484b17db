package interp

import "github.com/jcorbin/retrobasic/vars"

// FrameKind tags a call-stack mirror frame (spec.md §4.5: "Tagged-
// variant frames (GOSUB{returnIndex}, FOR{variable}) suffice").
type FrameKind int

const (
	FrameGosub FrameKind = iota
	FrameFor
)

func (k FrameKind) String() string {
	if k == FrameFor {
		return "FOR"
	}
	return "GOSUB"
}

// CallFrame is a point-in-time snapshot of one active GOSUB or FOR
// frame, for debugger display.
type CallFrame struct {
	Kind     FrameKind
	Line     int
	Var      string // FOR loop variable; empty for GOSUB
	Snapshot vars.Snapshot
}

// CallStack returns the interpreter's active GOSUB and FOR frames for
// the debugger's call-stack mirror (spec.md §4.5). Frames are grouped
// by kind rather than interleaved by true push order: loopStack and
// gosubStack are tracked as separate stacks (control.go) and nothing
// in the debugger's contract requires reconstructing their relative
// call order, only each frame's own kind/line/variable.
func (in *Interpreter) CallStack() []CallFrame {
	snap := in.store.Snapshot()
	frames := make([]CallFrame, 0, len(in.loopStack)+len(in.gosubStack))
	for _, f := range in.loopStack {
		if f.Kind != frameFor {
			continue
		}
		frames = append(frames, CallFrame{Kind: FrameFor, Line: in.lineAt(f.Start), Var: f.Var, Snapshot: snap})
	}
	for _, ret := range in.gosubStack {
		frames = append(frames, CallFrame{Kind: FrameGosub, Line: in.lineAt(ret - 1), Snapshot: snap})
	}
	return frames
}
