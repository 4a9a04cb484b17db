package interp

import (
	"sort"
	"strings"

	"github.com/jcorbin/retrobasic/ast"
	"github.com/jcorbin/retrobasic/eval"
	"github.com/jcorbin/retrobasic/vars"
)

// execMeta handles the immediate-mode/debugger meta-commands: RUN,
// LIST, NEW, CLEAR, SAVE, LOAD, VARS, TRON, TROFF (spec.md §4.7,
// SPEC_FULL.md §4.3's TRON/TROFF/VARS supplement).
func (in *Interpreter) execMeta(idx int, s *ast.Meta) (int, error) {
	switch s.Command {
	case "NEW":
		in.NewProgram()
	case "CLEAR":
		in.Reset()
	case "TRON":
		if in.debugger != nil {
			in.debugger.SetTrace(true)
		}
	case "TROFF":
		if in.debugger != nil {
			in.debugger.SetTrace(false)
		}
	case "VARS":
		in.printVars()
	case "SAVE":
		if in.persist != nil {
			if err := in.persist.Save(strings.TrimSpace(s.Args), in.prog.String()); err != nil {
				return idx, runtimeErrf(ErrIllegalQuantity, in.lineAt(idx), "%v", err)
			}
		}
	case "LOAD":
		// No-op inside a run: reloading program text through the parser
		// from here would import package parser into interp. A host
		// loads a program by calling Persistence.Load then
		// Interpreter.LoadProgram itself.
	case "RUN", "LIST":
		// No-op inside a run; the interpreter does not act on these.
	}
	return idx + 1, nil
}

func (in *Interpreter) printVars() {
	if in.out == nil {
		return
	}
	snap := in.store.Snapshot()
	var b strings.Builder
	for _, name := range sortedKeys(snap) {
		b.WriteString(name)
		b.WriteString(" = ")
		b.WriteString(snap[name].String())
		b.WriteByte('\n')
	}
	in.out.Write([]byte(b.String()))
}

func sortedKeys(snap vars.Snapshot) []string {
	names := make([]string, 0, len(snap))
	for n := range snap {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// execPeripheral forwards a graphics/audio/file statement to the
// attached peripheral (spec.md §6's "thin shims"). Every command is
// accepted and forwarded even with no real peripheral attached (the
// default NopGraphics/NopAudio satisfy that requirement).
func (in *Interpreter) execPeripheral(idx int, s *ast.Peripheral) (int, error) {
	nums, err := in.evalPeripheralNums(s.Args)
	if err != nil {
		return idx, err
	}
	var perr error
	switch s.Command {
	case "SCREEN":
		perr = in.graphics.SetScreenMode(arg(nums, 0))
	case "CLS":
		perr = in.graphics.Cls(arg(nums, 0))
	case "COLOR":
		perr = in.graphics.SetColor(arg(nums, 0), arg(nums, 1), arg(nums, 2))
	case "PSET":
		perr = in.graphics.PSet(arg(nums, 0), arg(nums, 1), arg(nums, 2))
	case "PRESET":
		perr = in.graphics.PReset(arg(nums, 0), arg(nums, 1), arg(nums, 2))
	case "LINE":
		perr = in.graphics.Line(arg(nums, 0), arg(nums, 1), arg(nums, 2), arg(nums, 3), arg(nums, 4), "")
	case "CIRCLE":
		perr = in.graphics.Circle(arg(nums, 0), arg(nums, 1), arg(nums, 2), arg(nums, 3), fargN(nums, 4), fargN(nums, 5), fargN(nums, 6))
	case "PAINT":
		perr = in.graphics.Paint(arg(nums, 0), arg(nums, 1), arg(nums, 2), arg(nums, 3))
	case "GET":
		_, perr = in.graphics.GetSprite(arg(nums, 0), arg(nums, 1), arg(nums, 2), arg(nums, 3))
	case "PUT":
		perr = in.graphics.PutSprite(arg(nums, 0), arg(nums, 1), nil, "")
	case "VIEW":
		perr = in.graphics.SetView(arg(nums, 0), arg(nums, 1), arg(nums, 2), arg(nums, 3))
	case "WINDOW":
		perr = in.graphics.SetWindow(fargN(nums, 0), fargN(nums, 1), fargN(nums, 2), fargN(nums, 3))
	case "PALETTE":
		perr = in.graphics.SetPalette(arg(nums, 0), arg(nums, 1))
	case "DRAW":
		perr = in.graphics.Draw(in.evalPeripheralString(s.Args, 0))
	case "SOUND":
		perr = in.audio.Sound(arg(nums, 0), arg(nums, 1))
	case "PLAY":
		perr = in.audio.Play(in.evalPeripheralString(s.Args, 0))
	case "OPEN":
		name := in.evalPeripheralString(s.Args, 0)
		mode := in.evalPeripheralString(s.Args, 1)
		perr = in.files.Open(arg(nums, 0), name, mode)
		if perr == nil {
			in.openFiles[arg(nums, 0)] = true
		}
	case "CLOSE":
		if len(nums) == 0 {
			for n := range in.openFiles {
				in.files.Close(n)
			}
			in.openFiles = map[int]bool{}
		}
		for _, n := range nums {
			perr = in.files.Close(n)
			delete(in.openFiles, n)
		}
	}
	if perr != nil {
		return idx, runtimeErrf(ErrIllegalQuantity, in.lineAt(idx), "%v", perr)
	}
	return idx + 1, nil
}

// evalPeripheralNums evaluates every argument that parses as numeric,
// skipping string-valued arguments (DRAW/PLAY/OPEN's filename/mode
// carry their payload as a string argument read separately via
// evalPeripheralString).
func (in *Interpreter) evalPeripheralNums(args []ast.Expr) ([]int, error) {
	nums := make([]int, 0, len(args))
	for _, e := range args {
		v, err := eval.Evaluate(e, in)
		if err != nil {
			return nil, err
		}
		if v.Kind == vars.Number {
			nums = append(nums, int(v.Num))
		}
	}
	return nums, nil
}

func (in *Interpreter) evalPeripheralString(args []ast.Expr, which int) string {
	seen := 0
	for _, e := range args {
		v, err := eval.Evaluate(e, in)
		if err != nil {
			continue
		}
		if v.Kind == vars.String {
			if seen == which {
				return v.Str
			}
			seen++
		}
	}
	return ""
}

func arg(nums []int, i int) int {
	if i < len(nums) {
		return nums[i]
	}
	return 0
}

func fargN(nums []int, i int) float64 {
	return float64(arg(nums, i))
}
