// Package interp is the statement interpreter: it walks a parsed
// ast.Program in instruction-pointer order, owns the variable store,
// the FOR/WHILE/DO and GOSUB stacks, the DATA pool, and the
// user-function table, and forwards graphics/audio/file statements to
// the peripherals package (spec.md §4.3).
package interp

import (
	"bufio"
	"context"
	"errors"
	"io"
	"math/rand"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jcorbin/retrobasic/ast"
	"github.com/jcorbin/retrobasic/internal/flushio"
	"github.com/jcorbin/retrobasic/internal/panicerr"
	"github.com/jcorbin/retrobasic/peripherals"
	"github.com/jcorbin/retrobasic/vars"
)

// yieldEvery is the cooperative-yield cadence of spec.md §5 ("at least
// every 1000 statements").
const yieldEvery = 1000

// pausePollInterval is how often the PAUSED gate re-checks run state.
const pausePollInterval = 10 * time.Millisecond

// Interpreter executes a parsed BASIC program against a variable
// store, DATA pool and user-function table, forwarding peripheral
// statements and surfacing host-facing run control.
type Interpreter struct {
	prog *ast.Program
	fns  map[string]*ast.DefFn

	store *vars.Store

	ip        int
	loopStack []loopFrame

	gosubStack []int

	dataPool  []vars.Value
	dataMarks []dataMark
	dataPtr   int

	out     flushio.WriteFlusher
	closers []io.Closer
	outCol  int

	input *inputQueue

	logfn func(mess string, args ...interface{})

	rng      *rand.Rand
	randSeed int64

	graphics peripherals.Graphics
	audio    peripherals.Audio
	files    peripherals.FileSystem
	persist  peripherals.Persistence

	debugger Debugger

	stateMu sync.Mutex
	state   State

	openFiles map[int]bool

	stmtCount uint64
}

// New constructs an Interpreter with an empty program, ready for
// LoadProgram. Mirrors gothird's New(opts ...VMOption) *VM shape.
func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		prog:      ast.NewProgram(),
		fns:       map[string]*ast.DefFn{},
		store:     vars.NewStore(),
		input:     newInputQueue(),
		openFiles: map[int]bool{},
		state:     StateReady,
	}
	defaultOptions().apply(in)
	Options(opts...).apply(in)
	if in.randSeed != 0 {
		in.rng = rand.New(rand.NewSource(in.randSeed))
	} else {
		in.rng = rand.New(rand.NewSource(1))
	}
	return in
}

// LoadProgram installs prog as the program to run, resetting all
// mutable execution state: variables, stacks, DATA pointer, user
// functions and open files (equivalent to spec.md §4.7's NEW, except
// the program itself is supplied rather than cleared).
func (in *Interpreter) LoadProgram(prog *ast.Program) {
	in.prog = prog
	in.Reset()
}

// Reset clears variables, stacks, the DATA pointer and user-function
// table without touching the loaded program (spec.md §7, "CLEAR
// resets variables and stacks without touching the program").
func (in *Interpreter) Reset() {
	in.store.Clear()
	in.fns = map[string]*ast.DefFn{}
	in.ip = 0
	in.loopStack = nil
	in.gosubStack = nil
	in.openFiles = map[int]bool{}
	in.outCol = 0
	in.harvestData()
	in.setState(StateReady)
}

// NewProgram resets everything, including the program itself (spec.md §8
// invariant 7): variable store, stacks, statement vector, run state.
func (in *Interpreter) NewProgram() {
	in.prog = ast.NewProgram()
	in.Reset()
}

// Program returns the currently loaded program.
func (in *Interpreter) Program() *ast.Program { return in.prog }

// ProvideInput appends textual tokens to the pending-input queue
// consumed by INPUT/INPUT# (spec.md §6's provideInput).
func (in *Interpreter) ProvideInput(values ...string) { in.input.Provide(values) }

// Snapshot returns the current scalar variable snapshot, e.g. for a
// host inspecting state after an error (spec.md §7, "the variable
// store ... is left intact").
func (in *Interpreter) Snapshot() vars.Snapshot { return in.store.Snapshot() }

// Close releases any closer registered by an output/tee option.
func (in *Interpreter) Close() error {
	var first error
	for _, cl := range in.closers {
		if err := cl.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Run executes the loaded program to completion, to STOPPED, or to a
// RuntimeError, recovering any unexpected Go-level panic at this single
// boundary (spec.md §7/§9; mirrors gothird's api.go Run(ctx)).
func (in *Interpreter) Run(ctx context.Context) error {
	err := panicerr.Recover("Interpreter", func() error {
		return in.run(ctx)
	})
	if err == nil {
		return nil
	}
	var re *RuntimeError
	if errors.As(err, &re) {
		return re
	}
	return err
}

// RunWithFeeder runs the program while concurrently feeding
// whitespace-separated tokens read line-by-line from r into the
// pending-input queue, using errgroup to tie the driver loop and the
// feeder together: Run finishing, or the feeder failing, cancels the
// other; a feeder that reaches EOF without error leaves Run going
// (spec.md §2's DOMAIN STACK commitment to golang.org/x/sync). Note a
// feeder reading
// an interactive, never-EOF source (e.g. os.Stdin) may still be
// blocked in its underlying Read after Run finishes; callers driving a
// real terminal should treat process exit as the real teardown, as the
// CLI does.
func (in *Interpreter) RunWithFeeder(ctx context.Context, r io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return in.Run(gctx)
	})
	g.Go(func() error { return in.feedInput(gctx, r) })
	return g.Wait()
}

func (in *Interpreter) feedInput(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		in.input.Provide(strings.Fields(scanner.Text()))
	}
	return scanner.Err()
}

func (in *Interpreter) run(ctx context.Context) error {
	in.setState(StateRunning)
	defer func() {
		if in.out != nil {
			in.out.Flush()
		}
	}()
	for {
		if ctx.Err() != nil {
			in.setState(StateStopped)
			return nil
		}
		if in.State() == StateStopped {
			return nil
		}
		if err := in.waitIfPaused(ctx); err != nil {
			return nil
		}
		if in.ip < 0 || in.ip >= len(in.prog.Stmts) {
			in.setState(StateStopped)
			return nil
		}

		stmt := in.prog.Stmts[in.ip]
		if liner, ok := stmt.(ast.Liner); ok {
			if line := liner.LineNumber(); line != 0 && in.debugger != nil {
				if in.debugger.Observe(line, in.store.Snapshot()) {
					in.setState(StatePaused)
					if err := in.waitIfPaused(ctx); err != nil {
						return nil
					}
				}
			}
		}

		nextIP, err := in.exec(ctx, in.ip, stmt)
		if err != nil {
			re := asRuntimeError(err, in.lineAt(in.ip))
			in.setState(StateError)
			return re
		}
		in.ip = nextIP
		in.stmtCount++
		if in.stmtCount%yieldEvery == 0 {
			runtime.Gosched()
		}
	}
}

func (in *Interpreter) waitIfPaused(ctx context.Context) error {
	for in.State() == StatePaused {
		select {
		case <-ctx.Done():
			in.setState(StateStopped)
			return ctx.Err()
		case <-time.After(pausePollInterval):
		}
	}
	return nil
}
