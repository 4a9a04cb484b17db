package interp

import (
	"io"

	"github.com/jcorbin/retrobasic/internal/flushio"
	"github.com/jcorbin/retrobasic/peripherals"
)

// Option configures an Interpreter at construction time, the same
// functional-options shape as gothird's VMOption.
type Option interface{ apply(in *Interpreter) }

func defaultFileSystem() *peripherals.MemFileSystem { return peripherals.NewMemFileSystem() }

func defaultOptions() Option {
	mem := defaultFileSystem()
	return Options(
		WithOutput(io.Discard),
		WithGraphics(peripherals.NopGraphics{}),
		WithAudio(peripherals.NopAudio{}),
		WithFileSystem(mem),
		WithPersistence(mem),
	)
}

// Options flattens opts into a single Option, the same way
// gothird.VMOptions collapses a slice of VMOption.
func Options(opts ...Option) Option {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil, noption:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	switch len(res) {
	case 0:
		return noption{}
	case 1:
		return res[0]
	default:
		return res
	}
}

type noption struct{}

func (noption) apply(*Interpreter) {}

type options []Option

func (opts options) apply(in *Interpreter) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(in)
		}
	}
}

type outputOption struct{ io.Writer }

// WithOutput sets the PRINT destination.
func WithOutput(w io.Writer) Option { return outputOption{w} }

func (o outputOption) apply(in *Interpreter) {
	if in.out != nil {
		in.out.Flush()
	}
	in.out = flushio.NewWriteFlusher(o.Writer)
	if cl, ok := o.Writer.(io.Closer); ok {
		in.closers = append(in.closers, cl)
	}
}

type teeOption struct{ io.Writer }

// WithTee additionally mirrors PRINT output to w.
func WithTee(w io.Writer) Option { return teeOption{w} }

func (o teeOption) apply(in *Interpreter) {
	in.out = flushio.WriteFlushers(in.out, flushio.NewWriteFlusher(o.Writer))
	if cl, ok := o.Writer.(io.Closer); ok {
		in.closers = append(in.closers, cl)
	}
}

type initialInputOption []string

// WithInitialInput primes the pending-input queue with values, as if
// the host had called ProvideInput before the run started.
func WithInitialInput(values ...string) Option { return initialInputOption(values) }

func (o initialInputOption) apply(in *Interpreter) { in.input.Provide(o) }

type logfnOption func(mess string, args ...interface{})

// WithLogf sets the diagnostic log sink, the same shape as gothird's
// WithLogf/VM.logfn.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return logfnOption(logfn) }

func (f logfnOption) apply(in *Interpreter) { in.logfn = f }

type graphicsOption struct{ peripherals.Graphics }

// WithGraphics attaches the graphics peripheral.
func WithGraphics(g peripherals.Graphics) Option { return graphicsOption{g} }

func (o graphicsOption) apply(in *Interpreter) { in.graphics = o.Graphics }

type audioOption struct{ peripherals.Audio }

// WithAudio attaches the audio peripheral.
func WithAudio(a peripherals.Audio) Option { return audioOption{a} }

func (o audioOption) apply(in *Interpreter) { in.audio = o.Audio }

type fileSystemOption struct{ peripherals.FileSystem }

// WithFileSystem attaches the file-I/O peripheral behind OPEN/CLOSE/
// PRINT#/INPUT#.
func WithFileSystem(fs peripherals.FileSystem) Option { return fileSystemOption{fs} }

func (o fileSystemOption) apply(in *Interpreter) { in.files = o.FileSystem }

type persistenceOption struct{ peripherals.Persistence }

// WithPersistence attaches the SAVE/LOAD backend.
func WithPersistence(p peripherals.Persistence) Option { return persistenceOption{p} }

func (o persistenceOption) apply(in *Interpreter) { in.persist = o.Persistence }

type debuggerOption struct{ Debugger }

// WithDebugger attaches a debugger observer (see Debugger).
func WithDebugger(d Debugger) Option { return debuggerOption{d} }

func (o debuggerOption) apply(in *Interpreter) { in.debugger = o.Debugger }

type randSeedOption int64

// WithRandSeed makes RND deterministic, for tests.
func WithRandSeed(seed int64) Option { return randSeedOption(seed) }

func (o randSeedOption) apply(in *Interpreter) { in.randSeed = int64(o) }
