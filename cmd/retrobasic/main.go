// Command retrobasic runs a BASIC program file, optionally under the
// debugger and profiler (spec.md §4.5/§4.6), feeding further stdin
// lines to any INPUT statements the program executes.
//
// Grounded on gothird/main.go's flag parsing, logio.Logger wiring, and
// context.WithTimeout/defer os.Exit(log.ExitCode()) shape.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jcorbin/retrobasic/debug"
	"github.com/jcorbin/retrobasic/interp"
	"github.com/jcorbin/retrobasic/internal/logio"
	"github.com/jcorbin/retrobasic/parser"
	"github.com/jcorbin/retrobasic/profile"
)

func main() {
	var (
		trace       bool
		timeout     time.Duration
		doProfile   bool
		breakpoints stringList
	)
	flag.BoolVar(&trace, "trace", false, "enable debugger trace logging")
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&doProfile, "profile", false, "print a profiling report after execution")
	flag.Var(&breakpoints, "breakpoint", "line[:condition] to break at; repeatable")
	flag.Parse()

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer func() { os.Exit(log.ExitCode()) }()

	path := flag.Arg(0)
	if path == "" {
		log.Errorf("usage: retrobasic [flags] program.bas")
		return
	}
	src, err := os.ReadFile(path)
	if err != nil {
		log.Errorf("%v", err)
		return
	}
	prog, err := parser.Parse(string(src))
	if err != nil {
		log.Errorf("%v", err)
		return
	}

	in := interp.New(
		interp.WithOutput(os.Stdout),
		interp.WithLogf(log.Leveledf("TRACE")),
	)
	in.LoadProgram(prog)

	var dbg *debug.Debugger
	if trace || doProfile || len(breakpoints) > 0 {
		dbg = debug.New(in, debug.WithLogf(log.Leveledf("DEBUG")))
		in.SetDebugger(dbg)
		if trace {
			dbg.SetTrace(true)
		}
		for _, raw := range breakpoints {
			line, cond := parseBreakpointFlag(raw)
			if err := dbg.SetBreakpoint(line, cond); err != nil {
				log.Errorf("%v", err)
				return
			}
		}
	}

	ctx := context.Background()
	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log.ErrorIf(in.RunWithFeeder(ctx, os.Stdin))

	if doProfile && dbg != nil {
		report := profile.Analyze(dbg.ProfileTable())
		fmt.Fprint(os.Stderr, report.String())
	}
}

// parseBreakpointFlag splits a "-breakpoint" value of the form
// "line" or "line:condition" into its parts.
func parseBreakpointFlag(raw string) (line int, cond string) {
	name, c, hasCond := strings.Cut(raw, ":")
	line, _ = strconv.Atoi(strings.TrimSpace(name))
	if hasCond {
		cond = c
	}
	return line, cond
}

// stringList accumulates repeated occurrences of a flag into a slice,
// the standard flag.Value pattern for "repeatable flag" (flag package
// doesn't offer one directly).
type stringList []string

func (l *stringList) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(*l, ",")
}

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}
