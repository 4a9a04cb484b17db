package debug

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jcorbin/retrobasic/ast"
	"github.com/jcorbin/retrobasic/eval"
	"github.com/jcorbin/retrobasic/parser"
	"github.com/jcorbin/retrobasic/vars"
)

// Watch is a named expression whose value is cached between
// observations; a change fires an event through the debugger's log
// sink (spec.md §4.5).
type Watch struct {
	Name string
	Expr ast.Expr

	mu      sync.Mutex
	last    vars.Value
	hasLast bool
}

// AddWatch registers a new watch named name, evaluated from exprSource
// each time the debugger observes a statement.
func (d *Debugger) AddWatch(name, exprSource string) error {
	expr, err := parser.ParseExpr(exprSource)
	if err != nil {
		return fmt.Errorf("watch %s: %w", name, err)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.watches = append(d.watches, &Watch{Name: name, Expr: expr})
	return nil
}

// WatchValue reports a watch's current name and last observed value.
type WatchValue struct {
	Name  string
	Value vars.Value
}

// Watches returns the current value of every registered watch, in
// registration order.
func (d *Debugger) Watches() []WatchValue {
	d.mu.Lock()
	watches := append([]*Watch(nil), d.watches...)
	d.mu.Unlock()

	out := make([]WatchValue, len(watches))
	for i, w := range watches {
		w.mu.Lock()
		out[i] = WatchValue{Name: w.Name, Value: w.last}
		w.mu.Unlock()
	}
	return out
}

// evaluateWatches re-evaluates every registered watch concurrently,
// bounded by watchSem (golang.org/x/sync/semaphore, SPEC_FULL.md §2),
// and logs a change event for each watch whose value differs from its
// cached last value.
func (d *Debugger) evaluateWatches() {
	d.mu.Lock()
	watches := append([]*Watch(nil), d.watches...)
	sem := d.watchSem
	d.mu.Unlock()
	if len(watches) == 0 {
		return
	}

	var wg sync.WaitGroup
	ctx := context.Background()
	for _, w := range watches {
		if err := sem.Acquire(ctx, 1); err != nil {
			continue
		}
		wg.Add(1)
		go func(w *Watch) {
			defer wg.Done()
			defer sem.Release(1)
			d.evaluateWatch(w)
		}(w)
	}
	wg.Wait()
}

func (d *Debugger) evaluateWatch(w *Watch) {
	v, err := eval.Evaluate(w.Expr, d.in)
	if err != nil {
		d.logf("WATCH %s: error: %v", w.Name, err)
		return
	}
	w.mu.Lock()
	changed := !w.hasLast || !valueEqual(v, w.last)
	w.last, w.hasLast = v, true
	w.mu.Unlock()
	if changed {
		d.logf("WATCH %s = %s", w.Name, v.String())
	}
}

// valueEqual compares two vars.Value by content; Value isn't directly
// comparable with == because its Buf field is a slice.
func valueEqual(a, b vars.Value) bool {
	return a.Kind == b.Kind && a.Num == b.Num && a.Str == b.Str && bytes.Equal(a.Buf, b.Buf)
}

// WatchNames returns every registered watch name, sorted.
func (d *Debugger) WatchNames() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	names := make([]string, len(d.watches))
	for i, w := range d.watches {
		names[i] = w.Name
	}
	sort.Strings(names)
	return names
}
