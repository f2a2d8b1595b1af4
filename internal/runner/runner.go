// Package runner drives a batch of discovered scripts through the replay
// engine and aggregates per-script outcomes. One script's fault never
// aborts the batch.
package runner

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"termtest/internal/replay"
	"termtest/internal/script"
	"termtest/internal/terminal"
)

// Summary is the immutable result of one batch. Fails is keyed by the
// script's short name; Order preserves discovery order so reporting is
// deterministic.
type Summary struct {
	Successes int
	Failures  int
	Elapsed   time.Duration
	Fails     map[string]*terminal.Fault
	Order     []string
}

// Progress is called after every script with the running completion state.
type Progress func(shortName string, completed, total int, anyFailure bool)

type Runner struct {
	engine   *replay.Engine
	root     string
	progress Progress
	now      func() time.Time
}

func New(engine *replay.Engine, root string, progress Progress) *Runner {
	return &Runner{engine: engine, root: root, progress: progress, now: time.Now}
}

// Run replays every file once, in order. Faults are recorded and the batch
// continues; the returned Summary is complete regardless of failures.
func (r *Runner) Run(ctx context.Context, files []string, args script.Arguments) *Summary {
	start := r.now()
	sum := &Summary{Fails: make(map[string]*terminal.Fault)}

	for i, file := range files {
		short := script.ShortName(r.root, file)

		if err := r.runOne(ctx, file, args); err != nil {
			sum.Fails[short] = terminal.AsFault(err)
			sum.Order = append(sum.Order, short)
			sum.Failures++
		} else {
			sum.Successes++
		}

		if r.progress != nil {
			r.progress(short, i+1, len(files), sum.Failures > 0)
		}
	}

	sum.Elapsed = r.now().Sub(start)
	return sum
}

// runOne contains a single script's execution, converting a panicking
// interpreter into a recorded fault so the batch survives.
func (r *Runner) runOne(ctx context.Context, file string, args script.Arguments) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &terminal.Fault{
				Category: "Panic",
				Message:  fmt.Sprint(v),
				Frames:   panicFrames(),
			}
		}
	}()
	return r.engine.Run(ctx, file, args)
}

func panicFrames() []terminal.Frame {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(4, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var out []terminal.Frame
	for {
		frame, more := frames.Next()
		out = append(out, terminal.Frame{
			Function: frame.Function,
			File:     frame.File,
			Line:     frame.Line,
			Internal: strings.HasPrefix(frame.Function, "runtime."),
		})
		if !more {
			break
		}
	}
	// Callers walks innermost first; reports read outermost first.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
