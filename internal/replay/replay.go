// Package replay executes one translated routine against the interpreter
// boundary, owning the capture sink for silent batch runs.
package replay

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"termtest/internal/script"
	"termtest/internal/terminal"
	"termtest/internal/timefmt"
)

// Options describes how an Engine runs scripts. TestMode marks batch runs
// driven by the harness; it is explicit configuration, never ambient
// process state. Now overrides the clock for capture-file stamps.
type Options struct {
	TestMode  bool
	Verbose   bool
	Capture   bool
	OutputDir string
	Now       func() time.Time
}

// Engine replays scripts through an Interpreter. Visible output goes to
// Stdout, diagnostics to Warn. The engine performs no fault suppression:
// whatever the interpreter raises is returned to the caller.
type Engine struct {
	interp terminal.Interpreter
	opts   Options
	stdout io.Writer
	warn   io.Writer
}

func New(interp terminal.Interpreter, opts Options, stdout, warn io.Writer) *Engine {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{interp: interp, opts: opts, stdout: stdout, warn: warn}
}

// Run resolves, translates, and executes a single script. When the script
// path does not exist a diagnostic is emitted; outside test mode the
// interpreter is launched interactively instead.
func (e *Engine) Run(ctx context.Context, path string, args script.Arguments) error {
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(e.warn, "script %s doesn't exist\n", path)
		if !e.opts.TestMode {
			return e.interp.Execute(ctx, terminal.Request{Output: e.stdout})
		}
	}

	raw, err := script.ReadLines(path)
	if err != nil {
		return err
	}
	lines := script.Resolve(raw, args, e.opts.TestMode)
	invocation := script.Translate(lines)

	req := terminal.Request{Commands: []string{invocation}, TestMode: true}

	if !e.opts.TestMode || e.opts.Verbose {
		req.Output = e.stdout
		return e.interp.Execute(ctx, req)
	}

	if !e.opts.Capture {
		req.Output = io.Discard
		return e.interp.Execute(ctx, req)
	}

	sink, err := e.openCapture(script.FirstCommand(invocation))
	if err != nil {
		return err
	}
	defer sink.Close()
	req.Output = sink
	return e.interp.Execute(ctx, req)
}

// openCapture creates the output directory if needed and a capture file
// named after the moment and the first command token.
func (e *Engine) openCapture(firstCmd string) (io.WriteCloser, error) {
	if err := os.MkdirAll(e.opts.OutputDir, 0o755); err != nil {
		return nil, err
	}
	name := fmt.Sprintf("%s_%s_output.txt", timefmt.Stamp(e.opts.Now()), firstCmd)
	file, err := os.Create(filepath.Join(e.opts.OutputDir, name))
	if err != nil {
		return nil, err
	}
	return file, nil
}
