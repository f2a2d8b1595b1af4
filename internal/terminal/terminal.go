// Package terminal defines the boundary between the test harness and the
// command interpreter it replays scripts against. The harness never depends
// on a concrete interpreter; it hands a Request to anything implementing
// Interpreter and observes success or a Fault.
package terminal

import (
	"context"
	"io"
)

// Request describes one interpreter invocation. Output is the sink the
// interpreter must write to for the duration of the call; the caller owns
// its lifecycle. TestMode tells the interpreter it is driven by the harness
// rather than a person, so it must terminate instead of waiting for input.
type Request struct {
	Commands []string
	Output   io.Writer
	TestMode bool
}

// Interpreter executes a translated command path. Any unhandled failure is
// returned as an error, preferably a *Fault so the harness can report
// frames and the offending command.
type Interpreter interface {
	Execute(ctx context.Context, req Request) error
}
