package terminal

import (
	"errors"
	"fmt"
)

// Frame is one step of a fault's call-stack context. Interpreters tag the
// frame that dispatched a user command by setting Command; frames belonging
// to library plumbing rather than the interpreter's own command code set
// Internal so reporters can dim them.
type Frame struct {
	Function string
	File     string
	Line     int
	Command  string
	Internal bool
}

func (f Frame) String() string {
	return fmt.Sprintf("  %s:%d in %s", f.File, f.Line, f.Function)
}

// Fault is an unhandled failure raised while executing a script. Frames are
// ordered outermost first, matching how a traceback reads top to bottom.
type Fault struct {
	Category string
	Message  string
	Frames   []Frame
	Cause    error
}

func (f *Fault) Error() string {
	if f.Message == "" {
		return f.Category
	}
	return f.Category + ": " + f.Message
}

func (f *Fault) Unwrap() error {
	return f.Cause
}

// BrokenCommand returns the dispatch tag of the innermost tagged frame, or
// "unknown" when no frame carries one.
func (f *Fault) BrokenCommand() string {
	for i := len(f.Frames) - 1; i >= 0; i-- {
		if f.Frames[i].Command != "" {
			return f.Frames[i].Command
		}
	}
	return "unknown"
}

// AsFault converts any error into a *Fault for reporting. Errors that are
// not already faults become a frameless Fault with category "Error".
func AsFault(err error) *Fault {
	if err == nil {
		return nil
	}
	var f *Fault
	if errors.As(err, &f) {
		return f
	}
	return &Fault{Category: "Error", Message: err.Error(), Cause: err}
}
