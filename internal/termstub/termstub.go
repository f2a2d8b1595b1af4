// Package termstub is a scriptable in-process interpreter used for
// self-contained harness runs and tests. Its command table is declared in
// YAML, so fixtures can decide which command paths print output and which
// raise faults, without a real terminal application in the loop.
package termstub

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"termtest/internal/terminal"
)

// Spec is the YAML shape of a stub command table.
//
//	commands:
//	  - path: stocks/load
//	    output: "Loaded AAPL"
//	  - path: crypto/price
//	    fault: {category: ValueError, message: "no data"}
type Spec struct {
	Commands []CommandSpec `yaml:"commands"`
}

type CommandSpec struct {
	Path   string     `yaml:"path"`
	Output string     `yaml:"output,omitempty"`
	Fault  *FaultSpec `yaml:"fault,omitempty"`
}

type FaultSpec struct {
	Category string `yaml:"category"`
	Message  string `yaml:"message"`
}

// Stub walks slash-delimited invocations against its command table. Menu
// segments push context; "home" returns to the root; "exit" ends the
// session.
type Stub struct {
	commands map[string]CommandSpec
}

func New(spec Spec) *Stub {
	commands := make(map[string]CommandSpec, len(spec.Commands))
	for _, cmd := range spec.Commands {
		commands[strings.Trim(cmd.Path, "/")] = cmd
	}
	return &Stub{commands: commands}
}

// Load reads a command table from a YAML file.
func Load(path string) (*Stub, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return New(spec), nil
}

// Demo returns a stub with a small built-in table, enough to replay the
// sample routines shipped with the harness.
func Demo() *Stub {
	return New(Spec{Commands: []CommandSpec{
		{Path: "stocks/load", Output: "Loaded symbol"},
		{Path: "stocks/candle", Output: "Rendered candle chart"},
		{Path: "crypto/price", Output: "Fetched spot price"},
		{Path: "economy/events", Output: "Fetched calendar"},
	}})
}

func (s *Stub) Execute(ctx context.Context, req terminal.Request) error {
	out := req.Output
	if out == nil {
		out = io.Discard
	}
	if len(req.Commands) == 0 {
		fmt.Fprintln(out, "termstub: interactive session, nothing to do")
		return nil
	}

	for _, invocation := range req.Commands {
		if err := s.runInvocation(ctx, invocation, out); err != nil {
			return err
		}
	}
	return nil
}

func (s *Stub) runInvocation(ctx context.Context, invocation string, out io.Writer) error {
	if rest, ok := strings.CutPrefix(invocation, "export "); ok {
		folder, path, found := strings.Cut(rest, " ")
		if found {
			fmt.Fprintf(out, "exporting to %s\n", folder)
			invocation = path
		}
	}

	var menu []string
	for _, segment := range strings.Split(strings.TrimPrefix(invocation, "/"), "/") {
		if err := ctx.Err(); err != nil {
			return err
		}
		fields := strings.Fields(segment)
		if len(fields) == 0 {
			continue
		}
		name := fields[0]

		switch name {
		case "home":
			menu = menu[:0]
			continue
		case "exit", "quit":
			return nil
		}

		full := strings.Join(append(append([]string{}, menu...), name), "/")
		if cmd, ok := s.commands[full]; ok {
			if err := s.dispatch(cmd, name, fields[1:], out); err != nil {
				return err
			}
			continue
		}
		if s.hasMenu(full) {
			menu = append(menu, name)
			continue
		}
		return s.unknownFault(name, full)
	}
	return nil
}

func (s *Stub) dispatch(cmd CommandSpec, name string, args []string, out io.Writer) error {
	if cmd.Fault != nil {
		return &terminal.Fault{
			Category: cmd.Fault.Category,
			Message:  cmd.Fault.Message,
			Frames:   stubFrames(name),
		}
	}
	if len(args) > 0 {
		fmt.Fprintf(out, "%s %s\n", cmd.Output, strings.Join(args, " "))
		return nil
	}
	fmt.Fprintln(out, cmd.Output)
	return nil
}

// hasMenu reports whether any registered command lives under prefix.
func (s *Stub) hasMenu(prefix string) bool {
	for path := range s.commands {
		if strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

func (s *Stub) unknownFault(name, full string) error {
	return &terminal.Fault{
		Category: "UnknownCommand",
		Message:  fmt.Sprintf("no command or menu %q", full),
		Frames:   stubFrames(name),
	}
}

func stubFrames(command string) []terminal.Frame {
	return []terminal.Frame{
		{Function: "termstub.(*Stub).Execute", File: "internal/termstub/termstub.go", Line: 92},
		{Function: "termstub.(*Stub).dispatch", File: "internal/termstub/termstub.go", Line: 132, Command: command},
		{Function: "http.(*Client).Do", File: "net/http/client.go", Line: 590, Internal: true},
	}
}
