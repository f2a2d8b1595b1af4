package runner

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termtest/internal/replay"
	"termtest/internal/script"
	"termtest/internal/terminal"
)

type scriptedInterp struct {
	faultOn string
	panicOn string
	runs    []string
}

func (s *scriptedInterp) Execute(ctx context.Context, req terminal.Request) error {
	invocation := strings.Join(req.Commands, " ")
	s.runs = append(s.runs, invocation)
	if s.panicOn != "" && strings.Contains(invocation, s.panicOn) {
		panic("interpreter exploded")
	}
	if s.faultOn != "" && strings.Contains(invocation, s.faultOn) {
		return &terminal.Fault{
			Category: "ValueError",
			Message:  "no data for symbol",
			Frames: []terminal.Frame{
				{Function: "menu.dispatch", File: "menu.go", Line: 10, Command: "load"},
			},
		}
	}
	return nil
}

func seedScripts(t *testing.T, root string, names ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(root, name+script.Extension)
		require.NoError(t, os.WriteFile(path, []byte("stocks\nload "+name+"\n"), 0o644))
		paths = append(paths, path)
	}
	return paths
}

func TestRunIsolatesFailures(t *testing.T) {
	root := t.TempDir()
	files := seedScripts(t, root, "alpha", "boom", "gamma")

	interp := &scriptedInterp{faultOn: "boom"}
	engine := replay.New(interp, replay.Options{TestMode: true}, io.Discard, io.Discard)

	var progressCalls int
	runner := New(engine, root, func(short string, completed, total int, anyFailure bool) {
		progressCalls++
		if completed == total {
			assert.True(t, anyFailure)
		}
	})

	sum := runner.Run(context.Background(), files, script.Arguments{})

	assert.Equal(t, 2, sum.Successes)
	assert.Equal(t, 1, sum.Failures)
	assert.Len(t, interp.runs, 3, "all scripts must execute despite the failure")
	assert.Equal(t, 3, progressCalls)

	require.Len(t, sum.Order, 1)
	key := "boom" + script.Extension
	assert.Equal(t, key, sum.Order[0])
	require.Contains(t, sum.Fails, key)
	assert.Equal(t, "ValueError", sum.Fails[key].Category)
	assert.Equal(t, "load", sum.Fails[key].BrokenCommand())
}

func TestRunRecordsPanicAsFault(t *testing.T) {
	root := t.TempDir()
	files := seedScripts(t, root, "alpha", "kaput")

	interp := &scriptedInterp{panicOn: "kaput"}
	engine := replay.New(interp, replay.Options{TestMode: true}, io.Discard, io.Discard)
	runner := New(engine, root, nil)

	sum := runner.Run(context.Background(), files, script.Arguments{})

	assert.Equal(t, 1, sum.Successes)
	require.Equal(t, 1, sum.Failures)

	fault := sum.Fails["kaput"+script.Extension]
	require.NotNil(t, fault)
	assert.Equal(t, "Panic", fault.Category)
	assert.Contains(t, fault.Message, "interpreter exploded")
	assert.NotEmpty(t, fault.Frames)
}

func TestRunEmptyBatch(t *testing.T) {
	engine := replay.New(&scriptedInterp{}, replay.Options{TestMode: true}, io.Discard, io.Discard)
	runner := New(engine, t.TempDir(), nil)

	sum := runner.Run(context.Background(), nil, script.Arguments{})
	assert.Zero(t, sum.Successes)
	assert.Zero(t, sum.Failures)
	assert.Empty(t, sum.Fails)
}
