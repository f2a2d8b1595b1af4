package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"termtest/internal/config"
)

// seedWorkspace builds a config, stub table, and scripts root inside a temp
// dir and returns the config path.
func seedWorkspace(t *testing.T, scripts map[string]string, table string) string {
	t.Helper()
	dir := t.TempDir()

	root := filepath.Join(dir, "scripts")
	for name, content := range scripts {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write script: %v", err)
		}
	}

	tablePath := filepath.Join(dir, "termstub.yml")
	if err := os.WriteFile(tablePath, []byte(table), 0o644); err != nil {
		t.Fatalf("write stub table: %v", err)
	}

	off := false
	cfgPath := filepath.Join(dir, ".termtest.toml")
	err := config.Save(cfgPath, config.Config{
		ScriptsRoot: root,
		OutputDir:   filepath.Join(dir, "captures"),
		Capture:     &off,
		StubTable:   tablePath,
	})
	if err != nil {
		t.Fatalf("save config: %v", err)
	}
	return cfgPath
}

const stubTable = `commands:
  - path: stocks/load
    output: "Loaded"
  - path: crypto/price
    fault:
      category: ValueError
      message: "no data"
`

func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	cmd := newRootCommand()
	var out, errOut strings.Builder
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootRunsGreenBatch(t *testing.T) {
	cfg := seedWorkspace(t, map[string]string{
		"stocks/load.routine": "stocks\nload AAPL\n",
	}, stubTable)

	out, _, err := runRoot(t, "--config", cfg)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out, "integration test session starts") {
		t.Fatalf("missing session banner:\n%s", out)
	}
	if !strings.Contains(out, "collected 1 scripts") {
		t.Fatalf("missing collection banner:\n%s", out)
	}
	if !strings.Contains(out, "1 passed") {
		t.Fatalf("missing summary:\n%s", out)
	}
}

func TestRootFailureSetsExitError(t *testing.T) {
	cfg := seedWorkspace(t, map[string]string{
		"stocks/load.routine":  "stocks\nload AAPL\n",
		"crypto/price.routine": "crypto\nprice BTC\n",
	}, stubTable)

	out, _, err := runRoot(t, "--config", cfg)
	if err == nil {
		t.Fatalf("expected a non-nil error when scripts fail")
	}
	if !strings.Contains(err.Error(), "1 of 2 scripts failed") {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "FAILED crypto/price.routine -> command: price") {
		t.Fatalf("missing FAILED line:\n%s", out)
	}
	if !strings.Contains(out, "Exception type: ValueError") {
		t.Fatalf("missing failure detail:\n%s", out)
	}
}

func TestRootSpecialArgumentOverride(t *testing.T) {
	cfg := seedWorkspace(t, map[string]string{
		"stocks/load.routine": "stocks\nload ${ticker=GME}\n",
	}, stubTable)

	out, _, err := runRoot(t, "--config", cfg, "--verbose", "--ticker", "TSLA")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out, "Loaded TSLA") {
		t.Fatalf("override not applied:\n%s", out)
	}
}

func TestRootEmptySelectionWarnsWithoutError(t *testing.T) {
	cfg := seedWorkspace(t, map[string]string{}, stubTable)

	_, errOut, err := runRoot(t, "--config", cfg, "no/such/dir")
	if err != nil {
		t.Fatalf("empty selection must not error: %v", err)
	}
	if !strings.Contains(errOut, "can't find") {
		t.Fatalf("missing discovery warning:\n%s", errOut)
	}
	if !strings.Contains(errOut, "nothing to replay") {
		t.Fatalf("missing empty-selection diagnostic:\n%s", errOut)
	}
}

func TestListPrintsShortNames(t *testing.T) {
	cfg := seedWorkspace(t, map[string]string{
		"stocks/load.routine":  "stocks\nload AAPL\n",
		"crypto/price.routine": "crypto\nprice BTC\n",
	}, stubTable)

	out, _, err := runRoot(t, "list", "--config", cfg)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("list output = %q", out)
	}
	if lines[0] != filepath.Join("crypto", "price.routine") || lines[1] != filepath.Join("stocks", "load.routine") {
		t.Fatalf("unexpected list order: %v", lines)
	}
}
