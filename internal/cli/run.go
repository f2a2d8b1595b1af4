package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"termtest/internal/config"
	"termtest/internal/replay"
	"termtest/internal/report"
	"termtest/internal/runner"
	"termtest/internal/script"
	"termtest/internal/terminal"
	"termtest/internal/termstub"
)

type runOptions struct {
	paths      []string
	verbose    bool
	noCapture  bool
	configPath string
	special    map[string]*string
}

func newRunOptions() *runOptions {
	return &runOptions{special: make(map[string]*string, len(script.SpecialKeys))}
}

func (o *runOptions) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringSliceVarP(&o.paths, "path", "p", nil, "script file or directory under the scripts root (repeatable)")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "show live interpreter output instead of capturing it")
	flags.BoolVar(&o.noCapture, "no-capture", false, "skip writing per-script output files")
	flags.StringVar(&o.configPath, "config", ".termtest.toml", "harness config file")
	for _, key := range script.SpecialKeys {
		o.special[key] = flags.String(key, "", "override the default value for "+key)
	}
}

func (o *runOptions) specialArgs() map[string]string {
	special := make(map[string]string, len(o.special))
	for key, value := range o.special {
		special[key] = *value
	}
	return special
}

func runBatch(cmd *cobra.Command, opts *runOptions, args []string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	interp, err := buildInterpreter(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printer := report.NewPrinter(out)
	printer.SessionStart()

	fragments := append(append([]string{}, opts.paths...), args...)
	files, err := script.Locate(cfg.ScriptsRoot, fragments, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	printer.Collected(cfg.ScriptsRoot, len(files))
	if len(files) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: no scripts matched; nothing to replay")
		return nil
	}

	engine := replay.New(interp, replay.Options{
		TestMode:  true,
		Verbose:   opts.verbose,
		Capture:   cfg.CaptureEnabled() && !opts.noCapture,
		OutputDir: cfg.OutputDir,
	}, out, cmd.ErrOrStderr())

	batch := runner.New(engine, cfg.ScriptsRoot, printer.Progress)
	sum := batch.Run(cmd.Context(), files, script.Arguments{Special: opts.specialArgs()})

	printer.Failures(sum)
	printer.Summary(sum)

	if sum.Failures > 0 {
		return fmt.Errorf("%d of %d scripts failed", sum.Failures, sum.Failures+sum.Successes)
	}
	return nil
}

func buildInterpreter(cfg config.Config) (terminal.Interpreter, error) {
	if cfg.StubTable != "" {
		return termstub.Load(cfg.StubTable)
	}
	return termstub.Demo(), nil
}
