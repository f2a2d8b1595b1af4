// Package report renders the operator-facing view of a batch: session
// banners, per-script progress lines, failure detail with narrowed
// tracebacks, and the closing summary.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"termtest/internal/runner"
	"termtest/internal/terminal"
	"termtest/internal/timefmt"
)

// defaultWidth matches the recorded-output width the original harness used;
// narrower terminals clamp down to what fits.
const defaultWidth = 90

var (
	colorGood    = color.New(color.FgGreen).SprintFunc()
	colorGoodOn  = color.New(color.FgGreen, color.Bold).SprintFunc()
	colorBad     = color.New(color.FgRed).SprintFunc()
	colorBadBold = color.New(color.FgRed, color.Bold).SprintFunc()
	colorDim     = color.New(color.FgHiBlack).SprintFunc()
	colorMark    = color.New(color.FgYellow).SprintFunc()
	colorBold    = color.New(color.Bold).SprintFunc()
)

// Printer writes report output to a single destination. It keeps no state
// besides layout, so rendering the same Summary twice produces identical
// bytes.
type Printer struct {
	out   io.Writer
	width int
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, width: displayWidth(out)}
}

func displayWidth(out io.Writer) int {
	file, ok := out.(*os.File)
	if !ok {
		return defaultWidth
	}
	cols, _, err := term.GetSize(int(file.Fd()))
	if err != nil || cols <= 0 || cols >= defaultWidth {
		return defaultWidth
	}
	return cols
}

// title centers text in a full-width banner of pad characters.
func (p *Printer) title(text string, pad string) string {
	text = " " + text + " "
	fill := p.width - runewidth.StringWidth(text)
	if fill < 2 {
		fill = 2
	}
	left := fill / 2
	right := fill - left
	return strings.Repeat(pad, left) + text + strings.Repeat(pad, right)
}

// SessionStart prints the opening banner.
func (p *Printer) SessionStart() {
	fmt.Fprintln(p.out, colorBold(p.title("integration test session starts", "=")))
}

// Collected reports where scripts were gathered from and how many.
func (p *Printer) Collected(root string, n int) {
	fmt.Fprintf(p.out, "Collecting scripts from: %s\n\n", root)
	fmt.Fprintf(p.out, "%s\n\n", colorBold(fmt.Sprintf("collected %d scripts", n)))
}

// Progress prints one right-padded line per finished script with a
// percentage cell. Lines stay green until the first failure of the run.
func (p *Printer) Progress(shortName string, completed, total int, anyFailure bool) {
	pct := fmt.Sprintf("%.0f%%", float64(completed)/float64(total)*100)
	cell := "[" + strings.Repeat(" ", 4-len(pct)) + pct + "]"

	spacing := p.width - runewidth.StringWidth(shortName) - len(cell)
	if spacing < 1 {
		spacing = 1
	}
	line := shortName + strings.Repeat(" ", spacing) + cell

	style := colorGood
	if anyFailure {
		style = colorBad
	}
	fmt.Fprintln(p.out, style(line))
}

// Failures prints the per-script failure detail: a dashed banner, the
// narrowed traceback, then the fault's category and message. Frames outside
// the interpreter's own command code are dimmed; the frame closest to the
// failing command is highlighted.
func (p *Printer) Failures(sum *runner.Summary) {
	if sum.Failures == 0 {
		return
	}
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.title("FAILURES", "="))

	for _, name := range sum.Order {
		fault := sum.Fails[name]

		fmt.Fprintln(p.out, colorBad(p.title(name, "-")))
		fmt.Fprintln(p.out, colorBadBold("\nTraceback:"))
		p.printFrames(fault.Frames)

		fmt.Fprintf(p.out, "%s %s\n", colorBadBold("Exception type:"), fault.Category)
		fmt.Fprintf(p.out, "%s %s\n", colorBadBold("Detail:"), fault.Message)
		fmt.Fprintln(p.out, strings.Repeat("- ", p.width/2))
	}
}

func (p *Printer) printFrames(frames []terminal.Frame) {
	last := -1
	for i, frame := range frames {
		if !frame.Internal {
			last = i
		}
	}
	for i, frame := range frames {
		line := frame.String()
		switch {
		case frame.Internal:
			line = colorDim(line)
		case i == last || (i+1 < len(frames) && frames[i+1].Internal):
			line = colorMark(line)
		}
		fmt.Fprintln(p.out, line)
	}
}

// Summary prints the closing section: one FAILED line per fault naming the
// offending command from its dispatch tag, then the counts banner.
func (p *Printer) Summary(sum *runner.Summary) {
	if sum.Failures > 0 {
		fmt.Fprintln(p.out)
		fmt.Fprintln(p.out, p.title("integration test summary", "="))
		for _, name := range sum.Order {
			fmt.Fprintf(p.out, "FAILED %s -> command: %s\n", name, sum.Fails[name].BrokenCommand())
		}
	}

	var plain, styled []string
	if sum.Failures > 0 {
		part := fmt.Sprintf("%d failed, ", sum.Failures)
		plain = append(plain, part)
		styled = append(styled, colorBadBold(part))
	}
	if sum.Successes > 0 {
		part := fmt.Sprintf("%d passed", sum.Successes)
		plain = append(plain, part)
		styled = append(styled, colorGoodOn(part))
	}
	tail := " in " + timefmt.Elapsed(sum.Elapsed)

	pads := colorGood
	if sum.Failures > 0 {
		pads = colorBad
	}
	fmt.Fprintln(p.out, p.banner(strings.Join(plain, "")+tail, strings.Join(styled, "")+tail, "=", pads))
}

// banner centers styled text in a pad-character banner, sizing from the
// unstyled text so escape codes do not skew the layout.
func (p *Printer) banner(plain, styled, pad string, style func(a ...interface{}) string) string {
	fill := p.width - runewidth.StringWidth(plain) - 2
	if fill < 2 {
		fill = 2
	}
	left := fill / 2
	right := fill - left
	return style(strings.Repeat(pad, left)) + " " + styled + " " + style(strings.Repeat(pad, right))
}
