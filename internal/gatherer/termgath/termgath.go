// Package termgath prints evaluation progress for a human at a terminal.
package termgath

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/oa-drill/evaluator/internal/evaluator"
	"github.com/oa-drill/evaluator/internal/gatherer/respbuilder"
	"github.com/oa-drill/evaluator/internal/process"
)

const (
	excerptHeight = 10
	excerptWidth  = 80
)

type TerminalGatherer struct {
	StartedAt time.Time
	// Verbose also prints input, expected and actual output of failed cases.
	Verbose bool

	out   io.Writer
	ok    *color.Color
	fail  *color.Color
	warn  *color.Color
	faint *color.Color
}

func New(out io.Writer) *TerminalGatherer {
	return &TerminalGatherer{
		StartedAt: time.Now(),
		out:       out,
		ok:        color.New(color.FgGreen, color.Bold),
		fail:      color.New(color.FgRed, color.Bold),
		warn:      color.New(color.FgYellow, color.Bold),
		faint:     color.New(color.Faint),
	}
}

var _ evaluator.Gatherer = (*TerminalGatherer)(nil)

func (t *TerminalGatherer) StartJob(evalID string, total int) {
	fmt.Fprintf(t.out, "== Evaluation %s started (%d cases) ==\n", evalID, total)
}

func (t *TerminalGatherer) StartCompile() {
	fmt.Fprintln(t.out, "-- Compilation started --")
}

func (t *TerminalGatherer) FinishCompile(run *process.Result) {
	if run == nil {
		return
	}
	fmt.Fprintf(t.out, "-- Compilation finished: exit=%d wall=%s --\n",
		run.ExitCode, run.Elapsed.Round(time.Millisecond))
}

func (t *TerminalGatherer) ReachTest(index int, _, _ string) {
	t.faint.Fprintf(t.out, "-> Case %d\n", index)
}

func (t *TerminalGatherer) IgnoreTest(index int) {
	t.faint.Fprintf(t.out, "-> Case %d skipped\n", index)
}

func (t *TerminalGatherer) FinishTest(c evaluator.CaseResult, run *process.Result) {
	wall := ""
	if run != nil {
		wall = " (" + run.Elapsed.Round(time.Millisecond).String() + ")"
	}
	switch {
	case c.Passed:
		t.ok.Fprintf(t.out, "<- Case %d passed%s\n", c.Index, wall)
		return
	case c.TimedOut:
		t.warn.Fprintf(t.out, "<- Case %d timed out%s\n", c.Index, wall)
	default:
		t.fail.Fprintf(t.out, "<- Case %d failed: %s%s\n", c.Index, c.Reason, wall)
	}
	if !t.Verbose {
		return
	}
	t.block("input", c.Input)
	t.block("expected", c.Expected)
	t.block("got", c.Actual)
	t.block("stderr", c.Stderr)
}

func (t *TerminalGatherer) block(title, body string) {
	if body == "" {
		return
	}
	body = respbuilder.TrimToRect(strings.TrimRight(body, "\n"), excerptHeight, excerptWidth)
	fmt.Fprintf(t.out, "   %s:\n", title)
	for _, line := range strings.Split(body, "\n") {
		fmt.Fprintf(t.out, "     %s\n", line)
	}
}

func (t *TerminalGatherer) CompileError(msg string) {
	t.fail.Fprintln(t.out, "== Compilation error ==")
	fmt.Fprintln(t.out, msg)
}

func (t *TerminalGatherer) InternalError(msg string) {
	t.fail.Fprintf(t.out, "== Evaluation failed: %s ==\n", msg)
}

func (t *TerminalGatherer) FinishNoError(res *evaluator.Result) {
	dur := time.Since(t.StartedAt).Round(time.Millisecond)
	c := t.ok
	if res.Passed < res.Total {
		c = t.warn
	}
	c.Fprintf(t.out, "== %s ==\n", res.Summary)
	fmt.Fprintf(t.out, "== Evaluation finished in %s ==\n", dur)
}
