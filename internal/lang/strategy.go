package lang

import (
	"context"
	"fmt"
	"strings"

	"github.com/oa-drill/evaluator/internal/process"
	"github.com/oa-drill/evaluator/internal/workspace"
)

// MaxDiagnosticBytes caps the translator output kept in a CompileResult.
const MaxDiagnosticBytes = 2000

// Strategy is the compile/run capability of one language.
type Strategy interface {
	Language() Language
	// SourceFile is the name the submission is written to in the workspace.
	SourceFile() string
	// Compile translates the source file in ws. Interpreted strategies
	// return a nil result. A returned error means the translator could not
	// be started at all; a translator that ran and rejected the source is
	// reported through CompileResult.Error.
	Compile(ctx context.Context, ws *workspace.Workspace, exec process.Executor) (*CompileResult, error)
	// RunSpec describes how to start one run of the compiled submission.
	RunSpec(ws *workspace.Workspace) process.Spec
	// Tools lists the external binaries the strategy depends on.
	Tools() []string
}

// CompileResult is the outcome of a translator invocation that started.
type CompileResult struct {
	Run *process.Result
	// Error is the diagnostic shown to the user; empty on success.
	Error string
}

func (c *CompileResult) Failed() bool {
	return c != nil && c.Error != ""
}

func diagnostic(res *process.Result) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimSpace(res.Stderr))
	if out := strings.TrimSpace(res.Stdout); out != "" {
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(out)
	}
	msg := sb.String()
	if msg == "" {
		switch {
		case res.Signal != "":
			msg = fmt.Sprintf("compiler killed by signal %s", res.Signal)
		default:
			msg = fmt.Sprintf("compiler exited with code %d", res.ExitCode)
		}
	}
	return Truncate(msg, MaxDiagnosticBytes)
}

// Truncate shortens s to at most n bytes without splitting a UTF-8 rune and
// marks the cut.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	const marker = "\n... (truncated)"
	cut := n - len(marker)
	if cut < 0 {
		cut = 0
	}
	for cut > 0 && !runeStart(s[cut]) {
		cut--
	}
	return s[:cut] + marker
}

func runeStart(b byte) bool {
	return b&0xC0 != 0x80
}

// translate runs a translator inside ws and maps its outcome.
func translate(ctx context.Context, ws *workspace.Workspace, exec process.Executor,
	tc Toolchain, spec process.Spec) (*CompileResult, error) {
	spec.Dir = ws.Path()
	limits := tc.compileLimits()
	res, err := exec.Execute(ctx, spec, nil, limits)
	if err != nil {
		return nil, fmt.Errorf("failed to run %s: %w", spec.Path, err)
	}
	if res.TimedOut {
		return &CompileResult{
			Run:   res,
			Error: fmt.Sprintf("compilation timed out after %s", limits.WallTime),
		}, nil
	}
	if !res.Success() {
		return &CompileResult{Run: res, Error: diagnostic(res)}, nil
	}
	return &CompileResult{Run: res}, nil
}
