// Package evaluator scores a submission against the sample cases of a
// problem: it resolves the language and samples, compiles once inside a
// fresh workspace, runs every case sequentially and aggregates the verdicts.
package evaluator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/oa-drill/evaluator/internal/compare"
	"github.com/oa-drill/evaluator/internal/lang"
	"github.com/oa-drill/evaluator/internal/problems"
	"github.com/oa-drill/evaluator/internal/process"
	"github.com/oa-drill/evaluator/internal/workspace"
)

const (
	DefaultCaseTimeout = 3 * time.Second
	DefaultOutputLimit = 64 * 1024
)

type Config struct {
	Lookup     problems.Lookup
	Workspaces *workspace.Manager
	Runner     process.Executor
	Languages  *lang.Registry

	// CaseTimeout is the wall-clock deadline of every run.
	CaseTimeout time.Duration
	// OutputLimit caps captured stdout and stderr of every run, in bytes.
	OutputLimit int64

	Logger *slog.Logger
}

type Evaluator struct {
	lookup     problems.Lookup
	workspaces *workspace.Manager
	runner     process.Executor
	languages  *lang.Registry
	limits     process.Limits
	logger     *slog.Logger
}

func New(cfg Config) (*Evaluator, error) {
	if cfg.Lookup == nil || cfg.Workspaces == nil || cfg.Languages == nil {
		return nil, errors.New("evaluator needs a problem lookup, a workspace manager and a language registry")
	}
	if cfg.Runner == nil {
		cfg.Runner = process.NewRunner(cfg.Logger)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	limits := process.DefaultLimits()
	limits.WallTime = DefaultCaseTimeout
	limits.OutputBytes = DefaultOutputLimit
	if cfg.CaseTimeout > 0 {
		limits.WallTime = cfg.CaseTimeout
	}
	if cfg.OutputLimit > 0 {
		limits.OutputBytes = cfg.OutputLimit
	}
	return &Evaluator{
		lookup:     cfg.Lookup,
		workspaces: cfg.Workspaces,
		runner:     cfg.Runner,
		languages:  cfg.Languages,
		limits:     limits,
		logger:     cfg.Logger.With("component", "evaluator"),
	}, nil
}

// CaseTimeout returns the per-case deadline in effect.
func (e *Evaluator) CaseTimeout() time.Duration {
	return e.limits.WallTime
}

// Evaluate scores sub. A non-nil error is always an *Error and means no case
// results were produced; case-level failures (compile error, timeout,
// crash, wrong answer) are reported through the Result instead. The
// workspace is removed before Evaluate returns, whatever the outcome.
func (e *Evaluator) Evaluate(ctx context.Context, sub Submission, gath Gatherer) (res *Result, err error) {
	if gath == nil {
		gath = NopGatherer{}
	}
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	logger := e.logger.With("eval_id", sub.ID, "qkey", sub.QKey, "lang", sub.Language)
	m := newMachine(logger)

	defer func() {
		if err != nil {
			logger.Info("evaluation aborted", "error", err)
			gath.InternalError(err.Error())
		}
	}()

	strategy, err := e.languages.Lookup(sub.Language)
	if err != nil {
		return nil, newError(KindConfiguration, err, "cannot evaluate submission")
	}

	samples, err := e.lookup.Samples(ctx, sub.QKey)
	if errors.Is(err, problems.ErrNotFound) {
		return nil, newError(KindLookup, err, "unknown qkey %q", sub.QKey)
	}
	if err != nil {
		return nil, newError(KindLookup, err, "failed to look up qkey %q", sub.QKey)
	}
	if len(samples) == 0 {
		return nil, newError(KindData, nil, "problem %q has no sample cases", sub.QKey)
	}

	gath.StartJob(sub.ID, len(samples))

	ws, err := e.workspaces.Acquire(ctx)
	if err != nil {
		return nil, newError(KindWorkspace, err, "cannot prepare workspace")
	}
	defer func() {
		// Manager.Release logs failures; they never change the outcome.
		_ = ws.Close()
		m.enter(StateWorkspaceDestroyed)
		if res != nil {
			res.Trace = m.trace
		}
	}()
	m.enter(StateWorkspaceReady, "workspace", ws.ID())

	if err := ws.AddFile(strategy.SourceFile(), []byte(sub.Code), 0o644); err != nil {
		return nil, newError(KindInternal, err, "failed to write source file")
	}

	res = &Result{
		EvalID:   sub.ID,
		Language: strategy.Language().ID,
		Cases:    make([]CaseResult, 0, len(samples)),
	}

	diag, err := e.compile(ctx, strategy, ws, gath, logger)
	if err != nil {
		return nil, err
	}
	if diag != "" {
		m.enter(StateCompileFailed)
		res.CompileError = diag
		for i, sc := range samples {
			res.Cases = append(res.Cases, CaseResult{
				Index:        i + 1,
				Input:        sc.Input,
				Expected:     sc.ExpectedOutput,
				ExitCode:     -1,
				Reason:       ReasonCompileError,
				CompileError: diag,
			})
			gath.IgnoreTest(i + 1)
		}
		aggregate(res)
		m.enter(StateAggregated)
		gath.CompileError(diag)
		logger.Info("compilation failed", "summary", res.Summary)
		return res, nil
	}
	m.enter(StateCompiled)

	run := strategy.RunSpec(ws)
	for i, sc := range samples {
		idx := i + 1
		gath.ReachTest(idx, sc.Input, sc.ExpectedOutput)
		m.enter(StateRunning, "case", idx)

		cr, out, err := e.runCase(ctx, run, idx, sc)
		if err != nil {
			return nil, err
		}
		if cr.Passed {
			m.enter(StateCasePassed, "case", idx)
		} else {
			m.enter(StateCaseFailed, "case", idx, "reason", cr.Reason)
		}
		res.Cases = append(res.Cases, cr)
		gath.FinishTest(cr, out)
	}

	aggregate(res)
	m.enter(StateAggregated)
	gath.FinishNoError(res)
	logger.Info("evaluation finished", "summary", res.Summary)
	return res, nil
}

// compile returns the user-facing diagnostic when the translator rejected
// the source. An error means the translator could not be run at all.
func (e *Evaluator) compile(ctx context.Context, s lang.Strategy, ws *workspace.Workspace,
	gath Gatherer, logger *slog.Logger) (string, error) {
	if s.Language().Kind == lang.Interpreted {
		return "", nil
	}
	gath.StartCompile()
	logger.Debug("compiling", "tools", s.Tools())
	cr, err := s.Compile(ctx, ws, e.runner)
	if err != nil {
		return "", newError(KindInternal, err, "compilation could not run")
	}
	if cr == nil {
		gath.FinishCompile(nil)
		return "", nil
	}
	gath.FinishCompile(cr.Run)
	return cr.Error, nil
}

func (e *Evaluator) runCase(ctx context.Context, spec process.Spec, idx int,
	sc problems.SampleCase) (CaseResult, *process.Result, error) {
	cr := CaseResult{
		Index:    idx,
		Input:    sc.Input,
		Expected: sc.ExpectedOutput,
		ExitCode: -1,
	}

	out, err := e.runner.Execute(ctx, spec, []byte(sc.Input), e.limits)
	if err != nil {
		if ctx.Err() != nil {
			return cr, nil, newError(KindInternal, err, "evaluation interrupted at case %d", idx)
		}
		cr.Reason = fmt.Sprintf("failed to start: %v", err)
		return cr, nil, nil
	}

	cr.Actual = out.Stdout
	cr.Stderr = out.Stderr
	cr.ExitCode = out.ExitCode
	cr.TimedOut = out.TimedOut
	cr.Reason = verdict(out, sc.ExpectedOutput)
	cr.Passed = cr.Reason == ""
	return cr, out, nil
}

// verdict returns why a run fails the case, or "" when it passes.
func verdict(out *process.Result, expected string) string {
	switch {
	case out.TimedOut:
		return ReasonTimeout
	case out.Signal != "":
		return "killed by signal: " + out.Signal
	case out.ExitCode != 0:
		return fmt.Sprintf("runtime error: exit code %d", out.ExitCode)
	case out.StdoutTruncated:
		return ReasonOutputLimit
	}
	if line, ok := compare.Diff(expected, out.Stdout); !ok {
		return fmt.Sprintf("wrong answer at line %d", line)
	}
	return ""
}
