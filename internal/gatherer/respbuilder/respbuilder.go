// Package respbuilder turns an evaluation outcome into an api.EvalResponse.
package respbuilder

import (
	"errors"
	"time"

	"github.com/oa-drill/evaluator/api"
	"github.com/oa-drill/evaluator/internal/evaluator"
	"github.com/oa-drill/evaluator/internal/lang"
	"github.com/oa-drill/evaluator/internal/process"
)

// Builder is an evaluator.Gatherer that records timing while an evaluation
// runs; Response then assembles the reply.
type Builder struct {
	evalUuid string

	started  time.Time
	finished *time.Time
}

func New(evalUuid string) *Builder {
	return &Builder{
		evalUuid: evalUuid,
		started:  time.Now(),
	}
}

func (b *Builder) finish() {
	now := time.Now()
	b.finished = &now
}

func (b *Builder) StartJob(string, int)                             {}
func (b *Builder) StartCompile()                                    {}
func (b *Builder) FinishCompile(*process.Result)                    {}
func (b *Builder) ReachTest(int, string, string)                    {}
func (b *Builder) IgnoreTest(int)                                   {}
func (b *Builder) FinishTest(evaluator.CaseResult, *process.Result) {}
func (b *Builder) CompileError(string)                              { b.finish() }
func (b *Builder) InternalError(string)                             { b.finish() }
func (b *Builder) FinishNoError(*evaluator.Result)                  { b.finish() }

var _ evaluator.Gatherer = (*Builder)(nil)

// Response builds the reply for the outcome of Evaluate.
func (b *Builder) Response(res *evaluator.Result, err error) api.EvalResponse {
	var resp api.EvalResponse
	if err != nil || res == nil {
		resp = FromError(b.evalUuid, err)
	} else {
		resp = FromResult(b.evalUuid, res)
	}
	start := b.started.Format(time.RFC3339)
	resp.StartTime = start
	resp.FinishTime = start
	if b.finished != nil {
		resp.FinishTime = b.finished.Format(time.RFC3339)
		resp.TotalTimeMs = b.finished.Sub(b.started).Milliseconds()
	}
	return resp
}

// FromResult maps a finished evaluation. Echoed text is truncated.
func FromResult(evalUuid string, res *evaluator.Result) api.EvalResponse {
	resp := api.EvalResponse{
		EvalUuid: evalUuid,
		Ok:       true,
		Passed:   res.Passed,
		Total:    res.Total,
		Score:    res.Score,
		Summary:  res.Summary,
		Results:  make([]api.CaseResult, 0, len(res.Cases)),
	}
	if res.CompileError != "" {
		msg := lang.Truncate(res.CompileError, api.MaxStderrLen)
		resp.CompileError = &msg
	}
	for _, c := range res.Cases {
		resp.Results = append(resp.Results, api.CaseResult{
			Case:     c.Index,
			Ok:       c.Passed,
			Input:    lang.Truncate(c.Input, api.MaxEchoLen),
			Expected: lang.Truncate(c.Expected, api.MaxEchoLen),
			Got:      lang.Truncate(c.Actual, api.MaxEchoLen),
			Stderr:   lang.Truncate(c.Stderr, api.MaxStderrLen),
			TimedOut: c.TimedOut,
			ExitCode: c.ExitCode,
			Reason:   c.Reason,
		})
	}
	return resp
}

// FromError maps an evaluation-fatal error: ok is false and no results are
// included.
func FromError(evalUuid string, err error) api.EvalResponse {
	msg := "evaluation failed"
	if err != nil {
		msg = err.Error()
	}
	return api.EvalResponse{
		EvalUuid:  evalUuid,
		Ok:        false,
		Error:     &msg,
		ErrorKind: ErrorKind(err),
	}
}

func ErrorKind(err error) api.ErrorKind {
	var evalErr *evaluator.Error
	if !errors.As(err, &evalErr) {
		return api.InternalError
	}
	switch evalErr.Kind {
	case evaluator.KindConfiguration:
		return api.ConfigurationError
	case evaluator.KindLookup:
		return api.LookupError
	case evaluator.KindWorkspace:
		return api.WorkspaceError
	case evaluator.KindData:
		return api.DataError
	}
	return api.InternalError
}

// RunData converts a process result for streaming, trimming text to
// the given rectangle.
func RunData(res *process.Result, stdin string, height, width int) *api.RunData {
	if res == nil {
		return nil
	}
	return &api.RunData{
		Stdin:      TrimToRect(stdin, height, width),
		Stdout:     TrimToRect(res.Stdout, height, width),
		Stderr:     TrimToRect(res.Stderr, height, width),
		ExitCode:   res.ExitCode,
		Signal:     res.Signal,
		WallMillis: res.Elapsed.Milliseconds(),
		TimedOut:   res.TimedOut,
		Truncated:  res.StdoutTruncated || res.StderrTruncated,
	}
}
