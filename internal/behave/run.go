package behave

import (
	"context"
	"fmt"

	"github.com/oa-drill/evaluator/api"
	"github.com/oa-drill/evaluator/internal/transport"
	"golang.org/x/sync/errgroup"
)

// Outcome is the result of one scenario.
type Outcome struct {
	Case       Case
	Response   api.EvalResponse
	Mismatches []string
}

func (o Outcome) Passed() bool {
	return len(o.Mismatches) == 0
}

// Run evaluates every case on engine, at most parallel at a time. Outcomes
// are returned in case order.
func Run(ctx context.Context, engine transport.Engine, cases []Case, parallel int) ([]Outcome, error) {
	out := make([]Outcome, len(cases))
	g, ctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}
	for i, c := range cases {
		g.Go(func() error {
			resp := transport.Handle(ctx, engine, c.Request, nil)
			out[i] = Outcome{Case: c, Response: resp, Mismatches: Check(c.Expect, resp)}
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Check lists every way resp differs from exp.
func Check(exp SpecExpect, resp api.EvalResponse) []string {
	var m []string
	if exp.Ok != nil && *exp.Ok != resp.Ok {
		m = append(m, fmt.Sprintf("ok: expected %v, got %v", *exp.Ok, resp.Ok))
	}
	if exp.Passed != nil && *exp.Passed != resp.Passed {
		m = append(m, fmt.Sprintf("passed: expected %d, got %d", *exp.Passed, resp.Passed))
	}
	if exp.Score != nil && *exp.Score != resp.Score {
		m = append(m, fmt.Sprintf("score: expected %d, got %d", *exp.Score, resp.Score))
	}
	if exp.ErrorKind != "" && api.ErrorKind(exp.ErrorKind) != resp.ErrorKind {
		m = append(m, fmt.Sprintf("error_kind: expected %q, got %q", exp.ErrorKind, resp.ErrorKind))
	}
	if exp.CompileError != nil && *exp.CompileError != (resp.CompileError != nil) {
		m = append(m, fmt.Sprintf("compile_error: expected %v, got %v", *exp.CompileError, resp.CompileError != nil))
	}
	if exp.Reasons != nil {
		if len(exp.Reasons) != len(resp.Results) {
			m = append(m, fmt.Sprintf("reasons: expected %d cases, got %d", len(exp.Reasons), len(resp.Results)))
			return m
		}
		for i, want := range exp.Reasons {
			if got := resp.Results[i].Reason; got != want {
				m = append(m, fmt.Sprintf("case %d reason: expected %q, got %q", i+1, want, got))
			}
		}
	}
	return m
}
