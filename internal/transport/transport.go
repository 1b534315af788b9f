// Package transport holds what every inbound transport shares: admission
// control in front of the engine and request to response mapping.
package transport

import (
	"context"

	"github.com/google/uuid"
	"github.com/oa-drill/evaluator/api"
	"github.com/oa-drill/evaluator/internal/evaluator"
	"github.com/oa-drill/evaluator/internal/gatherer/respbuilder"
	"golang.org/x/sync/semaphore"
)

// Engine evaluates submissions. *evaluator.Evaluator implements it.
type Engine interface {
	Evaluate(ctx context.Context, sub evaluator.Submission, gath evaluator.Gatherer) (*evaluator.Result, error)
}

var _ Engine = (*evaluator.Evaluator)(nil)

// Limited caps the number of evaluations running at once. Callers over the
// limit wait until a slot frees or their context ends.
type Limited struct {
	engine Engine
	sem    *semaphore.Weighted
}

func NewLimited(engine Engine, maxConcurrent int) *Limited {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Limited{
		engine: engine,
		sem:    semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

func (l *Limited) Evaluate(ctx context.Context, sub evaluator.Submission, gath evaluator.Gatherer) (*evaluator.Result, error) {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer l.sem.Release(1)
	return l.engine.Evaluate(ctx, sub, gath)
}

// Handle runs req through engine and builds the response. extra, when not
// nil, also receives progress events.
func Handle(ctx context.Context, engine Engine, req api.EvalReq, extra evaluator.Gatherer) api.EvalResponse {
	if req.EvalUuid == "" {
		req.EvalUuid = uuid.NewString()
	}
	b := respbuilder.New(req.EvalUuid)
	var g evaluator.Gatherer = b
	if extra != nil {
		g = evaluator.Multi(b, extra)
	}
	res, err := engine.Evaluate(ctx, evaluator.Submission{
		ID:       req.EvalUuid,
		QKey:     req.QKey,
		Language: req.Language,
		Code:     req.Code,
	}, g)
	return b.Response(res, err)
}
