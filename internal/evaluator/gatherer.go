package evaluator

import "github.com/oa-drill/evaluator/internal/process"

//go:generate mockgen -destination=mocks/gatherer.go -package=mocks . Gatherer

// Gatherer receives progress of one evaluation as it happens. Exactly one of
// CompileError, InternalError or FinishNoError ends the stream.
type Gatherer interface {
	StartJob(evalID string, total int)

	StartCompile()
	FinishCompile(run *process.Result)

	ReachTest(index int, input, expected string)
	IgnoreTest(index int)
	// FinishTest reports the verdict of one case. run is nil when the
	// process could not be started.
	FinishTest(c CaseResult, run *process.Result)

	CompileError(msg string)
	InternalError(msg string)
	FinishNoError(res *Result)
}

// NopGatherer discards every event.
type NopGatherer struct{}

func (NopGatherer) StartJob(string, int)                   {}
func (NopGatherer) StartCompile()                          {}
func (NopGatherer) FinishCompile(*process.Result)          {}
func (NopGatherer) ReachTest(int, string, string)          {}
func (NopGatherer) IgnoreTest(int)                         {}
func (NopGatherer) FinishTest(CaseResult, *process.Result) {}
func (NopGatherer) CompileError(string)                    {}
func (NopGatherer) InternalError(string)                   {}
func (NopGatherer) FinishNoError(*Result)                  {}

var _ Gatherer = NopGatherer{}

// Multi fans every event out to each of gs in order.
func Multi(gs ...Gatherer) Gatherer {
	return multi(gs)
}

type multi []Gatherer

func (m multi) StartJob(evalID string, total int) {
	for _, g := range m {
		g.StartJob(evalID, total)
	}
}

func (m multi) StartCompile() {
	for _, g := range m {
		g.StartCompile()
	}
}

func (m multi) FinishCompile(run *process.Result) {
	for _, g := range m {
		g.FinishCompile(run)
	}
}

func (m multi) ReachTest(index int, input, expected string) {
	for _, g := range m {
		g.ReachTest(index, input, expected)
	}
}

func (m multi) IgnoreTest(index int) {
	for _, g := range m {
		g.IgnoreTest(index)
	}
}

func (m multi) FinishTest(c CaseResult, run *process.Result) {
	for _, g := range m {
		g.FinishTest(c, run)
	}
}

func (m multi) CompileError(msg string) {
	for _, g := range m {
		g.CompileError(msg)
	}
}

func (m multi) InternalError(msg string) {
	for _, g := range m {
		g.InternalError(msg)
	}
}

func (m multi) FinishNoError(res *Result) {
	for _, g := range m {
		g.FinishNoError(res)
	}
}
