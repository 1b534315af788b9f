package natsgath

import (
	"log/slog"

	"github.com/oa-drill/evaluator/api"
	"github.com/oa-drill/evaluator/internal/evaluator"
	"github.com/oa-drill/evaluator/internal/gatherer/respbuilder"
	"github.com/oa-drill/evaluator/internal/process"
)

type natsGatherer struct {
	nc       Publisher
	inbox    string
	evalUuid string
	logger   *slog.Logger

	// input of the case in flight, echoed in its finish message
	input string
}

var _ evaluator.Gatherer = (*natsGatherer)(nil)

func runData(res *process.Result, stdin string) *api.RunData {
	return respbuilder.RunData(res, stdin, api.MaxRunDataHeight, api.MaxRunDataWidth)
}

func trimmed(s string) *string {
	t := respbuilder.TrimToRect(s, api.MaxRunDataHeight, api.MaxRunDataWidth)
	if t == "" {
		return nil
	}
	return &t
}

func (s *natsGatherer) StartJob(_ string, total int) {
	s.send(api.NewStartJob(s.evalUuid, total))
}

func (s *natsGatherer) StartCompile() {
	s.send(api.NewStartCompile(s.evalUuid))
}

func (s *natsGatherer) FinishCompile(run *process.Result) {
	s.send(api.NewFinishCompile(s.evalUuid, runData(run, "")))
}

func (s *natsGatherer) ReachTest(index int, input, expected string) {
	s.input = input
	s.send(api.NewReachTest(s.evalUuid, index, trimmed(input), trimmed(expected)))
}

func (s *natsGatherer) IgnoreTest(index int) {
	s.send(api.NewIgnoreTest(s.evalUuid, index))
}

func (s *natsGatherer) FinishTest(c evaluator.CaseResult, run *process.Result) {
	s.send(api.NewFinishTest(s.evalUuid, c.Index, c.Passed, c.Reason, runData(run, s.input)))
	s.input = ""
}

func (s *natsGatherer) CompileError(msg string) {
	s.send(api.NewFinishJob(s.evalUuid, &msg, true, false, nil))
}

func (s *natsGatherer) InternalError(msg string) {
	s.send(api.NewFinishJob(s.evalUuid, &msg, false, true, nil))
}

func (s *natsGatherer) FinishNoError(res *evaluator.Result) {
	resp := respbuilder.FromResult(s.evalUuid, res)
	s.send(api.NewFinishJob(s.evalUuid, nil, false, false, &resp))
}
