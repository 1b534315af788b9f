package natsgath_test

import (
	"encoding/json"
	"testing"

	"github.com/oa-drill/evaluator/api"
	"github.com/oa-drill/evaluator/internal/evaluator"
	"github.com/oa-drill/evaluator/internal/gatherer/natsgath"
	"github.com/oa-drill/evaluator/internal/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	subjects []string
	msgs     [][]byte
}

func (r *recorder) Publish(subj string, data []byte) error {
	r.subjects = append(r.subjects, subj)
	r.msgs = append(r.msgs, data)
	return nil
}

func (r *recorder) types(t *testing.T) []api.MsgType {
	t.Helper()
	out := make([]api.MsgType, 0, len(r.msgs))
	for _, m := range r.msgs {
		var h api.Header
		require.NoError(t, json.Unmarshal(m, &h))
		out = append(out, h.MsgType)
	}
	return out
}

func TestStreamsEvaluation(t *testing.T) {
	rec := &recorder{}
	g := natsgath.New(rec, "eval-1", "_INBOX.abc", nil)

	g.StartJob("eval-1", 1)
	g.StartCompile()
	g.FinishCompile(&process.Result{})
	g.ReachTest(1, "1 2\n", "3\n")
	c := evaluator.CaseResult{Index: 1, Passed: true, Input: "1 2\n", Expected: "3\n", Actual: "3\n"}
	g.FinishTest(c, &process.Result{Stdout: "3\n"})
	g.FinishNoError(&evaluator.Result{Passed: 1, Total: 1, Score: 100, Cases: []evaluator.CaseResult{c}})

	assert.Equal(t, []api.MsgType{
		api.StartJobMsg, api.StartCompileMsg, api.FinishCompileMsg,
		api.ReachTestMsg, api.FinishTestMsg, api.FinishJobMsg,
	}, rec.types(t))
	for _, s := range rec.subjects {
		assert.Equal(t, "_INBOX.abc", s)
	}

	var fin api.FinishTest
	require.NoError(t, json.Unmarshal(rec.msgs[4], &fin))
	assert.Equal(t, "eval-1", fin.EvalUuid)
	assert.True(t, fin.Ok)
	require.NotNil(t, fin.RunData)
	assert.Equal(t, "1 2\n", fin.RunData.Stdin)

	var job api.FinishJob
	require.NoError(t, json.Unmarshal(rec.msgs[5], &job))
	require.NotNil(t, job.Result)
	assert.Equal(t, 100, job.Result.Score)
	assert.False(t, job.InternalError)
}

func TestStreamsCompileError(t *testing.T) {
	rec := &recorder{}
	g := natsgath.New(rec, "eval-2", "inbox", nil)

	g.IgnoreTest(1)
	g.CompileError("error: expected ';'")

	assert.Equal(t, []api.MsgType{api.IgnoreTestMsg, api.FinishJobMsg}, rec.types(t))
	var job api.FinishJob
	require.NoError(t, json.Unmarshal(rec.msgs[1], &job))
	assert.True(t, job.CompileError)
	require.NotNil(t, job.ErrorMessage)
	assert.Equal(t, "error: expected ';'", *job.ErrorMessage)
}
