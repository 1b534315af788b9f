//go:build unix

package behave_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/oa-drill/evaluator/api"
	"github.com/oa-drill/evaluator/internal/behave"
	"github.com/oa-drill/evaluator/internal/evaluator"
	"github.com/oa-drill/evaluator/internal/lang"
	"github.com/oa-drill/evaluator/internal/problems"
	"github.com/oa-drill/evaluator/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarios = `
[[scenarios]]
description = "echo passes every case"

[[scenarios.request]]
language = "python"
code = "cat"

[[scenarios.request.tests]]
in = "1\n"
ans = "1\n"

[[scenarios.request.tests]]
in = "hello\n"
ans = "hello"

[scenarios.expect]
ok = true
passed = 2
score = 100

[[scenarios]]
description = "wrong answer on the second case"

[[scenarios.request]]
language = "py"
code = "echo 1"

[[scenarios.request.tests]]
in = ""
ans = "1\n"

[[scenarios.request.tests]]
in = ""
ans = "2\n"

[scenarios.expect]
passed = 1
score = 50
reasons = ["", "wrong answer at line 1"]

[[scenarios]]
description = "compile error fails every case"

[[scenarios.request]]
language = "cpp"
code = "int main( {"

[[scenarios.request.tests]]
in = ""
ans = "0\n"

[scenarios.expect]
ok = true
passed = 0
compile_error = true
reasons = ["compile error"]

[[scenarios]]
description = "unknown problem"

[[scenarios.request]]
qkey = "does-not-exist"
language = "python"
code = "true"

[scenarios.expect]
ok = false
error_kind = "lookup"
`

func newEngine(t *testing.T, lookup problems.Lookup) *evaluator.Evaluator {
	t.Helper()
	failing := filepath.Join(t.TempDir(), "cxx")
	require.NoError(t, os.WriteFile(failing, []byte("#!/bin/sh\necho 'error: expected )' >&2\nexit 1\n"), 0o755))

	tc := lang.DefaultToolchain()
	tc.CXX = failing
	tc.Python = "/bin/sh"
	tc.PythonFlags = nil
	tc.CompileTimeout = 5 * time.Second

	m, err := workspace.NewManager(t.TempDir(), nil)
	require.NoError(t, err)
	e, err := evaluator.New(evaluator.Config{
		Lookup:     lookup,
		Workspaces: m,
		Languages:  lang.NewRegistry(tc),
	})
	require.NoError(t, err)
	return e
}

func TestParseBytes(t *testing.T) {
	cases, err := behave.ParseBytes([]byte(scenarios))
	require.NoError(t, err)
	require.Len(t, cases, 4)

	assert.Equal(t, "echo passes every case", cases[0].Name)
	assert.Equal(t, "behave/1", cases[0].Request.QKey)
	assert.Equal(t, "python", cases[0].Request.Language)
	require.Len(t, cases[0].Samples, 2)
	assert.Equal(t, "hello", cases[0].Samples[1].ExpectedOutput)

	assert.Equal(t, "does-not-exist", cases[3].Request.QKey)
	assert.Empty(t, cases[3].Samples)
	assert.Equal(t, "lookup", cases[3].Expect.ErrorKind)

	inline := behave.Inline(cases)
	assert.Len(t, inline, 3)
}

func TestParseRejectsIncompleteScenarios(t *testing.T) {
	_, err := behave.ParseBytes([]byte("[[scenarios]]\ndescription = \"x\"\n"))
	assert.ErrorContains(t, err, "missing request block")

	_, err = behave.ParseBytes([]byte("[[scenarios]]\n[[scenarios.request]]\nlanguage = \"py\"\n"))
	assert.ErrorContains(t, err, "needs a qkey or inline tests")

	_, err = behave.ParseBytes([]byte("[[scenarios]]\n[[scenarios.request]]\nqkey = \"a\"\n"))
	assert.ErrorContains(t, err, "language is required")
}

func TestParseFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "scenarios.toml")
	require.NoError(t, os.WriteFile(p, []byte(scenarios), 0o644))
	cases, err := behave.Parse(p)
	require.NoError(t, err)
	assert.Len(t, cases, 4)

	_, err = behave.Parse(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestRunScenarios(t *testing.T) {
	cases, err := behave.ParseBytes([]byte(scenarios))
	require.NoError(t, err)

	engine := newEngine(t, behave.Inline(cases))
	outcomes, err := behave.Run(context.Background(), engine, cases, 2)
	require.NoError(t, err)
	require.Len(t, outcomes, 4)

	for _, o := range outcomes {
		assert.True(t, o.Passed(), "%s: %v", o.Case.Name, o.Mismatches)
	}
	assert.Equal(t, "behave-1", outcomes[0].Response.EvalUuid)
}

func TestCheckReportsMismatches(t *testing.T) {
	ok, passed, score := true, 3, 100
	exp := behave.SpecExpect{Ok: &ok, Passed: &passed, Score: &score, Reasons: []string{"", ""}}
	resp := api.EvalResponse{Ok: true, Passed: 1, Score: 50,
		Results: []api.CaseResult{{Case: 1, Ok: true}, {Case: 2, Reason: "timeout"}}}

	m := behave.Check(exp, resp)
	assert.Equal(t, []string{
		"passed: expected 3, got 1",
		"score: expected 100, got 50",
		`case 2 reason: expected "", got "timeout"`,
	}, m)
}
