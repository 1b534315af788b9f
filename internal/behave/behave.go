// Package behave runs behaviour scenarios: small TOML files that describe a
// submission, its sample cases and the outcome the evaluator must report.
// They are used to validate the toolchains installed on a host.
package behave

import (
	"fmt"
	"os"

	"github.com/oa-drill/evaluator/api"
	"github.com/oa-drill/evaluator/internal/problems"
	"github.com/pelletier/go-toml/v2"
)

// SpecTest is a single sample case in the behaviour file
type SpecTest struct {
	In  string `toml:"in"`
	Ans string `toml:"ans"`
}

// SpecRequest represents a request block inside a scenario entry.
// Either QKey names a known problem or Tests lists the samples inline.
type SpecRequest struct {
	QKey     string     `toml:"qkey"`
	Language string     `toml:"language"`
	Code     string     `toml:"code"`
	Tests    []SpecTest `toml:"tests"`
}

// SpecExpect describes the expected overall outcome. Unset fields are not
// checked.
type SpecExpect struct {
	Ok           *bool    `toml:"ok"`
	Passed       *int     `toml:"passed"`
	Score        *int     `toml:"score"`
	ErrorKind    string   `toml:"error_kind"`
	CompileError *bool    `toml:"compile_error"`
	Reasons      []string `toml:"reasons"`
}

// specSuite maps to [[scenarios]] entries. The request is written as an
// array-of-tables, so it is modelled as a slice and the first element used.
type specSuite struct {
	Description string        `toml:"description"`
	RequestAOT  []SpecRequest `toml:"request"`
	Expect      SpecExpect    `toml:"expect"`
}

type specRoot struct {
	Suites []specSuite `toml:"scenarios"`
}

// Case is a runnable scenario converted from TOML
type Case struct {
	Name    string
	Request api.EvalReq
	// Samples are the inline tests, served under Request.QKey.
	Samples []problems.SampleCase
	Expect  SpecExpect
}

// Parse reads a behaviour TOML file.
func Parse(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read behaviour file: %w", err)
	}
	return ParseBytes(data)
}

// ParseBytes converts TOML scenario data to runnable cases.
func ParseBytes(data []byte) ([]Case, error) {
	var root specRoot
	if err := toml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cases := make([]Case, 0, len(root.Suites))
	for i, suite := range root.Suites {
		name := suite.Description
		if name == "" {
			name = fmt.Sprintf("scenario %d", i+1)
		}
		if len(suite.RequestAOT) == 0 {
			return nil, fmt.Errorf("%s: missing request block", name)
		}
		req := suite.RequestAOT[0]
		if req.Language == "" {
			return nil, fmt.Errorf("%s: language is required", name)
		}

		c := Case{
			Name: name,
			Request: api.EvalReq{
				EvalUuid: fmt.Sprintf("behave-%d", i+1),
				QKey:     req.QKey,
				Language: req.Language,
				Code:     req.Code,
			},
			Expect: suite.Expect,
		}
		if len(req.Tests) > 0 {
			if c.Request.QKey == "" {
				c.Request.QKey = fmt.Sprintf("behave/%d", i+1)
			}
			for _, t := range req.Tests {
				c.Samples = append(c.Samples, problems.SampleCase{Input: t.In, ExpectedOutput: t.Ans})
			}
		} else if c.Request.QKey == "" {
			return nil, fmt.Errorf("%s: request needs a qkey or inline tests", name)
		}
		cases = append(cases, c)
	}
	return cases, nil
}

// Inline collects the inline samples of cases into a Lookup.
func Inline(cases []Case) problems.Static {
	s := problems.Static{}
	for _, c := range cases {
		if len(c.Samples) > 0 {
			s[c.Request.QKey] = c.Samples
		}
	}
	return s
}
