package evaluator

import (
	"fmt"
	"math"

	"github.com/oa-drill/evaluator/internal/lang"
)

// Submission is one piece of code to be scored against a problem.
type Submission struct {
	// ID names the evaluation in logs and progress events. A random one is
	// assigned when empty.
	ID       string
	QKey     string
	Language string
	Code     string
}

// Failure reasons recorded on CaseResult.
const (
	ReasonCompileError = "compile error"
	ReasonTimeout      = "timeout"
	ReasonOutputLimit  = "output limit exceeded"
)

type CaseResult struct {
	// Index is 1-based and follows lookup order.
	Index    int
	Passed   bool
	Input    string
	Expected string
	Actual   string
	Stderr   string
	ExitCode int
	TimedOut bool
	// Reason is empty for a passed case.
	Reason       string
	CompileError string
}

type Result struct {
	EvalID       string
	Language     lang.ID
	Passed       int
	Total        int
	Score        int
	Summary      string
	Cases        []CaseResult
	CompileError string
	// Trace lists the lifecycle states the evaluation went through.
	Trace []State
}

// Score is round(100*passed/total), rounding halves up. total must be
// positive.
func Score(passed, total int) int {
	return int(math.Round(100 * float64(passed) / float64(total)))
}

func Summary(passed, total, score int) string {
	return fmt.Sprintf("Passed %d/%d tests · Score: %d%%", passed, total, score)
}

func aggregate(res *Result) {
	res.Total = len(res.Cases)
	res.Passed = 0
	for _, c := range res.Cases {
		if c.Passed {
			res.Passed++
		}
	}
	res.Score = Score(res.Passed, res.Total)
	res.Summary = Summary(res.Passed, res.Total, res.Score)
}
