package lang

import (
	"time"

	"github.com/oa-drill/evaluator/internal/process"
)

// Toolchain holds the external translators and runtimes each strategy
// invokes. Paths may be bare names resolved through PATH.
type Toolchain struct {
	CXX      string
	CXXFlags []string

	CC     string
	CFlags []string
	CLibs  []string

	Javac      string
	JavacFlags []string
	Java       string
	JavaFlags  []string

	Python      string
	PythonFlags []string

	CompileTimeout     time.Duration
	CompileOutputLimit int64
}

func DefaultToolchain() Toolchain {
	return Toolchain{
		CXX:                "g++",
		CXXFlags:           []string{"-std=c++17", "-O2", "-pipe"},
		CC:                 "gcc",
		CFlags:             []string{"-std=c11", "-O2", "-pipe"},
		CLibs:              []string{"-lm"},
		Javac:              "javac",
		JavacFlags:         []string{"-encoding", "UTF-8"},
		Java:               "java",
		JavaFlags:          []string{"-Xss64m"},
		Python:             "python3",
		PythonFlags:        []string{"-B"},
		CompileTimeout:     60 * time.Second,
		CompileOutputLimit: 64 * 1024,
	}
}

func (tc Toolchain) compileLimits() process.Limits {
	l := process.DefaultLimits()
	if tc.CompileTimeout > 0 {
		l.WallTime = tc.CompileTimeout
	}
	if tc.CompileOutputLimit > 0 {
		l.OutputBytes = tc.CompileOutputLimit
	}
	return l
}
