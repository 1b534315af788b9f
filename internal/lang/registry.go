package lang

import (
	"fmt"
	"os/exec"
)

// Registry maps every supported language to its strategy.
type Registry struct {
	strategies map[ID]Strategy
}

func NewRegistry(tc Toolchain) *Registry {
	byID := make(map[ID]Language, len(languages))
	for _, l := range languages {
		byID[l.ID] = l
	}
	return &Registry{strategies: map[ID]Strategy{
		Cpp17: &native{
			lang:     byID[Cpp17],
			source:   "main.cpp",
			compiler: tc.CXX,
			flags:    tc.CXXFlags,
			tc:       tc,
		},
		C11: &native{
			lang:     byID[C11],
			source:   "main.c",
			compiler: tc.CC,
			flags:    tc.CFlags,
			libs:     tc.CLibs,
			tc:       tc,
		},
		Java: &bytecode{lang: byID[Java], tc: tc},
		Python3: &interpreted{
			lang:   byID[Python3],
			source: "main.py",
			interp: tc.Python,
			flags:  tc.PythonFlags,
		},
	}}
}

// Lookup resolves a raw language name or alias to its strategy.
func (r *Registry) Lookup(raw string) (Strategy, error) {
	l, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	s, ok := r.strategies[l.ID]
	if !ok {
		return nil, &UnsupportedError{Name: raw}
	}
	return s, nil
}

// Strategies returns one strategy per language, in All order.
func (r *Registry) Strategies() []Strategy {
	out := make([]Strategy, 0, len(languages))
	for _, l := range languages {
		if s, ok := r.strategies[l.ID]; ok {
			out = append(out, s)
		}
	}
	return out
}

// ToolStatus tells whether one external binary is available.
type ToolStatus struct {
	Tool string
	Path string
	Err  error
}

// Check resolves every tool a strategy depends on.
func Check(s Strategy) []ToolStatus {
	tools := s.Tools()
	out := make([]ToolStatus, 0, len(tools))
	for _, t := range tools {
		p, err := exec.LookPath(t)
		if err != nil {
			err = fmt.Errorf("%s not found: %w", t, err)
		}
		out = append(out, ToolStatus{Tool: t, Path: p, Err: err})
	}
	return out
}
