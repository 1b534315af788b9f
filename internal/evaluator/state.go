package evaluator

import (
	"context"
	"log/slog"
)

// State is a step of the evaluation lifecycle:
//
//	Created -> WorkspaceReady -> CompileFailed | Compiled
//	Compiled -> (Running -> CasePassed | CaseFailed)* -> Aggregated
//	CompileFailed -> Aggregated
//	any -> WorkspaceDestroyed
type State int

const (
	StateCreated State = iota
	StateWorkspaceReady
	StateCompileFailed
	StateCompiled
	StateRunning
	StateCasePassed
	StateCaseFailed
	StateAggregated
	StateWorkspaceDestroyed
)

var stateNames = [...]string{
	StateCreated:            "created",
	StateWorkspaceReady:     "workspace_ready",
	StateCompileFailed:      "compile_failed",
	StateCompiled:           "compiled",
	StateRunning:            "running",
	StateCasePassed:         "case_passed",
	StateCaseFailed:         "case_failed",
	StateAggregated:         "aggregated",
	StateWorkspaceDestroyed: "workspace_destroyed",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// machine tracks the state of one evaluation and logs each transition.
type machine struct {
	state  State
	logger *slog.Logger
	trace  []State
}

func newMachine(logger *slog.Logger) *machine {
	return &machine{state: StateCreated, logger: logger, trace: []State{StateCreated}}
}

func (m *machine) enter(s State, attrs ...any) {
	if m.logger.Enabled(context.Background(), slog.LevelDebug) {
		m.logger.Debug("evaluation state", append([]any{"from", m.state.String(), "to", s.String()}, attrs...)...)
	}
	m.state = s
	m.trace = append(m.trace, s)
}
