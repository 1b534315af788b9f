package api

// Echoed strings in a response are cut to these many bytes.
const (
	MaxEchoLen   = 5000
	MaxStderrLen = 2000
)

// CaseResult is the verdict of one sample case.
type CaseResult struct {
	Case     int    `json:"case"`
	Ok       bool   `json:"ok"`
	Input    string `json:"input"`
	Expected string `json:"expected"`
	Got      string `json:"got"`

	Stderr   string `json:"stderr,omitempty"`
	TimedOut bool   `json:"timed_out,omitempty"`
	ExitCode int    `json:"exit_code"`
	Reason   string `json:"reason,omitempty"`
}

type ErrorKind string

const (
	ConfigurationError ErrorKind = "configuration"
	LookupError        ErrorKind = "lookup"
	WorkspaceError     ErrorKind = "workspace"
	DataError          ErrorKind = "data"
	InternalError      ErrorKind = "internal"
)

// EvalResponse is the outcome of an EvalReq. When Ok is false, Error is set
// and Results is omitted.
type EvalResponse struct {
	EvalUuid string `json:"eval_uuid"`

	Ok      bool         `json:"ok"`
	Passed  int          `json:"passed"`
	Total   int          `json:"total"`
	Score   int          `json:"score"`
	Summary string       `json:"summary,omitempty"`
	Results []CaseResult `json:"results,omitempty"`

	Error        *string   `json:"error,omitempty"`
	ErrorKind    ErrorKind `json:"error_kind,omitempty"`
	CompileError *string   `json:"compile_error,omitempty"`

	StartTime   string `json:"start_time,omitempty"`
	FinishTime  string `json:"finish_time,omitempty"`
	TotalTimeMs int64  `json:"total_time_ms"`
}

// LanguageInfo lists a supported language and the names it answers to.
type LanguageInfo struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Kind    string   `json:"kind"`
	Aliases []string `json:"aliases"`
	// Available is false when a tool the language needs is missing.
	Available bool `json:"available"`
}
