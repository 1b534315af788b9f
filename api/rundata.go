package api

// RunData describes one process execution, trimmed for streaming.
type RunData struct {
	Stdin    string `json:"in,omitempty"`
	Stdout   string `json:"out"`
	Stderr   string `json:"err"`
	ExitCode int    `json:"exit"`
	Signal   string `json:"signal,omitempty"`

	WallMillis int64 `json:"wall_ms"`
	TimedOut   bool  `json:"timed_out"`
	// Truncated is set when the process wrote more than the capture limit.
	Truncated bool `json:"truncated,omitempty"`
}
