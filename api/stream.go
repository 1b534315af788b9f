package api

import "time"

// MsgType is a message type for streaming responses
type MsgType string

// Streaming message type constants
const (
	StartJobMsg      MsgType = "job_start"
	StartCompileMsg  MsgType = "compile_start"
	FinishCompileMsg MsgType = "compile_finish"
	ReachTestMsg     MsgType = "test_reach"
	IgnoreTestMsg    MsgType = "test_ignore"
	FinishTestMsg    MsgType = "test_finish"
	FinishJobMsg     MsgType = "job_finish"
)

// Streamed text is trimmed to a rectangle of this many lines and columns.
const (
	MaxRunDataHeight = 40
	MaxRunDataWidth  = 80
)

// Header is the common header for all streaming response messages
type Header struct {
	EvalUuid string  `json:"eval_uuid"`
	MsgType  MsgType `json:"msg_type"`
}

type StartJob struct {
	Header
	Total       int    `json:"total"`
	StartedTime string `json:"started_time"`
}

type StartCompile struct {
	Header
}

type FinishCompile struct {
	Header
	RunData *RunData `json:"run_data"`
}

type ReachTest struct {
	Header
	Case     int     `json:"case"`
	Input    *string `json:"input"`
	Expected *string `json:"expected"`
}

// IgnoreTest is sent for every case skipped after a compile error.
type IgnoreTest struct {
	Header
	Case int `json:"case"`
}

type FinishTest struct {
	Header
	Case    int      `json:"case"`
	Ok      bool     `json:"ok"`
	Reason  string   `json:"reason,omitempty"`
	RunData *RunData `json:"run_data"`
}

// FinishJob ends the stream. Result is set unless the evaluation aborted.
type FinishJob struct {
	Header
	ErrorMessage  *string       `json:"error_message"`
	CompileError  bool          `json:"compile_error"`
	InternalError bool          `json:"internal_error"`
	Result        *EvalResponse `json:"result,omitempty"`
}

func NewHeader(evalUuid string, msgType MsgType) Header {
	return Header{
		EvalUuid: evalUuid,
		MsgType:  msgType,
	}
}

func NewStartJob(evalUuid string, total int) StartJob {
	return StartJob{
		Header:      NewHeader(evalUuid, StartJobMsg),
		Total:       total,
		StartedTime: time.Now().Format(time.RFC3339),
	}
}

func NewStartCompile(evalUuid string) StartCompile {
	return StartCompile{
		Header: NewHeader(evalUuid, StartCompileMsg),
	}
}

func NewFinishCompile(evalUuid string, runData *RunData) FinishCompile {
	return FinishCompile{
		Header:  NewHeader(evalUuid, FinishCompileMsg),
		RunData: runData,
	}
}

func NewReachTest(evalUuid string, c int, input, expected *string) ReachTest {
	return ReachTest{
		Header:   NewHeader(evalUuid, ReachTestMsg),
		Case:     c,
		Input:    input,
		Expected: expected,
	}
}

func NewIgnoreTest(evalUuid string, c int) IgnoreTest {
	return IgnoreTest{
		Header: NewHeader(evalUuid, IgnoreTestMsg),
		Case:   c,
	}
}

func NewFinishTest(evalUuid string, c int, ok bool, reason string, runData *RunData) FinishTest {
	return FinishTest{
		Header:  NewHeader(evalUuid, FinishTestMsg),
		Case:    c,
		Ok:      ok,
		Reason:  reason,
		RunData: runData,
	}
}

func NewFinishJob(evalUuid string, errorMessage *string, compileError, internalError bool, result *EvalResponse) FinishJob {
	return FinishJob{
		Header:        NewHeader(evalUuid, FinishJobMsg),
		ErrorMessage:  errorMessage,
		CompileError:  compileError,
		InternalError: internalError,
		Result:        result,
	}
}
