package evaluator

import "fmt"

// Kind classifies an error that aborts a whole evaluation.
type Kind int

const (
	KindConfiguration Kind = iota + 1
	KindLookup
	KindWorkspace
	KindData
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration error"
	case KindLookup:
		return "lookup error"
	case KindWorkspace:
		return "workspace error"
	case KindData:
		return "data error"
	case KindInternal:
		return "internal error"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Sentinels for errors.Is; they match any *Error of the same Kind.
var (
	ErrConfiguration = &Error{Kind: KindConfiguration}
	ErrLookup        = &Error{Kind: KindLookup}
	ErrWorkspace     = &Error{Kind: KindWorkspace}
	ErrData          = &Error{Kind: KindData}
	ErrInternal      = &Error{Kind: KindInternal}
)

// Error is an evaluation-fatal error. No case results exist when it is
// returned.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Msg == "" && t.Err == nil
}

func newError(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}
