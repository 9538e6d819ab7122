package diag

import (
	"fmt"

	"strait/internal/source"
)

// Fatal signals that the compilation unit must be aborted after the sink
// is flushed. It is returned as a value, never panicked: callers are
// expected to observe it and stop.
//
// Two situations produce one: requirement-evaluation overflow, and
// internal-consistency violations (the solver handed the reporter a state
// it promises never to produce). Both have already emitted a diagnostic
// into the sink by the time the Fatal is returned.
type Fatal struct {
	Code Code
	Span source.Span
	Msg  string
}

func (f *Fatal) Error() string {
	return fmt.Sprintf("%s: %s", f.Code.ID(), f.Msg)
}

// NewFatal emits the diagnostic into r and returns the abort value.
func NewFatal(r Reporter, code Code, span source.Span, msg string) *Fatal {
	if r != nil {
		r.Report(code, SevError, span, msg, nil)
	}
	return &Fatal{Code: code, Span: span, Msg: msg}
}
