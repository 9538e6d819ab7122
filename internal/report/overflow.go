package report

import (
	"fmt"

	"strait/internal/diag"
)

// renderOverflow reports a recursion-depth overflow. Overflow is always
// fatal: the solver's state past the limit is not trustworthy, so the
// diagnostic is emitted and rendering stops here.
func (r *Reporter) renderOverflow(adm Admitted, sink diag.Reporter) *diag.Fatal {
	ob := &adm.Failure.Obligation
	span := ob.Cause.Span
	in := r.sess.Types
	reg := r.sess.Traits

	pred := ob.Predicate.Resolve(in)
	label := pred.String(reg, in)

	msg := fmt.Sprintf("overflow evaluating the requirement `%s`", label)
	b := diag.NewReportBuilder(sink, diag.SevError, diag.Overflow, span, msg)
	suggested := r.sess.RecursionLimit * 2
	b.WithNote(span, fmt.Sprintf("consider raising the recursion limit by setting `recursion = %d` under `[limits]` in strait.toml", suggested))
	r.noteCause(b, label, span, ob.Cause.Code)
	b.Emit()

	// The diagnostic already carries the report; Fatal only aborts.
	return &diag.Fatal{Code: diag.Overflow, Span: span, Msg: msg}
}
