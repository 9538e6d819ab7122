package report

import (
	"fmt"

	"strait/internal/diag"
	"strait/internal/obligation"
)

// Reporter renders admitted failures into diagnostics. It holds no state
// of its own: everything mutable lives in the Session, and Render only
// writes to the sink it is handed.
type Reporter struct {
	sess *Session
}

// New constructs a reporter over the session.
func New(sess *Session) *Reporter {
	return &Reporter{sess: sess}
}

// Session exposes the underlying session.
func (r *Reporter) Session() *Session {
	return r.sess
}

// Report admits and renders a batch of failures in input order. It stops
// at the first fatal condition and returns it; nil means the whole batch
// rendered normally (possibly with some diagnostics suppressed).
func (r *Reporter) Report(failures []obligation.Failure) *diag.Fatal {
	for i := range failures {
		adm, ok := r.sess.Admit(&failures[i])
		if !ok {
			continue
		}
		if fatal := r.Render(adm, r.sess.Sink()); fatal != nil {
			return fatal
		}
	}
	return nil
}

// Render emits the diagnostics for one admitted failure into sink. It is
// side-effect-free apart from sink writes, so distinct admitted failures
// may render concurrently into distinct sinks.
func (r *Reporter) Render(adm Admitted, sink diag.Reporter) *diag.Fatal {
	switch adm.Failure.Kind {
	case obligation.FailSelection:
		return r.renderSelection(adm, sink)
	case obligation.FailProjection:
		r.renderProjection(adm, sink)
		return nil
	case obligation.FailAmbiguity:
		return r.renderAmbiguity(adm, sink)
	case obligation.FailOverflow:
		return r.renderOverflow(adm, sink)
	default:
		span := adm.Failure.Obligation.Cause.Span
		return diag.NewFatal(sink, diag.UnknownCode, span,
			fmt.Sprintf("unknown failure kind %d", adm.Failure.Kind))
	}
}

func severity(isWarning bool) diag.Severity {
	if isWarning {
		return diag.SevWarning
	}
	return diag.SevError
}

func (r *Reporter) renderSelection(adm Admitted, sink diag.Reporter) *diag.Fatal {
	f := adm.Failure
	ob := &f.Obligation
	span := ob.Cause.Span
	sev := severity(adm.IsWarning)
	in := r.sess.Types
	reg := r.sess.Traits

	switch f.Selection {
	case obligation.SelUnimplemented:
		if ob.Cause.Code != nil && ob.Cause.Code.Kind == obligation.CauseCompareImplMethod {
			// Fixed message; the cause note would repeat it verbatim.
			diag.NewReportBuilder(sink, sev, diag.ImplMethodObligation, span,
				fmt.Sprintf("the requirement `%s` appears on the impl method but not on the corresponding contract method",
					ob.Predicate.String(reg, in))).Emit()
			return nil
		}
		return r.renderUnimplemented(adm, sink)

	case obligation.SelOutputTypeMismatch:
		expected := f.Expected.Resolve(in)
		actual := f.Actual.Resolve(in)
		if in.ReferencesError(actual.Self) {
			return nil
		}
		b := diag.NewReportBuilder(sink, sev, diag.OutputTypeMismatch, span,
			fmt.Sprintf("type mismatch: the type `%s` implements the contract `%s`, but the contract `%s` is required (%s)",
				expected.SelfLabel(in), expected.String(reg, in), actual.String(reg, in), f.Detail))
		r.noteCause(b, ob.Predicate.String(reg, in), span, ob.Cause.Code)
		b.Emit()
		return nil

	case obligation.SelNotObjectSafe:
		b := r.objectSafetyBuilder(sev, span, f.Obj, sink)
		r.noteCause(b, ob.Predicate.String(reg, in), span, ob.Cause.Code)
		b.Emit()
		return nil

	default:
		return diag.NewFatal(sink, diag.UnknownCode, span,
			fmt.Sprintf("unknown selection failure %d", f.Selection))
	}
}

// renderUnimplemented handles SelUnimplemented dispatched over the
// predicate shape. The switch is exhaustive on purpose: a new predicate
// shape must be given an explicit arm here.
func (r *Reporter) renderUnimplemented(adm Admitted, sink diag.Reporter) *diag.Fatal {
	f := adm.Failure
	ob := &f.Obligation
	span := ob.Cause.Span
	sev := severity(adm.IsWarning)
	in := r.sess.Types
	reg := r.sess.Traits

	pred := ob.Predicate.Resolve(in)

	switch pred.Kind {
	case obligation.PredTrait:
		// Cascade suppression: broken code already reported elsewhere.
		// The dedup key was recorded at admission regardless.
		if adm.PriorErrors && pred.ReferencesError(in) {
			return nil
		}
		tr := pred.Trait
		b := diag.NewReportBuilder(sink, sev, diag.Unimplemented, span,
			fmt.Sprintf("the contract `%s` is not implemented for the type `%s`",
				tr.String(reg, in), tr.SelfLabel(in)))
		if hint, ok := r.renderHint(tr, span, sink); ok {
			b.WithNote(span, hint)
		}
		r.noteCause(b, pred.String(reg, in), span, ob.Cause.Code)
		b.Emit()
		return nil

	case obligation.PredEquate:
		b := diag.NewReportBuilder(sink, sev, diag.EquateUnsatisfied, span,
			fmt.Sprintf("the requirement `%s` is not satisfied (`%s`)", pred.String(reg, in), f.Detail))
		r.noteCause(b, pred.String(reg, in), span, ob.Cause.Code)
		b.Emit()
		return nil

	case obligation.PredRegionOutlives:
		b := diag.NewReportBuilder(sink, sev, diag.RegionUnsatisfied, span,
			fmt.Sprintf("the requirement `%s` is not satisfied (`%s`)", pred.String(reg, in), f.Detail))
		r.noteCause(b, pred.String(reg, in), span, ob.Cause.Code)
		b.Emit()
		return nil

	case obligation.PredProjection, obligation.PredTypeOutlives:
		b := diag.NewReportBuilder(sink, sev, diag.Unsatisfied, span,
			fmt.Sprintf("the requirement `%s` is not satisfied", pred.String(reg, in)))
		r.noteCause(b, pred.String(reg, in), span, ob.Cause.Code)
		b.Emit()
		return nil

	case obligation.PredObjectSafe:
		b := r.objectSafetyBuilder(sev, span, pred.Obj, sink)
		r.noteCause(b, pred.String(reg, in), span, ob.Cause.Code)
		b.Emit()
		return nil

	case obligation.PredWellFormed:
		// Well-formedness obligations always degenerate into more
		// specific predicates before failing. Reaching this arm means
		// the solver is broken; continuing would misreport the program.
		return diag.NewFatal(sink, diag.IceUnexpectedWF, span,
			fmt.Sprintf("well-formedness predicate failed selection for `%s`", pred.String(reg, in)))

	default:
		return diag.NewFatal(sink, diag.UnknownCode, span,
			fmt.Sprintf("unknown predicate shape %d in selection failure", pred.Kind))
	}
}

func (r *Reporter) renderProjection(adm Admitted, sink diag.Reporter) {
	f := adm.Failure
	ob := &f.Obligation
	span := ob.Cause.Span
	in := r.sess.Types
	reg := r.sess.Traits

	pred := ob.Predicate.Resolve(in)

	// The error sentinel can be unified into the projected type while the
	// mismatch itself is still real; only suppress when an earlier error
	// makes the sentinel plausible.
	if adm.PriorErrors && pred.ReferencesError(in) {
		return
	}
	b := diag.NewReportBuilder(sink, severity(adm.IsWarning), diag.ProjectionMismatch, span,
		fmt.Sprintf("type mismatch resolving `%s`: %s", pred.String(reg, in), f.Detail))
	r.noteCause(b, pred.String(reg, in), span, ob.Cause.Code)
	b.Emit()
}
