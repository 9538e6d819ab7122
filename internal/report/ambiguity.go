package report

import (
	"fmt"

	"strait/internal/diag"
	"strait/internal/obligation"
	"strait/internal/source"
	"strait/internal/types"
)

// renderAmbiguity explains "could not decide" failures. Most of them are
// noise once a real error exists, so this path suppresses aggressively;
// the one state it must not tolerate is a fully-resolved ambiguity in an
// otherwise clean session, which the solver promises to turn into a
// proper error before it gets here.
func (r *Reporter) renderAmbiguity(adm Admitted, sink diag.Reporter) *diag.Fatal {
	f := adm.Failure
	ob := &f.Obligation
	span := ob.Cause.Span
	in := r.sess.Types
	reg := r.sess.Traits

	pred := ob.Predicate.Resolve(in)

	switch pred.Kind {
	case obligation.PredTrait:
		tr := pred.Trait
		all := make([]types.TypeID, 0, len(tr.Args)+1)
		all = append(all, tr.Self)
		all = append(all, tr.Args...)

		refsError := false
		needsInfer := false
		for _, t := range all {
			if in.ReferencesError(t) {
				refsError = true
			}
			if in.NeedsInfer(t) {
				needsInfer = true
			}
		}

		switch {
		case refsError:
			// already covered by the prior-error suppression below, kept
			// as defense against a sentinel arriving without one
			return nil
		case needsInfer:
			if adm.PriorErrors {
				return nil
			}
			if sized := reg.Sized(); sized != obligation.NoTraitID && sized == tr.Trait {
				r.needTypeInfo(span, tr.Self, sink)
				return nil
			}
			b := diag.ReportError(sink, diag.AmbiguousContract, span,
				fmt.Sprintf("type annotations required: cannot resolve `%s`", pred.String(reg, in)))
			r.noteCause(b, pred.String(reg, in), span, ob.Cause.Code)
			b.Emit()
			return nil
		case !adm.PriorErrors:
			// Fully resolved, nothing else went wrong, and still
			// ambiguous: the solver should have reported this itself.
			return diag.NewFatal(sink, diag.IceUnresolvedAmbiguity, span,
				fmt.Sprintf("solver failed to report ambiguity: cannot locate the impl of the contract `%s` for the type `%s`",
					tr.String(reg, in), tr.SelfLabel(in)))
		default:
			return nil
		}

	case obligation.PredWellFormed:
		if !in.ReferencesError(pred.WF) && !adm.PriorErrors {
			r.needTypeInfo(span, pred.WF, sink)
		}
		return nil

	default:
		if adm.PriorErrors {
			return nil
		}
		b := diag.ReportError(sink, diag.AmbiguousPredicate, span,
			fmt.Sprintf("type annotations required: cannot resolve `%s`", pred.String(reg, in)))
		r.noteCause(b, pred.String(reg, in), span, ob.Cause.Code)
		b.Emit()
		return nil
	}
}

func (r *Reporter) needTypeInfo(span source.Span, ty types.TypeID, sink diag.Reporter) {
	diag.ReportError(sink, diag.NeedTypeInfo, span,
		fmt.Sprintf("unable to infer enough type information about `%s`; type annotations or generic parameter binding required",
			types.Label(r.sess.Types, ty))).Emit()
}
