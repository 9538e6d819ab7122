package report

import (
	"fmt"

	"strait/internal/diag"
	"strait/internal/obligation"
	"strait/internal/source"
	"strait/internal/types"
)

// noteCause appends the "required because ..." note chain for a cause
// code. predLabel is the rendering of the predicate the current link
// refers to; the derived composites swap it for their parent predicate
// before recursing. Recursion is bounded: the solver builds chains with
// strictly decreasing structural depth.
func (r *Reporter) noteCause(b *diag.ReportBuilder, predLabel string, span source.Span, code *obligation.CauseCode) {
	if code == nil {
		return
	}
	in := r.sess.Types
	reg := r.sess.Traits

	switch code.Kind {
	case obligation.CauseMisc:
		// no note

	case obligation.CauseMigration:
		b.WithNote(span, "this requirement is newly enforced and will become a hard error in a future release")
		r.noteCause(b, predLabel, span, code.Sub)

	case obligation.CauseSliceElem:
		b.WithNote(span, "slice and array elements must have a statically known size")

	case obligation.CauseProjectionWF:
		b.WithNote(span, fmt.Sprintf("required so that the projection `%s` is well-formed",
			types.Label(in, code.Type)))

	case obligation.CauseReferenceOutlivesReferent:
		b.WithNote(span, fmt.Sprintf("required so that reference `%s` does not outlive its referent",
			types.Label(in, code.Type)))

	case obligation.CauseItemObligation:
		b.WithNote(span, fmt.Sprintf("required by `%s`", code.Item))

	case obligation.CauseObjectCast:
		b.WithNote(span, fmt.Sprintf("required for the cast to the object type `%s`",
			types.Label(in, code.Type)))

	case obligation.CauseRepeatElem:
		b.WithNote(span, "the `Copy` contract is required because the repeated element will be copied")

	case obligation.CauseVariableType:
		b.WithNote(span, "all local variables must have a statically known size")

	case obligation.CauseReturnType:
		b.WithNote(span, "the return type of a function must have a statically known size")

	case obligation.CauseAssignmentLHS:
		b.WithNote(span, "the left-hand-side of an assignment must have a statically known size")

	case obligation.CauseStructInitializer:
		b.WithNote(span, "structs must have a statically known size to be initialized")

	case obligation.CauseClosureCapture:
		b.WithNote(span, fmt.Sprintf("the closure that captures `%s` requires that all captured variables implement the contract `%s`",
			code.Var, code.Capability))

	case obligation.CauseFieldSized:
		b.WithNote(span, "only the last field of a struct or enum variant may have a dynamically sized type")

	case obligation.CauseSharedStatic:
		b.WithNote(span, "shared static variables must have a type that implements `Share`")

	case obligation.CauseCompareImplMethod:
		b.WithNote(span, fmt.Sprintf("the requirement `%s` appears on the impl method but not on the corresponding contract method",
			predLabel))

	case obligation.CauseBuiltinDerived:
		parent := code.ParentTrait.Resolve(in)
		b.WithNote(span, fmt.Sprintf("required because it appears within the type `%s`", parent.SelfLabel(in)))
		parentPred := obligation.TraitPredicate(parent)
		r.noteCause(b, parentPred.String(reg, in), span, code.Parent)

	case obligation.CauseImplDerived:
		parent := code.ParentTrait.Resolve(in)
		b.WithNote(span, fmt.Sprintf("required because of the requirements on the impl of `%s` for `%s`",
			parent.String(reg, in), parent.SelfLabel(in)))
		parentPred := obligation.TraitPredicate(parent)
		r.noteCause(b, parentPred.String(reg, in), span, code.Parent)
	}
}
