package obligation

import (
	"strait/internal/source"
	"strait/internal/types"
)

// CauseKind tags the reason an obligation was generated.
type CauseKind uint8

const (
	// CauseMisc carries no note of its own.
	CauseMisc CauseKind = iota
	// CauseMigration wraps Sub and marks the obligation as coming from a
	// rule under soft migration: the failure is reported as a warning and
	// a fixed migration note is added before the wrapped cause's notes.
	CauseMigration
	// CauseSliceElem: slice and array elements must be fixed-size.
	CauseSliceElem
	// CauseProjectionWF: required so that a projection is well-formed.
	// Type holds the projected type.
	CauseProjectionWF
	// CauseReferenceOutlivesReferent: a reference must not outlive its
	// referent. Type holds the reference type.
	CauseReferenceOutlivesReferent
	// CauseItemObligation: required by the declaration named Item.
	CauseItemObligation
	// CauseObjectCast: required for a cast to the object type Type.
	CauseObjectCast
	// CauseRepeatElem: the repeated array element is copied.
	CauseRepeatElem
	// CauseVariableType: local variables must be fixed-size.
	CauseVariableType
	// CauseReturnType: return types must be fixed-size.
	CauseReturnType
	// CauseAssignmentLHS: assignment targets must be fixed-size.
	CauseAssignmentLHS
	// CauseStructInitializer: initialized structs must be fixed-size.
	CauseStructInitializer
	// CauseClosureCapture: the closure capturing Var requires the
	// Capability contract on every captured variable.
	CauseClosureCapture
	// CauseFieldSized: only the last field may be dynamically sized.
	CauseFieldSized
	// CauseSharedStatic: shared statics must be thread-safe.
	CauseSharedStatic
	// CauseCompareImplMethod: comparing an impl method against its
	// contract method.
	CauseCompareImplMethod
	// CauseBuiltinDerived: derived because the predicate appears within
	// ParentTrait's receiver type; composite, recurses into Parent.
	CauseBuiltinDerived
	// CauseImplDerived: derived from the requirements on the impl of
	// ParentTrait; composite, recurses into Parent.
	CauseImplDerived
)

// CauseCode is one node of the causal chain attached to an obligation.
// Each node has at most one successor (Sub for the migration wrapper,
// Parent for the derived composites), so a chain is a finite singly-linked
// list built by the solver with strictly decreasing structural depth.
type CauseCode struct {
	Kind CauseKind

	Sub *CauseCode // CauseMigration

	Item       string       // CauseItemObligation
	Type       types.TypeID // CauseProjectionWF, CauseReferenceOutlivesReferent, CauseObjectCast
	Var        string       // CauseClosureCapture
	Capability string       // CauseClosureCapture

	ParentTrait TraitRef   // CauseBuiltinDerived, CauseImplDerived
	Parent      *CauseCode // CauseBuiltinDerived, CauseImplDerived
}

// Cause pairs the span the obligation points at with its causal chain.
// A nil Code is read as CauseMisc.
type Cause struct {
	Span source.Span
	Code *CauseCode
}

// IsMigration reports whether the migration wrapper appears anywhere in
// the chain. Failures whose cause carries it render as warnings.
func (c *CauseCode) IsMigration() bool {
	for n := c; n != nil; {
		if n.Kind == CauseMigration {
			return true
		}
		switch n.Kind {
		case CauseBuiltinDerived, CauseImplDerived:
			n = n.Parent
		default:
			n = n.Sub
		}
	}
	return false
}

// Obligation is a predicate paired with the reason it was generated.
type Obligation struct {
	Predicate Predicate
	Cause     Cause
}
