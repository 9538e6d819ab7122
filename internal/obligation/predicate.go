package obligation

import (
	"fmt"
	"strings"

	"strait/internal/types"
)

// TraitRef is one application of a contract to a receiver type and
// argument types: Self: Trait<Args...>.
type TraitRef struct {
	Trait TraitID
	Self  types.TypeID
	Args  []types.TypeID
}

// String renders the applied contract, e.g. "From<int>". The receiver is
// rendered separately by callers that need it.
func (tr TraitRef) String(reg *Registry, in *types.Interner) string {
	name := reg.Name(tr.Trait)
	if len(tr.Args) == 0 {
		return name
	}
	parts := make([]string, len(tr.Args))
	for i, a := range tr.Args {
		parts[i] = types.Label(in, a)
	}
	return name + "<" + strings.Join(parts, ", ") + ">"
}

// SelfLabel renders the receiver type.
func (tr TraitRef) SelfLabel(in *types.Interner) string {
	return types.Label(in, tr.Self)
}

// Resolve substitutes current inference-variable bindings throughout the
// reference.
func (tr TraitRef) Resolve(in *types.Interner) TraitRef {
	return resolveRef(tr, in.Resolve)
}

// PredKind enumerates the closed set of predicate shapes. The classifier
// switches exhaustively over it: a new shape is a compile-visible hole in
// every switch.
type PredKind uint8

const (
	PredInvalid PredKind = iota
	// PredTrait: Self implements Trait<Args>.
	PredTrait
	// PredEquate: A and B are the same type.
	PredEquate
	// PredRegionOutlives: region RA outlives region RB.
	PredRegionOutlives
	// PredTypeOutlives: type A outlives region RB.
	PredTypeOutlives
	// PredProjection: the associated type Assoc of TraitRef equals Ty.
	PredProjection
	// PredWellFormed: type WF is well-formed.
	PredWellFormed
	// PredObjectSafe: the contract can be used as an object.
	PredObjectSafe
)

// ProjectionPred is an associated-type equality requirement.
type ProjectionPred struct {
	Trait TraitRef
	Assoc string
	Ty    types.TypeID
}

// Predicate is a closed tagged union over predicate shapes. Only the
// fields of the active Kind are meaningful.
type Predicate struct {
	Kind  PredKind
	Trait TraitRef       // PredTrait
	A     types.TypeID   // PredEquate, PredTypeOutlives
	B     types.TypeID   // PredEquate
	RA    types.RegionID // PredRegionOutlives
	RB    types.RegionID // PredRegionOutlives, PredTypeOutlives
	Proj  ProjectionPred // PredProjection
	WF    types.TypeID   // PredWellFormed
	Obj   TraitID        // PredObjectSafe
}

// TraitPredicate builds a contract-implemented predicate.
func TraitPredicate(tr TraitRef) Predicate {
	return Predicate{Kind: PredTrait, Trait: tr}
}

// resolveRef maps fn over every type in the trait reference.
func resolveRef(tr TraitRef, fn func(types.TypeID) types.TypeID) TraitRef {
	out := TraitRef{Trait: tr.Trait, Self: fn(tr.Self)}
	if len(tr.Args) > 0 {
		out.Args = make([]types.TypeID, len(tr.Args))
		for i, a := range tr.Args {
			out.Args[i] = fn(a)
		}
	}
	return out
}

// mapTypes applies fn to every type term mentioned by the predicate.
func (p Predicate) mapTypes(fn func(types.TypeID) types.TypeID) Predicate {
	out := p
	switch p.Kind {
	case PredTrait:
		out.Trait = resolveRef(p.Trait, fn)
	case PredEquate:
		out.A = fn(p.A)
		out.B = fn(p.B)
	case PredTypeOutlives:
		out.A = fn(p.A)
	case PredProjection:
		out.Proj.Trait = resolveRef(p.Proj.Trait, fn)
		out.Proj.Ty = fn(p.Proj.Ty)
	case PredWellFormed:
		out.WF = fn(p.WF)
	}
	return out
}

// Resolve substitutes current inference-variable bindings everywhere.
func (p Predicate) Resolve(in *types.Interner) Predicate {
	return p.mapTypes(in.Resolve)
}

// Normalize resolves bindings and erases regions. Dedup keys are computed
// over the normalized predicate, so failures that differ only in solver
// metadata collapse into one report.
func (p Predicate) Normalize(in *types.Interner) Predicate {
	out := p.mapTypes(func(id types.TypeID) types.TypeID {
		return in.EraseRegions(in.Resolve(id))
	})
	out.RA = types.NoRegion
	out.RB = types.NoRegion
	return out
}

// ReferencesError reports whether any type term mentioned by the
// predicate contains the error sentinel.
func (p Predicate) ReferencesError(in *types.Interner) bool {
	found := false
	p.mapTypes(func(id types.TypeID) types.TypeID {
		if in.ReferencesError(id) {
			found = true
		}
		return id
	})
	return found
}

// String renders the predicate for messages.
func (p Predicate) String(reg *Registry, in *types.Interner) string {
	switch p.Kind {
	case PredTrait:
		return fmt.Sprintf("%s: %s", p.Trait.SelfLabel(in), p.Trait.String(reg, in))
	case PredEquate:
		return fmt.Sprintf("%s == %s", types.Label(in, p.A), types.Label(in, p.B))
	case PredRegionOutlives:
		return fmt.Sprintf("%s: %s", types.RegionLabel(p.RA), types.RegionLabel(p.RB))
	case PredTypeOutlives:
		return fmt.Sprintf("%s: %s", types.Label(in, p.A), types.RegionLabel(p.RB))
	case PredProjection:
		return fmt.Sprintf("<%s as %s>::%s == %s",
			p.Proj.Trait.SelfLabel(in), p.Proj.Trait.String(reg, in),
			p.Proj.Assoc, types.Label(in, p.Proj.Ty))
	case PredWellFormed:
		return fmt.Sprintf("%s well-formed", types.Label(in, p.WF))
	case PredObjectSafe:
		return fmt.Sprintf("%s object-safe", reg.Name(p.Obj))
	default:
		return "<invalid predicate>"
	}
}

// Fingerprint is the stable structural identity of a predicate, used in
// dedup keys. It is built from interned IDs rather than labels, so two
// distinct unbound inference variables stay distinct even though both
// render as "_". Callers normalize first.
func (p Predicate) Fingerprint() string {
	var b strings.Builder
	fmt.Fprintf(&b, "k%d", p.Kind)
	switch p.Kind {
	case PredTrait:
		fmt.Fprintf(&b, "|t%d|s%d", p.Trait.Trait, p.Trait.Self)
		for _, a := range p.Trait.Args {
			fmt.Fprintf(&b, ",%d", a)
		}
	case PredEquate:
		fmt.Fprintf(&b, "|%d=%d", p.A, p.B)
	case PredRegionOutlives:
		fmt.Fprintf(&b, "|r%d:r%d", p.RA, p.RB)
	case PredTypeOutlives:
		fmt.Fprintf(&b, "|%d:r%d", p.A, p.RB)
	case PredProjection:
		fmt.Fprintf(&b, "|t%d|s%d", p.Proj.Trait.Trait, p.Proj.Trait.Self)
		for _, a := range p.Proj.Trait.Args {
			fmt.Fprintf(&b, ",%d", a)
		}
		fmt.Fprintf(&b, "|%s=%d", p.Proj.Assoc, p.Proj.Ty)
	case PredWellFormed:
		fmt.Fprintf(&b, "|wf%d", p.WF)
	case PredObjectSafe:
		fmt.Fprintf(&b, "|o%d", p.Obj)
	}
	return b.String()
}
