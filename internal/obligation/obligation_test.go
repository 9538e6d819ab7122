package obligation

import (
	"testing"

	"strait/internal/types"
)

func testWorld() (*Registry, *types.Interner) {
	reg := NewRegistry()
	in := types.NewInterner()
	return reg, in
}

func TestPredicateString(t *testing.T) {
	reg, in := testWorld()
	ord := reg.Define(TraitDef{Name: "Ord"})
	from := reg.Define(TraitDef{Name: "From", Params: []string{"T"}})

	vec := in.Named("Vec", in.Builtins().Int)

	p := TraitPredicate(TraitRef{Trait: ord, Self: vec})
	if got := p.String(reg, in); got != "Vec<int>: Ord" {
		t.Fatalf("trait predicate: %q", got)
	}

	p = TraitPredicate(TraitRef{Trait: from, Self: vec, Args: []types.TypeID{in.Builtins().String}})
	if got := p.String(reg, in); got != "Vec<int>: From<string>" {
		t.Fatalf("trait predicate with args: %q", got)
	}

	eq := Predicate{Kind: PredEquate, A: in.Builtins().Int, B: in.Builtins().Bool}
	if got := eq.String(reg, in); got != "int == bool" {
		t.Fatalf("equate predicate: %q", got)
	}
}

func TestNormalizeErasesRegionsAndBindings(t *testing.T) {
	reg, in := testWorld()
	ord := reg.Define(TraitDef{Name: "Ord"})

	refA := in.Intern(types.MakeReference(in.Builtins().Int, 3, false))
	refB := in.Intern(types.MakeReference(in.Builtins().Int, 8, false))
	pa := TraitPredicate(TraitRef{Trait: ord, Self: refA}).Normalize(in)
	pb := TraitPredicate(TraitRef{Trait: ord, Self: refB}).Normalize(in)
	if pa.Fingerprint() != pb.Fingerprint() {
		t.Fatal("predicates differing only in regions must share a fingerprint")
	}

	v := in.Infer(1)
	in.BindVar(1, refA)
	pv := TraitPredicate(TraitRef{Trait: ord, Self: v}).Normalize(in)
	if pv.Fingerprint() != pa.Fingerprint() {
		t.Fatal("bound variable must normalize to its concrete binding")
	}

	// distinct unbound variables must stay distinct
	p1 := TraitPredicate(TraitRef{Trait: ord, Self: in.Infer(10)}).Normalize(in)
	p2 := TraitPredicate(TraitRef{Trait: ord, Self: in.Infer(11)}).Normalize(in)
	if p1.Fingerprint() == p2.Fingerprint() {
		t.Fatal("unbound variables are not interchangeable")
	}
}

func TestIsMigration(t *testing.T) {
	leaf := &CauseCode{Kind: CauseSliceElem}
	if leaf.IsMigration() {
		t.Fatal("plain leaf is not a migration cause")
	}

	wrapped := &CauseCode{Kind: CauseMigration, Sub: leaf}
	if !wrapped.IsMigration() {
		t.Fatal("direct wrapper must be detected")
	}

	// wrapper buried behind a derived composite
	buried := &CauseCode{
		Kind:   CauseImplDerived,
		Parent: &CauseCode{Kind: CauseMigration, Sub: &CauseCode{Kind: CauseMisc}},
	}
	if !buried.IsMigration() {
		t.Fatal("wrapper anywhere in the chain must be detected")
	}

	var nilCode *CauseCode
	if nilCode.IsMigration() {
		t.Fatal("nil chain has no wrapper")
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	id := reg.Define(TraitDef{Name: "FixedSize"})
	reg.MarkSized(id)

	if got, ok := reg.ByName("FixedSize"); !ok || got != id {
		t.Fatalf("ByName = %d, %v", got, ok)
	}
	if reg.Sized() != id {
		t.Fatal("sized lang item lost")
	}
	if reg.Name(NoTraitID) != "?" {
		t.Fatal("unknown IDs render as ?")
	}
}
