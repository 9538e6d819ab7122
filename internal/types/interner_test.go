package types

import (
	"testing"
)

func TestInternStable(t *testing.T) {
	in := NewInterner()
	a := in.Named("Vec", in.Builtins().Int)
	b := in.Named("Vec", in.Builtins().Int)
	if a != b {
		t.Fatalf("identical applications must share a TypeID: %d vs %d", a, b)
	}
	c := in.Named("Vec", in.Builtins().Bool)
	if a == c {
		t.Fatal("different argument lists must not collide")
	}
}

func TestResolveFollowsBindings(t *testing.T) {
	in := NewInterner()
	v := in.Infer(1)
	in.BindVar(1, in.Builtins().Int)

	if got := in.Resolve(v); got != in.Builtins().Int {
		t.Fatalf("Resolve(var) = %s", Label(in, got))
	}

	vec := in.Named("Vec", in.Infer(2))
	in.BindVar(2, in.Infer(3))
	in.BindVar(3, in.Builtins().String)
	resolved := in.Resolve(vec)
	if Label(in, resolved) != "Vec<string>" {
		t.Fatalf("chained bindings: got %s", Label(in, resolved))
	}
}

func TestResolveLeavesUnboundVars(t *testing.T) {
	in := NewInterner()
	v := in.Infer(7)
	if got := in.Resolve(v); got != v {
		t.Fatal("unbound variable must resolve to itself")
	}
	if !in.NeedsInfer(v) {
		t.Fatal("unbound variable needs inference")
	}
}

func TestEraseRegions(t *testing.T) {
	in := NewInterner()
	withRegion := in.Intern(MakeReference(in.Builtins().Int, 4, false))
	withOther := in.Intern(MakeReference(in.Builtins().Int, 9, false))
	if withRegion == withOther {
		t.Fatal("distinct regions must intern distinctly")
	}
	if in.EraseRegions(withRegion) != in.EraseRegions(withOther) {
		t.Fatal("region-erased terms must be identical")
	}

	nested := in.Named("Pair", withRegion, in.Builtins().Bool)
	nestedOther := in.Named("Pair", withOther, in.Builtins().Bool)
	if in.EraseRegions(nested) != in.EraseRegions(nestedOther) {
		t.Fatal("erasure must recurse into arguments")
	}
}

func TestReferencesError(t *testing.T) {
	in := NewInterner()
	if in.ReferencesError(in.Builtins().Int) {
		t.Fatal("int does not reference an error")
	}
	bad := in.Named("Vec", in.Builtins().Error)
	if !in.ReferencesError(bad) {
		t.Fatal("Vec<error> references an error")
	}

	// error reached through a binding
	v := in.Infer(5)
	in.BindVar(5, in.Builtins().Error)
	if !in.ReferencesError(v) {
		t.Fatal("binding to the error sentinel must be visible")
	}
}

func TestLabels(t *testing.T) {
	in := NewInterner()
	cases := []struct {
		id   TypeID
		want string
	}{
		{in.Builtins().Unit, "()"},
		{in.Builtins().Error, "<error>"},
		{in.Infer(1), "_"},
		{in.Intern(MakeInt(Width32)), "int32"},
		{in.Intern(MakeArray(in.Builtins().Bool, ArrayDynamicLength)), "bool[]"},
		{in.Intern(MakeArray(in.Builtins().Bool, 4)), "bool[4]"},
		{in.Intern(MakeReference(in.Builtins().Int, NoRegion, true)), "&mut int"},
		{in.Intern(MakeReference(in.Builtins().Int, 2, false)), "&'r2 int"},
		{in.Named("Map", in.Builtins().String, in.Builtins().Int), "Map<string, int>"},
	}
	for _, c := range cases {
		if got := Label(in, c.id); got != c.want {
			t.Errorf("Label(%d) = %q, want %q", c.id, got, c.want)
		}
	}
}
