package types

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for common primitive types.
type Builtins struct {
	Invalid TypeID
	Error   TypeID
	Unit    TypeID
	Bool    TypeID
	String  TypeID
	Int     TypeID
	Uint    TypeID
	Float   TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors. It
// also carries the solver's inference-variable binding table, which the
// reporter reads to resolve variables before keying and rendering.
type Interner struct {
	types    []Type
	index    map[Type]TypeID
	builtins Builtins

	names   []string
	nameIdx map[string]NameID

	argLists [][]TypeID
	argIdx   map[string]ArgsID

	bindings map[VarID]TypeID
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index:    make(map[Type]TypeID, 64),
		nameIdx:  make(map[string]NameID, 16),
		argIdx:   make(map[string]ArgsID, 16),
		bindings: make(map[VarID]TypeID),
	}
	in.names = append(in.names, "")         // reserve NoNameID
	in.argLists = append(in.argLists, nil)  // reserve ArgsID 0
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Error = in.Intern(Type{Kind: KindError})
	in.builtins.Unit = in.Intern(Type{Kind: KindUnit})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.String = in.Intern(Type{Kind: KindString})
	in.builtins.Int = in.Intern(MakeInt(WidthAny))
	in.builtins.Uint = in.Intern(MakeUint(WidthAny))
	in.builtins.Float = in.Intern(MakeFloat(WidthAny))
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if id, ok := in.index[t]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[t] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup returns the descriptor or panics on an unknown ID.
func (in *Interner) MustLookup(id TypeID) Type {
	t, ok := in.Lookup(id)
	if !ok {
		panic(fmt.Errorf("unknown TypeID %d", id))
	}
	return t
}

// Name interns a name and returns its NameID.
func (in *Interner) Name(s string) NameID {
	if id, ok := in.nameIdx[s]; ok {
		return id
	}
	lenNames, err := safecast.Conv[uint32](len(in.names))
	if err != nil {
		panic(fmt.Errorf("len(names) overflow: %w", err))
	}
	id := NameID(lenNames)
	in.names = append(in.names, s)
	in.nameIdx[s] = id
	return id
}

// NameStr returns the string for a NameID.
func (in *Interner) NameStr(id NameID) string {
	if int(id) >= len(in.names) {
		return ""
	}
	return in.names[id]
}

// internArgs canonicalises a type-argument list.
func (in *Interner) internArgs(args []TypeID) ArgsID {
	if len(args) == 0 {
		return 0
	}
	var key strings.Builder
	for _, a := range args {
		fmt.Fprintf(&key, "%d,", a)
	}
	if id, ok := in.argIdx[key.String()]; ok {
		return id
	}
	lenLists, err := safecast.Conv[uint32](len(in.argLists))
	if err != nil {
		panic(fmt.Errorf("len(argLists) overflow: %w", err))
	}
	id := ArgsID(lenLists)
	stored := make([]TypeID, len(args))
	copy(stored, args)
	in.argLists = append(in.argLists, stored)
	in.argIdx[key.String()] = id
	return id
}

// ArgList returns the canonical argument list for an ArgsID.
func (in *Interner) ArgList(id ArgsID) []TypeID {
	if int(id) >= len(in.argLists) {
		return nil
	}
	return in.argLists[id]
}

// Named interns a nominal type application like Vec<int>.
func (in *Interner) Named(name string, args ...TypeID) TypeID {
	return in.Intern(Type{Kind: KindNamed, Sym: in.Name(name), Args: in.internArgs(args)})
}

// Infer interns an inference variable term.
func (in *Interner) Infer(v VarID) TypeID {
	return in.Intern(MakeInfer(v))
}

// Bindings -------------------------------------------------------------------

// BindVar records the current binding of an inference variable. The solver
// owns the table; the reporter only reads it through Resolve.
func (in *Interner) BindVar(v VarID, to TypeID) {
	in.bindings[v] = to
}

// Binding returns the binding of a variable, if any.
func (in *Interner) Binding(v VarID) (TypeID, bool) {
	id, ok := in.bindings[v]
	return id, ok
}

// Resolve substitutes currently-bound inference variables throughout the
// term. Unbound variables stay as they are.
func (in *Interner) Resolve(id TypeID) TypeID {
	t, ok := in.Lookup(id)
	if !ok {
		return id
	}
	switch t.Kind {
	case KindInfer:
		if to, ok := in.bindings[t.Var]; ok {
			return in.Resolve(to)
		}
		return id
	case KindArray, KindReference:
		elem := in.Resolve(t.Elem)
		if elem == t.Elem {
			return id
		}
		t.Elem = elem
		return in.Intern(t)
	case KindNamed:
		args := in.ArgList(t.Args)
		if len(args) == 0 {
			return id
		}
		changed := false
		resolved := make([]TypeID, len(args))
		for i, a := range args {
			resolved[i] = in.Resolve(a)
			if resolved[i] != a {
				changed = true
			}
		}
		if !changed {
			return id
		}
		t.Args = in.internArgs(resolved)
		return in.Intern(t)
	default:
		return id
	}
}

// EraseRegions replaces every concrete region in the term with NoRegion.
// Structurally identical terms that differ only in regions map to the same
// TypeID afterwards, which is what dedup keying relies on.
func (in *Interner) EraseRegions(id TypeID) TypeID {
	t, ok := in.Lookup(id)
	if !ok {
		return id
	}
	switch t.Kind {
	case KindReference:
		elem := in.EraseRegions(t.Elem)
		if elem == t.Elem && t.Region == NoRegion {
			return id
		}
		t.Elem = elem
		t.Region = NoRegion
		return in.Intern(t)
	case KindArray:
		elem := in.EraseRegions(t.Elem)
		if elem == t.Elem {
			return id
		}
		t.Elem = elem
		return in.Intern(t)
	case KindNamed:
		args := in.ArgList(t.Args)
		if len(args) == 0 {
			return id
		}
		changed := false
		erased := make([]TypeID, len(args))
		for i, a := range args {
			erased[i] = in.EraseRegions(a)
			if erased[i] != a {
				changed = true
			}
		}
		if !changed {
			return id
		}
		t.Args = in.internArgs(erased)
		return in.Intern(t)
	default:
		return id
	}
}

// ReferencesError reports whether the term contains the error sentinel
// anywhere.
func (in *Interner) ReferencesError(id TypeID) bool {
	t, ok := in.Lookup(id)
	if !ok {
		return false
	}
	switch t.Kind {
	case KindError:
		return true
	case KindInfer:
		if to, bound := in.bindings[t.Var]; bound {
			return in.ReferencesError(to)
		}
		return false
	case KindArray, KindReference:
		return in.ReferencesError(t.Elem)
	case KindNamed:
		for _, a := range in.ArgList(t.Args) {
			if in.ReferencesError(a) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// NeedsInfer reports whether the term still contains an unbound inference
// variable after following bindings.
func (in *Interner) NeedsInfer(id TypeID) bool {
	t, ok := in.Lookup(id)
	if !ok {
		return false
	}
	switch t.Kind {
	case KindInfer:
		if to, bound := in.bindings[t.Var]; bound {
			return in.NeedsInfer(to)
		}
		return true
	case KindArray, KindReference:
		return in.NeedsInfer(t.Elem)
	case KindNamed:
		for _, a := range in.ArgList(t.Args) {
			if in.NeedsInfer(a) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
