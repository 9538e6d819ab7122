package obligation

import (
	"strait/internal/source"
)

// TraitID identifies a declared contract. Zero is reserved.
type TraitID uint32

// NoTraitID marks the absence of a contract.
const NoTraitID TraitID = 0

// HintAttr is the author-supplied "on unimplemented" attribute attached to
// a contract declaration. Span points at the attribute itself; authoring
// errors in the template are reported there, not at the failing use site.
type HintAttr struct {
	Span     source.Span
	Value    string
	HasValue bool
}

// TraitDef describes one contract declaration as far as the reporter needs
// it: the name, the generic parameter names (excluding the receiver), the
// optional hint attribute, and the object-safety violations the solver
// recorded for it.
type TraitDef struct {
	Name       string
	Params     []string
	Hint       *HintAttr
	Violations []Violation
}

// Registry is the read-only contract metadata store, filled by the
// front end before reporting starts.
type Registry struct {
	defs   []TraitDef
	byName map[string]TraitID
	sized  TraitID
}

func NewRegistry() *Registry {
	return &Registry{
		defs:   make([]TraitDef, 1), // reserve NoTraitID
		byName: make(map[string]TraitID),
	}
}

// Define registers a contract and returns its ID.
func (r *Registry) Define(def TraitDef) TraitID {
	id := TraitID(len(r.defs))
	r.defs = append(r.defs, def)
	r.byName[def.Name] = id
	return id
}

// Get returns the definition for an ID, or nil for unknown IDs.
func (r *Registry) Get(id TraitID) *TraitDef {
	if id == NoTraitID || int(id) >= len(r.defs) {
		return nil
	}
	return &r.defs[id]
}

// ByName looks a contract up by name.
func (r *Registry) ByName(name string) (TraitID, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// Name returns the contract name or "?" for unknown IDs.
func (r *Registry) Name(id TraitID) string {
	if def := r.Get(id); def != nil {
		return def.Name
	}
	return "?"
}

// MarkSized declares which contract is the built-in fixed-size capability.
// Ambiguity reporting words its messages differently for that one.
func (r *Registry) MarkSized(id TraitID) {
	r.sized = id
}

// Sized returns the fixed-size capability contract, if declared.
func (r *Registry) Sized() TraitID {
	return r.sized
}

// Violations returns the recorded object-safety violations for a contract.
func (r *Registry) Violations(id TraitID) []Violation {
	if def := r.Get(id); def != nil {
		return def.Violations
	}
	return nil
}
