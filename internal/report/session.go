package report

import (
	"strait/internal/diag"
	"strait/internal/obligation"
	"strait/internal/source"
	"strait/internal/types"
)

// DefaultRecursionLimit is the requirement-evaluation depth the solver
// uses unless the manifest overrides it.
const DefaultRecursionLimit = 64

// Session owns the per-compilation-unit reporting state: the diagnostic
// sink, the dedup key set and the read-only collaborator handles.
// Construct one per unit and drop it afterwards; the key set only grows.
type Session struct {
	Files  *source.FileSet
	Types  *types.Interner
	Traits *obligation.Registry
	Bag    *diag.Bag

	// RecursionLimit is the solver's configured depth limit, echoed in
	// the overflow suggestion.
	RecursionLimit int

	externalErrors bool
	seen           map[errorKey]struct{}
}

// NewSession wires a session around the given collaborators.
func NewSession(files *source.FileSet, typesIn *types.Interner, traits *obligation.Registry, bag *diag.Bag) *Session {
	return &Session{
		Files:          files,
		Types:          typesIn,
		Traits:         traits,
		Bag:            bag,
		RecursionLimit: DefaultRecursionLimit,
		seen:           make(map[errorKey]struct{}),
	}
}

// NoteExternalError records that an earlier phase already reported an
// error. Cascade suppression consults this next to the bag itself.
func (s *Session) NoteExternalError() {
	s.externalErrors = true
}

// HasErrors reports whether any error is known to the session: from an
// earlier phase or already emitted into the bag.
func (s *Session) HasErrors() bool {
	return s.externalErrors || s.Bag.HasErrors()
}

// Sink returns the session's reporter.
func (s *Session) Sink() diag.Reporter {
	return diag.BagReporter{Bag: s.Bag}
}
