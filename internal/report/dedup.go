package report

import (
	"strait/internal/obligation"
	"strait/internal/source"
)

// errorKey identifies one logical failure: severity class, span, and the
// structure of the normalized predicate. Normalization resolves inference
// variables to their current bindings and erases regions first, so
// failures that differ only in solver metadata share a key.
type errorKey struct {
	isWarning bool
	file      source.FileID
	start     uint32
	end       uint32
	pred      string
}

// Admitted is one failure that passed the gate, with the state snapshots
// the renderer needs. Snapshotting at admission keeps rendering free of
// session reads, so admitted failures may render in parallel.
type Admitted struct {
	Failure *obligation.Failure

	// IsWarning is true when the cause chain carries the migration
	// wrapper anywhere; the failure then renders as a warning.
	IsWarning bool

	// PriorErrors records whether the session already had an error when
	// this failure was admitted. The cascade-suppression rules read it.
	PriorErrors bool
}

// Admit decides whether the failure is new this session, records its key
// either way, and returns the admitted record. The second result is false
// for duplicates, which must not be rendered.
//
// Overflow failures bypass deduplication: masking one would silently
// misreport whether the program type-checks.
func (s *Session) Admit(f *obligation.Failure) (Admitted, bool) {
	adm := Admitted{
		Failure:     f,
		IsWarning:   f.Obligation.Cause.Code.IsMigration(),
		PriorErrors: s.HasErrors(),
	}
	if f.Kind == obligation.FailOverflow {
		return adm, true
	}

	key := s.keyOf(f, adm.IsWarning)
	if _, dup := s.seen[key]; dup {
		return Admitted{}, false
	}
	s.seen[key] = struct{}{}
	return adm, true
}

func (s *Session) keyOf(f *obligation.Failure, isWarning bool) errorKey {
	span := f.Obligation.Cause.Span
	normalized := f.Obligation.Predicate.Normalize(s.Types)
	return errorKey{
		isWarning: isWarning,
		file:      span.File,
		start:     span.Start,
		end:       span.End,
		pred:      normalized.Fingerprint(),
	}
}
