// Package batch reads the solver's failure dump and rebuilds the
// reporting session from it.
//
// The front end runs obligation solving and serializes everything the
// reporter needs — source files, the type table, contract metadata,
// inference bindings and the classified failures — into one msgpack
// payload. Decoupling the two halves through a file keeps the reporter
// runnable on its own, which is how the golden tests and the CLI drive
// it.
package batch

import (
	"os"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when Payload format changes
const SchemaVersion uint16 = 1

// SpanEntry points into the payload's file list by index.
type SpanEntry struct {
	File  uint32
	Start uint32
	End   uint32
}

// FileEntry carries one source file. Content travels inline so a dump
// replays identically on another machine.
type FileEntry struct {
	Path    string
	Content []byte
}

// TypeEntry is one structural type descriptor. Kind mirrors the interner's
// numbering; Elem and Args reference other entries by payload index, so
// the list is ordered inner-first.
type TypeEntry struct {
	Kind    uint8
	Elem    uint32
	Count   uint32
	Width   uint16
	Mutable bool
	Region  uint32
	Var     uint32
	Name    string
	Args    []uint32
}

// HintEntry is a contract's "on unimplemented" attribute.
type HintEntry struct {
	Span     SpanEntry
	Value    string
	HasValue bool
}

// ViolationEntry is one recorded object-safety violation.
type ViolationEntry struct {
	Kind       uint8
	Method     string
	MethodKind uint8
}

// TraitEntry is one contract definition. Sized marks the built-in
// fixed-size capability.
type TraitEntry struct {
	Name       string
	Params     []string
	Hint       *HintEntry
	Violations []ViolationEntry
	Sized      bool
}

// BindingEntry records one resolved inference variable.
type BindingEntry struct {
	Var  uint32
	Type uint32
}

// TraitRefEntry applies a contract (payload index) to types (payload
// indexes).
type TraitRefEntry struct {
	Trait uint32
	Self  uint32
	Args  []uint32
}

// PredEntry is a serialized predicate; only the fields of Kind matter.
type PredEntry struct {
	Kind  uint8
	Trait TraitRefEntry
	A     uint32
	B     uint32
	RA    uint32
	RB    uint32
	Assoc string
	Ty    uint32
	WF    uint32
	Obj   uint32
}

// CauseEntry is one node of the serialized cause chain.
type CauseEntry struct {
	Kind        uint8
	Sub         *CauseEntry
	Item        string
	Type        uint32
	Var         string
	Capability  string
	ParentTrait TraitRefEntry
	Parent      *CauseEntry
}

// FailureEntry is one classified obligation failure.
type FailureEntry struct {
	Kind      uint8
	Selection uint8
	Pred      PredEntry
	Span      SpanEntry
	Cause     *CauseEntry
	Expected  TraitRefEntry
	Actual    TraitRefEntry
	Detail    string
	Obj       uint32
}

// Payload is the root of the dump.
type Payload struct {
	Schema         uint16
	RecursionLimit int
	PriorErrors    bool

	Files    []FileEntry
	Types    []TypeEntry
	Traits   []TraitEntry
	Bindings []BindingEntry
	Failures []FailureEntry
}

// Load reads and decodes a payload file, rejecting unknown schemas.
func Load(path string) (*Payload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open failure dump")
	}
	defer f.Close() //nolint:errcheck // read-only

	var p Payload
	if err := msgpack.NewDecoder(f).Decode(&p); err != nil {
		return nil, errors.Wrapf(err, "decode failure dump %s", path)
	}
	if p.Schema != SchemaVersion {
		return nil, errors.Errorf("failure dump %s has schema %d, expected %d", path, p.Schema, SchemaVersion)
	}
	return &p, nil
}

// Save encodes a payload to path. The front end owns this; here it mostly
// serves tests and fixtures.
func Save(path string, p *Payload) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create failure dump")
	}
	if err := msgpack.NewEncoder(f).Encode(p); err != nil {
		f.Close() //nolint:errcheck,gosec // already failing
		return errors.Wrap(err, "encode failure dump")
	}
	return errors.Wrap(f.Close(), "close failure dump")
}
