package obligation

// FailureKind classifies one failed obligation as handed over by the
// solver.
type FailureKind uint8

const (
	// FailSelection: the predicate is unsatisfiable; Selection refines it.
	FailSelection FailureKind = iota
	// FailProjection: an associated-type equality did not hold.
	FailProjection
	// FailAmbiguity: not enough type information to decide.
	FailAmbiguity
	// FailOverflow: evaluating the requirement recursed past the
	// configured depth limit. Always fatal.
	FailOverflow
)

// SelectionKind refines FailSelection.
type SelectionKind uint8

const (
	// SelUnimplemented: plain "does not hold".
	SelUnimplemented SelectionKind = iota
	// SelOutputTypeMismatch: an impl exists but its output type
	// parameters disagree; Expected/Actual carry the two applications
	// and Detail the solver's explanation.
	SelOutputTypeMismatch
	// SelNotObjectSafe: the contract in Obj cannot be made into an
	// object.
	SelNotObjectSafe
)

// Failure is one classified obligation failure. Only the fields relevant
// to Kind (and Selection) are meaningful.
type Failure struct {
	Kind       FailureKind
	Obligation Obligation

	Selection SelectionKind // FailSelection

	Expected TraitRef // SelOutputTypeMismatch
	Actual   TraitRef // SelOutputTypeMismatch

	// Detail is the nested solver-provided explanation, used by the
	// equate/region messages, output-type mismatches and projection
	// failures.
	Detail string

	Obj TraitID // SelNotObjectSafe
}

// ViolationKind tags one object-safety violation.
type ViolationKind uint8

const (
	// ViolationSizedSelf: the contract requires a fixed-size receiver.
	ViolationSizedSelf ViolationKind = iota
	// ViolationSupertraitSelf: Self appears as a type parameter in the
	// supercontract listing.
	ViolationSupertraitSelf
	// ViolationMethod: a method is incompatible with objects; MethodKind
	// refines why.
	ViolationMethod
)

// MethodViolation refines ViolationMethod.
type MethodViolation uint8

const (
	MethodNoReceiver MethodViolation = iota
	MethodReferencesSelf
	MethodGenerics
)

// Violation is one object-safety violation. The struct is comparable;
// rendering deduplicates violations by value.
type Violation struct {
	Kind       ViolationKind
	Method     string
	MethodKind MethodViolation
}
