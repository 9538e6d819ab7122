package diag

import (
	"fmt"
)

// Code is a compact numeric identifier with a stable string form.
//
// The numeric value of a code is part of the tooling contract: once
// published, a code keeps its meaning forever. New diagnostics get new
// numbers, retired diagnostics leave holes.
type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Obligation failures reported by the contract checker.
	NotObjectSafe        Code = 38  // contract cannot be made into an object
	ProjectionMismatch   Code = 271 // associated type does not resolve to the required type
	HintBadParam         Code = 272 // hint template names an unknown type parameter
	HintPositionalArg    Code = 273 // hint template uses positional arguments
	HintMissingValue     Code = 274 // hint attribute has no value
	Overflow             Code = 275 // requirement evaluation overflowed the recursion limit
	ImplMethodObligation Code = 276 // requirement appears on impl method only
	Unimplemented        Code = 277 // contract is not implemented for a type
	EquateUnsatisfied    Code = 278 // type equality requirement failed
	RegionUnsatisfied    Code = 279 // region-outlives requirement failed
	Unsatisfied          Code = 280 // generic requirement failed
	OutputTypeMismatch   Code = 281 // output type parameter mismatch
	NeedTypeInfo         Code = 282 // type annotations required
	AmbiguousContract    Code = 283 // cannot resolve contract obligation
	AmbiguousPredicate   Code = 284 // cannot resolve non-contract obligation

	// Internal consistency. Not part of the user-facing numbering: these
	// fire only when the solver hands us a state it promises never to
	// produce.
	IceUnexpectedWF        Code = 9001 // well-formedness predicate failed selection
	IceUnresolvedAmbiguity Code = 9002 // resolved ambiguity reached the reporter
)

var codeDescription = map[Code]string{
	UnknownCode:            "Unknown error",
	NotObjectSafe:          "Contract is not object safe",
	ProjectionMismatch:     "Associated type mismatch",
	HintBadParam:           "Hint template refers to non-existent type parameter",
	HintPositionalArg:      "Hint template must use named arguments",
	HintMissingValue:       "Hint attribute must have a value",
	Overflow:               "Overflow evaluating requirement",
	ImplMethodObligation:   "Requirement appears on impl method only",
	Unimplemented:          "Contract not implemented",
	EquateUnsatisfied:      "Equality requirement not satisfied",
	RegionUnsatisfied:      "Region requirement not satisfied",
	Unsatisfied:            "Requirement not satisfied",
	OutputTypeMismatch:     "Output type parameter mismatch",
	NeedTypeInfo:           "Type annotations required",
	AmbiguousContract:      "Cannot resolve contract obligation",
	AmbiguousPredicate:     "Cannot resolve obligation",
	IceUnexpectedWF:        "Internal error: unexpected well-formedness failure",
	IceUnresolvedAmbiguity: "Internal error: ambiguity survived resolution",
}

// ID returns the stable external identifier ("E0277", "ICE9001").
func (c Code) ID() string {
	if c >= 9000 {
		return fmt.Sprintf("ICE%04d", uint16(c))
	}
	return fmt.Sprintf("E%04d", uint16(c))
}

// Title returns the short human description of the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
